// Package metrics defines and registers all custom Prometheus metrics for the
// fintrack API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry at
// package load via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fintrack"

// TransactionsCommittedTotal counts committed transactions.
// Label:
//   - direction: "income" or "expense"
var TransactionsCommittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "transactions_committed_total",
		Help:      "Total number of transactions committed to the ledger store.",
	},
	[]string{"direction"},
)

// SequencerConflictsTotal counts duplicate-id insert attempts: a conflict
// means two submissions raced for the same identifier and one retried.
var SequencerConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sequencer_conflicts_total",
		Help:      "Total number of transaction inserts rejected for a duplicate id.",
	},
)

// WalletAssignmentsTotal counts wallet addresses handed out at registration.
var WalletAssignmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "wallet_assignments_total",
		Help:      "Total number of wallet addresses assigned to principals.",
	},
)

// WalletPoolRemaining tracks how many addresses are still free in the pool.
var WalletPoolRemaining = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "wallet_pool_remaining",
		Help:      "Number of unassigned addresses remaining in the wallet pool.",
	},
)

// LedgerAppendsTotal counts appends to the ledger backend.
// Label:
//   - result: "ok", "error", or "dropped" (mirror queue full)
var LedgerAppendsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_appends_total",
		Help:      "Total number of ledger mirror appends, labelled by result.",
	},
	[]string{"result"},
)

// StoreFailoversTotal counts failovers from the persistent store to the
// in-memory fallback tier.
var StoreFailoversTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_failovers_total",
		Help:      "Total number of failovers from the primary store to the in-memory tier.",
	},
)
