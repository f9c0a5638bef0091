package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/fintrack/fintrack-api/internal/api/metrics"
	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher mirrors committed transactions to the ledger backend on a fixed
// set of workers, sharded by sender wallet so one wallet's entries land in
// commit order. Appends are best-effort: the transaction is already durable
// in the store before an entry is enqueued.
type Dispatcher struct {
	workers []chan domain.LedgerEntry
	backend ports.LedgerBackend
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, backend ports.LedgerBackend, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LedgerEntry, numWorkers),
		backend: backend,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LedgerEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an entry to the worker responsible for its sender wallet.
// The call never blocks: when the worker's buffer is full (workers stopped or
// far behind) the entry is dropped and counted, keeping the submission path
// from stalling on the mirror.
func (d *Dispatcher) Enqueue(entry domain.LedgerEntry) {
	select {
	case d.workers[d.shardIndex(entry.Sender)] <- entry:
	default:
		metrics.LedgerAppendsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Int64("tx_id", entry.TxID).Msg("ledger mirror queue full, entry dropped")
	}
}

// shardIndex maps a wallet address deterministically to a worker index.
func (d *Dispatcher) shardIndex(wallet string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(wallet))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LedgerEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			if err := d.backend.Append(ctx, &entry); err != nil {
				metrics.LedgerAppendsTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Int64("tx_id", entry.TxID).
					Int("worker_id", id).
					Msg("ledger append failed")
				continue
			}
			metrics.LedgerAppendsTotal.WithLabelValues("ok").Inc()
		}
	}
}
