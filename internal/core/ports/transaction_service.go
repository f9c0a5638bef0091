package ports

import (
	"context"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// SubmitTransactionInput carries all data needed to commit a transaction.
// Username and Wallet come from the authenticated principal, never the body.
type SubmitTransactionInput struct {
	Description  string
	Amount       string // decimal string, validated by the service
	Direction    string
	Category     string // optional, defaults to "other"
	Counterparty string // optional wallet on the other side
	Username     string
	Wallet       string
	// IdempotencyKey, when non-empty, makes the submission replay-safe: a key
	// seen before returns the previously committed transaction.
	IdempotencyKey string
}

// SubmitResult is returned after a transaction commit.
type SubmitResult struct {
	Transaction domain.Transaction
	// Storage is TierPrimary when the record is durably persisted,
	// TierFallback when it was written to the in-memory degraded tier.
	Storage string
	// Replayed is true when the idempotency key matched an earlier commit.
	Replayed bool
}

// ListTransactionsInput carries the parameters for the list endpoint. Role
// scoping: non-admin principals only ever see their own transactions.
type ListTransactionsInput struct {
	Username  string
	Role      string
	Direction string
	Category  string
	Page      int
	Limit     int
}

// ListTransactionsResult is a page of transactions plus pagination metadata.
type ListTransactionsResult struct {
	Items      []domain.Transaction
	Total      int64
	Page       int
	Limit      int
	TotalPages int
	Storage    string
}

// TransactionService defines the use-case operations over the ledger.
type TransactionService interface {
	Submit(ctx context.Context, input SubmitTransactionInput) (*SubmitResult, error)
	List(ctx context.Context, input ListTransactionsInput) (*ListTransactionsResult, error)
}
