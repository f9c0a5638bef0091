package ports

import (
	"context"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// Storage tiers reported by TransactionRepository.Tier.
const (
	TierPrimary  = "primary"
	TierFallback = "fallback"
)

// TransactionFilter carries the query parameters for reading transactions.
// Zero values mean "no filter"; Page/Limit of zero mean "everything".
type TransactionFilter struct {
	CreatedBy string
	Direction string
	Category  string
	Page      int // 1-based
	Limit     int
}

// TransactionRepository is the ledger store facade: an append-only, queryable
// record set that the sequencer and aggregation read through. Implementations
// must enforce transaction-id uniqueness at write time and surface a lost
// write race as domain.ErrDuplicateID.
type TransactionRepository interface {
	// FindAll returns matching transactions ordered by descending id. With no
	// intervening write, two identical calls return the same sequence.
	FindAll(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
	Insert(ctx context.Context, tx *domain.Transaction) error
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
	// FindMaxID returns the highest committed transaction id, or 0 when the
	// store holds no transactions.
	FindMaxID(ctx context.Context) (int64, error)
	FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error)
	// Tier reports which storage tier is currently serving: TierPrimary for
	// the persistent store, TierFallback for the in-memory degraded mode.
	Tier() string
}
