package ports

import (
	"context"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// LedgerBackend is the append-only ledger capability. The backing
// implementation (persistent or in-memory) is selected once at startup and
// never branched on per request. Entries are written once and never mutated.
type LedgerBackend interface {
	Append(ctx context.Context, entry *domain.LedgerEntry) error
	Entries(ctx context.Context) ([]domain.LedgerEntry, error)
	Count(ctx context.Context) (int64, error)
}
