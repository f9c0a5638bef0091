package memory

import (
	"context"
	"sync"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// Ledger is the in-memory ledger backend.
type Ledger struct {
	mu      sync.RWMutex
	entries []domain.LedgerEntry
}

func NewLedger() ports.LedgerBackend {
	return &Ledger{}
}

func (l *Ledger) Append(_ context.Context, entry *domain.LedgerEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *entry)
	return nil
}

func (l *Ledger) Entries(_ context.Context) ([]domain.LedgerEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out, nil
}

func (l *Ledger) Count(_ context.Context) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return int64(len(l.entries)), nil
}
