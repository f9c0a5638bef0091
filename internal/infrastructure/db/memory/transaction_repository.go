// Package memory provides the in-memory storage tier: the fallback the facade
// degrades to when the persistent store is unreachable, and the default store
// when no MongoDB is configured. Data lives for the lifetime of the process
// and is never synced back to the persistent tier.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// TransactionRepository implements the ledger store facade over a
// mutex-guarded slice. Insert enforces tx_id uniqueness just like the Mongo
// tier's unique index, so sequencer retry semantics are identical.
type TransactionRepository struct {
	mu    sync.RWMutex
	txs   []domain.Transaction
	byID  map[int64]struct{}
	byKey map[string]int64
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byID:  make(map[int64]struct{}),
		byKey: make(map[string]int64),
	}
}

func (r *TransactionRepository) Insert(_ context.Context, tx *domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[tx.ID]; exists {
		return domain.ErrDuplicateID
	}
	r.byID[tx.ID] = struct{}{}
	if tx.IdempotencyKey != "" {
		r.byKey[tx.IdempotencyKey] = tx.ID
	}
	r.txs = append(r.txs, *tx)
	return nil
}

// FindAll returns matching transactions newest-first. The result is a fresh
// slice of copies, so callers can never mutate stored records.
func (r *TransactionRepository) FindAll(_ context.Context, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := r.match(filter)
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	if filter.Limit <= 0 {
		return matched, nil
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * filter.Limit
	if skip >= len(matched) {
		return []domain.Transaction{}, nil
	}
	end := skip + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], nil
}

func (r *TransactionRepository) Count(_ context.Context, filter ports.TransactionFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.match(filter))), nil
}

func (r *TransactionRepository) FindMaxID(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var max int64
	for id := range r.byID {
		if id > max {
			max = id
		}
	}
	return max, nil
}

func (r *TransactionRepository) FindByIdempotencyKey(_ context.Context, key string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byKey[key]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	for i := range r.txs {
		if r.txs[i].ID == id {
			tx := r.txs[i]
			return &tx, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (r *TransactionRepository) Tier() string { return ports.TierFallback }

// match returns copies of all transactions passing the filter.
func (r *TransactionRepository) match(filter ports.TransactionFilter) []domain.Transaction {
	matched := make([]domain.Transaction, 0, len(r.txs))
	for _, tx := range r.txs {
		if filter.CreatedBy != "" && tx.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.Direction != "" && string(tx.Direction) != filter.Direction {
			continue
		}
		if filter.Category != "" && string(tx.Category) != filter.Category {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}
