package service

import (
	"context"
	"fmt"

	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// Sequencer produces strictly increasing transaction identifiers by reading
// the current maximum from the store. The read-then-write gap is closed by the
// caller: submissions serialize behind the transaction service mutex, and the
// store's unique index rejects the loser of any remaining race with
// domain.ErrDuplicateID, which the service retries.
type Sequencer struct {
	repo ports.TransactionRepository
}

func NewSequencer(repo ports.TransactionRepository) *Sequencer {
	return &Sequencer{repo: repo}
}

// NextID returns max committed id + 1, or 1 when the store is empty.
func (s *Sequencer) NextID(ctx context.Context) (int64, error) {
	max, err := s.repo.FindMaxID(ctx)
	if err != nil {
		return 0, fmt.Errorf("next id: %w", err)
	}
	return max + 1, nil
}
