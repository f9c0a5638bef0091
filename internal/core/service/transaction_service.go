package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-api/internal/api/metrics"
	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// maxCommitAttempts bounds the retry loop when an insert loses the id race.
const maxCommitAttempts = 3

const defaultPageLimit = 20
const maxPageLimit = 100

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, username, key string) (bool, error)
	Mark(ctx context.Context, username, key string) error
}

// NoopDedup is used when no idempotency store is configured: every key reads
// as unseen and marking is a no-op.
type NoopDedup struct{}

func (NoopDedup) IsDuplicate(context.Context, string, string) (bool, error) { return false, nil }
func (NoopDedup) Mark(context.Context, string, string) error                { return nil }

// LedgerMirror receives committed transactions for asynchronous append to the
// ledger backend.
type LedgerMirror interface {
	Enqueue(entry domain.LedgerEntry)
}

// TransactionService owns the submission path. One mutex serializes the
// sequencer's read-then-write, and the store's duplicate-id error is retried a
// bounded number of times, so two concurrent submissions can never both commit
// the same identifier.
type TransactionService struct {
	mu     sync.Mutex
	repo   ports.TransactionRepository
	seq    *Sequencer
	dedup  DedupChecker
	mirror LedgerMirror
	log    zerolog.Logger
}

func NewTransactionService(
	repo ports.TransactionRepository,
	seq *Sequencer,
	dedup DedupChecker,
	mirror LedgerMirror,
	log zerolog.Logger,
) *TransactionService {
	return &TransactionService{repo: repo, seq: seq, dedup: dedup, mirror: mirror, log: log}
}

// Submit validates, sequences, attributes, and commits one transaction. A
// failed submission leaves no partial state: the insert is the single write,
// and the ledger mirror only runs after a successful commit.
func (s *TransactionService) Submit(ctx context.Context, in ports.SubmitTransactionInput) (*ports.SubmitResult, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if in.Wallet == "" {
		return nil, fmt.Errorf("%w: principal has no wallet", domain.ErrValidation)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q is not a valid decimal", domain.ErrValidation, in.Amount)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", domain.ErrValidation)
	}

	direction := domain.Direction(in.Direction)
	sender, receiver, err := domain.Attribute(direction, in.Wallet, in.Counterparty)
	if err != nil {
		return nil, err
	}

	if in.IdempotencyKey != "" {
		if replay, err := s.findReplay(ctx, in.Username, in.IdempotencyKey); err != nil {
			return nil, err
		} else if replay != nil {
			s.log.Info().Str("username", in.Username).Str("idempotency_key", in.IdempotencyKey).
				Int64("tx_id", replay.ID).Msg("idempotent replay")
			return &ports.SubmitResult{Transaction: *replay, Storage: s.repo.Tier(), Replayed: true}, nil
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Two in-flight submissions with the same key can both pass the unlocked
	// fast path before either commits. The store is re-consulted under the
	// mutex, so the loser sees the winner's record and replays it.
	if in.IdempotencyKey != "" {
		existing, err := s.repo.FindByIdempotencyKey(ctx, in.IdempotencyKey)
		if err == nil {
			s.log.Info().Str("username", in.Username).Str("idempotency_key", in.IdempotencyKey).
				Int64("tx_id", existing.ID).Msg("idempotent replay")
			return &ports.SubmitResult{Transaction: *existing, Storage: s.repo.Tier(), Replayed: true}, nil
		}
		if !errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, err
		}
	}

	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		id, err := s.seq.NextID(ctx)
		if err != nil {
			return nil, err
		}

		now := time.Now().UTC()
		tx := domain.Transaction{
			ID:             id,
			Description:    strings.TrimSpace(in.Description),
			Amount:         amount,
			Direction:      direction,
			Category:       domain.NormalizeCategory(in.Category),
			Sender:         sender,
			Receiver:       receiver,
			LedgerRef:      domain.LedgerRef(id, sender, receiver, amount, now),
			Status:         domain.StatusCompleted,
			CreatedBy:      in.Username,
			IdempotencyKey: in.IdempotencyKey,
			CreatedAt:      now,
		}

		if err := s.repo.Insert(ctx, &tx); err != nil {
			if errors.Is(err, domain.ErrDuplicateID) {
				metrics.SequencerConflictsTotal.Inc()
				s.log.Debug().Int64("tx_id", id).Int("attempt", attempt).Msg("id conflict, retrying")
				continue
			}
			return nil, err
		}

		metrics.TransactionsCommittedTotal.WithLabelValues(string(direction)).Inc()

		if in.IdempotencyKey != "" {
			if err := s.dedup.Mark(ctx, in.Username, in.IdempotencyKey); err != nil {
				s.log.Warn().Err(err).Str("username", in.Username).Msg("failed to mark idempotency key")
			}
		}

		s.mirror.Enqueue(domain.LedgerEntry{
			TxID:       tx.ID,
			Ref:        tx.LedgerRef,
			Sender:     tx.Sender,
			Receiver:   tx.Receiver,
			Amount:     tx.Amount,
			RecordedAt: tx.CreatedAt,
		})

		s.log.Info().Int64("tx_id", tx.ID).Str("direction", string(direction)).
			Str("username", in.Username).Str("storage", s.repo.Tier()).Msg("transaction committed")

		return &ports.SubmitResult{Transaction: tx, Storage: s.repo.Tier()}, nil
	}

	return nil, fmt.Errorf("submit: gave up after %d attempts: %w", maxCommitAttempts, domain.ErrDuplicateID)
}

// findReplay is the unlocked fast path: it returns the earlier transaction for
// a seen idempotency key, or nil when the key looks fresh. The Redis window is
// consulted first; on a hit or a Redis failure the store decides. A fresh
// verdict here is not final, the key is re-checked under the commit mutex.
func (s *TransactionService) findReplay(ctx context.Context, username, key string) (*domain.Transaction, error) {
	seen, err := s.dedup.IsDuplicate(ctx, username, key)
	if err != nil {
		s.log.Warn().Err(err).Str("username", username).Msg("dedup check failed, consulting store")
		seen = true
	}
	if !seen {
		return nil, nil
	}
	existing, err := s.repo.FindByIdempotencyKey(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

// List returns one page of the principal's transactions, newest first.
// Admins may read the whole ledger; other roles are always scoped to their
// own records.
func (s *TransactionService) List(ctx context.Context, in ports.ListTransactionsInput) (*ports.ListTransactionsResult, error) {
	filter := ports.TransactionFilter{
		CreatedBy: in.Username,
		Direction: in.Direction,
		Category:  in.Category,
		Page:      in.Page,
		Limit:     in.Limit,
	}
	if in.Role == domain.RoleAdmin {
		filter.CreatedBy = ""
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	if filter.Limit > maxPageLimit {
		filter.Limit = maxPageLimit
	}

	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / filter.Limit
	if int(total)%filter.Limit != 0 {
		totalPages++
	}

	return &ports.ListTransactionsResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Storage:    s.repo.Tier(),
	}, nil
}
