package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

func seedTx(t *testing.T, repo *TransactionRepository, id int64, createdBy, direction, category string) {
	t.Helper()
	err := repo.Insert(context.Background(), &domain.Transaction{
		ID:          id,
		Description: "seed",
		Amount:      decimal.NewFromInt(10),
		Direction:   domain.Direction(direction),
		Category:    domain.Category(category),
		Sender:      domain.ExternalSender,
		Receiver:    "W1",
		Status:      domain.StatusCompleted,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("insert id %d: %v", id, err)
	}
}

func TestTransactionRepository_Insert_RejectsDuplicateID(t *testing.T) {
	repo := NewTransactionRepository()
	seedTx(t, repo, 1, "alice", "income", "salary")

	err := repo.Insert(context.Background(), &domain.Transaction{ID: 1, CreatedBy: "bob"})
	if !errors.Is(err, domain.ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if n, _ := repo.Count(context.Background(), ports.TransactionFilter{}); n != 1 {
		t.Fatalf("rejected insert changed the record count: %d", n)
	}
}

func TestTransactionRepository_FindMaxID(t *testing.T) {
	repo := NewTransactionRepository()
	if max, _ := repo.FindMaxID(context.Background()); max != 0 {
		t.Fatalf("empty repo max = %d, want 0", max)
	}
	seedTx(t, repo, 3, "alice", "income", "salary")
	seedTx(t, repo, 7, "alice", "expense", "rent")
	seedTx(t, repo, 5, "bob", "income", "other")
	if max, _ := repo.FindMaxID(context.Background()); max != 7 {
		t.Fatalf("max = %d, want 7", max)
	}
}

// Reading back the same query twice must return identical results: reads have
// no side effects on the stored ledger.
func TestTransactionRepository_FindAll_IdempotentRead(t *testing.T) {
	repo := NewTransactionRepository()
	seedTx(t, repo, 1, "alice", "income", "salary")
	seedTx(t, repo, 2, "alice", "expense", "rent")

	filter := ports.TransactionFilter{CreatedBy: "alice"}
	first, _ := repo.FindAll(context.Background(), filter)
	second, _ := repo.FindAll(context.Background(), filter)

	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("read sizes differ: %d then %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("read order changed between calls: %d vs %d", first[i].ID, second[i].ID)
		}
	}

	// Mutating a returned record must not touch the stored copy.
	first[0].Description = "tampered"
	fresh, _ := repo.FindAll(context.Background(), filter)
	if fresh[0].Description == "tampered" {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestTransactionRepository_FindAll_Filters(t *testing.T) {
	repo := NewTransactionRepository()
	seedTx(t, repo, 1, "alice", "income", "salary")
	seedTx(t, repo, 2, "alice", "expense", "rent")
	seedTx(t, repo, 3, "bob", "expense", "rent")

	byUser, _ := repo.FindAll(context.Background(), ports.TransactionFilter{CreatedBy: "bob"})
	if len(byUser) != 1 || byUser[0].ID != 3 {
		t.Fatalf("created_by filter returned %+v", byUser)
	}

	byDirection, _ := repo.FindAll(context.Background(), ports.TransactionFilter{CreatedBy: "alice", Direction: "expense"})
	if len(byDirection) != 1 || byDirection[0].ID != 2 {
		t.Fatalf("direction filter returned %+v", byDirection)
	}

	byCategory, _ := repo.FindAll(context.Background(), ports.TransactionFilter{Category: "rent"})
	if len(byCategory) != 2 {
		t.Fatalf("category filter returned %d records, want 2", len(byCategory))
	}
}

func TestTransactionRepository_FindAll_Pagination(t *testing.T) {
	repo := NewTransactionRepository()
	for id := int64(1); id <= 5; id++ {
		seedTx(t, repo, id, "alice", "income", "salary")
	}

	page, _ := repo.FindAll(context.Background(), ports.TransactionFilter{Page: 2, Limit: 2})
	if len(page) != 2 || page[0].ID != 3 || page[1].ID != 2 {
		t.Fatalf("page 2 = %+v, want ids 3 and 2", page)
	}

	beyond, _ := repo.FindAll(context.Background(), ports.TransactionFilter{Page: 9, Limit: 2})
	if len(beyond) != 0 {
		t.Fatalf("page past the end returned %d records", len(beyond))
	}
}

func TestTransactionRepository_FindByIdempotencyKey(t *testing.T) {
	repo := NewTransactionRepository()
	err := repo.Insert(context.Background(), &domain.Transaction{
		ID: 1, CreatedBy: "alice", IdempotencyKey: "key-1", Amount: decimal.NewFromInt(1),
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}

	found, err := repo.FindByIdempotencyKey(context.Background(), "key-1")
	if err != nil || found.ID != 1 {
		t.Fatalf("lookup = %+v, %v", found, err)
	}
	if _, err := repo.FindByIdempotencyKey(context.Background(), "missing"); !errors.Is(err, domain.ErrTransactionNotFound) {
		t.Fatalf("expected ErrTransactionNotFound, got %v", err)
	}
}

func TestTransactionRepository_Tier(t *testing.T) {
	if tier := NewTransactionRepository().Tier(); tier != ports.TierFallback {
		t.Fatalf("tier = %q, want %q", tier, ports.TierFallback)
	}
}
