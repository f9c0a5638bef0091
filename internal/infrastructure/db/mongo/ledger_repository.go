package mongo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

const ledgerCollection = "ledger_entries"

// LedgerRepository is the persistent ledger backend: an append-only mirror of
// committed transactions. Entries are inserted once and never updated or
// deleted.
type LedgerRepository struct {
	coll *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) ports.LedgerBackend {
	return &LedgerRepository{coll: db.Collection(ledgerCollection)}
}

type mongoLedgerEntry struct {
	TxID       int64  `bson:"tx_id"`
	Ref        string `bson:"ref"`
	Sender     string `bson:"sender"`
	Receiver   string `bson:"receiver"`
	Amount     string `bson:"amount"`
	RecordedAt int64  `bson:"recorded_at"`
}

func (r *LedgerRepository) Append(ctx context.Context, entry *domain.LedgerEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoLedgerEntry{
		TxID:       entry.TxID,
		Ref:        entry.Ref,
		Sender:     entry.Sender,
		Receiver:   entry.Receiver,
		Amount:     entry.Amount.String(),
		RecordedAt: entry.RecordedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("append ledger entry: %w", classify(err))
	}
	return nil
}

func (r *LedgerRepository) Entries(ctx context.Context) ([]domain.LedgerEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "tx_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", classify(err))
	}
	defer cur.Close(ctx)

	var out []domain.LedgerEntry
	for cur.Next(ctx) {
		var doc mongoLedgerEntry
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode ledger entry: %w", err)
		}
		amount, err := decimal.NewFromString(doc.Amount)
		if err != nil {
			return nil, fmt.Errorf("decode ledger amount %q: %w", doc.Amount, err)
		}
		out = append(out, domain.LedgerEntry{
			TxID:       doc.TxID,
			Ref:        doc.Ref,
			Sender:     doc.Sender,
			Receiver:   doc.Receiver,
			Amount:     amount,
			RecordedAt: unixToTime(doc.RecordedAt),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", classify(err))
	}
	return out, nil
}

func (r *LedgerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count ledger: %w", classify(err))
	}
	return n, nil
}
