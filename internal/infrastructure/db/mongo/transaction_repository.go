package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

const transactionsCollection = "transactions"

// TransactionRepository implements the ledger store facade on MongoDB. The
// unique index on tx_id is what makes the sequencer safe: the loser of a
// concurrent id race gets domain.ErrDuplicateID back from Insert.
type TransactionRepository struct {
	coll *mongo.Collection
}

func NewTransactionRepository(db *mongo.Database) *TransactionRepository {
	return &TransactionRepository{coll: db.Collection(transactionsCollection)}
}

// mongoTransaction stores amounts as decimal strings so no precision is lost
// in the round trip.
type mongoTransaction struct {
	TxID           int64     `bson:"tx_id"`
	Description    string    `bson:"description"`
	Amount         string    `bson:"amount"`
	Direction      string    `bson:"direction"`
	Category       string    `bson:"category"`
	Sender         string    `bson:"sender"`
	Receiver       string    `bson:"receiver"`
	LedgerRef      string    `bson:"ledger_ref"`
	Status         string    `bson:"status"`
	CreatedBy      string    `bson:"created_by"`
	IdempotencyKey string    `bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time `bson:"created_at"`
}

func toDoc(tx *domain.Transaction) mongoTransaction {
	return mongoTransaction{
		TxID:           tx.ID,
		Description:    tx.Description,
		Amount:         tx.Amount.String(),
		Direction:      string(tx.Direction),
		Category:       string(tx.Category),
		Sender:         tx.Sender,
		Receiver:       tx.Receiver,
		LedgerRef:      tx.LedgerRef,
		Status:         tx.Status,
		CreatedBy:      tx.CreatedBy,
		IdempotencyKey: tx.IdempotencyKey,
		CreatedAt:      tx.CreatedAt.UTC(),
	}
}

func fromDoc(doc mongoTransaction) (domain.Transaction, error) {
	amount, err := decimal.NewFromString(doc.Amount)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("decode amount %q: %w", doc.Amount, err)
	}
	return domain.Transaction{
		ID:             doc.TxID,
		Description:    doc.Description,
		Amount:         amount,
		Direction:      domain.Direction(doc.Direction),
		Category:       domain.Category(doc.Category),
		Sender:         doc.Sender,
		Receiver:       doc.Receiver,
		LedgerRef:      doc.LedgerRef,
		Status:         doc.Status,
		CreatedBy:      doc.CreatedBy,
		IdempotencyKey: doc.IdempotencyKey,
		CreatedAt:      doc.CreatedAt.UTC(),
	}, nil
}

func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, toDoc(tx))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateID
		}
		return fmt.Errorf("insert transaction: %w", classify(err))
	}
	return nil
}

func (r *TransactionRepository) FindAll(ctx context.Context, filter ports.TransactionFilter) ([]domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "tx_id", Value: -1}})
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		opts.SetSkip(int64((page - 1) * filter.Limit)).SetLimit(int64(filter.Limit))
	}

	cur, err := r.coll.Find(ctx, buildFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", classify(err))
	}
	defer cur.Close(ctx)

	var out []domain.Transaction
	for cur.Next(ctx) {
		var doc mongoTransaction
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode transaction: %w", err)
		}
		tx, err := fromDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("cursor: %w", classify(err))
	}
	return out, nil
}

func (r *TransactionRepository) Count(ctx context.Context, filter ports.TransactionFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, buildFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", classify(err))
	}
	return n, nil
}

// FindMaxID reads the highest committed tx_id, or 0 on an empty collection.
func (r *TransactionRepository) FindMaxID(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "tx_id", Value: -1}}).
		SetProjection(bson.M{"tx_id": 1})

	var doc struct {
		TxID int64 `bson:"tx_id"`
	}
	err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("find max id: %w", classify(err))
	}
	return doc.TxID, nil
}

func (r *TransactionRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mongoTransaction
	err := r.coll.FindOne(ctx, bson.M{"idempotency_key": key}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find by idempotency key: %w", classify(err))
	}
	tx, err := fromDoc(doc)
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

func (r *TransactionRepository) Tier() string { return ports.TierPrimary }

// EnsureIndexes creates the indexes on the transactions collection. The
// unique tx_id index is load-bearing for sequencer correctness.
func (r *TransactionRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tx_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "created_by", Value: 1}}},
		{Keys: bson.D{{Key: "idempotency_key", Value: 1}}, Options: options.Index().SetSparse(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func buildFilter(filter ports.TransactionFilter) bson.M {
	q := bson.M{}
	if filter.CreatedBy != "" {
		q["created_by"] = filter.CreatedBy
	}
	if filter.Direction != "" {
		q["direction"] = filter.Direction
	}
	if filter.Category != "" {
		q["category"] = filter.Category
	}
	return q
}
