package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies a transaction as money coming in or going out.
type Direction string

const (
	DirectionIncome  Direction = "income"
	DirectionExpense Direction = "expense"
)

// Valid reports whether d is one of the two recognised directions.
func (d Direction) Valid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// Category buckets transactions for aggregation.
type Category string

const (
	CategorySalary        Category = "salary"
	CategoryRent          Category = "rent"
	CategoryGroceries     Category = "groceries"
	CategoryTransport     Category = "transport"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryInvestment    Category = "investment"
	CategoryOther         Category = "other"
)

var knownCategories = map[Category]struct{}{
	CategorySalary:        {},
	CategoryRent:          {},
	CategoryGroceries:     {},
	CategoryTransport:     {},
	CategoryUtilities:     {},
	CategoryEntertainment: {},
	CategoryInvestment:    {},
	CategoryOther:         {},
}

// NormalizeCategory maps an arbitrary category string to a known Category,
// falling back to CategoryOther for empty or unrecognised values.
func NormalizeCategory(s string) Category {
	c := Category(s)
	if _, ok := knownCategories[c]; ok {
		return c
	}
	return CategoryOther
}

// Sentinel counterparties used when a transaction has no known wallet on the
// other side: incoming money from outside the system, or outgoing money to it.
const (
	ExternalSender   = "external_sender"
	ExternalReceiver = "external_receiver"
)

// StatusCompleted is the terminal (and only) status of a committed transaction.
// Records are append-only; there is no pending or reversed state.
const StatusCompleted = "completed"

var ErrInvalidDirection = errors.New("invalid transaction direction")
var ErrDuplicateID = errors.New("duplicate transaction id")
var ErrTransactionNotFound = errors.New("transaction not found")
var ErrStoreUnavailable = errors.New("store unavailable")
var ErrValidation = errors.New("validation failed")

// Transaction is a single immutable ledger record owned by a principal.
type Transaction struct {
	ID             int64           `json:"id" bson:"tx_id"`
	Description    string          `json:"description" bson:"description"`
	Amount         decimal.Decimal `json:"amount" bson:"-"`
	Direction      Direction       `json:"direction" bson:"direction"`
	Category       Category        `json:"category" bson:"category"`
	Sender         string          `json:"sender" bson:"sender"`
	Receiver       string          `json:"receiver" bson:"receiver"`
	LedgerRef      string          `json:"ledger_ref" bson:"ledger_ref"`
	Status         string          `json:"status" bson:"status"`
	CreatedBy      string          `json:"created_by" bson:"created_by"`
	IdempotencyKey string          `json:"-" bson:"idempotency_key,omitempty"`
	CreatedAt      time.Time       `json:"created_at" bson:"created_at"`
}

// Attribute derives the sender and receiver of a transaction from its
// direction. Exactly one side is always the principal's wallet: income is
// received by it, expense is sent from it. The other side is the counterparty
// address when given, or a sentinel external address otherwise.
func Attribute(d Direction, wallet, counterparty string) (sender, receiver string, err error) {
	switch d {
	case DirectionIncome:
		if counterparty == "" {
			counterparty = ExternalSender
		}
		return counterparty, wallet, nil
	case DirectionExpense:
		if counterparty == "" {
			counterparty = ExternalReceiver
		}
		return wallet, counterparty, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrInvalidDirection, d)
	}
}

// LedgerRef computes the opaque ledger reference for a committed transaction.
// The hash binds the identifier, both wallets, the exact amount, and the
// commit time, so a mirrored ledger entry can be matched back to its record.
func LedgerRef(id int64, sender, receiver string, amount decimal.Decimal, ts time.Time) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%d|%s|%s|%s|%d", id, sender, receiver, amount.String(), ts.UnixNano()))
	return hex.EncodeToString(sum[:])
}

// LedgerEntry is the append-only mirror of a committed transaction as written
// to the ledger backend. Entries are never updated or deleted.
type LedgerEntry struct {
	TxID       int64           `json:"tx_id" bson:"tx_id"`
	Ref        string          `json:"ref" bson:"ref"`
	Sender     string          `json:"sender" bson:"sender"`
	Receiver   string          `json:"receiver" bson:"receiver"`
	Amount     decimal.Decimal `json:"amount" bson:"-"`
	RecordedAt time.Time       `json:"recorded_at" bson:"recorded_at"`
}
