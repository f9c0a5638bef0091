package handler

import "time"

// --- Request / Response types ---

type submitTransactionRequest struct {
	Description  string `json:"description"  validate:"required"`
	Amount       string `json:"amount"       validate:"required"`
	Direction    string `json:"direction"    validate:"required,oneof=income expense"`
	Category     string `json:"category"`
	Counterparty string `json:"counterparty"`
}

// Response-only types owned by the transport layer. These are intentionally
// separate from domain types so the JSON contract is not coupled to internal
// changes.

type transactionResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Amount      string    `json:"amount"`
	Direction   string    `json:"direction"`
	Category    string    `json:"category"`
	Sender      string    `json:"sender"`
	Receiver    string    `json:"receiver"`
	LedgerRef   string    `json:"ledger_ref"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type submitTransactionResponse struct {
	Transaction transactionResponse `json:"transaction"`
	// Storage flags the tier the record landed on: "primary" means durably
	// persisted, "fallback" means the in-memory degraded tier.
	Storage  string `json:"storage"`
	Replayed bool   `json:"replayed,omitempty"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listTransactionsResponse struct {
	Data       []transactionResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
	Storage    string                `json:"storage"`
}

type totalsResponse struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Total   string `json:"total"`
}

type summaryResponse struct {
	TotalIncome   string                    `json:"total_income"`
	TotalExpenses string                    `json:"total_expenses"`
	Balance       string                    `json:"balance"`
	ByCategory    map[string]totalsResponse `json:"by_category"`
	ByMonth       map[string]totalsResponse `json:"by_month"`
}

type ledgerEntryResponse struct {
	TxID       int64     `json:"tx_id"`
	Ref        string    `json:"ref"`
	Sender     string    `json:"sender"`
	Receiver   string    `json:"receiver"`
	Amount     string    `json:"amount"`
	RecordedAt time.Time `json:"recorded_at"`
}

type ledgerResponse struct {
	Entries []ledgerEntryResponse `json:"entries"`
	Count   int64                 `json:"count"`
}
