package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// TransactionHandler handles HTTP requests for the transaction ledger.
type TransactionHandler struct {
	service ports.TransactionService
}

func NewTransactionHandler(service ports.TransactionService) *TransactionHandler {
	return &TransactionHandler{service: service}
}

// Submit handles POST /v1/transactions.
//
// @Summary      Submit a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string                    false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      submitTransactionRequest  true   "Transaction details"
// @Success      201              {object}  submitTransactionResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      503              {object}  map[string]string
// @Router       /v1/transactions [post]
func (h *TransactionHandler) Submit(c echo.Context) error {
	var req submitTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	username, _, wallet, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	result, err := h.service.Submit(c.Request().Context(), ports.SubmitTransactionInput{
		Description:    req.Description,
		Amount:         req.Amount,
		Direction:      req.Direction,
		Category:       req.Category,
		Counterparty:   req.Counterparty,
		Username:       username,
		Wallet:         wallet,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, submitTransactionResponse{
		Transaction: toTransactionResponse(result.Transaction),
		Storage:     result.Storage,
		Replayed:    result.Replayed,
	})
}

// List handles GET /v1/transactions.
//
// @Summary      List the principal's transactions
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        direction  query     string  false  "Filter by direction (income|expense)"
// @Param        category   query     string  false  "Filter by category"
// @Param        page       query     int     false  "Page number (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200        {object}  listTransactionsResponse
// @Failure      401        {object}  map[string]string
// @Router       /v1/transactions [get]
func (h *TransactionHandler) List(c echo.Context) error {
	username, role, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	result, err := h.service.List(c.Request().Context(), ports.ListTransactionsInput{
		Username:  username,
		Role:      role,
		Direction: c.QueryParam("direction"),
		Category:  c.QueryParam("category"),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return err
	}

	data := make([]transactionResponse, 0, len(result.Items))
	for _, tx := range result.Items {
		data = append(data, toTransactionResponse(tx))
	}

	return c.JSON(http.StatusOK, listTransactionsResponse{
		Data: data,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
		Storage: result.Storage,
	})
}

func toTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		Amount:      tx.Amount.String(),
		Direction:   string(tx.Direction),
		Category:    string(tx.Category),
		Sender:      tx.Sender,
		Receiver:    tx.Receiver,
		LedgerRef:   tx.LedgerRef,
		Status:      tx.Status,
		CreatedAt:   tx.CreatedAt,
	}
}
