package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// LedgerHandler exposes the raw append-only ledger mirror. Admin only.
type LedgerHandler struct {
	backend ports.LedgerBackend
}

func NewLedgerHandler(backend ports.LedgerBackend) *LedgerHandler {
	return &LedgerHandler{backend: backend}
}

// Get handles GET /v1/ledger.
//
// @Summary      Read all ledger entries and the record count
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ledgerResponse
// @Failure      403  {object}  map[string]string
// @Router       /v1/ledger [get]
func (h *LedgerHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()

	entries, err := h.backend.Entries(ctx)
	if err != nil {
		return err
	}
	count, err := h.backend.Count(ctx)
	if err != nil {
		return err
	}

	resp := ledgerResponse{
		Entries: make([]ledgerEntryResponse, 0, len(entries)),
		Count:   count,
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, ledgerEntryResponse{
			TxID:       e.TxID,
			Ref:        e.Ref,
			Sender:     e.Sender,
			Receiver:   e.Receiver,
			Amount:     e.Amount.String(),
			RecordedAt: e.RecordedAt,
		})
	}

	return c.JSON(http.StatusOK, resp)
}
