package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// DashboardHandler serves the aggregation summary.
type DashboardHandler struct {
	service ports.SummaryService
}

func NewDashboardHandler(service ports.SummaryService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Summary handles GET /v1/dashboard/summary.
//
// @Summary      Income/expense/balance summary with category and month buckets
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  summaryResponse
// @Failure      401  {object}  map[string]string
// @Router       /v1/dashboard/summary [get]
func (h *DashboardHandler) Summary(c echo.Context) error {
	username, role, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	summary, err := h.service.Dashboard(c.Request().Context(), ports.DashboardInput{
		Username: username,
		Role:     role,
	})
	if err != nil {
		return err
	}

	resp := summaryResponse{
		TotalIncome:   summary.TotalIncome.String(),
		TotalExpenses: summary.TotalExpenses.String(),
		Balance:       summary.Balance.String(),
		ByCategory:    make(map[string]totalsResponse, len(summary.ByCategory)),
		ByMonth:       make(map[string]totalsResponse, len(summary.ByMonth)),
	}
	for cat, t := range summary.ByCategory {
		resp.ByCategory[string(cat)] = toTotalsResponse(t)
	}
	for month, t := range summary.ByMonth {
		resp.ByMonth[month] = toTotalsResponse(t)
	}

	return c.JSON(http.StatusOK, resp)
}

func toTotalsResponse(t domain.Totals) totalsResponse {
	return totalsResponse{
		Income:  t.Income.String(),
		Expense: t.Expense.String(),
		Total:   t.Total.String(),
	}
}
