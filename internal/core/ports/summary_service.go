package ports

import (
	"context"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// DashboardInput identifies whose transactions to summarize. Admins see the
// whole ledger; everyone else sees their own records only.
type DashboardInput struct {
	Username string
	Role     string
}

// SummaryService computes dashboard aggregates on demand.
type SummaryService interface {
	Dashboard(ctx context.Context, input DashboardInput) (*domain.Summary, error)
}
