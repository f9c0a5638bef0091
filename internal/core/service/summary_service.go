package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// SummaryService feeds the principal's full transaction set through the
// aggregation fold on demand. Reads run concurrently with writers; a summary
// only needs eventual visibility of new commits, not a consistent snapshot.
type summaryService struct {
	repo ports.TransactionRepository
	log  zerolog.Logger
}

func NewSummaryService(repo ports.TransactionRepository, log zerolog.Logger) ports.SummaryService {
	return &summaryService{repo: repo, log: log}
}

func (s *summaryService) Dashboard(ctx context.Context, in ports.DashboardInput) (*domain.Summary, error) {
	filter := ports.TransactionFilter{CreatedBy: in.Username}
	if in.Role == domain.RoleAdmin {
		filter.CreatedBy = ""
	}

	txs, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := domain.Summarize(txs)
	s.log.Debug().Str("username", in.Username).Int("transactions", len(txs)).Msg("dashboard summarized")
	return &summary, nil
}
