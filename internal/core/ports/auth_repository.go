package ports

import (
	"context"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// AuthRepository defines the interface for principal persistence.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// AssignedWallets returns every wallet address currently held by a
	// persisted principal. Used to seed the wallet pool at startup.
	AssignedWallets(ctx context.Context) ([]string, error)
}
