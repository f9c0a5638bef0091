package ports

import (
	"context"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	// Role defaults to "user" when empty.
	Role string
}

type AuthService interface {
	// Register creates a principal, drawing a wallet address from the pool,
	// and returns the created user plus a signed token.
	Register(ctx context.Context, input RegisterInput) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
