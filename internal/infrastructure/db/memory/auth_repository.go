package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/fintrack/fintrack-api/internal/core/domain"
)

// AuthRepository keeps principals in process memory. It enforces the same
// uniqueness rules as the Mongo tier's indexes: username, email, and wallet
// are each held by at most one principal.
type AuthRepository struct {
	mu      sync.RWMutex
	byName  map[string]*domain.User
	byEmail map[string]string // email -> username
	nextID  int
}

func NewAuthRepository() *AuthRepository {
	return &AuthRepository{
		byName:  make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *AuthRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	r.nextID++
	created := *user
	created.ID = strconv.Itoa(r.nextID)
	r.byName[created.Username] = &created
	r.byEmail[created.Email] = created.Username

	clone := created
	return &clone, nil
}

func (r *AuthRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *AuthRepository) AssignedWallets(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wallets := make([]string, 0, len(r.byName))
	for _, u := range r.byName {
		if u.Wallet != "" {
			wallets = append(wallets, u.Wallet)
		}
	}
	return wallets, nil
}
