package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/fintrack-api/internal/core/domain"
	"github.com/fintrack/fintrack-api/internal/core/ports"
)

// WalletAssigner abstracts the wallet pool for the auth service.
type WalletAssigner interface {
	Assign() (string, error)
	Release(addr string)
}

// AuthService implements registration (with wallet assignment) and login.
type AuthService struct {
	repo      ports.AuthRepository
	pool      WalletAssigner
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.AuthRepository, pool WalletAssigner, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, pool: pool, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (string, *domain.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if username == "" || email == "" || input.Password == "" {
		return "", nil, fmt.Errorf("%w: username, email and password are required", domain.ErrValidation)
	}
	if !domain.ValidRole(role) {
		return "", nil, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	wallet, err := s.pool.Assign()
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Wallet:       wallet,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		// The principal was never persisted, so the draw is undone to keep
		// a duplicate registration from shrinking the pool.
		s.pool.Release(wallet)
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		// An unknown username reads the same as a wrong password.
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"role":     user.Role,
		"wallet":   user.Wallet,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
