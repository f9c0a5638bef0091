package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleUser   = "user"
	RoleViewer = "viewer"
)

// ValidRole reports whether r is a recognised role.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser || r == RoleViewer
}

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")

// User models an authenticated principal. Wallet is assigned exactly once at
// registration and never changes or moves to another user afterwards.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Wallet       string    `json:"wallet"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
