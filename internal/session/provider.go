package session

import (
	"context"
	"errors"
	"time"
)

// User is an account held by the identity provider.
// PasswordHash never leaves this package.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Provider failure kinds, translated by the Service into the public
// session error taxonomy.
var (
	ErrEmailTaken   = errors.New("session: email already registered")
	ErrUserNotFound = errors.New("session: user not found")
)

// Provider stores and looks up account credentials. Token minting stays in
// auth.Manager; a Provider only answers "who is this" questions.
//
// Implementations must honor ctx cancellation and deadlines: the Service
// bounds every call with the configured upstream timeout.
type Provider interface {
	CreateUser(ctx context.Context, email, passwordHash, role string) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByID(ctx context.Context, id string) (User, error)
}
