package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User is a registered account.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository defines storage operations for accounts.
type UserRepository interface {
	// Create inserts a new user. Returns ErrEmailTaken on duplicate email.
	Create(ctx context.Context, email, passwordHash string) (*User, error)

	// FindByEmail returns the user for an email, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// MetadataKey marks Huma operations that require an authenticated caller.
const MetadataKey = "authRequired"
