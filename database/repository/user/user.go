package userRepo

import (
	"context"
	"errors"

	"counselbook/models"
)

var (
	// ErrDuplicateUsername is returned when the case-insensitive unique
	// constraint on usernames rejects an insert.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record and fills in its ID.
	Create(ctx context.Context, user *models.User) error
	// GetByUsername retrieves a user by username, case-insensitively.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// CountBySignupIP reports how many accounts were registered from ip.
	CountBySignupIP(ctx context.Context, ip string) (int, error)
}
