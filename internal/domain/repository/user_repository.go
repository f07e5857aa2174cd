// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the user store the auth core depends on.
//
// The store is the source of truth for email uniqueness: Create must fail with
// an error of kind Conflict when the email is already taken, even if a
// concurrent caller checked FindByEmail a moment earlier.
type UserRepository interface {
	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Create persists a new user and fills in its ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// UpdateRefreshHash overwrites the stored refresh token hash. A nil hash
	// clears the refresh session.
	UpdateRefreshHash(ctx context.Context, id uuid.UUID, hash *string) error

	// SwapRefreshHash stores next only while the stored hash still equals
	// current, and reports whether it did. Of two callers presenting the same
	// current hash, at most one succeeds.
	SwapRefreshHash(ctx context.Context, id uuid.UUID, current string, next *string) (bool, error)
}
