package service

import (
	"context"

	"github.com/google/uuid"
)

// RefreshHashStore keeps one hash of the newest refresh token per user.
// Writing a new hash invalidates every previously issued refresh token.
type RefreshHashStore interface {
	// Update hashes refreshToken and stores it on the user.
	Update(ctx context.Context, userID uuid.UUID, refreshToken string) error

	// Matches reports whether refreshToken is the one currently stored.
	Matches(ctx context.Context, userID uuid.UUID, refreshToken string) (bool, error)

	// Rotate replaces the stored hash of presented with the hash of next. It
	// reports false when presented is no longer the stored token, which makes
	// each refresh token usable for exactly one rotation.
	Rotate(ctx context.Context, userID uuid.UUID, presented, next string) (bool, error)

	// Clear removes the stored hash so no refresh token is valid.
	Clear(ctx context.Context, userID uuid.UUID) error
}
