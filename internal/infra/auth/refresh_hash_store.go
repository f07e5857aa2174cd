package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"github.com/google/uuid"

	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
)

// refreshHashStore keeps the SHA-256 digest of the newest refresh token on the
// user record. bcrypt cannot be used here because it only reads the first 72
// bytes of its input and every JWT is longer than that.
type refreshHashStore struct {
	users repository.UserRepository
}

// NewRefreshHashStore creates a RefreshHashStore backed by the user store.
func NewRefreshHashStore(users repository.UserRepository) service.RefreshHashStore {
	return &refreshHashStore{users: users}
}

func (s *refreshHashStore) Update(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	hash := hashRefreshToken(refreshToken)
	if err := s.users.UpdateRefreshHash(ctx, userID, &hash); err != nil {
		return errors.Wrap(domainerrors.ErrUpdateHashFailed.WithDetails(err.Error()), "users.UpdateRefreshHash")
	}

	return nil
}

func (s *refreshHashStore) Matches(ctx context.Context, userID uuid.UUID, refreshToken string) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, nil
		}

		return false, errors.Wrap(err, "users.FindByID")
	}

	if !user.HasRefreshSession() {
		return false, nil
	}

	presented := hashRefreshToken(refreshToken)

	return subtle.ConstantTimeCompare([]byte(presented), []byte(*user.RefreshTokenHash)) == 1, nil
}

func (s *refreshHashStore) Rotate(ctx context.Context, userID uuid.UUID, presented, next string) (bool, error) {
	nextHash := hashRefreshToken(next)

	swapped, err := s.users.SwapRefreshHash(ctx, userID, hashRefreshToken(presented), &nextHash)
	if err != nil {
		return false, errors.Wrap(domainerrors.ErrUpdateHashFailed.WithDetails(err.Error()), "users.SwapRefreshHash")
	}

	return swapped, nil
}

func (s *refreshHashStore) Clear(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.UpdateRefreshHash(ctx, userID, nil); err != nil {
		return errors.Wrap(err, "users.UpdateRefreshHash")
	}

	return nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))

	return hex.EncodeToString(sum[:])
}
