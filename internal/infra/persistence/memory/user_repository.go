// Package memory is a thread-safe in-process user store for tests and local runs.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/errors"
)

// userRepository keeps users in two maps guarded by one mutex. The email
// check and the insert happen under the same lock, so duplicates are rejected
// even when signups race.
type userRepository struct {
	mu sync.RWMutex

	byID    map[uuid.UUID]*entity.User
	byEmail map[string]uuid.UUID

	now func() time.Time
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		byID:    make(map[uuid.UUID]*entity.User),
		byEmail: make(map[string]uuid.UUID),
		now:     time.Now,
	}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(r.byID[id]), nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return cloneUser(user), nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")
	}

	if user.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "uuid.NewV7")
		}
		user.ID = id
	}

	now := r.now()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.byID[user.ID] = cloneUser(user)
	r.byEmail[user.Email] = user.ID

	return nil
}

func (r *userRepository) UpdateRefreshHash(ctx context.Context, id uuid.UUID, hash *string) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return repository.ErrUserNotFound
	}

	user.RefreshTokenHash = cloneString(hash)
	user.UpdatedAt = r.now()

	return nil
}

func (r *userRepository) SwapRefreshHash(ctx context.Context, id uuid.UUID, current string, next *string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.WithStack(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok || user.RefreshTokenHash == nil || *user.RefreshTokenHash != current {
		return false, nil
	}

	user.RefreshTokenHash = cloneString(next)
	user.UpdatedAt = r.now()

	return true, nil
}

// cloneUser returns a copy so callers cannot mutate stored state.
func cloneUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}

	cp := *u
	cp.RefreshTokenHash = cloneString(u.RefreshTokenHash)

	return &cp
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}

	v := *s

	return &v
}
