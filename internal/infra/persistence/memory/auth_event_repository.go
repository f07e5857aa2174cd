package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"gatekeeper/internal/domain/entity"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/errors"
)

type authEventRepository struct {
	mu     sync.RWMutex
	seen   map[uuid.UUID]struct{}
	byUser map[uuid.UUID][]*entity.AuthEvent
}

// NewAuthEventRepository creates an empty in-memory audit trail.
func NewAuthEventRepository() repository.AuthEventRepository {
	return &authEventRepository{
		seen:   make(map[uuid.UUID]struct{}),
		byUser: make(map[uuid.UUID][]*entity.AuthEvent),
	}
}

func (r *authEventRepository) Append(ctx context.Context, event *entity.AuthEvent) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.WithStack(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[event.ID]; ok {
		return false, nil
	}

	stored := *event
	r.seen[event.ID] = struct{}{}
	r.byUser[event.UserID] = append(r.byUser[event.UserID], &stored)

	return true, nil
}

func (r *authEventRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AuthEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.mu.RLock()
	events := r.byUser[userID]
	out := make([]*entity.AuthEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		clone := *events[i]
		out = append(out, &clone)
	}
	r.mu.RUnlock()

	// Equal timestamps keep the later append first.
	slices.SortStableFunc(out, func(a, b *entity.AuthEvent) int {
		return b.OccurredAt.Compare(a.OccurredAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
