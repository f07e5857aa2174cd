package repository

import (
	"context"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// AuthEventRepository is the append-only audit trail of auth events.
type AuthEventRepository interface {
	// Append stores the event once. Redelivered events with an id that is
	// already stored are ignored and reported with inserted=false.
	Append(ctx context.Context, event *entity.AuthEvent) (inserted bool, err error)

	// ListByUser returns up to limit events for the user, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AuthEvent, error)
}
