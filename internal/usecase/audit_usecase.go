package usecase

import (
	"context"

	"github.com/google/uuid"

	"gatekeeper/internal/domain/entity"
)

// Page size bounds for RecentActivity.
const (
	DefaultActivityLimit = 20
	MaxActivityLimit     = 100
)

// AuditUsecase records auth events delivered by the event bus.
type AuditUsecase interface {
	// Record stores one event. Redeliveries are accepted and ignored.
	// Malformed events fail with a Validation kind error and are not worth
	// retrying; any other error is transient.
	Record(ctx context.Context, event *entity.AuthEvent) error

	// RecentActivity returns the user's newest recorded events. A limit
	// outside 1..MaxActivityLimit falls back to the nearest bound, and zero
	// means DefaultActivityLimit.
	RecentActivity(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AuthEvent, error)
}
