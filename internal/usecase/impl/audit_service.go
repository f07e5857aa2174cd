package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/usecase"
)

type auditService struct {
	events repository.AuthEventRepository
	logger *slog.Logger
}

// AuditServiceParams holds dependencies for AuditService, injected by Fx.
type AuditServiceParams struct {
	fx.In

	Events repository.AuthEventRepository
	Logger *slog.Logger
}

// NewAuditService is the constructor for auditService.
func NewAuditService(params AuditServiceParams) usecase.AuditUsecase {
	return &auditService{
		events: params.Events,
		logger: params.Logger,
	}
}

func (s *auditService) Record(ctx context.Context, event *entity.AuthEvent) error {
	if err := validateAuthEvent(event); err != nil {
		return errors.WithStack(err)
	}

	inserted, err := s.events.Append(ctx, event)
	if err != nil {
		return errors.Wrap(err, "append auth event")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)
	if !inserted {
		logger.Info("Duplicate auth event ignored", slog.String("event_id", event.ID.String()))

		return nil
	}

	logger.Info("Auth event recorded",
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)),
		slog.String("user_id", event.UserID.String()),
	)

	return nil
}

func (s *auditService) RecentActivity(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AuthEvent, error) {
	if userID == uuid.Nil {
		return nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	switch {
	case limit == 0:
		limit = usecase.DefaultActivityLimit
	case limit < 1:
		limit = 1
	case limit > usecase.MaxActivityLimit:
		limit = usecase.MaxActivityLimit
	}

	events, err := s.events.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list auth events")
	}

	return events, nil
}

func validateAuthEvent(event *entity.AuthEvent) error {
	switch {
	case event == nil:
		return domainerrors.ErrValidationFailed.WithDetails("event is empty")
	case event.ID == uuid.Nil:
		return domainerrors.ErrValidationFailed.WithDetails("event id is missing")
	case !event.Type.Valid():
		return domainerrors.ErrValidationFailed.WithDetails("unknown event type " + string(event.Type))
	case event.UserID == uuid.Nil:
		return domainerrors.ErrValidationFailed.WithDetails("user id is missing")
	case event.OccurredAt.IsZero():
		return domainerrors.ErrValidationFailed.WithDetails("occurred_at is missing")
	default:
		return nil
	}
}
