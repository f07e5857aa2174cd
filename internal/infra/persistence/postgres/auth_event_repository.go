package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/infra/persistence/model"
)

type authEventRepository struct {
	db *gorm.DB
}

// NewAuthEventRepository is the constructor for authEventRepository.
func NewAuthEventRepository(db *gorm.DB) repository.AuthEventRepository {
	return &authEventRepository{db: db}
}

// Append inserts the event, doing nothing when its id already exists.
func (repo *authEventRepository) Append(ctx context.Context, event *entity.AuthEvent) (bool, error) {
	eventM := fromAuthEventDomain(event)

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(eventM)
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to append auth event")
	}

	return result.RowsAffected > 0, nil
}

// ListByUser returns the newest events of one user.
func (repo *authEventRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*entity.AuthEvent, error) {
	var rows []model.AuthEventModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list auth events")
	}

	events := make([]*entity.AuthEvent, 0, len(rows))
	for i := range rows {
		events = append(events, toAuthEventDomain(&rows[i]))
	}

	return events, nil
}

func toAuthEventDomain(data *model.AuthEventModel) *entity.AuthEvent {
	if data == nil {
		return nil
	}

	return &entity.AuthEvent{
		ID:         data.ID,
		Type:       entity.AuthEventType(data.Type),
		UserID:     data.UserID,
		Email:      data.Email,
		RequestID:  data.RequestID,
		OccurredAt: data.OccurredAt,
	}
}

func fromAuthEventDomain(data *entity.AuthEvent) *model.AuthEventModel {
	if data == nil {
		return nil
	}

	return &model.AuthEventModel{
		ID:         data.ID,
		Type:       string(data.Type),
		UserID:     data.UserID,
		Email:      data.Email,
		RequestID:  data.RequestID,
		OccurredAt: data.OccurredAt,
	}
}
