package model

import (
	"time"

	"github.com/google/uuid"
)

// AuthEventModel mirrors the 'auth_events' audit table. The event id is the
// primary key so Pub/Sub redeliveries collapse into one row.
type AuthEventModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Type       string    `gorm:"type:varchar(64);not null"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_auth_events_user_occurred,priority:1"`
	Email      string    `gorm:"type:varchar(255)"`
	RequestID  string    `gorm:"type:varchar(128)"`
	OccurredAt time.Time `gorm:"not null;index:idx_auth_events_user_occurred,priority:2,sort:desc"`
	CreatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (AuthEventModel) TableName() string {
	return "auth_events"
}
