package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Emails are stored normalised and the
// unique index on email is what rejects a concurrent duplicate signup.
type UserModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            string    `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Name             string    `gorm:"type:varchar(100);not null"`
	PasswordHash     string    `gorm:"type:varchar(255);not null"`
	RoleID           int       `gorm:"not null;default:2"`
	RefreshTokenHash *string   `gorm:"type:varchar(64)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
