// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can sign in with email and password.
type User struct {
	ID               uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email            string    // Normalised login email, unique across users.
	Name             string    // The user's display name.
	PasswordHash     string    // bcrypt hash of the password, never the plaintext.
	RoleID           RoleID    // Authorization tier carried in token claims.
	RefreshTokenHash *string   // Hash of the newest refresh token; nil means no refresh session.
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasRefreshSession reports whether a refresh token hash is stored for the user.
// An empty hash counts as no session.
func (u *User) HasRefreshSession() bool {
	return u.RefreshTokenHash != nil && *u.RefreshTokenHash != ""
}
