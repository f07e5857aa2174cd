package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthEventType names what happened to an account.
type AuthEventType string

const (
	AuthEventSignedUp       AuthEventType = "user.signed_up"
	AuthEventSignedIn       AuthEventType = "user.signed_in"
	AuthEventTokenRefreshed AuthEventType = "user.token_refreshed"
	AuthEventLoggedOut      AuthEventType = "user.logged_out"
)

// AuthEvent is published after an auth operation has fully succeeded.
type AuthEvent struct {
	ID         uuid.UUID     `json:"id"`
	Type       AuthEventType `json:"type"`
	UserID     uuid.UUID     `json:"user_id"`
	Email      string        `json:"email,omitempty"`
	RequestID  string        `json:"request_id,omitempty"` // For distributed tracing
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewAuthEvent stamps a new event with a fresh id and the current time.
func NewAuthEvent(eventType AuthEventType, userID uuid.UUID, email string) *AuthEvent {
	return &AuthEvent{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		Email:      email,
		OccurredAt: time.Now().UTC(),
	}
}

// Valid reports whether t is one of the published event types.
func (t AuthEventType) Valid() bool {
	switch t {
	case AuthEventSignedUp, AuthEventSignedIn, AuthEventTokenRefreshed, AuthEventLoggedOut:
		return true
	default:
		return false
	}
}
