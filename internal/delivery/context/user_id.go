package context

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SetUserID stores the authenticated caller on both the echo context and the
// request context, so handlers and services see the same identity.
func SetUserID(c echo.Context, userID uuid.UUID) {
	c.Set(string(KeyUserID), userID)

	req := c.Request()
	c.SetRequest(req.WithContext(WithUserID(req.Context(), userID)))
}

// GetUserID returns the authenticated caller set by the auth middleware.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return id, ok && id != uuid.Nil
}

// WithUserID returns a new context carrying the caller's user id.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, KeyUserID, userID)
}

// UserIDFromContext extracts the caller's user id from standard context.Context.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(KeyUserID).(uuid.UUID)

	return id, ok && id != uuid.Nil
}
