package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const bearerScheme = "Bearer"

// AuthMiddleware authenticates callers by their access token.
type AuthMiddleware struct {
	tokens service.TokenIssuer
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokens service.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate requires a valid access token in the Authorization header and
// stores its subject as the caller's user id. Refresh tokens are rejected.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errors.WithStack(domainerrors.ErrAccessDenied.WithDetails("missing or malformed bearer token"))
		}

		claims, err := m.tokens.Verify(token, entity.TokenKindAccess)
		if err != nil {
			return errors.WithStack(err)
		}
		if claims.UserID == uuid.Nil {
			return errors.WithStack(domainerrors.ErrUnauthorized.WithDetails("token has no subject"))
		}

		deliverycontext.SetUserID(c, claims.UserID)

		ctx := c.Request().Context()
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", claims.UserID.String())))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

// bearerToken extracts the token from "Bearer <token>". The scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
