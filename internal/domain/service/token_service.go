package service

import (
	"gatekeeper/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims for the JWT tokens.
type Claims struct {
	UserID uuid.UUID        `json:"-"`
	Email  string           `json:"email"`
	RoleID entity.RoleID    `json:"role"`
	Type   entity.TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenIssuer mints and verifies signed access/refresh tokens.
type TokenIssuer interface {
	// Issue creates an access token and a refresh token for the user. Both
	// carry the same subject claims and are signed with different secrets.
	Issue(userID uuid.UUID, email string, roleID entity.RoleID) (*entity.TokenPair, error)

	// Verify checks signature, expiry and kind and returns the claims.
	Verify(token string, kind entity.TokenKind) (*Claims, error)
}
