// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gatekeeper/internal/domain/entity"
)

// --- Input DTOs ---

// SignupInput defines the data required to create an account.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,max=100"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
}

// SigninInput defines the data required for a user to sign in.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

// RefreshInput carries the refresh token to exchange for a new pair.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// --- Output DTOs ---

// TokenOutput is returned by every operation that issues tokens.
type TokenOutput struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	TokenType        string    `json:"token_type"`
	ExpiresIn        int64     `json:"expires_in"` // access token lifetime in seconds
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// NewTokenOutput maps an issued pair to the response DTO.
func NewTokenOutput(pair *entity.TokenPair, issuedAt time.Time) *TokenOutput {
	expiresIn := int64(pair.AccessExpiresAt.Sub(issuedAt).Round(time.Second) / time.Second)
	if expiresIn < 0 {
		expiresIn = 0
	}

	return &TokenOutput{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		TokenType:        "Bearer",
		ExpiresIn:        expiresIn,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

// AuthUsecase defines credential authentication operations.
//
// Every method either returns a complete result or an error whose kind is
// Conflict, Unauthorized, HashingFailed, UpdateHashFailed or Internal.
type AuthUsecase interface {
	// Signup creates an account and returns its first token pair.
	Signup(ctx context.Context, input SignupInput) (*TokenOutput, error)

	// Signin checks credentials and returns a fresh token pair.
	Signin(ctx context.Context, input SigninInput) (*TokenOutput, error)

	// Refresh exchanges the newest refresh token for a new pair, invalidating it.
	Refresh(ctx context.Context, input RefreshInput) (*TokenOutput, error)

	// Logout revokes the caller's refresh session.
	Logout(ctx context.Context, userID uuid.UUID) error
}
