package entity

import "time"

// TokenKind distinguishes the two token flavours. Each kind has its own
// signing secret and lifetime.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenPair is issued on every successful signup, sign-in or refresh.
// It is never stored; only a hash of RefreshToken is kept on the user.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
