package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
)

var (
	errMissingSecrets = errors.New("jwt secrets must be provided")
	errSameSecrets    = errors.New("access and refresh secrets must differ")
)

// jwtService is a concrete implementation of the TokenIssuer interface using HS256 JWTs.
type jwtService struct {
	issuer        string
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenIssuer, error) {
	return newJWTService(cfg, time.Now)
}

func newJWTService(cfg *config.Config, now func() time.Time) (*jwtService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errMissingSecrets
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errSameSecrets
	}

	tokenCfg := config.TokenConfig{}
	if cfg.Token != nil {
		tokenCfg = *cfg.Token
	}
	if tokenCfg.AccessTTL <= 0 {
		tokenCfg.AccessTTL = 15 * time.Minute
	}
	if tokenCfg.RefreshTTL <= 0 {
		tokenCfg.RefreshTTL = 7 * 24 * time.Hour
	}

	return &jwtService{
		issuer:        tokenCfg.Issuer,
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     tokenCfg.AccessTTL,
		refreshTTL:    tokenCfg.RefreshTTL,
		now:           now,
	}, nil
}

// Issue creates a new access token and refresh token for the given user.
func (s *jwtService) Issue(userID uuid.UUID, email string, roleID entity.RoleID) (*entity.TokenPair, error) {
	issuedAt := s.now()

	accessToken, accessExp, err := s.generateToken(userID, email, roleID, entity.TokenKindAccess, issuedAt)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := s.generateToken(userID, email, roleID, entity.TokenKindRefresh, issuedAt)
	if err != nil {
		return nil, err
	}

	return &entity.TokenPair{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Verify parses tokenString with the secret belonging to kind. Any failure,
// including a token of the other kind, is reported as ErrUnauthorized.
func (s *jwtService) Verify(tokenString string, kind entity.TokenKind) (*service.Claims, error) {
	secret, _, ok := s.paramsFor(kind)
	if !ok {
		return nil, domainerrors.ErrUnauthorized.WithDetails("unknown token kind")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrUnauthorized.WithDetails(err.Error()), "jwt.ParseWithClaims")
	}
	if !token.Valid {
		return nil, domainerrors.ErrUnauthorized.WithDetails("token is not valid")
	}
	if claims.Type != kind {
		return nil, domainerrors.ErrUnauthorized.WithDetails("unexpected token type")
	}
	if !claims.RoleID.IsValid() {
		return nil, domainerrors.ErrUnauthorized.WithDetails("unknown role")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, domainerrors.ErrUnauthorized.WithDetails("invalid subject")
	}
	claims.UserID = userID

	return claims, nil
}

func (s *jwtService) paramsFor(kind entity.TokenKind) (secret []byte, ttl time.Duration, ok bool) {
	switch kind {
	case entity.TokenKindAccess:
		return s.accessSecret, s.accessTTL, true
	case entity.TokenKindRefresh:
		return s.refreshSecret, s.refreshTTL, true
	default:
		return nil, 0, false
	}
}

func (s *jwtService) generateToken(
	userID uuid.UUID,
	email string,
	roleID entity.RoleID,
	kind entity.TokenKind,
	issuedAt time.Time,
) (string, time.Time, error) {
	secret, ttl, _ := s.paramsFor(kind)
	expiresAt := issuedAt.Add(ttl)

	claims := service.Claims{
		Email:  email,
		RoleID: roleID,
		Type:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", time.Time{}, errors.Wrapf(err, "sign %s token", kind)
	}

	return signed, expiresAt, nil
}
