// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	users         repository.UserRepository
	hasher        service.PasswordHasher
	tokens        service.TokenIssuer
	refreshHashes service.RefreshHashStore
	publisher     service.EventPublisher
	logger        *slog.Logger
	now           func() time.Time

	// dummyHash is verified against when the email is unknown.
	dummyOnce sync.Once
	dummyHash string
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Users         repository.UserRepository
	Hasher        service.PasswordHasher
	Tokens        service.TokenIssuer
	RefreshHashes service.RefreshHashStore
	Publisher     service.EventPublisher `optional:"true"`
	Logger        *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		users:         params.Users,
		hasher:        params.Hasher,
		tokens:        params.Tokens,
		refreshHashes: params.RefreshHashes,
		publisher:     params.Publisher,
		logger:        params.Logger,
		now:           time.Now,
	}
}

func (s *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// Signup creates a member account and returns its first token pair.
func (s *authService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.TokenOutput, error) {
	email := normalizeEmail(input.Email)

	output, user, err := s.signup(ctx, email, strings.TrimSpace(input.Name), input.Password)
	if err != nil {
		return nil, s.normalizeError(ctx, "signup", err)
	}

	s.log(ctx).Info("User signed up", slog.String("user_id", user.ID.String()))
	s.publish(ctx, entity.AuthEventSignedUp, user.ID, user.Email)

	return output, nil
}

func (s *authService) signup(ctx context.Context, email, name, password string) (*usecase.TokenOutput, *entity.User, error) {
	_, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, nil, errors.WithStack(domainerrors.ErrEmailAlreadyRegistered)
	case !errors.Is(err, repository.ErrUserNotFound):
		return nil, nil, errors.Wrap(err, "users.FindByEmail")
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, nil, errors.Wrap(err, "hasher.Hash")
	}

	user := &entity.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		RoleID:       entity.DefaultRole,
	}

	// A concurrent signup for the same email loses here with a Conflict.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, errors.Wrap(err, "users.Create")
	}

	output, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return output, user, nil
}

// Signin verifies email and password. Unknown email and wrong password fail
// with the same error.
func (s *authService) Signin(ctx context.Context, input usecase.SigninInput) (*usecase.TokenOutput, error) {
	email := normalizeEmail(input.Email)

	output, user, err := s.signin(ctx, email, input.Password)
	if err != nil {
		return nil, s.normalizeError(ctx, "signin", err)
	}

	s.log(ctx).Info("User signed in", slog.String("user_id", user.ID.String()))
	s.publish(ctx, entity.AuthEventSignedIn, user.ID, user.Email)

	return output, nil
}

func (s *authService) signin(ctx context.Context, email, password string) (*usecase.TokenOutput, *entity.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log(ctx).Debug("Sign-in for unknown email")
			s.verifyDummy(ctx, password)

			return nil, nil, errors.WithStack(domainerrors.ErrUnauthorized)
		}

		return nil, nil, errors.Wrap(err, "users.FindByEmail")
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, nil, errors.Wrap(err, "hasher.Verify")
	}
	if !ok {
		s.log(ctx).Debug("Sign-in password mismatch", slog.String("user_id", user.ID.String()))

		return nil, nil, errors.WithStack(domainerrors.ErrUnauthorized)
	}

	output, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	return output, user, nil
}

// verifyDummy spends one password verification so an unknown email takes as
// long as a wrong password. The dummy hash is made once at the hasher's cost.
func (s *authService) verifyDummy(ctx context.Context, password string) {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(uuid.NewString())
		if err != nil {
			s.log(ctx).Warn("Failed to prepare dummy password hash", slog.Any("error", err))

			return
		}
		s.dummyHash = hash
	})
	if s.dummyHash == "" {
		return
	}

	_, _ = s.hasher.Verify(password, s.dummyHash)
}

// Refresh rotates the refresh session: the presented token must be the newest
// one issued, and it stops working once the new pair is stored.
func (s *authService) Refresh(ctx context.Context, input usecase.RefreshInput) (*usecase.TokenOutput, error) {
	output, user, err := s.refresh(ctx, input.RefreshToken)
	if err != nil {
		return nil, s.normalizeError(ctx, "refresh", err)
	}

	s.publish(ctx, entity.AuthEventTokenRefreshed, user.ID, user.Email)

	return output, nil
}

func (s *authService) refresh(ctx context.Context, refreshToken string) (*usecase.TokenOutput, *entity.User, error) {
	claims, err := s.tokens.Verify(refreshToken, entity.TokenKindRefresh)
	if err != nil {
		return nil, nil, errors.Wrap(err, "tokens.Verify")
	}

	current, err := s.refreshHashes.Matches(ctx, claims.UserID, refreshToken)
	if err != nil {
		return nil, nil, errors.Wrap(err, "refreshHashes.Matches")
	}
	if !current {
		s.log(ctx).Warn("Refresh token is not the current one",
			slog.String("user_id", claims.UserID.String()),
		)

		return nil, nil, domainerrors.ErrUnauthorized.WrapMessage("refresh token revoked or rotated")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, domainerrors.ErrUnauthorized.WrapMessage("user no longer exists")
		}

		return nil, nil, errors.Wrap(err, "users.FindByID")
	}

	issuedAt := s.now()

	pair, err := s.tokens.Issue(user.ID, user.Email, user.RoleID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "tokens.Issue")
	}

	rotated, err := s.refreshHashes.Rotate(ctx, user.ID, refreshToken, pair.RefreshToken)
	if err != nil {
		return nil, nil, errors.Wrap(err, "refreshHashes.Rotate")
	}
	if !rotated {
		s.log(ctx).Warn("Refresh token was rotated concurrently", slog.String("user_id", user.ID.String()))

		return nil, nil, domainerrors.ErrUnauthorized.WrapMessage("refresh token already used")
	}

	return usecase.NewTokenOutput(pair, issuedAt), user, nil
}

// Logout clears the stored refresh hash so no refresh token is accepted.
// Access tokens stay valid until they expire.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.logout(ctx, userID); err != nil {
		return s.normalizeError(ctx, "logout", err)
	}

	s.log(ctx).Info("User logged out", slog.String("user_id", userID.String()))
	s.publish(ctx, entity.AuthEventLoggedOut, userID, "")

	return nil
}

func (s *authService) logout(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainerrors.ErrUnauthorized.WrapMessage("missing caller identity")
	}

	if err := s.refreshHashes.Clear(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUnauthorized.WrapMessage("user no longer exists")
		}

		return errors.Wrap(err, "refreshHashes.Clear")
	}

	return nil
}

// issueTokens mints a pair and stores the refresh hash. The pair is only
// returned once the hash is persisted.
func (s *authService) issueTokens(ctx context.Context, user *entity.User) (*usecase.TokenOutput, error) {
	issuedAt := s.now()

	pair, err := s.tokens.Issue(user.ID, user.Email, user.RoleID)
	if err != nil {
		return nil, errors.Wrap(err, "tokens.Issue")
	}

	if err := s.refreshHashes.Update(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "refreshHashes.Update")
	}

	return usecase.NewTokenOutput(pair, issuedAt), nil
}

// publish never fails the operation; a lost event is only logged.
func (s *authService) publish(ctx context.Context, eventType entity.AuthEventType, userID uuid.UUID, email string) {
	if s.publisher == nil {
		return
	}

	event := entity.NewAuthEvent(eventType, userID, email)
	event.RequestID = deliverycontext.GetRequestIDFromContext(ctx)

	if err := s.publisher.PublishAuthEvent(ctx, event); err != nil {
		s.log(ctx).Warn("Failed to publish auth event",
			slog.String("event_type", string(eventType)),
			slog.String("user_id", userID.String()),
			slog.Any("error", err),
		)
	}
}

// normalizeError lets the documented failure kinds through unchanged and
// collapses everything else into ErrInternal after logging the cause.
func (s *authService) normalizeError(ctx context.Context, operation string, err error) error {
	switch domainerrors.KindOf(err) {
	case domainerrors.KindConflict,
		domainerrors.KindUnauthorized,
		domainerrors.KindHashingFailed,
		domainerrors.KindUpdateHashFailed:
		s.log(ctx).Debug("Auth operation rejected",
			slog.String("operation", operation),
			slog.String("reason", err.Error()),
		)

		return err
	default:
		s.log(ctx).Error("Auth operation failed",
			slog.String("operation", operation),
			slog.Any("error", err),
		)

		return domainerrors.ErrInternal
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
