package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/errors"
	mockRepo "gatekeeper/internal/mocks/repository"
	mockSvc "gatekeeper/internal/mocks/service"
	"gatekeeper/internal/usecase"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service       usecase.AuthUsecase
	users         *mockRepo.MockUserRepository
	hasher        *mockSvc.MockPasswordHasher
	tokens        *mockSvc.MockTokenIssuer
	refreshHashes *mockSvc.MockRefreshHashStore
	publisher     *mockSvc.MockEventPublisher
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	users := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokens := mockSvc.NewMockTokenIssuer(t)
	refreshHashes := mockSvc.NewMockRefreshHashStore(t)
	publisher := mockSvc.NewMockEventPublisher(t)

	svc := NewAuthService(AuthServiceParams{
		Users:         users,
		Hasher:        hasher,
		Tokens:        tokens,
		RefreshHashes: refreshHashes,
		Publisher:     publisher,
		Logger:        newDiscardLogger(),
	})

	return authServiceFixtures{
		service:       svc,
		users:         users,
		hasher:        hasher,
		tokens:        tokens,
		refreshHashes: refreshHashes,
		publisher:     publisher,
	}
}

func testPair() *entity.TokenPair {
	now := time.Now()

	return &entity.TokenPair{
		AccessToken:      "access-token",
		RefreshToken:     "refresh-token",
		AccessExpiresAt:  now.Add(15 * time.Minute),
		RefreshExpiresAt: now.Add(7 * 24 * time.Hour),
	}
}

func eventOfType(eventType entity.AuthEventType) any {
	return mock.MatchedBy(func(e *entity.AuthEvent) bool { return e.Type == eventType })
}

func TestAuthService_Signup_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	userID := uuid.New()
	pair := testPair()

	fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("Secr3t!").Return("hashed_password", nil)
	fx.users.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Email == "ann@example.com" &&
				u.Name == "Ann" &&
				u.PasswordHash == "hashed_password" &&
				u.RoleID == entity.RoleMember
		})).
		Run(func(_ context.Context, user *entity.User) { user.ID = userID }).
		Return(nil)
	fx.tokens.EXPECT().Issue(userID, "ann@example.com", entity.RoleMember).Return(pair, nil)
	fx.refreshHashes.EXPECT().Update(ctx, userID, "refresh-token").Return(nil)
	fx.publisher.EXPECT().PublishAuthEvent(ctx, eventOfType(entity.AuthEventSignedUp)).Return(nil)

	output, err := fx.service.Signup(ctx, usecase.SignupInput{
		Email:    "  Ann@Example.com ",
		Name:     "Ann",
		Password: "Secr3t!",
	})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, "Bearer", output.TokenType)
	assert.InDelta(t, 900, output.ExpiresIn, 1)
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.users.EXPECT().
		FindByEmail(ctx, "ann@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "ann@example.com"}, nil)

	output, err := fx.service.Signup(ctx, usecase.SignupInput{Email: "ann@example.com", Name: "Bob", Password: "Other1!"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyRegistered))
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))
}

func TestAuthService_Signup_ConcurrentCreateConflict(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("Secr3t!").Return("hashed_password", nil)
	fx.users.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists"))

	output, err := fx.service.Signup(ctx, usecase.SignupInput{Email: "ann@example.com", Name: "Ann", Password: "Secr3t!"})

	require.Error(t, err)
	assert.Nil(t, output)
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))
}

func TestAuthService_Signup_FailureKinds(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name     string
		setup    func(fx authServiceFixtures, ctx context.Context)
		wantKind domainerrors.Kind
	}{
		{
			name: "lookup fails",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").
					Return(nil, domainerrors.NewDatabaseExecuteError(errors.New("connection reset"), "find"))
			},
			wantKind: domainerrors.KindInternal,
		},
		{
			name: "hashing fails",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(nil, repository.ErrUserNotFound)
				fx.hasher.EXPECT().Hash("Secr3t!").Return("", domainerrors.ErrHashingFailed)
			},
			wantKind: domainerrors.KindHashingFailed,
		},
		{
			name: "create fails",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(nil, repository.ErrUserNotFound)
				fx.hasher.EXPECT().Hash("Secr3t!").Return("hashed_password", nil)
				fx.users.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
					Return(errors.New("disk full"))
			},
			wantKind: domainerrors.KindInternal,
		},
		{
			name: "issuing fails",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(nil, repository.ErrUserNotFound)
				fx.hasher.EXPECT().Hash("Secr3t!").Return("hashed_password", nil)
				fx.users.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
					Run(func(_ context.Context, user *entity.User) { user.ID = userID }).
					Return(nil)
				fx.tokens.EXPECT().Issue(userID, "ann@example.com", entity.RoleMember).
					Return(nil, errors.New("sign failed"))
			},
			wantKind: domainerrors.KindInternal,
		},
		{
			name: "storing the refresh hash fails",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(nil, repository.ErrUserNotFound)
				fx.hasher.EXPECT().Hash("Secr3t!").Return("hashed_password", nil)
				fx.users.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
					Run(func(_ context.Context, user *entity.User) { user.ID = userID }).
					Return(nil)
				fx.tokens.EXPECT().Issue(userID, "ann@example.com", entity.RoleMember).Return(testPair(), nil)
				fx.refreshHashes.EXPECT().Update(ctx, userID, "refresh-token").
					Return(domainerrors.ErrUpdateHashFailed.WithDetails("timeout"))
			},
			wantKind: domainerrors.KindUpdateHashFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()
			tt.setup(fx, ctx)

			output, err := fx.service.Signup(ctx, usecase.SignupInput{Email: "ann@example.com", Name: "Ann", Password: "Secr3t!"})

			require.Error(t, err)
			assert.Nil(t, output)
			assert.Equal(t, tt.wantKind, domainerrors.KindOf(err))
			if tt.wantKind == domainerrors.KindInternal {
				assert.Equal(t, domainerrors.MessageInternal, err.Error())
				assert.Same(t, domainerrors.ErrInternal, err)
			}
		})
	}
}

func TestAuthService_Signin_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: "hashed_password", RoleID: entity.RoleMember}

	fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(user, nil)
	fx.hasher.EXPECT().Verify("Secr3t!", "hashed_password").Return(true, nil)
	fx.tokens.EXPECT().Issue(user.ID, user.Email, entity.RoleMember).Return(testPair(), nil)
	fx.refreshHashes.EXPECT().Update(ctx, user.ID, "refresh-token").Return(nil)
	fx.publisher.EXPECT().PublishAuthEvent(ctx, eventOfType(entity.AuthEventSignedIn)).Return(nil)

	output, err := fx.service.Signin(ctx, usecase.SigninInput{Email: "ANN@example.com", Password: "Secr3t!"})

	require.NoError(t, err)
	assert.Equal(t, "access-token", output.AccessToken)
}

func TestAuthService_Signin_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	ctx := context.Background()

	unknown := createTestAuthService(t)
	unknown.users.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)
	unknown.hasher.EXPECT().Hash(mock.Anything).Return("dummy_hash", nil).Once()
	unknown.hasher.EXPECT().Verify("Secr3t!", "dummy_hash").Return(false, nil).Once()
	_, unknownErr := unknown.service.Signin(ctx, usecase.SigninInput{Email: "ghost@example.com", Password: "Secr3t!"})

	wrong := createTestAuthService(t)
	wrong.users.EXPECT().FindByEmail(ctx, "ann@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: "hashed_password"}, nil)
	wrong.hasher.EXPECT().Verify("wrong", "hashed_password").Return(false, nil)
	_, wrongErr := wrong.service.Signin(ctx, usecase.SigninInput{Email: "ann@example.com", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(unknownErr))
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(wrongErr))
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, domainerrors.MessageAuthenticationFailed, wrongErr.Error())
}

func TestAuthService_Signin_UnknownEmailStillVerifiesPassword(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.users.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Times(3)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("dummy_hash", nil).Once()
	fx.hasher.EXPECT().Verify(mock.Anything, "dummy_hash").Return(false, nil).Times(3)

	for _, password := range []string{"first", "second", "third"} {
		_, err := fx.service.Signin(ctx, usecase.SigninInput{Email: "ghost@example.com", Password: password})
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	}
}

func TestAuthService_Signin_UnknownEmailWhenDummyHashFails(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.users.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash(mock.Anything).Return("", domainerrors.ErrHashingFailed).Once()

	_, err := fx.service.Signin(ctx, usecase.SigninInput{Email: "ghost@example.com", Password: "Secr3t!"})

	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
}

func TestAuthService_Signin_MalformedStoredHash(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").
		Return(&entity.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: "garbage"}, nil)
	fx.hasher.EXPECT().Verify("Secr3t!", "garbage").Return(false, domainerrors.ErrHashingFailed)

	_, err := fx.service.Signin(ctx, usecase.SigninInput{Email: "ann@example.com", Password: "Secr3t!"})

	assert.Equal(t, domainerrors.KindHashingFailed, domainerrors.KindOf(err))
}

func TestAuthService_Signin_PublishFailureIsIgnored(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "ann@example.com", PasswordHash: "hashed_password", RoleID: entity.RoleMember}

	fx.users.EXPECT().FindByEmail(ctx, "ann@example.com").Return(user, nil)
	fx.hasher.EXPECT().Verify("Secr3t!", "hashed_password").Return(true, nil)
	fx.tokens.EXPECT().Issue(user.ID, user.Email, entity.RoleMember).Return(testPair(), nil)
	fx.refreshHashes.EXPECT().Update(ctx, user.ID, "refresh-token").Return(nil)
	fx.publisher.EXPECT().PublishAuthEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	output, err := fx.service.Signin(ctx, usecase.SigninInput{Email: "ann@example.com", Password: "Secr3t!"})

	require.NoError(t, err)
	assert.NotNil(t, output)
}

func TestAuthService_Refresh_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "ann@example.com", RoleID: entity.RoleMember}
	next := testPair()
	next.RefreshToken = "next-refresh-token"

	fx.tokens.EXPECT().Verify("old-refresh-token", entity.TokenKindRefresh).
		Return(&service.Claims{UserID: user.ID, Email: user.Email, RoleID: user.RoleID, Type: entity.TokenKindRefresh}, nil)
	fx.refreshHashes.EXPECT().Matches(ctx, user.ID, "old-refresh-token").Return(true, nil)
	fx.users.EXPECT().FindByID(ctx, user.ID).Return(user, nil)
	fx.tokens.EXPECT().Issue(user.ID, user.Email, entity.RoleMember).Return(next, nil)
	fx.refreshHashes.EXPECT().Rotate(ctx, user.ID, "old-refresh-token", "next-refresh-token").Return(true, nil)
	fx.publisher.EXPECT().PublishAuthEvent(ctx, eventOfType(entity.AuthEventTokenRefreshed)).Return(nil)

	output, err := fx.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: "old-refresh-token"})

	require.NoError(t, err)
	assert.Equal(t, "next-refresh-token", output.RefreshToken)
}

func TestAuthService_Refresh_Rejections(t *testing.T) {
	userID := uuid.New()
	claims := &service.Claims{UserID: userID, Type: entity.TokenKindRefresh}

	tests := []struct {
		name     string
		setup    func(fx authServiceFixtures, ctx context.Context)
		wantKind domainerrors.Kind
	}{
		{
			name: "invalid token",
			setup: func(fx authServiceFixtures, _ context.Context) {
				fx.tokens.EXPECT().Verify("presented", entity.TokenKindRefresh).
					Return(nil, domainerrors.ErrUnauthorized.WithDetails("token is expired"))
			},
			wantKind: domainerrors.KindUnauthorized,
		},
		{
			name: "rotated token",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.tokens.EXPECT().Verify("presented", entity.TokenKindRefresh).Return(claims, nil)
				fx.refreshHashes.EXPECT().Matches(ctx, userID, "presented").Return(false, nil)
			},
			wantKind: domainerrors.KindUnauthorized,
		},
		{
			name: "deleted user",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.tokens.EXPECT().Verify("presented", entity.TokenKindRefresh).Return(claims, nil)
				fx.refreshHashes.EXPECT().Matches(ctx, userID, "presented").Return(true, nil)
				fx.users.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)
			},
			wantKind: domainerrors.KindUnauthorized,
		},
		{
			name: "store failure",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.tokens.EXPECT().Verify("presented", entity.TokenKindRefresh).Return(claims, nil)
				fx.refreshHashes.EXPECT().Matches(ctx, userID, "presented").Return(false, errors.New("timeout"))
			},
			wantKind: domainerrors.KindInternal,
		},
		{
			name: "rotated concurrently",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.tokens.EXPECT().Verify("presented", entity.TokenKindRefresh).Return(claims, nil)
				fx.refreshHashes.EXPECT().Matches(ctx, userID, "presented").Return(true, nil)
				fx.users.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID, RoleID: entity.RoleMember}, nil)
				fx.tokens.EXPECT().Issue(userID, "", entity.RoleMember).Return(testPair(), nil)
				fx.refreshHashes.EXPECT().Rotate(ctx, userID, "presented", "refresh-token").Return(false, nil)
			},
			wantKind: domainerrors.KindUnauthorized,
		},
		{
			name: "rotation write failure",
			setup: func(fx authServiceFixtures, ctx context.Context) {
				fx.tokens.EXPECT().Verify("presented", entity.TokenKindRefresh).Return(claims, nil)
				fx.refreshHashes.EXPECT().Matches(ctx, userID, "presented").Return(true, nil)
				fx.users.EXPECT().FindByID(ctx, userID).Return(&entity.User{ID: userID, RoleID: entity.RoleMember}, nil)
				fx.tokens.EXPECT().Issue(userID, "", entity.RoleMember).Return(testPair(), nil)
				fx.refreshHashes.EXPECT().Rotate(ctx, userID, "presented", "refresh-token").
					Return(false, domainerrors.ErrUpdateHashFailed)
			},
			wantKind: domainerrors.KindUpdateHashFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()
			tt.setup(fx, ctx)

			output, err := fx.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: "presented"})

			require.Error(t, err)
			assert.Nil(t, output)
			assert.Equal(t, tt.wantKind, domainerrors.KindOf(err))
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	userID := uuid.New()

	t.Run("clears the refresh hash", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.refreshHashes.EXPECT().Clear(ctx, userID).Return(nil)
		fx.publisher.EXPECT().PublishAuthEvent(ctx, eventOfType(entity.AuthEventLoggedOut)).Return(nil)

		assert.NoError(t, fx.service.Logout(ctx, userID))
	})

	t.Run("missing caller", func(t *testing.T) {
		fx := createTestAuthService(t)

		err := fx.service.Logout(context.Background(), uuid.Nil)
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})

	t.Run("unknown user", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.refreshHashes.EXPECT().Clear(ctx, userID).Return(repository.ErrUserNotFound)

		err := fx.service.Logout(ctx, userID)
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	})

	t.Run("store failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		ctx := context.Background()

		fx.refreshHashes.EXPECT().Clear(ctx, userID).Return(errors.New("timeout"))

		err := fx.service.Logout(ctx, userID)
		assert.Same(t, domainerrors.ErrInternal, err)
	})
}
