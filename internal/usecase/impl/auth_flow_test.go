package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"gatekeeper/config"
	"gatekeeper/internal/domain/entity"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/infra/auth"
	"gatekeeper/internal/infra/persistence/memory"
	"gatekeeper/internal/usecase"
)

// recordingPublisher collects published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []*entity.AuthEvent
}

func (p *recordingPublisher) PublishAuthEvent(_ context.Context, event *entity.AuthEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []entity.AuthEventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]entity.AuthEventType, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}

	return out
}

type authFlow struct {
	service       usecase.AuthUsecase
	users         repository.UserRepository
	tokens        service.TokenIssuer
	refreshHashes service.RefreshHashStore
	events        *recordingPublisher
}

func newAuthFlow(t *testing.T) authFlow {
	t.Helper()

	cfg := &config.Config{
		Token: &config.TokenConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 7 * 24 * time.Hour},
	}
	cfg.SecretKey.Access = "flow-access-secret"
	cfg.SecretKey.Refresh = "flow-refresh-secret"

	tokens, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	users := memory.NewUserRepository()
	refreshHashes := auth.NewRefreshHashStore(users)
	events := &recordingPublisher{}

	svc := NewAuthService(AuthServiceParams{
		Users:         users,
		Hasher:        auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		Tokens:        tokens,
		RefreshHashes: refreshHashes,
		Publisher:     events,
		Logger:        newDiscardLogger(),
	})

	return authFlow{
		service:       svc,
		users:         users,
		tokens:        tokens,
		refreshHashes: refreshHashes,
		events:        events,
	}
}

func TestAuthFlow_SignupThenSigninCarrySameClaims(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	signedUp, err := flow.service.Signup(ctx, usecase.SignupInput{Email: "a@x.com", Name: "Ann", Password: "Secr3t!"})
	require.NoError(t, err)

	signedIn, err := flow.service.Signin(ctx, usecase.SigninInput{Email: "a@x.com", Password: "Secr3t!"})
	require.NoError(t, err)

	first, err := flow.tokens.Verify(signedUp.AccessToken, entity.TokenKindAccess)
	require.NoError(t, err)
	second, err := flow.tokens.Verify(signedIn.AccessToken, entity.TokenKindAccess)
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.Email, second.Email)
	assert.Equal(t, first.RoleID, second.RoleID)
	assert.Equal(t, entity.RoleMember, second.RoleID)
}

func TestAuthFlow_AnnAndBob(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	ann, err := flow.service.Signup(ctx, usecase.SignupInput{Email: "a@x.com", Name: "Ann", Password: "Secr3t!"})
	require.NoError(t, err)
	require.NotEmpty(t, ann.AccessToken)
	require.NotEmpty(t, ann.RefreshToken)

	_, err = flow.service.Signup(ctx, usecase.SignupInput{Email: "a@x.com", Name: "Bob", Password: "Other1!"})
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	stored, err := flow.users.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Ann", stored.Name)

	_, err = flow.service.Signin(ctx, usecase.SigninInput{Email: "a@x.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))

	again, err := flow.service.Signin(ctx, usecase.SigninInput{Email: "a@x.com", Password: "Secr3t!"})
	require.NoError(t, err)
	assert.NotEqual(t, ann.AccessToken, again.AccessToken)
	assert.NotEqual(t, ann.RefreshToken, again.RefreshToken)

	matchesOld, err := flow.refreshHashes.Matches(ctx, stored.ID, ann.RefreshToken)
	require.NoError(t, err)
	assert.False(t, matchesOld)

	matchesNew, err := flow.refreshHashes.Matches(ctx, stored.ID, again.RefreshToken)
	require.NoError(t, err)
	assert.True(t, matchesNew)

	assert.Equal(t,
		[]entity.AuthEventType{entity.AuthEventSignedUp, entity.AuthEventSignedIn},
		flow.events.types(),
	)
}

func TestAuthFlow_EmailIsCaseInsensitive(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	_, err := flow.service.Signup(ctx, usecase.SignupInput{Email: "Ann@Example.com", Name: "Ann", Password: "Secr3t!"})
	require.NoError(t, err)

	_, err = flow.service.Signup(ctx, usecase.SignupInput{Email: "ann@example.COM", Name: "Ann", Password: "Secr3t!"})
	assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))

	_, err = flow.service.Signin(ctx, usecase.SigninInput{Email: " ANN@example.com", Password: "Secr3t!"})
	assert.NoError(t, err)
}

func TestAuthFlow_UnknownEmailAndWrongPasswordLookAlike(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	_, err := flow.service.Signup(ctx, usecase.SignupInput{Email: "a@x.com", Name: "Ann", Password: "Secr3t!"})
	require.NoError(t, err)

	_, unknownErr := flow.service.Signin(ctx, usecase.SigninInput{Email: "nobody@x.com", Password: "Secr3t!"})
	_, wrongErr := flow.service.Signin(ctx, usecase.SigninInput{Email: "a@x.com", Password: "nope"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())

	var unknownApp, wrongApp domainerrors.AppError
	require.ErrorAs(t, unknownErr, &unknownApp)
	require.ErrorAs(t, wrongErr, &wrongApp)
	assert.Equal(t, unknownApp.Message(), wrongApp.Message())
	assert.Equal(t, unknownApp.HTTPCode(), wrongApp.HTTPCode())
}

func TestAuthFlow_RefreshRotatesAndRejectsReplay(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	first, err := flow.service.Signup(ctx, usecase.SignupInput{Email: "a@x.com", Name: "Ann", Password: "Secr3t!"})
	require.NoError(t, err)

	second, err := flow.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: first.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = flow.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: first.RefreshToken})
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))

	// An access token is never accepted as a refresh token.
	_, err = flow.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: second.AccessToken})
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))

	_, err = flow.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: second.RefreshToken})
	assert.NoError(t, err)
}

func TestAuthFlow_LogoutRevokesRefresh(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	tokens, err := flow.service.Signup(ctx, usecase.SignupInput{Email: "a@x.com", Name: "Ann", Password: "Secr3t!"})
	require.NoError(t, err)

	claims, err := flow.tokens.Verify(tokens.AccessToken, entity.TokenKindAccess)
	require.NoError(t, err)

	require.NoError(t, flow.service.Logout(ctx, claims.UserID))

	stored, err := flow.users.FindByID(ctx, claims.UserID)
	require.NoError(t, err)
	assert.False(t, stored.HasRefreshSession())

	_, err = flow.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: tokens.RefreshToken})
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))

	err = flow.service.Logout(ctx, uuid.New())
	assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
}

func TestAuthFlow_ConcurrentSignupsCreateOneUser(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	const attempts = 8
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = flow.service.Signup(ctx, usecase.SignupInput{Email: "race@x.com", Name: "Racer", Password: "Secr3t!"})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++

			continue
		}
		assert.Equal(t, domainerrors.KindConflict, domainerrors.KindOf(err))
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthFlow_ConcurrentRefreshesRotateOnce(t *testing.T) {
	flow := newAuthFlow(t)
	ctx := context.Background()

	session, err := flow.service.Signup(ctx, usecase.SignupInput{Email: "a@x.com", Name: "Ann", Password: "Secr3t!"})
	require.NoError(t, err)

	const attempts = 8
	outputs := make([]*usecase.TokenOutput, attempts)
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outputs[i], results[i] = flow.service.Refresh(ctx, usecase.RefreshInput{RefreshToken: session.RefreshToken})
		}(i)
	}
	wg.Wait()

	var winner *usecase.TokenOutput
	for i, err := range results {
		if err == nil {
			require.Nil(t, winner, "more than one refresh succeeded")
			winner = outputs[i]

			continue
		}
		assert.Equal(t, domainerrors.KindUnauthorized, domainerrors.KindOf(err))
	}
	require.NotNil(t, winner)

	claims, err := flow.tokens.Verify(winner.RefreshToken, entity.TokenKindRefresh)
	require.NoError(t, err)
	current, err := flow.refreshHashes.Matches(ctx, claims.UserID, winner.RefreshToken)
	require.NoError(t, err)
	assert.True(t, current)
}
