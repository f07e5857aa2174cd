package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/delivery/http/validator"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthUsecase records inputs and returns canned results.
type fakeAuthUsecase struct {
	output *usecase.TokenOutput
	err    error

	signup     usecase.SignupInput
	signin     usecase.SigninInput
	refresh    usecase.RefreshInput
	logoutUser uuid.UUID
}

func (f *fakeAuthUsecase) Signup(_ context.Context, input usecase.SignupInput) (*usecase.TokenOutput, error) {
	f.signup = input

	return f.output, f.err
}

func (f *fakeAuthUsecase) Signin(_ context.Context, input usecase.SigninInput) (*usecase.TokenOutput, error) {
	f.signin = input

	return f.output, f.err
}

func (f *fakeAuthUsecase) Refresh(_ context.Context, input usecase.RefreshInput) (*usecase.TokenOutput, error) {
	f.refresh = input

	return f.output, f.err
}

func (f *fakeAuthUsecase) Logout(_ context.Context, userID uuid.UUID) error {
	f.logoutUser = userID

	return f.err
}

func newHandlerContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func sampleOutput() *usecase.TokenOutput {
	return &usecase.TokenOutput{
		AccessToken:     "access",
		RefreshToken:    "refresh",
		TokenType:       "Bearer",
		ExpiresIn:       900,
		AccessExpiresAt: time.Date(2026, 1, 1, 0, 15, 0, 0, time.UTC),
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	uc := &fakeAuthUsecase{output: sampleOutput()}
	c, rec := newHandlerContext(`{"email":"ann@x.io","name":"Ann","password":"Secr3t!"}`)

	err := NewAuthHandler(uc).Signup(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, usecase.SignupInput{Email: "ann@x.io", Name: "Ann", Password: "Secr3t!"}, uc.signup)

	var body struct {
		response.Response
		Data usecase.TokenOutput `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, *sampleOutput(), body.Data)
}

func TestAuthHandler_InputErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		call    func(h *AuthHandler, c echo.Context) error
		wantErr *domainerrors.BaseError
	}{
		{
			name:    "malformed signin body",
			body:    `{"email":`,
			call:    (*AuthHandler).Signin,
			wantErr: domainerrors.ErrInvalidInput,
		},
		{
			name: "invalid signup reaches validator",
			body: `{"email":"ann","name":"Ann","password":"Secr3t!"}`,
			call: (*AuthHandler).Signup,
		},
		{
			name: "empty refresh token",
			body: `{"refresh_token":""}`,
			call: (*AuthHandler).Refresh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeAuthUsecase{}
			c, _ := newHandlerContext(tt.body)

			err := tt.call(NewAuthHandler(uc), c)

			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NotEmpty(t, validator.Fields(err))
			}
			assert.Equal(t, usecase.SignupInput{}, uc.signup)
			assert.Equal(t, usecase.SigninInput{}, uc.signin)
			assert.Equal(t, usecase.RefreshInput{}, uc.refresh)
		})
	}
}

func TestAuthHandler_SignupRejectsPasswordOverByteLimit(t *testing.T) {
	uc := &fakeAuthUsecase{}
	c, _ := newHandlerContext(`{"email":"ann@x.io","name":"Ann","password":"` + strings.Repeat("😀", 25) + `"}`)

	err := NewAuthHandler(uc).Signup(c)

	require.Error(t, err)
	assert.Equal(t, map[string]string{"password": "maxbytes=72"}, validator.Fields(err))
	assert.Equal(t, usecase.SignupInput{}, uc.signup)
}

func TestAuthHandler_UsecaseErrorPropagates(t *testing.T) {
	uc := &fakeAuthUsecase{err: domainerrors.ErrUnauthorized}
	c, _ := newHandlerContext(`{"email":"ann@x.io","password":"wrong"}`)

	err := NewAuthHandler(uc).Signin(c)

	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuthHandler_Logout(t *testing.T) {
	t.Run("requires authenticated caller", func(t *testing.T) {
		uc := &fakeAuthUsecase{}
		c, _ := newHandlerContext("")

		err := NewAuthHandler(uc).Logout(c)

		assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
		assert.Equal(t, uuid.Nil, uc.logoutUser)
	})

	t.Run("revokes caller session", func(t *testing.T) {
		uc := &fakeAuthUsecase{}
		c, rec := newHandlerContext("")
		userID := uuid.New()
		deliverycontext.SetUserID(c, userID)

		err := NewAuthHandler(uc).Logout(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, uc.logoutUser)
	})
}
