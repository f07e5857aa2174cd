// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/response"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/errors"
	"gatekeeper/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AuthHandler exposes the credential operations over HTTP.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Signup handles account creation.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Signup successful")
}

// Signin handles credential login.
func (h *AuthHandler) Signin(c echo.Context) error {
	var input usecase.SigninInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	output, err := h.uc.Signin(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Signin successful")
}

// Refresh exchanges a refresh token for a new pair.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var input usecase.RefreshInput
	if err := bindAndValidate(c, &input); err != nil {
		return err
	}

	output, err := h.uc.Refresh(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Token refreshed")
}

// Logout revokes the authenticated caller's refresh session.
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return errors.WithStack(domainerrors.ErrUnauthorized)
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

func bindAndValidate(c echo.Context, input any) error {
	if err := c.Bind(input); err != nil {
		return errors.Wrap(domainerrors.ErrInvalidInput, err.Error())
	}

	return errors.WithStack(c.Validate(input))
}
