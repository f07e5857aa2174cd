package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "gatekeeper/internal/delivery/context"
	"gatekeeper/internal/delivery/http/response"
	"gatekeeper/internal/delivery/http/validator"
	domainerrors "gatekeeper/internal/domain/errors"
	"gatekeeper/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is echo's HTTPErrorHandler. Only AppError messages, echo
// errors and validation results reach the client; anything else becomes a
// generic 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	if writeErr := m.render(err, c); writeErr != nil {
		m.log(c).Error("Failed to write error response", slog.Any("error", writeErr))
	}
}

func (m *ErrorMiddleware) render(err error, c echo.Context) error {
	if fields := validator.Fields(err); fields != nil {
		return response.ValidationError(c,
			domainerrors.ErrValidationFailed.ErrorCode(),
			domainerrors.ErrValidationFailed.Message(),
			fields,
		)
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnexpected(c, err)
		}

		return response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), appErr.Details())
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Code >= http.StatusInternalServerError {
			m.logUnexpected(c, err)

			return response.InternalServerError(c, domainerrors.ErrInternal.ErrorCode(), domainerrors.MessageInternal)
		}

		return response.Error(c, httpErr.Code, "HTTP_ERROR", httpErrorMessage(httpErr), nil)
	}

	m.logUnexpected(c, err)

	return response.InternalServerError(c, domainerrors.ErrInternal.ErrorCode(), domainerrors.MessageInternal)
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}

func (m *ErrorMiddleware) logUnexpected(c echo.Context, err error) {
	m.log(c).Error("Unhandled error",
		slog.String("error", fmt.Sprintf("%+v", err)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}

func httpErrorMessage(httpErr *echo.HTTPError) string {
	if msg, ok := httpErr.Message.(string); ok {
		return msg
	}
	if httpErr.Message == nil {
		return http.StatusText(httpErr.Code)
	}

	return fmt.Sprint(httpErr.Message)
}
