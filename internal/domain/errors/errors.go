package errors

import (
	"net/http"

	"gatekeeper/internal/errors"
)

// Kind tags every failure the auth operations can report to a caller.
type Kind string

const (
	KindConflict         Kind = "conflict"
	KindUnauthorized     Kind = "unauthorized"
	KindHashingFailed    Kind = "hashing_failed"
	KindUpdateHashFailed Kind = "update_hash_failed"
	KindValidation       Kind = "validation"
	KindRateLimited      Kind = "rate_limited"
	KindInternal         Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
	Kind() Kind
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) Kind() Kind {
	return e.kind
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() string {
	return e.details
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails still satisfy errors.Is against the predefined sentinel.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		kind:      e.kind,
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Messages shared by several errors. Credential failures deliberately use one
// text so callers cannot tell a missing account from a wrong password.
const (
	MessageAuthenticationFailed = "Authentication failed. Please check your credentials."
	MessageInternal             = "An unexpected error occurred. Please try again later."
)

// Predefined error types
var (
	ErrEmailAlreadyRegistered = NewBaseError(
		KindConflict,
		http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED",
		"A user with this email already exists.",
		"",
	)

	ErrUnauthorized = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"AUTHENTICATION_FAILED",
		MessageAuthenticationFailed,
		"",
	)

	ErrAccessDenied = NewBaseError(
		KindUnauthorized,
		http.StatusUnauthorized,
		"ACCESS_DENIED",
		"Access denied.",
		"",
	)

	ErrHashingFailed = NewBaseError(
		KindHashingFailed,
		http.StatusInternalServerError,
		"HASHING_FAILED",
		"Failed to process credentials.",
		"",
	)

	ErrUpdateHashFailed = NewBaseError(
		KindUpdateHashFailed,
		http.StatusInternalServerError,
		"UPDATE_HASH_FAILED",
		"Failed to persist the session.",
		"",
	)

	ErrValidationFailed = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed.",
		"",
	)

	ErrInvalidInput = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Malformed request body.",
		"",
	)

	ErrTooManyRequests = NewBaseError(
		KindRateLimited,
		http.StatusTooManyRequests,
		"TOO_MANY_REQUESTS",
		"Too many requests. Please try again later.",
		"",
	)

	ErrInternal = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		MessageInternal,
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message never exposes the driver error.
func (e *DatabaseExecuteError) Message() string {
	return MessageInternal
}

func (e *DatabaseExecuteError) Details() string {
	return e.details
}

// KindOf resolves err to the kind of the first AppError in its chain.
// Errors that carry no AppError are internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}
