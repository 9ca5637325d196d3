// Package errors defines the structured application error used across
// handlers, services, and the store boundary.
package errors

import (
	"fmt"
	"net/http"

	"github.com/CampusVoice/campus-voice-backend/logger"
)

type ErrorType string

const (
	ValidationError      ErrorType = "VALIDATION_ERROR"
	NotFoundError        ErrorType = "NOT_FOUND"
	AuthError            ErrorType = "AUTHENTICATION_ERROR"
	DatabaseError        ErrorType = "DATABASE_ERROR"
	ServerError          ErrorType = "SERVER_ERROR"
	ForbiddenError       ErrorType = "FORBIDDEN"
	UnsupportedTypeError ErrorType = "UNSUPPORTED_TYPE"
	TooLargeError        ErrorType = "TOO_LARGE"
	RateLimitError       ErrorType = "RATE_LIMITED"
)

// AppError represents a structured application error.
type AppError struct {
	Type       ErrorType `json:"type"`
	Code       string    `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Raw        error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Detail)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// GetHTTPStatus returns the HTTP status the error maps to.
func (e *AppError) GetHTTPStatus() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return getHTTPStatus(e.Type)
}

// Unwrap exposes the underlying error for errors.Is/As chains.
func (e *AppError) Unwrap() error {
	return e.Raw
}

// New creates a new AppError.
func New(errType ErrorType, message string, detail string) *AppError {
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     detail,
		HTTPStatus: getHTTPStatus(errType),
	}
}

// Wrap wraps a raw error with AppError context.
func Wrap(err error, errType ErrorType, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Type:       errType,
		Message:    message,
		Detail:     err.Error(),
		HTTPStatus: getHTTPStatus(errType),
		Raw:        err,
	}
}

// ValidationFailed reports a request that fails model validation. It never
// reaches the store.
func ValidationFailed(message string, details string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       "validation_failed",
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingRequiredField reports an empty required field on a candidate record.
func MissingRequiredField(field string) *AppError {
	return &AppError{
		Type:       ValidationError,
		Code:       "missing_required_field",
		Message:    fmt.Sprintf("%s must not be blank", field),
		HTTPStatus: http.StatusBadRequest,
	}
}

// UnsupportedType reports an attachment whose media type is not allowed.
func UnsupportedType(detected string) *AppError {
	return &AppError{
		Type:       UnsupportedTypeError,
		Code:       "unsupported_type",
		Message:    "Attachment type is not allowed",
		Detail:     fmt.Sprintf("detected media type: %s", detected),
		HTTPStatus: http.StatusBadRequest,
	}
}

// TooLarge reports an attachment exceeding the size ceiling.
func TooLarge(size, limit int64) *AppError {
	return &AppError{
		Type:       TooLargeError,
		Code:       "file_too_large",
		Message:    "Attachment exceeds the maximum size",
		Detail:     fmt.Sprintf("size %d exceeds maximum of %d bytes", size, limit),
		HTTPStatus: http.StatusBadRequest,
	}
}

// InvalidCredential reports a failed sign-in. The message deliberately does
// not distinguish an unknown email from a wrong password.
func InvalidCredential() *AppError {
	return &AppError{
		Type:       AuthError,
		Code:       "invalid_credential",
		Message:    "Email or password incorrect",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// RecordNotFound reports a delete or lookup against an id the store does not hold.
func RecordNotFound(id string) *AppError {
	return &AppError{
		Type:       NotFoundError,
		Code:       "record_not_found",
		Message:    "Feedback record not found",
		Detail:     fmt.Sprintf("ID: %s", id),
		HTTPStatus: http.StatusNotFound,
	}
}

// NewDatabaseError wraps a store failure. The original error is logged but the
// response carries only a generic notice.
func NewDatabaseError(err error) *AppError {
	logger.GetLogger().Errorw("Database error", "error", err)
	return &AppError{
		Type:       DatabaseError,
		Code:       "store_error",
		Message:    "Store operation failed",
		Detail:     "Please try again later",
		HTTPStatus: http.StatusInternalServerError,
		Raw:        err,
	}
}

func InternalServerError(message string) *AppError {
	return &AppError{
		Type:       ServerError,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
	}
}

func Forbidden(message string, details string) *AppError {
	return &AppError{
		Type:       ForbiddenError,
		Message:    message,
		Detail:     details,
		HTTPStatus: http.StatusForbidden,
	}
}

// Unauthorized reports a request without a valid authenticated identity.
func Unauthorized(code, message string) *AppError {
	return &AppError{
		Type:       AuthError,
		Code:       code,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// RateLimitExceeded reports a request rejected by the rate limiter.
// retryAfterSeconds is surfaced so clients can back off.
func RateLimitExceeded(message string, retryAfterSeconds int) *AppError {
	return &AppError{
		Type:       RateLimitError,
		Code:       "rate_limited",
		Message:    message,
		Detail:     fmt.Sprintf("retry after %d seconds", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

func getHTTPStatus(errType ErrorType) int {
	switch errType {
	case ValidationError, UnsupportedTypeError, TooLargeError:
		return http.StatusBadRequest
	case NotFoundError:
		return http.StatusNotFound
	case AuthError:
		return http.StatusUnauthorized
	case ForbiddenError:
		return http.StatusForbidden
	case RateLimitError:
		return http.StatusTooManyRequests
	case DatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
