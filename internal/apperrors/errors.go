package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrAlreadyInitialized is returned when the currency has already been initialized.
var ErrAlreadyInitialized = errors.New("currency already initialized")

// ErrUnauthorized is returned when the call is not authorized by the required identity.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidAmount is returned for transfers of zero or negative amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientBalance is returned when the sender cannot cover the transfer.
var ErrInsufficientBalance = errors.New("insufficient balance")

// Stable kind codes surfaced to callers.
const (
	KindAlreadyInitialized  = "AlreadyInitialized"
	KindUnauthorized        = "Unauthorized"
	KindInvalidAmount       = "InvalidAmount"
	KindInsufficientBalance = "InsufficientBalance"
	KindValidation          = "Validation"
	KindInternal            = "Internal"

	// KindUnauthenticated is reported when no valid bearer token was presented.
	KindUnauthenticated = "Unauthenticated"
)

// AppError carries an HTTP status alongside a wrapped cause. Storage
// adapters use it for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Kind maps an error to its stable kind code.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAlreadyInitialized):
		return KindAlreadyInitialized
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidAmount):
		return KindInvalidAmount
	case errors.Is(err, ErrInsufficientBalance):
		return KindInsufficientBalance
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindInternal
	}
}

// HTTPStatus maps an error to the status code the API responds with.
func HTTPStatus(err error) int {
	switch Kind(err) {
	case KindAlreadyInitialized:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusForbidden
	case KindInvalidAmount, KindValidation:
		return http.StatusBadRequest
	case KindInsufficientBalance:
		return http.StatusUnprocessableEntity
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
