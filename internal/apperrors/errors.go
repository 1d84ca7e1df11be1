package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrInvalidDateType indicates a date or timestamp input that cannot be normalized.
var ErrInvalidDateType = errors.New("invalid date type")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrSystemInUse is returned when another session holds the operator lock.
var ErrSystemInUse = errors.New("system in use by another session")

// ErrConfirmationRequired guards destructive operations that need an explicit confirmation.
var ErrConfirmationRequired = errors.New("explicit confirmation required")

// AppError carries an HTTP-ish status code alongside a wrapped infrastructure error.
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
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}
