package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the acting user lacks rights for the operation,
// e.g. a staff user without an active shop assignment.
var ErrForbidden = errors.New("forbidden")

// ErrForbiddenRole indicates a registration request asked for a role that may
// not be self-assigned (staff accounts are created through the owner flow).
var ErrForbiddenRole = errors.New("role may not be self-assigned")

// AppError wraps a lower-level error with a status code and message so the
// repository layer can attach context while handlers keep errors.Is matching
// on the wrapped sentinel.
type AppError struct {
	Code    int
	Message string
	Err     error
}

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
