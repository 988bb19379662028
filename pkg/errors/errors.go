package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")

	ErrClassroomBusy = fmt.Errorf("classroom busy: %w", ErrConflict)
	ErrTeacherBusy   = fmt.Errorf("teacher busy: %w", ErrConflict)
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeConflict      = "CONFLICT"
	ErrCodeDatabaseError = "DATABASE_ERROR"
	ErrCodeCacheError    = "CACHE_ERROR"
)

func WrapValidation(format string, args ...any) *BusinessError {
	return NewBusinessError(
		ErrCodeValidation,
		fmt.Sprintf(format, args...),
		ErrValidation,
	)
}

func WrapNotFound(entity, id string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotFound,
		fmt.Sprintf("%s with ID %s not found", entity, id),
		ErrNotFound,
	)
}

// WrapConflict keeps the concrete conflict (ErrClassroomBusy, ErrTeacherBusy) reachable via errors.Is.
func WrapConflict(reason error) *BusinessError {
	return NewBusinessError(
		ErrCodeConflict,
		reason.Error(),
		reason,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

// FromStore passes business errors through and wraps anything else as a database error.
func FromStore(err error) error {
	if err == nil {
		return nil
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return err
	}
	return WrapDatabaseError(err)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}

// Message returns the client-facing message of err, falling back to err.Error().
func Message(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}
