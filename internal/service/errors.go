package service

import (
	"errors"
	"fmt"

	"github.com/escartian/FitByte/internal/repository"
)

// --- Error Definitions ---
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrDuplicateEmail     = errors.New("a user with this email address already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrWorkoutNotFound    = errors.New("workout not found")
	ErrExerciseNotFound   = errors.New("exercise not found")
	ErrDuplicateExercise  = errors.New("an exercise with this name already exists")
	ErrImageNotFound      = errors.New("exercise image not found")
	ErrHistoryNotFound    = errors.New("completed workout not found in history")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrUnauthorized       = errors.New("not allowed to access this resource")
	ErrStorageUnavailable = errors.New("storage temporarily unavailable, please retry")
	ErrPersistence        = errors.New("failed to persist changes")
)

// ValidationError carries the offending field. errors.Is(err, ErrValidationFailed) holds for every ValidationError.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// storageErr translates repository failures that have no domain-specific meaning.
func storageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrStorageUnavailable):
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	case errors.Is(err, repository.ErrNotAcknowledged):
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	default:
		return err
	}
}
