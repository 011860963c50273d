package categories

import (
	"errors"
	"fmt"
)

var (
	// ErrCategoryNotFound is returned when a category doesn't exist
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryAlreadyExists is returned when the (name, parent) pair is taken
	ErrCategoryAlreadyExists = errors.New("category already exists")
)

// ValidationError wraps input validation errors with field details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsNotFound checks if error indicates a category was not found
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCategoryNotFound)
}

// IsConflict checks if error indicates a duplicate category
func IsConflict(err error) bool {
	return errors.Is(err, ErrCategoryAlreadyExists)
}
