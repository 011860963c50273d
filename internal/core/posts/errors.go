package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrNotFound is returned when a post is not found by pid
	ErrNotFound = errors.New("post not found")

	// ErrLikeNotFound is returned by LikeRepository.Get when the user has not reacted
	ErrLikeNotFound = errors.New("like not found")

	// ErrNotAuthorized is returned when the caller does not own the post
	ErrNotAuthorized = errors.New("user not authorized to modify this post")

	// ErrUnauthenticated is returned when an operation needs a caller and none was given
	ErrUnauthenticated = errors.New("authentication required")

	// ErrConflict is returned when a concurrent write violated a uniqueness constraint
	ErrConflict = errors.New("conflicting write")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
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

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string // e.g., "post"
	ID       string // Resource identifier
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, id string) error {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr) || errors.Is(err, ErrNotFound)
}

// IsConflict checks if error is due to duplicate/conflict
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}
