package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidRepoURL indicates that a user-supplied repository URL does not
	// match the required https://<host>/<owner>/<repo> shape
	ErrInvalidRepoURL = errors.New("invalid repository url")

	// ErrSourceUnavailable indicates that a repository-source call failed
	// with a non-success status or a transport error
	ErrSourceUnavailable = errors.New("repository source unavailable")

	// ErrEmbeddingUnavailable indicates that the embedding provider failed or
	// the input text was empty
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}
