package review

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-hanzi/internal/domain"
)

// Common error types for the review session
var (
	// ErrDeckExhausted indicates that no card is due and no unseen card is left.
	ErrDeckExhausted = errors.New("deck complete: no due or new cards left")

	// ErrCardNotFound indicates that the requested character is not in the deck.
	ErrCardNotFound = errors.New("card not found")

	// ErrNoPreviousCard indicates that there is no card to go back to.
	ErrNoPreviousCard = errors.New("no previous card")

	// ErrNoPronunciations indicates that the current card has no dictionary
	// pronunciations, so an answer cannot be judged.
	ErrNoPronunciations = errors.New("card has no known pronunciations")

	// ErrPersist indicates that the deck was changed in memory but could not be saved.
	ErrPersist = errors.New("failed to save deck")

	// ErrUnknownCharacters indicates that the loaded deck has characters
	// missing from the dictionary.
	ErrUnknownCharacters = domain.ErrUnknownCharacters
)

// ServiceError wraps errors from the review session with additional context.
// This allows consumers to differentiate between different types of service errors
// using errors.As instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "load", "submit_answer")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{Operation: operation, Message: message, Err: err}
}

// NewLoadError returns a new ServiceError for the load operation.
func NewLoadError(message string, err error) *ServiceError {
	return newServiceError("load", message, err)
}

// NewSubmitAnswerError returns a new ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return newServiceError("submit_answer", message, err)
}

// NewAdvanceError returns a new ServiceError for the advance operation.
func NewAdvanceError(message string, err error) *ServiceError {
	return newServiceError("advance", message, err)
}

// NewNavigationError returns a new ServiceError for back and goto.
func NewNavigationError(message string, err error) *ServiceError {
	return newServiceError("navigate", message, err)
}

// NewEditCardError returns a new ServiceError for note and optional edits.
func NewEditCardError(message string, err error) *ServiceError {
	return newServiceError("edit_card", message, err)
}

// NewPersistError returns a new ServiceError wrapping ErrPersist and the store failure.
func NewPersistError(err error) *ServiceError {
	return newServiceError("save", "changes kept in memory", fmt.Errorf("%w: %w", ErrPersist, err))
}
