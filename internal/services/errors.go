package services

import (
	"errors"
	"fmt"

	apperrors "github.com/friendr/quiz-session/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Session specific errors
	ErrSessionNotFound = errors.New("quiz session not found")
	ErrUnknownField    = errors.New("unknown quiz field")

	// Submission specific errors
	ErrSubmissionBusy      = errors.New("a submission is already in flight")
	ErrSubmissionDiscarded = errors.New("submission result discarded after session reset")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// TransportError reports a failed round-trip to the matching backend. The
// answers are left intact so the caller may submit again.
type TransportError struct {
	Err error
}

func (te *TransportError) Error() string {
	return fmt.Sprintf("submission failed: %v", te.Err)
}

func (te *TransportError) Unwrap() error {
	return te.Err
}

// ===== ERROR HELPERS =====

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return true
	}
	var ves apperrors.ValidationErrors
	return errors.As(err, &ves)
}

// IsBusy checks if error was caused by an outstanding submission
func IsBusy(err error) bool {
	return errors.Is(err, ErrSubmissionBusy)
}

// IsTransport checks if error represents a failed backend round-trip
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}
