package billing

import (
	"errors"
	"fmt"
)

// Lifecycle and argument errors.
var (
	// ErrAlreadyIssued is returned when a pre-issuance field is mutated, or
	// issuance is attempted again, after the boleto has been issued.
	ErrAlreadyIssued = errors.New("boleto has already been issued")

	// ErrNotIssued is returned when a server-assigned identifier is read
	// before the boleto has been issued.
	ErrNotIssued = errors.New("boleto has not been issued yet")

	// ErrNotRefreshed is returned when server-side status data is read before
	// the boleto has been refreshed from the server.
	ErrNotRefreshed = errors.New("boleto has not been refreshed yet")

	// ErrInvalidCancellationReason is returned when a cancellation is
	// requested with a reason outside the enumerated set.
	ErrInvalidCancellationReason = errors.New("invalid cancellation reason")
)

// ValidationError reports a violated pre-issuance rule. Issuance always runs
// the full validation pipeline before any network call, so a boleto that
// fails a rule can never reach the server.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
