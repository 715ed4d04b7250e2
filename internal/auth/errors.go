package auth

import (
	"errors"
	"fmt"

	"intersdk/pkg/models"
)

// ErrScopeNotGranted is returned when the server issues a token whose scope
// does not cover what was requested. This is fatal and never retried.
var ErrScopeNotGranted = errors.New("requested scope was not granted")

// ScopeError carries the requested and actually granted scopes of a failed
// authorization.
type ScopeError struct {
	Requested []models.Scope
	Granted   []models.Scope
}

// Error implements the error interface.
func (e *ScopeError) Error() string {
	return fmt.Sprintf("auth: requested scope %v was not granted (got %v)", e.Requested, e.Granted)
}

// Is matches ScopeError against ErrScopeNotGranted.
func (e *ScopeError) Is(target error) bool {
	return target == ErrScopeNotGranted
}
