package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a malformed registration payload or query.
// Errors itemizes every problem found; callers see the full list.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// NewValidationError builds a ValidationError from itemized messages.
func NewValidationError(errs ...string) *ValidationError {
	return &ValidationError{Errors: errs}
}

// AuthorizationError reports a rejected token or an insufficient
// trust context. RequiresElevation tells the caller whether raising
// the trust score could change the outcome.
type AuthorizationError struct {
	Reason             string
	RequiresElevation  bool
	RequiredTrustLevel TrustLevel
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

// NotFoundError reports an unknown service or health record.
type NotFoundError struct {
	Kind string // "service" or "health"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// UpstreamError reports an unreachable or failing authority.
// Call sites decide fail-open vs fail-closed; the error itself
// only names the authority and keeps the cause.
type UpstreamError struct {
	Authority string
	Err       error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s authority unavailable: %v", e.Authority, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
