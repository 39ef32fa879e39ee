// internal/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// General errors
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("already exists")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrRateLimited     = errors.New("rate limit exceeded")
	ErrExternalService = errors.New("external service error")

	// ErrTenantMismatch marks a record that exists but belongs to another
	// tenant. It matches ErrNotFound so callers answer both the same way.
	ErrTenantMismatch = fmt.Errorf("%w: tenant mismatch", ErrNotFound)

	// Tenant errors
	ErrNoActiveTenant = errors.New("no active tenant")

	// Membership errors
	ErrSoleOwner        = fmt.Errorf("%w: company must keep at least one active owner", ErrForbidden)
	ErrInsufficientRole = fmt.Errorf("%w: insufficient role", ErrForbidden)

	// Registration and invite errors
	ErrEmailNotVerified = fmt.Errorf("%w: email address not verified", ErrForbidden)
	ErrEmailMismatch    = fmt.Errorf("%w: invite was issued to a different email address", ErrForbidden)
	ErrDomainNotAllowed = fmt.Errorf("%w: email domain not allowed for this company", ErrForbidden)
	ErrInviteNotFound   = fmt.Errorf("%w: invite not found or expired", ErrNotFound)
	ErrNoDomainMatch    = fmt.Errorf("%w: no company accepts this email domain", ErrNotFound)

	// Bid pipeline errors
	ErrStaleState        = errors.New("stage state changed concurrently")
	ErrInvalidTransition = errors.New("invalid stage transition")
	ErrStageOutOfOrder   = errors.New("previous stage is not approved")
	ErrBidLocked         = errors.New("bid is completed and cannot be deleted")
	ErrActiveBids        = errors.New("client company has active bids")
)

// FieldError names a single offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned for malformed or missing input.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ConflictError is returned when a unique key is already taken.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// RateLimitError carries the delay after which the caller may retry.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

// ExternalServiceError wraps a failed or timed out upstream call.
// It is always safe for the caller to retry.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func (e *ExternalServiceError) Is(target error) bool {
	return target == ErrExternalService
}
