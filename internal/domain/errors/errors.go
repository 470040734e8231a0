package errors

import (
	"errors"
	"fmt"
)

// The adapter's whole failure surface normalizes to one of these kinds.
// Controllers map kinds to transport status codes; nothing below this
// package ever exposes a provider SDK error type to callers.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrOwnershipMismatch   = errors.New("resource does not belong to this customer")
	ErrPreconditionFailed  = errors.New("operation precondition not met")
	ErrProviderUnavailable = errors.New("payment provider error")
	ErrValidationFailed    = errors.New("validation failed")
)

// OperationError carries the normalized kind, a human-readable cause and
// the operation that produced it.
type OperationError struct {
	Op      string // e.g. "payment_method.set_default"
	Kind    error  // one of the sentinel errors above
	Message string
}

func (e *OperationError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap exposes the kind so errors.Is(err, ErrNotFound) works through
// any number of fmt.Errorf %w wrappers added by orchestration.
func (e *OperationError) Unwrap() error {
	return e.Kind
}

func NotFound(op, message string) error {
	return &OperationError{Op: op, Kind: ErrNotFound, Message: message}
}

func OwnershipMismatch(op, message string) error {
	return &OperationError{Op: op, Kind: ErrOwnershipMismatch, Message: message}
}

func PreconditionFailed(op, message string) error {
	return &OperationError{Op: op, Kind: ErrPreconditionFailed, Message: message}
}

// Provider wraps an opaque upstream failure, preserving the provider's
// own message for observability.
func Provider(op, message string) error {
	return &OperationError{Op: op, Kind: ErrProviderUnavailable, Message: message}
}

// WithOp stamps the orchestration operation onto an error produced by a
// lower layer. Gateway errors arrive with the remote call's op; the
// composed operation's name takes precedence so callers see which
// logical step failed.
func WithOp(op string, err error) error {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return &OperationError{Op: op, Kind: opErr.Kind, Message: opErr.Message}
	}
	return &OperationError{Op: op, Kind: ErrProviderUnavailable, Message: err.Error()}
}

// ValidationError represents a field-level validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
