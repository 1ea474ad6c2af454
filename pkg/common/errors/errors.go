package errors

import (
	"errors"
	"fmt"
)

// Common error types used across the gosteal library

var (
	// ErrPoolClosed indicates that a task was submitted to a pool that has
	// been shut down
	ErrPoolClosed = errors.New("pool is closed")

	// ErrTaskCancelled indicates that a task was discarded before it ran,
	// typically because its pool was shut down while the task was still queued
	ErrTaskCancelled = errors.New("task cancelled before execution")

	// ErrNilTask indicates that a nil callable was submitted
	ErrNilTask = errors.New("nil task submitted")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrNotFound indicates that a named entry does not exist
	ErrNotFound = errors.New("not found")
)

// IsCancelled returns true if the error indicates the task never ran and
// never will
func IsCancelled(err error) bool {
	return errors.Is(err, ErrTaskCancelled)
}

// IsClosed returns true if the error indicates an operation on a closed pool
func IsClosed(err error) bool {
	return errors.Is(err, ErrPoolClosed)
}

// ValidationError describes a rejected configuration value.
type ValidationError struct {
	Module string
	Field  string
	Value  interface{}
	Reason string
	Hint   string
}

// NewValidationError creates a ValidationError for the given module and field.
func NewValidationError(module, field string, value interface{}, reason string) *ValidationError {
	return &ValidationError{
		Module: module,
		Field:  field,
		Value:  value,
		Reason: reason,
	}
}

// WithHint attaches a remediation hint and returns the same error for chaining.
func (e *ValidationError) WithHint(hint string) *ValidationError {
	e.Hint = hint
	return e
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: invalid %s=%v (%s)", e.Module, e.Field, e.Value, e.Reason)
	if e.Hint != "" {
		msg += " - " + e.Hint
	}
	return msg
}

// Unwrap makes every ValidationError match ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// IsValidationError returns true if the error is (or wraps) a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// OperationError describes a failed operation with its originating module.
type OperationError struct {
	Module    string
	Operation string
	Cause     error
	Context   string
}

// NewOperationError creates an OperationError wrapping the given cause.
func NewOperationError(module, operation string, cause error) *OperationError {
	return &OperationError{
		Module:    module,
		Operation: operation,
		Cause:     cause,
	}
}

// WithContext attaches contextual detail and returns the same error for chaining.
func (e *OperationError) WithContext(context string) *OperationError {
	e.Context = context
	return e
}

func (e *OperationError) Error() string {
	msg := fmt.Sprintf("%s.%s failed: %v", e.Module, e.Operation, e.Cause)
	if e.Context != "" {
		msg += " (" + e.Context + ")"
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *OperationError) Unwrap() error {
	return e.Cause
}
