package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Application exit codes signal the outcome of a zcalc run to the OS.
const (
	ExitSuccess       = 0   // Successful execution.
	ExitErrorGeneric  = 1   // Generic error.
	ExitErrorEval     = 2   // An expression failed to evaluate (bad operand, division by zero, ...).
	ExitErrorMem      = 3   // An operation exceeded the memory budget.
	ExitErrorConfig   = 4   // Invalid flags, environment or config file.
	ExitErrorCanceled = 130 // Canceled (e.g. SIGINT).
)

// ConfigError represents a user configuration error, such as invalid
// flags or values. The application cannot proceed on incorrect input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// EvalError encapsulates an expression evaluation failure while
// preserving the original cause, so callers can distinguish a bad
// operand from an out-of-memory condition with errors.Is.
type EvalError struct {
	// Op is the operation that failed ("div", "powm", ...).
	Op string
	// Cause is the underlying error.
	Cause error
}

// Error returns the operation name with the underlying message.
func (e EvalError) Error() string {
	if e.Op == "" {
		return e.Cause.Error()
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Cause.Error())
}

// Unwrap returns the original wrapped error for errors.Is / errors.As.
func (e EvalError) Unwrap() error { return e.Cause }

// NewEvalError wraps cause as the failure of the named operation.
func NewEvalError(op string, cause error) error {
	return EvalError{Op: op, Cause: cause}
}

// TimeoutError represents an evaluation timeout. It captures the
// operation name and the duration limit that was exceeded.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration after which the operation was cut off.
	Limit time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// ValidationError represents an input validation failure. It identifies
// which field failed and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// MemoryError represents a memory budget exceeded condition. It captures
// the requested, available, and limit values for diagnostics.
type MemoryError struct {
	// Requested is the number of bytes the operation needed.
	Requested uint64
	// Available is the number of bytes currently available.
	Available uint64
	// Limit is the configured memory limit in bytes.
	Limit uint64
}

// Error returns a formatted message describing the memory error.
func (e MemoryError) Error() string {
	return fmt.Sprintf("memory error: requested %d bytes, available %d bytes (limit: %d)", e.Requested, e.Available, e.Limit)
}

// WrapError wraps an error with additional context using fmt.Errorf and
// %w, preserving the chain for errors.Is and errors.As. A nil err stays
// nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks whether err is a context cancellation or
// deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
