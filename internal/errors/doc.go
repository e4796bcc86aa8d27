// Package apperrors defines structured application error types,
// distinguishing error classes (configuration, evaluation, timeout) and
// carrying the underlying cause.
//
// All types wrap with fmt.Errorf and %w and implement Unwrap, so
// errors.Is and errors.As see through them.
package apperrors
