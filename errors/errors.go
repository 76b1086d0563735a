// Package errors provides standardized error handling patterns for datastor
// components. It includes error classification, standard error variables, and
// helper functions for consistent error wrapping and classification across
// the storage layer.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorIO represents filesystem errors; the underlying error is
	// preserved verbatim and is fatal for the call that produced it
	ErrorIO ErrorClass = iota
	// ErrorInvalid represents errors due to invalid input (serialization
	// failure, payload too large for the frame length field)
	ErrorInvalid
	// ErrorConflict represents collisions with existing on-disk or
	// cross-process state (path already exists, lock already held)
	ErrorConflict
	// ErrorData represents counter or format integrity violations
	// (run/day/frame counter overflow, corrupt segment header)
	ErrorData
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorIO:
		return "io"
	case ErrorInvalid:
		return "invalid"
	case ErrorConflict:
		return "conflict"
	case ErrorData:
		return "data"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Segment and path errors
	ErrAlreadyExists = errors.New("target path already exists")
	ErrNotADirectory = errors.New("root path is not a directory")

	// Locking errors
	ErrAlreadyLocked = errors.New("store root already locked by another writer")

	// Counter and format errors
	ErrCounterOverflow = errors.New("counter increment would overflow")
	ErrPayloadTooLarge = errors.New("payload exceeds frame length field")
	ErrInvalidHeader   = errors.New("invalid segment header")
	ErrInvalidFrame    = errors.New("frame payload has wrong type for format")

	// Archival service lifecycle errors
	ErrAlreadyStarted = errors.New("archival service already started")
	ErrNotStarted     = errors.New("archival service not started")
	ErrAlreadyStopped = errors.New("archival service already stopped")

	// Handle lifecycle errors
	ErrClosed = errors.New("store handle is closed")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Component string
	Operation string
	Action    string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Err == nil {
		return fmt.Sprintf("%s.%s: %s failed", ce.Component, ce.Operation, ce.Action)
	}
	return fmt.Sprintf("%s.%s: %s failed: %v", ce.Component, ce.Operation, ce.Action, ce.Err)
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsConflict checks if an error is a state collision (AlreadyExists or lock
// contention). Conflicts are fatal for the call with no implicit retry.
func IsConflict(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorConflict
	}

	return errors.Is(err, ErrAlreadyExists) || errors.Is(err, ErrAlreadyLocked)
}

// IsInvalid checks if an error is due to invalid input
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrPayloadTooLarge) || errors.Is(err, ErrInvalidFrame)
}

// IsData checks if an error is a counter or format integrity violation
func IsData(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorData
	}

	return errors.Is(err, ErrCounterOverflow) || errors.Is(err, ErrInvalidHeader)
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class
	}

	switch {
	case IsConflict(err):
		return ErrorConflict
	case IsInvalid(err):
		return ErrorInvalid
	case IsData(err):
		return ErrorData
	default:
		// Unclassified errors are filesystem I/O and propagate verbatim.
		return ErrorIO
	}
}

// newClassified creates a new classified error.
// This is an internal helper - use the Wrap* functions instead.
func newClassified(class ErrorClass, err error, component, operation, action string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Component: component,
		Operation: operation,
		Action:    action,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapIO wraps a filesystem error with context, preserving the underlying
// error for errors.Is/As inspection
func WrapIO(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return newClassified(ErrorIO, err, component, method, action)
}

// WrapInvalid wraps an error as invalid input with context
func WrapInvalid(err error, component, method, action string) error {
	return newClassified(ErrorInvalid, err, component, method, action)
}

// WrapConflict wraps an error as a state collision with context
func WrapConflict(err error, component, method, action string) error {
	return newClassified(ErrorConflict, err, component, method, action)
}

// WrapData wraps an error as a data integrity violation with context
func WrapData(err error, component, method, action string) error {
	return newClassified(ErrorData, err, component, method, action)
}

// Is reports whether any error in err's chain matches target.
// Re-exported so callers don't need to import both this package and the
// standard library errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}
