// Package errors provides error types and utilities for smsdedup.
// It extends the standard errors package with additional context and wrapping capabilities.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// ErrInvalidInput indicates invalid input was provided
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrUnexpectedTag indicates a backup document contained an element
	// the reader does not recognize as a message record
	ErrUnexpectedTag = errors.New("unexpected element tag")

	// ErrEmptyRecord indicates a message record carried no usable fields at all
	ErrEmptyRecord = errors.New("empty message record")

	// ErrMalformedDocument indicates a backup document could not be parsed
	ErrMalformedDocument = errors.New("malformed backup document")
)

// wrappedError wraps an error with additional context
type wrappedError struct {
	msg   string
	cause error
}

// Error implements the error interface
func (e *wrappedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.cause)
	}
	return e.msg
}

// Unwrap returns the underlying error
func (e *wrappedError) Unwrap() error {
	return e.cause
}

// Wrap wraps an error with additional context message.
// If err is nil, Wrap returns nil.
//
// Example:
//   err := someOperation()
//   if err != nil {
//       return errors.Wrap(err, "failed to perform operation")
//   }
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   msg,
		cause: err,
	}
}

// Wrapf wraps an error with a formatted context message.
// If err is nil, Wrapf returns nil.
//
// Example:
//   err := someOperation(path)
//   if err != nil {
//       return errors.Wrapf(err, "failed to process file %s", path)
//   }
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg:   fmt.Sprintf(format, args...),
		cause: err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
//
// Example:
//   if errors.Is(err, errors.ErrUnexpectedTag) {
//       // Handle malformed backup
//   }
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type.
// This is a convenience wrapper around errors.As from the standard library.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err.
// This is a convenience wrapper around errors.Unwrap from the standard library.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New from the standard library.
func New(msg string) error {
	return errors.New(msg)
}

// Errorf formats according to a format specifier and returns the string as a value that satisfies error.
// This is a convenience wrapper around fmt.Errorf from the standard library.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
// This is a convenience wrapper around errors.Join from the standard library.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// IsInvalidInput reports whether the error is an invalid input error
func IsInvalidInput(err error) bool {
	return Is(err, ErrInvalidInput)
}

// IsNotFound reports whether the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, ErrNotFound)
}

// IsUnexpectedTag reports whether the error is an unexpected tag error
func IsUnexpectedTag(err error) bool {
	return Is(err, ErrUnexpectedTag)
}

// IsEmptyRecord reports whether the error is an empty record error
func IsEmptyRecord(err error) bool {
	return Is(err, ErrEmptyRecord)
}

// IsMalformedDocument reports whether the error is a malformed document error
func IsMalformedDocument(err error) bool {
	return Is(err, ErrMalformedDocument)
}
