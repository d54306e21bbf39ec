// Package errors provides structured error types for roadtower.
//
// Every failure that reaches a user is one of a small set of kinds, each
// identified by a [Code]:
//   - MISSING_INPUT: the user identifier was not supplied
//   - NETWORK_ERROR: the roadmap service could not be reached
//   - BACKEND_ERROR: the service answered with a non-OK status
//   - MALFORMED_PAYLOAD: the roadmap payload is not valid JSON
//   - MISSING_PAYLOAD: the render view found no payload to draw
//
// All of them are terminal for the operation that produced them; nothing in
// roadtower retries automatically.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingInput, "please enter a user ID")
//	if errors.Is(err, errors.ErrCodeMissingInput) {
//	    // prompt again
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "could not connect to the backend server")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeMissingInput Code = "MISSING_INPUT"
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// Service errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeBackend Code = "BACKEND_ERROR"

	// Payload errors
	ErrCodeMalformedPayload Code = "MALFORMED_PAYLOAD"
	ErrCodeMissingPayload   Code = "MISSING_PAYLOAD"

	// Local resources
	ErrCodeFileNotFound  Code = "FILE_NOT_FOUND"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// UnknownBackendError is the message used when the service fails without
// saying why.
const UnknownBackendError = "Unknown error"

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error or *BackendError.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the chain holds neither an *Error nor a
// *BackendError.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix; for
// *BackendError, the service's own message.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var be *BackendError
	if errors.As(err, &be) {
		return be.Message
	}
	return err.Error()
}

// BackendError is returned when the roadmap service answers with a non-OK
// status. Message is the service's own "error" field, or
// [UnknownBackendError] when the body carried none.
type BackendError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.Status, e.Message)
}

// Code returns the error code for this error type.
func (e *BackendError) Code() Code {
	return ErrCodeBackend
}
