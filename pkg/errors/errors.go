// Package errors provides structured error types for molfig.
//
// Every failure that can reach a user (CLI exit message, HTTP response
// body) carries a machine-readable [Code] next to its message, so
// callers can branch on the category without string matching.
//
// # Error Codes
//
//   - INVALID_*: input validation failures (molecule, options, names)
//   - TOOLKIT_ERROR: the molecule source could not supply an attribute
//   - FILE_NOT_FOUND: an input path does not exist
//   - INTERNAL_ERROR, UNSUPPORTED: everything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidAtom, "invalid entry atom number %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidAtom) {
//	    // Handle validation error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidAtom   Code = "INVALID_ATOM"
	ErrCodeInvalidBond   Code = "INVALID_BOND"
	ErrCodeInvalidRange  Code = "INVALID_RANGE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidOption Code = "INVALID_OPTION"
	ErrCodeInvalidSubmol Code = "INVALID_SUBMOL"

	// Molecule source errors
	ErrCodeToolkit Code = "TOOLKIT_ERROR"

	// Resource not found errors
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

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
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	var h *HydrogenError
	if errors.As(err, &h) {
		return h.Code() == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error carries no code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var h *HydrogenError
	if errors.As(err, &h) {
		return h.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HydrogenError reports an atom whose implicit hydrogen count could not
// be determined by the molecule source. In lenient mode the count is
// treated as zero instead.
type HydrogenError struct {
	Atom   int    // 1-based atom number
	Reason string // Source-provided reason, may be empty
}

// Error implements the error interface.
func (e *HydrogenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("atom %d: cannot count implicit hydrogens: %s", e.Atom, e.Reason)
	}
	return fmt.Sprintf("atom %d: cannot count implicit hydrogens", e.Atom)
}

// Code returns the error code for this error type.
func (e *HydrogenError) Code() Code {
	return ErrCodeToolkit
}
