// Package errors provides the structured error taxonomy used across graphkit.
//
// Every failure surfaced by the graph engine, the views and the import
// pipeline is an [*Error] carrying a machine-readable [Code]. Callers branch
// on the code rather than on message text:
//
//	if errors.Is(err, errors.ErrCodeUnsupported) {
//	    // the graph (or view) refuses this mutation
//	}
//
// # Error Codes
//
//   - INVALID_ARGUMENT: missing endpoint, duplicate identity, bad parameter
//   - UNSUPPORTED: mutation through a read-only surface, weight write on an
//     unweighted graph
//   - NO_SUCH_ELEMENT: lookup of an absent vertex, edge or attribute
//   - INDEX_OUT_OF_BOUNDS: internal index violation (a core bug)
//   - NULL_POINTER: a required identity or collaborator is missing
//   - CLASS_CAST: a value cannot be coerced to the requested type
//   - IMPORT_ERROR: a parser failure, with format and position attached
//   - INVALID_STATE: bounded re-entrancy exceeded, concurrent modification
//
// Wrapping keeps the cause reachable through the standard library:
//
//	err := errors.Wrap(errors.ErrCodeImport, parseErr, "gml: import %s", path)
//	stderrors.Is(err, parseErr) // true
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	ErrCodeInvalidArgument  Code = "INVALID_ARGUMENT"
	ErrCodeUnsupported      Code = "UNSUPPORTED"
	ErrCodeNoSuchElement    Code = "NO_SUCH_ELEMENT"
	ErrCodeIndexOutOfBounds Code = "INDEX_OUT_OF_BOUNDS"
	ErrCodeNullPointer      Code = "NULL_POINTER"
	ErrCodeClassCast        Code = "CLASS_CAST"
	ErrCodeImport           Code = "IMPORT_ERROR"
	ErrCodeInvalidState     Code = "INVALID_STATE"

	// Configuration errors (CLI and server only)
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
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
// Only the outermost *Error in the chain is consulted, so an IMPORT_ERROR
// wrapping an INVALID_ARGUMENT reports IMPORT_ERROR.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
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

// Shorthands for the codes raised most often by the engine.

// InvalidArgument returns an INVALID_ARGUMENT error.
func InvalidArgument(format string, args ...any) *Error {
	return New(ErrCodeInvalidArgument, format, args...)
}

// Unsupported returns an UNSUPPORTED error.
func Unsupported(format string, args ...any) *Error {
	return New(ErrCodeUnsupported, format, args...)
}

// NoSuchElement returns a NO_SUCH_ELEMENT error.
func NoSuchElement(format string, args ...any) *Error {
	return New(ErrCodeNoSuchElement, format, args...)
}

// PositionError locates a failure inside a textual input.
// Parsers return it so that the importer can report where input went wrong.
type PositionError struct {
	Format string // format tag, e.g. "gml"
	Offset int64  // byte offset, -1 when unknown
	Line   int    // 1-based line, 0 when unknown
	Err    error
}

// Error implements the error interface.
func (e *PositionError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: %v", e.Format, e.Line, e.Err)
	case e.Offset >= 0:
		return fmt.Sprintf("%s: offset %d: %v", e.Format, e.Offset, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Format, e.Err)
	}
}

// Unwrap returns the underlying parse failure.
func (e *PositionError) Unwrap() error {
	return e.Err
}

// Code returns the error code for this error type.
func (e *PositionError) Code() Code {
	return ErrCodeImport
}
