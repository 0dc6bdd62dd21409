// internal/core/errors.go
package core

import "fmt"

// Error represents a structured error with code and optional cause.
type Error struct {
	Code    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is matching by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// WrapError creates a new error with the same code but with a cause.
func WrapError(base *Error, cause error) *Error {
	return &Error{
		Code:    base.Code,
		Message: base.Message,
		Cause:   cause,
	}
}

// Predefined errors.
//
// Row-level validation failures are deliberately absent: invalid rows are
// excluded and counted by the normalizer, they never surface as errors.
var (
	// Fetch errors
	ErrFetchFailed  = &Error{Code: "FETCH_FAILED", Message: "fetching source listing failed"}
	ErrFetchTimeout = &Error{Code: "FETCH_TIMEOUT", Message: "fetching source listing timed out"}

	// Parse errors
	ErrNoTable        = &Error{Code: "NO_TABLE", Message: "no table found in source document"}
	ErrSchemaMismatch = &Error{Code: "SCHEMA_MISMATCH", Message: "source table does not match the expected schema"}

	// Config errors
	ErrConfigInvalid = &Error{Code: "CONFIG_INVALID", Message: "configuration invalid"}
	ErrConfigMissing = &Error{Code: "CONFIG_MISSING", Message: "required configuration missing"}
)
