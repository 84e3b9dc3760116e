package labelmkr

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"
	ESYNTAX   = "syntax"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Errorf is a helper function to return an Error with a given code and message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// LocatorSyntaxError reports a locator string the document's query facility
// cannot parse. It is the only failure the extraction engine raises.
type LocatorSyntaxError struct {
	Locator string
	Err     error
}

// Error implements the error interface.
func (e *LocatorSyntaxError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid locator %q", e.Locator)
	}
	return fmt.Sprintf("invalid locator %q: %v", e.Locator, e.Err)
}

// Unwrap returns the underlying parser error.
func (e *LocatorSyntaxError) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of the root error, if available.
// Otherwise returns EINTERNAL. Returns an empty string for a nil error.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var syntaxErr *LocatorSyntaxError
	if errors.As(err, &syntaxErr) {
		return ESYNTAX
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the human-readable message of the error, if available.
// Otherwise returns a generic error message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var syntaxErr *LocatorSyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr.Error()
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
