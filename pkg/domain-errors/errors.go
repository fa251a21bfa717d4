// Package derrors defines the error vocabulary shared across the edge
// gateway. Errors are comparable values so callers can match them with
// errors.Is without sentinel variables per message.
package derrors

import "fmt"

// Code classifies an error for callers that branch on failure class rather
// than message text.
type Code string

const (
	CodeUnauthorized Code = "unauthorized"
	CodeUnavailable  Code = "unavailable"
	CodeInternal     Code = "internal"
)

// Error carries a code and a human-readable message. It is a value type on
// purpose: two errors with the same code and message compare equal.
type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// New builds an Error value.
func New(code Code, message string) Error {
	return Error{Code: code, Message: message}
}

// CodeOf extracts the code from err when it is a domain error, CodeInternal
// otherwise.
func CodeOf(err error) Code {
	if de, ok := err.(Error); ok {
		return de.Code
	}
	return CodeInternal
}
