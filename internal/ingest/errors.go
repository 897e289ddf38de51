package ingest

import (
	"errors"
	"fmt"
)

// ParseError reports a document or term the store cannot accept.
type ParseError struct {
	// Triple is the 1-based position of the offending triple in the
	// document, or 0 when the failure is not tied to one triple.
	Triple int

	// Reason is a short description of the failure.
	Reason string

	// Err is the underlying decoder error, if any.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	msg := "parse error"
	if e.Triple > 0 {
		msg = fmt.Sprintf("parse error at triple %d", e.Triple)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsParseError returns true if the error is a ParseError.
// Uses errors.As to handle wrapped errors.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// UnauthorizedError is returned when someone other than the owner inserts.
type UnauthorizedError struct {
	Sender string
}

// Error implements the error interface.
func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("unauthorized: %q is not the store owner", e.Sender)
}

// IsUnauthorized returns true if the error is an UnauthorizedError.
// Uses errors.As to handle wrapped errors.
func IsUnauthorized(err error) bool {
	var ue *UnauthorizedError
	return errors.As(err, &ue)
}
