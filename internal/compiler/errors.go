package compiler

import (
	"errors"
	"fmt"

	"github.com/roach88/semstore/internal/limits"
)

// CompileError reports a query that is well-formed JSON but cannot be
// executed, such as a duplicate prefix or an unselectable variable.
type CompileError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DuplicatePrefixError is returned when a prefix name is declared twice.
type DuplicatePrefixError struct {
	Name string
}

// Error implements the error interface.
func (e *DuplicatePrefixError) Error() string {
	return fmt.Sprintf("prefix %q declared more than once", e.Name)
}

// UnboundVariableError is returned when a selected variable occurs in no
// pattern and could never be bound.
type UnboundVariableError struct {
	Variable string
}

// Error implements the error interface.
func (e *UnboundVariableError) Error() string {
	return fmt.Sprintf("selected variable %q does not appear in any pattern", e.Variable)
}

// UnknownPrefixError is returned when a prefixed IRI uses an undeclared prefix.
type UnknownPrefixError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownPrefixError) Error() string {
	return fmt.Sprintf("unknown prefix %q", e.Name)
}

// IsUnknownPrefix returns true if the error is an UnknownPrefixError.
// Uses errors.As to handle wrapped errors.
func IsUnknownPrefix(err error) bool {
	var pe *UnknownPrefixError
	return errors.As(err, &pe)
}

// QueryTooComplexError is returned when a query crosses the variable count
// or limit ceiling. Cause names the ceiling; errors.As reaches it too.
type QueryTooComplexError struct {
	Cause *limits.LimitExceededError
}

// Error implements the error interface.
func (e *QueryTooComplexError) Error() string {
	return fmt.Sprintf("query too complex: %v", e.Cause)
}

func (e *QueryTooComplexError) Unwrap() error {
	return e.Cause
}

// IsQueryTooComplex returns true if the error is a QueryTooComplexError.
// Uses errors.As to handle wrapped errors.
func IsQueryTooComplex(err error) bool {
	var qe *QueryTooComplexError
	return errors.As(err, &qe)
}

// tooComplex converts a limit violation into a QueryTooComplexError.
func tooComplex(err error) error {
	var le *limits.LimitExceededError
	if errors.As(err, &le) {
		return &QueryTooComplexError{Cause: le}
	}
	return err
}
