package engine

import (
	"errors"

	"github.com/roach88/semstore/internal/compiler"
	"github.com/roach88/semstore/internal/ingest"
	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/limits"
	"github.com/roach88/semstore/internal/query"
	"github.com/roach88/semstore/internal/triplestore"
)

// ErrorCode is a stable, machine-readable error category.
type ErrorCode string

const (
	CodeParseError          ErrorCode = "parse_error"
	CodeLimitExceeded       ErrorCode = "limit_exceeded"
	CodeUnknownPrefix       ErrorCode = "unknown_prefix"
	CodeQueryTooComplex     ErrorCode = "query_too_complex"
	CodeUnauthorized        ErrorCode = "unauthorized"
	CodeStorageError        ErrorCode = "storage_error"
	CodeInvalidQuery        ErrorCode = "invalid_query"
	CodeNotInstantiated     ErrorCode = "not_instantiated"
	CodeAlreadyInstantiated ErrorCode = "already_instantiated"
	CodeInternal            ErrorCode = "internal"
)

// Code maps err to its category. It returns "" for a nil error.
//
// QueryTooComplexError is checked before LimitExceededError because it
// wraps one.
func Code(err error) ErrorCode {
	var (
		compileErr *compiler.CompileError
		dupErr     *compiler.DuplicatePrefixError
		unboundErr *compiler.UnboundVariableError
	)

	switch {
	case err == nil:
		return ""
	case ingest.IsParseError(err):
		return CodeParseError
	case compiler.IsQueryTooComplex(err):
		return CodeQueryTooComplex
	case limits.IsLimitExceeded(err, ""):
		return CodeLimitExceeded
	case compiler.IsUnknownPrefix(err):
		return CodeUnknownPrefix
	case ingest.IsUnauthorized(err):
		return CodeUnauthorized
	case errors.Is(err, triplestore.ErrNotInstantiated):
		return CodeNotInstantiated
	case errors.Is(err, triplestore.ErrAlreadyInstantiated):
		return CodeAlreadyInstantiated
	case query.IsValidationError(err),
		errors.As(err, &compileErr),
		errors.As(err, &dupErr),
		errors.As(err, &unboundErr):
		return CodeInvalidQuery
	case kv.IsStorageError(err):
		return CodeStorageError
	default:
		return CodeInternal
	}
}
