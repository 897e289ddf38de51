// Package limits holds the store's resource ceilings and the guard that
// enforces them.
//
// Every ceiling is optional; a nil ceiling means unbounded. Checks always
// run before the mutation they protect, and a failed check never advances
// the running counters.
package limits

import (
	"errors"
	"fmt"
)

// Kind names one of the seven ceilings.
type Kind string

const (
	KindMaxTripleCount           Kind = "max_triple_count"
	KindMaxByteSize              Kind = "max_byte_size"
	KindMaxTripleByteSize        Kind = "max_triple_byte_size"
	KindMaxQueryLimit            Kind = "max_query_limit"
	KindMaxQueryVariableCount    Kind = "max_query_variable_count"
	KindMaxInsertDataByteSize    Kind = "max_insert_data_byte_size"
	KindMaxInsertDataTripleCount Kind = "max_insert_data_triple_count"
)

// Limits is the set of ceilings fixed at store creation.
type Limits struct {
	// MaxTripleCount caps the number of triples in the store.
	MaxTripleCount *uint64 `json:"max_triple_count,omitempty"`

	// MaxByteSize caps the total byte size of all stored triples.
	MaxByteSize *uint64 `json:"max_byte_size,omitempty"`

	// MaxTripleByteSize caps the byte size of a single triple.
	MaxTripleByteSize *uint64 `json:"max_triple_byte_size,omitempty"`

	// MaxQueryLimit caps the limit a select query may request.
	MaxQueryLimit *uint64 `json:"max_query_limit,omitempty"`

	// MaxQueryVariableCount caps the distinct variables in a select query.
	MaxQueryVariableCount *uint64 `json:"max_query_variable_count,omitempty"`

	// MaxInsertDataByteSize caps the byte size of the triples in one insert.
	MaxInsertDataByteSize *uint64 `json:"max_insert_data_byte_size,omitempty"`

	// MaxInsertDataTripleCount caps the number of triples in one insert.
	MaxInsertDataTripleCount *uint64 `json:"max_insert_data_triple_count,omitempty"`
}

// Unbounded returns Limits with every ceiling unset.
func Unbounded() Limits {
	return Limits{}
}

// Uint returns a pointer to n, for building Limits literals.
func Uint(n uint64) *uint64 {
	return &n
}

// Kinds lists every ceiling in declaration order.
var Kinds = []Kind{
	KindMaxTripleCount,
	KindMaxByteSize,
	KindMaxTripleByteSize,
	KindMaxQueryLimit,
	KindMaxQueryVariableCount,
	KindMaxInsertDataByteSize,
	KindMaxInsertDataTripleCount,
}

// ErrUnknownKind is returned by Set for a name that is not a ceiling.
var ErrUnknownKind = errors.New("unknown limit kind")

// slot returns the field holding kind, or nil for an unknown kind.
func (l *Limits) slot(kind Kind) **uint64 {
	switch kind {
	case KindMaxTripleCount:
		return &l.MaxTripleCount
	case KindMaxByteSize:
		return &l.MaxByteSize
	case KindMaxTripleByteSize:
		return &l.MaxTripleByteSize
	case KindMaxQueryLimit:
		return &l.MaxQueryLimit
	case KindMaxQueryVariableCount:
		return &l.MaxQueryVariableCount
	case KindMaxInsertDataByteSize:
		return &l.MaxInsertDataByteSize
	case KindMaxInsertDataTripleCount:
		return &l.MaxInsertDataTripleCount
	default:
		return nil
	}
}

// Ceiling returns the configured value for kind, if set.
// It panics on an unknown kind.
func (l Limits) Ceiling(kind Kind) (uint64, bool) {
	c := l.slot(kind)
	if c == nil {
		panic(fmt.Sprintf("limits: unknown kind %q", kind))
	}
	if *c == nil {
		return 0, false
	}
	return **c, true
}

// Set fixes the ceiling for kind to value.
func (l *Limits) Set(kind Kind, value uint64) error {
	c := l.slot(kind)
	if c == nil {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	*c = Uint(value)
	return nil
}

// check fails when value exceeds the ceiling for kind.
func (l Limits) check(kind Kind, value uint64) error {
	ceiling, ok := l.Ceiling(kind)
	if ok && value > ceiling {
		return &LimitExceededError{Kind: kind, Ceiling: ceiling}
	}
	return nil
}

// CheckQueryLimit validates a requested query limit.
func (l Limits) CheckQueryLimit(limit uint64) error {
	return l.check(KindMaxQueryLimit, limit)
}

// CheckQueryVariables validates the number of distinct query variables.
func (l Limits) CheckQueryVariables(count uint64) error {
	return l.check(KindMaxQueryVariableCount, count)
}

// LimitExceededError is returned when a mutation or query would cross a
// ceiling. It names the ceiling and its configured value.
type LimitExceededError struct {
	Kind    Kind
	Ceiling uint64
}

// Error implements the error interface.
func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("limit exceeded: %s (%d)", e.Kind, e.Ceiling)
}

// IsLimitExceeded returns true if the error is a LimitExceededError for kind.
// An empty kind matches any ceiling. Uses errors.As to handle wrapped errors.
func IsLimitExceeded(err error, kind Kind) bool {
	var le *LimitExceededError
	if !errors.As(err, &le) {
		return false
	}
	return kind == "" || le.Kind == kind
}
