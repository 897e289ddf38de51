package compiler

import "github.com/roach88/semstore/internal/rdf"

// Slot is one position of a resolved pattern: a variable or a fixed term.
type Slot struct {
	Variable string   // set for variable slots
	Term     rdf.Term // set for fixed slots
}

// IsVariable reports whether the slot is a variable.
func (s Slot) IsVariable() bool {
	return s.Variable != ""
}

// Var builds a variable slot.
func Var(name string) Slot {
	return Slot{Variable: name}
}

// Fixed builds a fixed slot.
func Fixed(t rdf.Term) Slot {
	return Slot{Term: t}
}

// Pattern is a triple pattern with every IRI resolved.
type Pattern struct {
	Subject   Slot
	Predicate Slot
	Object    Slot
}

// Plan is a validated, executable select query.
type Plan struct {
	// Vars lists the projected variables in declared order.
	Vars []string

	// Patterns are evaluated left to right.
	Patterns []Pattern

	// Limit is the effective maximum number of bindings.
	Limit uint64
}
