package rdf

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoNamespace is returned when an IRI has no namespace separator.
var ErrNoNamespace = errors.New("no namespace separator")

// ExplodeIRI splits an IRI at its last '#', '/' or ':' into a Node.
// The separator stays with the namespace.
func ExplodeIRI(iri string) (Node, error) {
	i := strings.LastIndexAny(iri, "#/:")
	if i < 0 {
		return Node{}, fmt.Errorf("explode iri %q: %w", iri, ErrNoNamespace)
	}
	return Node{Namespace: iri[:i+1], Value: iri[i+1:]}, nil
}

// MustExplodeIRI is like ExplodeIRI but panics on error.
// Intended for constants and tests.
func MustExplodeIRI(iri string) Node {
	n, err := ExplodeIRI(iri)
	if err != nil {
		panic(err)
	}
	return n
}
