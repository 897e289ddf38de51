package rdf

import "fmt"

// TermKind discriminates Term variants.
type TermKind uint8

const (
	TermNamed TermKind = iota + 1
	TermBlank
	TermLiteral
)

// Term is a value in any triple position. Query bindings hold Terms so
// that a variable bound in one position can be compared in another.
type Term struct {
	Kind    TermKind
	Node    Node
	Blank   string
	Literal Literal
}

// NodeTerm builds a named-node term.
func NodeTerm(n Node) Term {
	return Term{Kind: TermNamed, Node: n}
}

// BlankTerm builds a blank-node term.
func BlankTerm(id string) Term {
	return Term{Kind: TermBlank, Blank: id}
}

// LiteralTerm builds a literal term.
func LiteralTerm(l Literal) Term {
	return Term{Kind: TermLiteral, Literal: l}
}

// Equal reports whether two terms are identical.
func (t Term) Equal(other Term) bool {
	return t == other
}

// AsSubject returns the term as a subject. Literals cannot be subjects.
func (t Term) AsSubject() (Subject, bool) {
	switch t.Kind {
	case TermNamed:
		return NamedSubject(t.Node), true
	case TermBlank:
		return BlankSubject(t.Blank), true
	case TermLiteral:
		return Subject{}, false
	default:
		panic(fmt.Sprintf("rdf: unknown term kind %d", t.Kind))
	}
}

// AsPredicate returns the term as a predicate. Only named nodes qualify.
func (t Term) AsPredicate() (Predicate, bool) {
	if t.Kind == TermNamed {
		return t.Node, true
	}
	return Predicate{}, false
}

// String implements fmt.Stringer using N-Triples syntax.
func (t Term) String() string {
	switch t.Kind {
	case TermNamed:
		return t.Node.String()
	case TermBlank:
		return "_:" + t.Blank
	case TermLiteral:
		return t.Literal.String()
	default:
		return "<invalid>"
	}
}
