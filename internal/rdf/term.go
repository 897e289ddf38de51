package rdf

import "fmt"

// Node is an IRI split into namespace and local value.
// Namespace + Value always reconstructs the original IRI exactly.
type Node struct {
	Namespace string `json:"namespace"`
	Value     string `json:"value"`
}

// IRI returns the full IRI.
func (n Node) IRI() string {
	return n.Namespace + n.Value
}

// String implements fmt.Stringer using N-Triples syntax.
func (n Node) String() string {
	return "<" + n.IRI() + ">"
}

// SubjectKind discriminates Subject variants.
type SubjectKind uint8

const (
	SubjectNamed SubjectKind = iota + 1
	SubjectBlank
)

// Subject is a named node or a blank node.
type Subject struct {
	Kind  SubjectKind
	Node  Node   // set when Kind == SubjectNamed
	Blank string // set when Kind == SubjectBlank
}

// NamedSubject builds a named subject.
func NamedSubject(n Node) Subject {
	return Subject{Kind: SubjectNamed, Node: n}
}

// BlankSubject builds a blank subject.
func BlankSubject(id string) Subject {
	return Subject{Kind: SubjectBlank, Blank: id}
}

// Term converts the subject into a position-independent term.
func (s Subject) Term() Term {
	switch s.Kind {
	case SubjectNamed:
		return NodeTerm(s.Node)
	case SubjectBlank:
		return BlankTerm(s.Blank)
	default:
		panic(fmt.Sprintf("rdf: unknown subject kind %d", s.Kind))
	}
}

// Predicate is always a named node.
type Predicate = Node

// ObjectKind discriminates Object variants.
type ObjectKind uint8

const (
	ObjectNamed ObjectKind = iota + 1
	ObjectBlank
	ObjectLiteral
)

// Object is a named node, a blank node or a literal.
type Object struct {
	Kind    ObjectKind
	Node    Node
	Blank   string
	Literal Literal
}

// NamedObject builds a named object.
func NamedObject(n Node) Object {
	return Object{Kind: ObjectNamed, Node: n}
}

// BlankObject builds a blank object.
func BlankObject(id string) Object {
	return Object{Kind: ObjectBlank, Blank: id}
}

// LiteralObject builds a literal object.
func LiteralObject(l Literal) Object {
	return Object{Kind: ObjectLiteral, Literal: l}
}

// Term converts the object into a position-independent term.
func (o Object) Term() Term {
	switch o.Kind {
	case ObjectNamed:
		return NodeTerm(o.Node)
	case ObjectBlank:
		return BlankTerm(o.Blank)
	case ObjectLiteral:
		return LiteralTerm(o.Literal)
	default:
		panic(fmt.Sprintf("rdf: unknown object kind %d", o.Kind))
	}
}

// LiteralKind discriminates Literal variants.
type LiteralKind uint8

const (
	LiteralSimple LiteralKind = iota + 1
	LiteralLang
	LiteralTyped
)

// Literal is a simple, language-tagged or typed literal.
// Lang is set only for LiteralLang, Datatype only for LiteralTyped.
type Literal struct {
	Kind     LiteralKind
	Value    string
	Lang     string
	Datatype Node
}

// SimpleLiteral builds a plain literal.
func SimpleLiteral(value string) Literal {
	return Literal{Kind: LiteralSimple, Value: value}
}

// LangLiteral builds a language-tagged literal.
func LangLiteral(value, lang string) Literal {
	return Literal{Kind: LiteralLang, Value: value, Lang: lang}
}

// TypedLiteral builds a literal with an explicit datatype.
func TypedLiteral(value string, datatype Node) Literal {
	return Literal{Kind: LiteralTyped, Value: value, Datatype: datatype}
}

// String implements fmt.Stringer using N-Triples syntax.
func (l Literal) String() string {
	q := fmt.Sprintf("%q", l.Value)
	switch l.Kind {
	case LiteralSimple:
		return q
	case LiteralLang:
		return q + "@" + l.Lang
	case LiteralTyped:
		return q + "^^" + l.Datatype.String()
	default:
		panic(fmt.Sprintf("rdf: unknown literal kind %d", l.Kind))
	}
}

// Triple is a single RDF statement.
type Triple struct {
	Subject   Subject
	Predicate Predicate
	Object    Object
}

// String implements fmt.Stringer using N-Triples syntax.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s .", t.Subject.Term(), t.Predicate, t.Object.Term())
}
