package query

// SelectQuery selects variable bindings matching a basic graph pattern.
type SelectQuery struct {
	// Prefixes declares the short names usable in prefixed IRIs.
	Prefixes []Prefix `json:"prefixes,omitempty"`

	// Select lists the projected variables, in output order.
	Select []string `json:"select"`

	// Where lists triple patterns joined left to right.
	Where []TriplePattern `json:"where"`

	// Limit caps the number of bindings. Nil means the store default.
	Limit *uint64 `json:"limit,omitempty"`
}

// Prefix maps a short name to an IRI namespace.
type Prefix struct {
	Prefix    string `json:"prefix"`
	Namespace string `json:"namespace"`
}

// IRI is either a prefixed name ("foaf:name") or a full IRI.
type IRI struct {
	Prefixed string `json:"prefixed,omitempty"`
	Full     string `json:"full,omitempty"`
}

// TriplePattern matches triples position by position.
type TriplePattern struct {
	Subject   VarOrNode          `json:"subject"`
	Predicate VarOrNamedNode     `json:"predicate"`
	Object    VarOrNodeOrLiteral `json:"object"`
}

// VarOrNode is a subject slot.
type VarOrNode struct {
	Variable string `json:"variable,omitempty"`
	Node     *Node  `json:"node,omitempty"`
}

// VarOrNamedNode is a predicate slot.
type VarOrNamedNode struct {
	Variable  string `json:"variable,omitempty"`
	NamedNode *IRI   `json:"named_node,omitempty"`
}

// VarOrNodeOrLiteral is an object slot.
type VarOrNodeOrLiteral struct {
	Variable string   `json:"variable,omitempty"`
	Node     *Node    `json:"node,omitempty"`
	Literal  *Literal `json:"literal,omitempty"`
}

// Node is a fixed named node or blank node.
type Node struct {
	NamedNode *IRI    `json:"named_node,omitempty"`
	BlankNode *string `json:"blank_node,omitempty"`
}

// Literal is a fixed literal value.
type Literal struct {
	Simple               *string     `json:"simple,omitempty"`
	LanguageTaggedString *LangString `json:"language_tagged_string,omitempty"`
	TypedValue           *TypedValue `json:"typed_value,omitempty"`
}

// LangString is a language-tagged literal.
type LangString struct {
	Value    string `json:"value"`
	Language string `json:"language"`
}

// TypedValue is a literal with an explicit datatype.
type TypedValue struct {
	Value    string `json:"value"`
	Datatype IRI    `json:"datatype"`
}

// Full builds a full IRI.
func Full(iri string) IRI { return IRI{Full: iri} }

// Prefixed builds a prefixed IRI such as "foaf:name".
func Prefixed(name string) IRI { return IRI{Prefixed: name} }

// Named builds a fixed named node.
func Named(iri IRI) Node { return Node{NamedNode: &iri} }

// Blank builds a fixed blank node.
func Blank(id string) Node { return Node{BlankNode: &id} }

// Simple builds a plain literal.
func Simple(v string) Literal { return Literal{Simple: &v} }

// Lang builds a language-tagged literal.
func Lang(v, lang string) Literal {
	return Literal{LanguageTaggedString: &LangString{Value: v, Language: lang}}
}

// Typed builds a typed literal.
func Typed(v string, datatype IRI) Literal {
	return Literal{TypedValue: &TypedValue{Value: v, Datatype: datatype}}
}

// SubjectVar builds a variable subject slot.
func SubjectVar(name string) VarOrNode { return VarOrNode{Variable: name} }

// SubjectNode builds a fixed subject slot.
func SubjectNode(n Node) VarOrNode { return VarOrNode{Node: &n} }

// PredicateVar builds a variable predicate slot.
func PredicateVar(name string) VarOrNamedNode { return VarOrNamedNode{Variable: name} }

// PredicateIRI builds a fixed predicate slot.
func PredicateIRI(iri IRI) VarOrNamedNode { return VarOrNamedNode{NamedNode: &iri} }

// ObjectVar builds a variable object slot.
func ObjectVar(name string) VarOrNodeOrLiteral { return VarOrNodeOrLiteral{Variable: name} }

// ObjectNode builds a fixed node object slot.
func ObjectNode(n Node) VarOrNodeOrLiteral { return VarOrNodeOrLiteral{Node: &n} }

// ObjectLiteral builds a fixed literal object slot.
func ObjectLiteral(l Literal) VarOrNodeOrLiteral { return VarOrNodeOrLiteral{Literal: &l} }

// Pattern builds a triple pattern.
func Pattern(s VarOrNode, p VarOrNamedNode, o VarOrNodeOrLiteral) TriplePattern {
	return TriplePattern{Subject: s, Predicate: p, Object: o}
}

// WithLimit returns a pointer to n for SelectQuery.Limit.
func WithLimit(n uint64) *uint64 { return &n }
