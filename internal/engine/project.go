package engine

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/semstore/internal/query"
	"github.com/roach88/semstore/internal/rdf"
)

// ValueType discriminates the values of a select response.
type ValueType string

const (
	ValueURI       ValueType = "uri"
	ValueLiteral   ValueType = "literal"
	ValueBlankNode ValueType = "blank_node"
)

// Value is one bound term in a select response.
type Value struct {
	Type ValueType

	// Value is the full IRI, the literal lexical form or the blank node id.
	Value string

	// Lang and Datatype are only set for literals, never both.
	Lang     string
	Datatype string
}

type valueJSON struct {
	Type     ValueType  `json:"type"`
	Value    any        `json:"value"`
	Lang     string     `json:"xml:lang,omitempty"`
	Datatype *query.IRI `json:"datatype,omitempty"`
}

// MarshalJSON encodes IRIs as {"full": ...} objects and literals with an
// optional xml:lang or datatype member.
func (v Value) MarshalJSON() ([]byte, error) {
	w := valueJSON{Type: v.Type}
	switch v.Type {
	case ValueURI:
		w.Value = query.Full(v.Value)
	case ValueLiteral:
		w.Value = v.Value
		w.Lang = v.Lang
		if v.Datatype != "" {
			dt := query.Full(v.Datatype)
			w.Datatype = &dt
		}
	case ValueBlankNode:
		w.Value = v.Value
	default:
		return nil, fmt.Errorf("unknown value type %q", v.Type)
	}
	return json.Marshal(w)
}

// String renders the value in N-Triples syntax.
func (v Value) String() string {
	switch v.Type {
	case ValueURI:
		return "<" + v.Value + ">"
	case ValueBlankNode:
		return "_:" + v.Value
	case ValueLiteral:
		q := fmt.Sprintf("%q", v.Value)
		if v.Lang != "" {
			return q + "@" + v.Lang
		}
		if v.Datatype != "" {
			return q + "^^<" + v.Datatype + ">"
		}
		return q
	default:
		return "<invalid>"
	}
}

// SelectResponse is the result of a select query.
type SelectResponse struct {
	Head    Head    `json:"head"`
	Results Results `json:"results"`
}

// Head lists the projected variables.
type Head struct {
	Vars []string `json:"vars"`
}

// Results holds one map per solution, keyed by variable name.
type Results struct {
	Bindings []map[string]Value `json:"bindings"`
}

// Project keeps the selected variables of each binding and converts their
// terms to response values. Order of bindings is preserved.
func Project(vars []string, bindings []Binding) *SelectResponse {
	resp := &SelectResponse{
		Head:    Head{Vars: append([]string{}, vars...)},
		Results: Results{Bindings: make([]map[string]Value, 0, len(bindings))},
	}
	for _, b := range bindings {
		row := make(map[string]Value, len(vars))
		for _, name := range vars {
			if t, ok := b[name]; ok {
				row[name] = ToValue(t)
			}
		}
		resp.Results.Bindings = append(resp.Results.Bindings, row)
	}
	return resp
}

// ToValue converts a term to its response form.
func ToValue(t rdf.Term) Value {
	switch t.Kind {
	case rdf.TermNamed:
		return Value{Type: ValueURI, Value: t.Node.IRI()}
	case rdf.TermBlank:
		return Value{Type: ValueBlankNode, Value: t.Blank}
	case rdf.TermLiteral:
		l := t.Literal
		v := Value{Type: ValueLiteral, Value: l.Value}
		switch l.Kind {
		case rdf.LiteralSimple:
		case rdf.LiteralLang:
			v.Lang = l.Lang
		case rdf.LiteralTyped:
			v.Datatype = l.Datatype.IRI()
		default:
			panic(fmt.Sprintf("engine: unknown literal kind %d", l.Kind))
		}
		return v
	default:
		panic(fmt.Sprintf("engine: unknown term kind %d", t.Kind))
	}
}
