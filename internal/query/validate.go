package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports a structurally invalid query.
type ValidationError struct {
	Path    string // e.g. "where[1].object"
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid query: %s: %s", e.Path, e.Message)
}

// IsValidationError returns true if the error is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Parse decodes a JSON query and validates its structure.
// Unknown fields are rejected.
func Parse(data []byte) (*SelectQuery, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var q SelectQuery
	if err := dec.Decode(&q); err != nil {
		return nil, &ValidationError{Path: "$", Message: err.Error()}
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return &q, nil
}

// Validate checks that every union has exactly one variant and every name
// is non-empty. It does not resolve prefixes.
func (q *SelectQuery) Validate() error {
	for i, p := range q.Prefixes {
		if p.Prefix == "" || strings.Contains(p.Prefix, ":") {
			return &ValidationError{Path: fmt.Sprintf("prefixes[%d].prefix", i), Message: fmt.Sprintf("invalid prefix name %q", p.Prefix)}
		}
	}
	for i, v := range q.Select {
		if v == "" {
			return &ValidationError{Path: fmt.Sprintf("select[%d]", i), Message: "empty variable name"}
		}
	}
	for i, tp := range q.Where {
		path := fmt.Sprintf("where[%d]", i)
		if err := tp.Subject.validate(path + ".subject"); err != nil {
			return err
		}
		if err := tp.Predicate.validate(path + ".predicate"); err != nil {
			return err
		}
		if err := tp.Object.validate(path + ".object"); err != nil {
			return err
		}
	}
	return nil
}

func exactlyOne(path string, set ...bool) error {
	n := 0
	for _, s := range set {
		if s {
			n++
		}
	}
	if n != 1 {
		return &ValidationError{Path: path, Message: fmt.Sprintf("expected exactly one variant, got %d", n)}
	}
	return nil
}

func (s VarOrNode) validate(path string) error {
	if err := exactlyOne(path, s.Variable != "", s.Node != nil); err != nil {
		return err
	}
	if s.Node != nil {
		return s.Node.validate(path + ".node")
	}
	return nil
}

func (p VarOrNamedNode) validate(path string) error {
	if err := exactlyOne(path, p.Variable != "", p.NamedNode != nil); err != nil {
		return err
	}
	if p.NamedNode != nil {
		return p.NamedNode.validate(path + ".named_node")
	}
	return nil
}

func (o VarOrNodeOrLiteral) validate(path string) error {
	if err := exactlyOne(path, o.Variable != "", o.Node != nil, o.Literal != nil); err != nil {
		return err
	}
	switch {
	case o.Node != nil:
		return o.Node.validate(path + ".node")
	case o.Literal != nil:
		return o.Literal.validate(path + ".literal")
	}
	return nil
}

func (n *Node) validate(path string) error {
	if err := exactlyOne(path, n.NamedNode != nil, n.BlankNode != nil); err != nil {
		return err
	}
	if n.NamedNode != nil {
		return n.NamedNode.validate(path + ".named_node")
	}
	return nil
}

func (l *Literal) validate(path string) error {
	if err := exactlyOne(path, l.Simple != nil, l.LanguageTaggedString != nil, l.TypedValue != nil); err != nil {
		return err
	}
	switch {
	case l.LanguageTaggedString != nil:
		if l.LanguageTaggedString.Language == "" {
			return &ValidationError{Path: path + ".language_tagged_string.language", Message: "empty language tag"}
		}
	case l.TypedValue != nil:
		return l.TypedValue.Datatype.validate(path + ".typed_value.datatype")
	}
	return nil
}

func (i *IRI) validate(path string) error {
	if err := exactlyOne(path, i.Prefixed != "", i.Full != ""); err != nil {
		return err
	}
	if i.Prefixed != "" && !strings.Contains(i.Prefixed, ":") {
		return &ValidationError{Path: path + ".prefixed", Message: fmt.Sprintf("%q is not of the form prefix:local", i.Prefixed)}
	}
	return nil
}
