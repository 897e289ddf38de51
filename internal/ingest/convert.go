package ingest

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/semstore/internal/parser"
	"github.com/roach88/semstore/internal/rdf"
)

const (
	xsdString     = "http://www.w3.org/2001/XMLSchema#string"
	rdfLangString = "http://www.w3.org/1999/02/22-rdf-syntax-ns#langString"
)

// blankNamespace seeds the UUIDs that scope blank node labels.
var blankNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/semstore/blank-node"))

// converter turns raw triples into canonical ones for one insert call.
//
// Blank node labels only mean something inside one document, so each
// label is rewritten to a UUIDv5 derived from the batch's first primary
// key and the label. The same label within a batch maps to the same id;
// the same label in another batch does not.
type converter struct {
	batch  uint64
	blanks map[string]string
}

func newConverter(firstKey uint64) *converter {
	return &converter{batch: firstKey, blanks: make(map[string]string)}
}

// errReason carries a conversion failure up to the pipeline, which adds
// the triple position.
type errReason string

func (e errReason) Error() string { return string(e) }

func (c *converter) triple(raw parser.RawTriple) (rdf.Triple, error) {
	s, err := c.subject(raw.Subject)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("subject: %w", err)
	}
	p, err := c.predicate(raw.Predicate)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("predicate: %w", err)
	}
	o, err := c.object(raw.Object)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("object: %w", err)
	}
	return rdf.Triple{Subject: s, Predicate: p, Object: o}, nil
}

func (c *converter) subject(t parser.RawTerm) (rdf.Subject, error) {
	switch t.Kind {
	case parser.RawIRI:
		n, err := rdf.ExplodeIRI(t.Value)
		if err != nil {
			return rdf.Subject{}, err
		}
		return rdf.NamedSubject(n), nil
	case parser.RawBlank:
		return rdf.BlankSubject(c.blank(t.Value)), nil
	default:
		return rdf.Subject{}, unsupported(t.Kind)
	}
}

func (c *converter) predicate(t parser.RawTerm) (rdf.Predicate, error) {
	if t.Kind != parser.RawIRI {
		return rdf.Predicate{}, unsupported(t.Kind)
	}
	return rdf.ExplodeIRI(t.Value)
}

func (c *converter) object(t parser.RawTerm) (rdf.Object, error) {
	switch t.Kind {
	case parser.RawIRI:
		n, err := rdf.ExplodeIRI(t.Value)
		if err != nil {
			return rdf.Object{}, err
		}
		return rdf.NamedObject(n), nil
	case parser.RawBlank:
		return rdf.BlankObject(c.blank(t.Value)), nil
	case parser.RawLiteral:
		l, err := literal(t)
		if err != nil {
			return rdf.Object{}, err
		}
		return rdf.LiteralObject(l), nil
	default:
		return rdf.Object{}, unsupported(t.Kind)
	}
}

func literal(t parser.RawTerm) (rdf.Literal, error) {
	switch {
	case t.Lang != "":
		if t.Datatype != "" && t.Datatype != rdfLangString {
			return rdf.Literal{}, errReason(fmt.Sprintf("literal has both language %q and datatype <%s>", t.Lang, t.Datatype))
		}
		lang, err := rdf.NormalizeLang(t.Lang)
		if err != nil {
			return rdf.Literal{}, err
		}
		return rdf.LangLiteral(t.Value, lang), nil
	case t.Datatype == "" || t.Datatype == xsdString:
		return rdf.SimpleLiteral(t.Value), nil
	default:
		dt, err := rdf.ExplodeIRI(t.Datatype)
		if err != nil {
			return rdf.Literal{}, err
		}
		return rdf.TypedLiteral(t.Value, dt), nil
	}
}

func (c *converter) blank(label string) string {
	if id, ok := c.blanks[label]; ok {
		return id
	}
	id := uuid.NewSHA1(blankNamespace, []byte(fmt.Sprintf("%d/%s", c.batch, label))).String()
	c.blanks[label] = id
	return id
}

func unsupported(kind parser.RawKind) error {
	if kind == parser.RawQuoted {
		return errReason("RDF-star quoted triples are not supported")
	}
	return errReason(fmt.Sprintf("%s not allowed in this position", kind))
}
