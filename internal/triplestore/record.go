package triplestore

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/semstore/internal/rdf"
)

// Stored records use short JSON keys. Each union is an object with exactly
// one variant field set.

type nodeRecord struct {
	Namespace string `json:"ns"`
	Value     string `json:"v"`
}

type subjectRecord struct {
	Named *nodeRecord `json:"n,omitempty"`
	Blank *string     `json:"b,omitempty"`
}

type literalRecord struct {
	Kind     string      `json:"k"` // "s" simple, "i" language-tagged, "t" typed
	Value    string      `json:"v"`
	Lang     string      `json:"lang,omitempty"`
	Datatype *nodeRecord `json:"dt,omitempty"`
}

type objectRecord struct {
	Named   *nodeRecord    `json:"n,omitempty"`
	Blank   *string        `json:"b,omitempty"`
	Literal *literalRecord `json:"l,omitempty"`
}

type tripleRecord struct {
	Subject   subjectRecord `json:"s"`
	Predicate nodeRecord    `json:"p"`
	Object    objectRecord  `json:"o"`
}

var errBadRecord = errors.New("malformed triple record")

func toNodeRecord(n rdf.Node) *nodeRecord {
	return &nodeRecord{Namespace: n.Namespace, Value: n.Value}
}

func (r *nodeRecord) node() rdf.Node {
	return rdf.Node{Namespace: r.Namespace, Value: r.Value}
}

func marshalTriple(t rdf.Triple) ([]byte, error) {
	rec := tripleRecord{Predicate: *toNodeRecord(t.Predicate)}

	switch t.Subject.Kind {
	case rdf.SubjectNamed:
		rec.Subject.Named = toNodeRecord(t.Subject.Node)
	case rdf.SubjectBlank:
		id := t.Subject.Blank
		rec.Subject.Blank = &id
	default:
		return nil, fmt.Errorf("marshal triple: unknown subject kind %d", t.Subject.Kind)
	}

	switch t.Object.Kind {
	case rdf.ObjectNamed:
		rec.Object.Named = toNodeRecord(t.Object.Node)
	case rdf.ObjectBlank:
		id := t.Object.Blank
		rec.Object.Blank = &id
	case rdf.ObjectLiteral:
		lit, err := toLiteralRecord(t.Object.Literal)
		if err != nil {
			return nil, err
		}
		rec.Object.Literal = lit
	default:
		return nil, fmt.Errorf("marshal triple: unknown object kind %d", t.Object.Kind)
	}

	return json.Marshal(rec)
}

func toLiteralRecord(l rdf.Literal) (*literalRecord, error) {
	switch l.Kind {
	case rdf.LiteralSimple:
		return &literalRecord{Kind: "s", Value: l.Value}, nil
	case rdf.LiteralLang:
		return &literalRecord{Kind: "i", Value: l.Value, Lang: l.Lang}, nil
	case rdf.LiteralTyped:
		return &literalRecord{Kind: "t", Value: l.Value, Datatype: toNodeRecord(l.Datatype)}, nil
	default:
		return nil, fmt.Errorf("marshal triple: unknown literal kind %d", l.Kind)
	}
}

func unmarshalTriple(data []byte) (rdf.Triple, error) {
	var rec tripleRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return rdf.Triple{}, fmt.Errorf("%w: %v", errBadRecord, err)
	}

	t := rdf.Triple{Predicate: rec.Predicate.node()}

	switch {
	case rec.Subject.Named != nil && rec.Subject.Blank == nil:
		t.Subject = rdf.NamedSubject(rec.Subject.Named.node())
	case rec.Subject.Blank != nil && rec.Subject.Named == nil:
		t.Subject = rdf.BlankSubject(*rec.Subject.Blank)
	default:
		return rdf.Triple{}, fmt.Errorf("%w: subject", errBadRecord)
	}

	o := rec.Object
	switch {
	case o.Named != nil && o.Blank == nil && o.Literal == nil:
		t.Object = rdf.NamedObject(o.Named.node())
	case o.Blank != nil && o.Named == nil && o.Literal == nil:
		t.Object = rdf.BlankObject(*o.Blank)
	case o.Literal != nil && o.Named == nil && o.Blank == nil:
		lit, err := o.Literal.literal()
		if err != nil {
			return rdf.Triple{}, err
		}
		t.Object = rdf.LiteralObject(lit)
	default:
		return rdf.Triple{}, fmt.Errorf("%w: object", errBadRecord)
	}

	return t, nil
}

func (r *literalRecord) literal() (rdf.Literal, error) {
	switch r.Kind {
	case "s":
		return rdf.SimpleLiteral(r.Value), nil
	case "i":
		return rdf.LangLiteral(r.Value, r.Lang), nil
	case "t":
		if r.Datatype == nil {
			return rdf.Literal{}, fmt.Errorf("%w: typed literal without datatype", errBadRecord)
		}
		return rdf.TypedLiteral(r.Value, r.Datatype.node()), nil
	default:
		return rdf.Literal{}, fmt.Errorf("%w: literal kind %q", errBadRecord, r.Kind)
	}
}
