package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"
)

const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// Default decodes RDF/XML, Turtle and N-Triples with github.com/knakk/rdf.
type Default struct{}

var _ Parser = Default{}

// Stream implements Parser.
func (Default) Stream(format Format, r io.Reader) (Stream, error) {
	var f rdf.Format
	switch format {
	case FormatRDFXML:
		f = rdf.RDFXML
	case FormatTurtle:
		f = rdf.Turtle
	case FormatNTriples:
		f = rdf.NTriples
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return &knakkStream{dec: rdf.NewTripleDecoder(r, f)}, nil
}

type knakkStream struct {
	dec rdf.TripleDecoder
}

// SyntaxError reports a document the decoder could not read.
type SyntaxError struct {
	Err error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %v", e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Next implements Stream.
func (s *knakkStream) Next() (RawTriple, error) {
	t, err := s.dec.Decode()
	if errors.Is(err, io.EOF) {
		return RawTriple{}, io.EOF
	}
	if err != nil {
		return RawTriple{}, &SyntaxError{Err: err}
	}
	return RawTriple{
		Subject:   rawTerm(t.Subj),
		Predicate: rawTerm(t.Pred),
		Object:    rawTerm(t.Obj),
	}, nil
}

func rawTerm(t rdf.Term) RawTerm {
	switch v := t.(type) {
	case rdf.IRI:
		return RawTerm{Kind: RawIRI, Value: v.String()}
	case rdf.Blank:
		return RawTerm{Kind: RawBlank, Value: strings.TrimPrefix(v.String(), "_:")}
	case rdf.Literal:
		raw := RawTerm{Kind: RawLiteral, Value: v.String(), Lang: v.Lang()}
		if raw.Lang == "" {
			if dt := v.DataType.String(); dt != xsdString {
				raw.Datatype = dt
			}
		}
		return raw
	default:
		return RawTerm{Kind: 0, Value: fmt.Sprint(t)}
	}
}
