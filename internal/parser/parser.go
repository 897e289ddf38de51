// Package parser is the term-stream boundary: it turns an RDF document
// into a lazy sequence of raw, unvalidated triples.
//
// Raw terms carry whatever the serialization said. Validation and
// conversion into the canonical rdf model happen in the ingest package.
package parser

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// Format is a supported RDF serialization.
type Format string

const (
	FormatRDFXML   Format = "rdf_xml"
	FormatTurtle   Format = "turtle"
	FormatNTriples Format = "n_triples"
)

// Formats lists every supported format.
var Formats = []Format{FormatRDFXML, FormatTurtle, FormatNTriples}

// FormatNames returns the supported format names joined with sep.
func FormatNames(sep string) string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, sep)
}

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown data format")

// ParseFormat resolves a format name. Common aliases are accepted.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rdf_xml", "rdfxml", "rdf/xml", "xml":
		return FormatRDFXML, nil
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "n_triples", "ntriples", "n-triples", "nt":
		return FormatNTriples, nil
	default:
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownFormat, name, FormatNames(", "))
	}
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.HasSuffix(name, ".rdf.xml"), strings.HasSuffix(name, ".rdf"), strings.HasSuffix(name, ".xml"):
		return FormatRDFXML, nil
	case strings.HasSuffix(name, ".ttl"):
		return FormatTurtle, nil
	case strings.HasSuffix(name, ".nt"):
		return FormatNTriples, nil
	default:
		return "", fmt.Errorf("%w: cannot infer from %q", ErrUnknownFormat, path)
	}
}

// RawKind discriminates RawTerm variants.
type RawKind uint8

const (
	RawIRI RawKind = iota + 1
	RawBlank
	RawLiteral
	RawQuoted // RDF-star quoted triple
)

// String implements fmt.Stringer.
func (k RawKind) String() string {
	switch k {
	case RawIRI:
		return "iri"
	case RawBlank:
		return "blank node"
	case RawLiteral:
		return "literal"
	case RawQuoted:
		return "quoted triple"
	default:
		return fmt.Sprintf("raw kind %d", uint8(k))
	}
}

// RawTerm is a term as read from the document.
type RawTerm struct {
	Kind     RawKind
	Value    string     // IRI, blank label or literal lexical form
	Lang     string     // literal language tag, if any
	Datatype string     // literal datatype IRI, if any
	Quoted   *RawTriple // set when Kind == RawQuoted
}

// RawTriple is one statement as read from the document.
type RawTriple struct {
	Subject   RawTerm
	Predicate RawTerm
	Object    RawTerm
}

// Stream yields raw triples one at a time.
type Stream interface {
	// Next returns the next triple, or io.EOF when the document is exhausted.
	Next() (RawTriple, error)
}

// Parser opens a Stream over a document in the given format.
type Parser interface {
	Stream(format Format, r io.Reader) (Stream, error)
}

// SliceStream is a Stream over an in-memory slice.
type SliceStream struct {
	triples []RawTriple
	pos     int
}

// NewSliceStream creates a stream yielding triples in order.
func NewSliceStream(triples ...RawTriple) *SliceStream {
	return &SliceStream{triples: triples}
}

// Next implements Stream.
func (s *SliceStream) Next() (RawTriple, error) {
	if s.pos >= len(s.triples) {
		return RawTriple{}, io.EOF
	}
	t := s.triples[s.pos]
	s.pos++
	return t, nil
}
