package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/semstore/internal/parser"
	"github.com/roach88/semstore/internal/rdf"
)

func iri(v string) parser.RawTerm { return parser.RawTerm{Kind: parser.RawIRI, Value: v} }
func blank(v string) parser.RawTerm { return parser.RawTerm{Kind: parser.RawBlank, Value: v} }

func lit(v, lang, dt string) parser.RawTerm {
	return parser.RawTerm{Kind: parser.RawLiteral, Value: v, Lang: lang, Datatype: dt}
}

// TestConverter_Literals tests the mapping of raw literals to literal kinds.
func TestConverter_Literals(t *testing.T) {
	xsdInt := "http://www.w3.org/2001/XMLSchema#integer"
	tests := []struct {
		name string
		raw  parser.RawTerm
		want rdf.Literal
	}{
		{"simple", lit("v", "", ""), rdf.SimpleLiteral("v")},
		{"xsd string is simple", lit("v", "", xsdString), rdf.SimpleLiteral("v")},
		{"lang", lit("v", "en-GB", ""), rdf.LangLiteral("v", "en-gb")},
		{"lang with langString datatype", lit("v", "fr", rdfLangString), rdf.LangLiteral("v", "fr")},
		{"typed", lit("1", "", xsdInt), rdf.TypedLiteral("1", rdf.MustExplodeIRI(xsdInt))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := newConverter(1).object(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, rdf.LiteralObject(tt.want), o)
		})
	}
}

// TestConverter_Rejects tests terms that cannot appear in a position.
func TestConverter_Rejects(t *testing.T) {
	quoted := &parser.RawTriple{Subject: iri("http://x/s"), Predicate: iri("http://x/p"), Object: iri("http://x/o")}
	tests := []struct {
		name string
		raw  parser.RawTriple
		want string
	}{
		{"literal subject", parser.RawTriple{Subject: lit("s", "", ""), Predicate: iri("http://x/p"), Object: iri("http://x/o")}, "subject: literal not allowed"},
		{"blank predicate", parser.RawTriple{Subject: iri("http://x/s"), Predicate: blank("p"), Object: iri("http://x/o")}, "predicate: blank node not allowed"},
		{"quoted object", parser.RawTriple{Subject: iri("http://x/s"), Predicate: iri("http://x/p"), Object: parser.RawTerm{Kind: parser.RawQuoted, Quoted: quoted}}, "RDF-star"},
		{"iri without namespace", parser.RawTriple{Subject: iri("nothing"), Predicate: iri("http://x/p"), Object: iri("http://x/o")}, "no namespace separator"},
		{"malformed lang", parser.RawTriple{Subject: iri("http://x/s"), Predicate: iri("http://x/p"), Object: lit("v", "not a tag", "")}, "malformed language tag"},
		{"lang and datatype", parser.RawTriple{Subject: iri("http://x/s"), Predicate: iri("http://x/p"), Object: lit("v", "en", "http://x/dt")}, "both language"},
		{"unknown kind", parser.RawTriple{Subject: iri("http://x/s"), Predicate: iri("http://x/p"), Object: parser.RawTerm{}}, "not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newConverter(1).triple(tt.raw)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// TestConverter_BlankScoping tests that blank labels are scoped to one batch.
func TestConverter_BlankScoping(t *testing.T) {
	first := newConverter(1)
	a1 := first.blank("b0")
	a2 := first.blank("b0")
	b := first.blank("b1")

	assert.Equal(t, a1, a2, "same label in one batch maps to one node")
	assert.NotEqual(t, a1, b)
	assert.Equal(t, a1, newConverter(1).blank("b0"), "scoping is deterministic")
	assert.NotEqual(t, a1, newConverter(41).blank("b0"), "another batch gets another node")
	assert.Len(t, a1, 36)
}

// TestConverter_BlankSubjectAndObject tests that one label links subject and object.
func TestConverter_BlankSubjectAndObject(t *testing.T) {
	c := newConverter(7)
	t1, err := c.triple(parser.RawTriple{Subject: iri("http://x/s"), Predicate: iri("http://x/p"), Object: blank("n")})
	require.NoError(t, err)
	t2, err := c.triple(parser.RawTriple{Subject: blank("n"), Predicate: iri("http://x/q"), Object: lit("v", "", "")})
	require.NoError(t, err)

	assert.Equal(t, rdf.ObjectBlank, t1.Object.Kind)
	assert.Equal(t, rdf.SubjectBlank, t2.Subject.Kind)
	assert.Equal(t, t1.Object.Blank, t2.Subject.Blank)
}
