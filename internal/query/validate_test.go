package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestParse_FullQuery tests decoding every slot variant from JSON.
func TestParse_FullQuery(t *testing.T) {
	data := []byte(`{
		"prefixes": [{"prefix": "foaf", "namespace": "http://xmlns.com/foaf/0.1/"}],
		"select": ["s", "name"],
		"where": [
			{
				"subject": {"variable": "s"},
				"predicate": {"named_node": {"prefixed": "foaf:name"}},
				"object": {"variable": "name"}
			},
			{
				"subject": {"variable": "s"},
				"predicate": {"named_node": {"full": "http://xmlns.com/foaf/0.1/nick"}},
				"object": {"literal": {"language_tagged_string": {"value": "chat", "language": "fr"}}}
			},
			{
				"subject": {"node": {"blank_node": "b0"}},
				"predicate": {"variable": "p"},
				"object": {"literal": {"typed_value": {"value": "1", "datatype": {"prefixed": "xsd:int"}}}}
			}
		],
		"limit": 5
	}`)

	q, err := Parse(data)
	require.NoError(t, err)

	want := &SelectQuery{
		Prefixes: []Prefix{{Prefix: "foaf", Namespace: "http://xmlns.com/foaf/0.1/"}},
		Select:   []string{"s", "name"},
		Where: []TriplePattern{
			Pattern(SubjectVar("s"), PredicateIRI(Prefixed("foaf:name")), ObjectVar("name")),
			Pattern(SubjectVar("s"), PredicateIRI(Full("http://xmlns.com/foaf/0.1/nick")), ObjectLiteral(Lang("chat", "fr"))),
			Pattern(SubjectNode(Blank("b0")), PredicateVar("p"), ObjectLiteral(Typed("1", Prefixed("xsd:int")))),
		},
		Limit: WithLimit(5),
	}
	assert.Equal(t, want, q)
}

// TestParse_RoundTrip tests that helper-built queries survive JSON encoding.
func TestParse_RoundTrip(t *testing.T) {
	q := SelectQuery{
		Select: []string{"o"},
		Where: []TriplePattern{
			Pattern(SubjectNode(Named(Full("http://example.org/a"))), PredicateIRI(Full("http://example.org/p")), ObjectVar("o")),
			Pattern(SubjectVar("o"), PredicateIRI(Full("http://example.org/q")), ObjectLiteral(Simple(""))),
		},
	}
	data, err := json.Marshal(q)
	require.NoError(t, err)

	got, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, &q, got)
}

// TestParse_Rejects tests structural errors.
func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		json string
		path string
	}{
		{"unknown field", `{"select": [], "where": [], "bogus": 1}`, "$"},
		{"empty select variable", `{"select": [""], "where": []}`, "select[0]"},
		{"bad prefix name", `{"prefixes": [{"prefix": "a:b", "namespace": "x"}], "select": [], "where": []}`, "prefixes[0].prefix"},
		{"no subject variant", `{"select": [], "where": [{"subject": {}, "predicate": {"variable": "p"}, "object": {"variable": "o"}}]}`, "where[0].subject"},
		{"two object variants", `{"select": [], "where": [{"subject": {"variable": "s"}, "predicate": {"variable": "p"}, "object": {"variable": "o", "literal": {"simple": "x"}}}]}`, "where[0].object"},
		{"iri with both forms", `{"select": [], "where": [{"subject": {"variable": "s"}, "predicate": {"named_node": {"full": "http://x/p", "prefixed": "x:p"}}, "object": {"variable": "o"}}]}`, "where[0].predicate.named_node"},
		{"prefixed without colon", `{"select": [], "where": [{"subject": {"variable": "s"}, "predicate": {"named_node": {"prefixed": "nocolon"}}, "object": {"variable": "o"}}]}`, "where[0].predicate.named_node.prefixed"},
		{"empty language", `{"select": [], "where": [{"subject": {"variable": "s"}, "predicate": {"variable": "p"}, "object": {"literal": {"language_tagged_string": {"value": "v", "language": ""}}}}]}`, "where[0].object.literal.language_tagged_string.language"},
		{"node without variant", `{"select": [], "where": [{"subject": {"node": {}}, "predicate": {"variable": "p"}, "object": {"variable": "o"}}]}`, "where[0].subject.node"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.json))
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.path, ve.Path)
			assert.True(t, IsValidationError(err))
		})
	}
}
