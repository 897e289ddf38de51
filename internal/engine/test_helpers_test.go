package engine

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/limits"
	"github.com/roach88/semstore/internal/parser"
	"github.com/roach88/semstore/internal/query"
	"github.com/roach88/semstore/internal/rdf"
)

const (
	owner   = "owner"
	people  = "https://example.org/people/"
	foaf    = "http://xmlns.com/foaf/0.1/"
	xsdInt  = "http://www.w3.org/2001/XMLSchema#integer"
	network = `<https://example.org/people/alice> <http://xmlns.com/foaf/0.1/knows> <https://example.org/people/bob> .
<https://example.org/people/bob> <http://xmlns.com/foaf/0.1/knows> <https://example.org/people/carol> .
<https://example.org/people/alice> <http://xmlns.com/foaf/0.1/name> "Alice" .
<https://example.org/people/bob> <http://xmlns.com/foaf/0.1/name> "Bob"@en .
<https://example.org/people/carol> <http://xmlns.com/foaf/0.1/name> "Carol" .
<https://example.org/people/carol> <http://xmlns.com/foaf/0.1/age> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .
`
)

// createTestEngine returns an engine over an instantiated in-memory store.
func createTestEngine(t *testing.T, l limits.Limits, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	e := New(kv.NewMemory(), opts...)
	_, err := e.Instantiate(context.Background(), owner, l)
	require.NoError(t, err)
	return e
}

// createNetworkEngine returns an engine holding the six-triple network.
func createNetworkEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := createTestEngine(t, limits.Unbounded(), opts...)
	n, err := e.Insert(context.Background(), owner, parser.FormatNTriples, strings.NewReader(network))
	require.NoError(t, err)
	require.Equal(t, uint64(6), n)
	return e
}

func person(name string) rdf.Term {
	return rdf.NodeTerm(rdf.Node{Namespace: people, Value: name})
}

func personIRI(name string) query.IRI {
	return query.Prefixed("people:" + name)
}

func foafIRI(local string) query.IRI {
	return query.Prefixed("foaf:" + local)
}

// selectQuery builds a query with the people and foaf prefixes declared.
func selectQuery(vars []string, patterns ...query.TriplePattern) *query.SelectQuery {
	return &query.SelectQuery{
		Prefixes: []query.Prefix{
			{Prefix: "people", Namespace: people},
			{Prefix: "foaf", Namespace: foaf},
		},
		Select: vars,
		Where:  patterns,
	}
}
