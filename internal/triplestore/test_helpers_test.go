package triplestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/rdf"
)

var (
	exNS     = "http://example.org/"
	foafName = rdf.MustExplodeIRI("http://xmlns.com/foaf/0.1/name")
	foafKnow = rdf.MustExplodeIRI("http://xmlns.com/foaf/0.1/knows")
)

func named(local string) rdf.Node {
	return rdf.Node{Namespace: exNS, Value: local}
}

func triple(s string, p rdf.Node, o rdf.Object) rdf.Triple {
	return rdf.Triple{Subject: rdf.NamedSubject(named(s)), Predicate: p, Object: o}
}

// commitTriples writes triples with keys 1..n in one transaction.
func commitTriples(t *testing.T, storage kv.Storage, triples ...rdf.Triple) {
	t.Helper()
	txn := kv.Begin(storage)
	for i, tr := range triples {
		require.NoError(t, Put(txn, uint64(i+1), tr))
	}
	require.NoError(t, txn.Commit(context.Background()))
}
