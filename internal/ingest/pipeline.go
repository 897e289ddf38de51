// Package ingest implements the insertion pipeline: it reads raw triples
// from the term-stream boundary, converts them to canonical triples,
// enforces the store's ceilings and buffers the writes in a transaction.
//
// The pipeline never commits. The caller owns the kv.Txn and commits it
// only when Insert returns without error, so a failed batch leaves no
// trace in committed state.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/limits"
	"github.com/roach88/semstore/internal/parser"
	"github.com/roach88/semstore/internal/triplestore"
)

// Pipeline inserts documents into a triple store.
type Pipeline struct {
	parser parser.Parser
}

// New creates a pipeline reading documents through p.
func New(p parser.Parser) *Pipeline {
	return &Pipeline{parser: p}
}

// Result describes a successful insert.
type Result struct {
	Inserted uint64      // triples written by this call
	FirstKey uint64      // primary key of the first written triple, 0 if none
	LastKey  uint64      // primary key of the last written triple, 0 if none
	Stat     limits.Stat // store usage after the insert
}

// Insert reads payload as format and buffers every triple into txn.
//
// The sender must be the store owner; this is checked before the payload
// is read. Each triple is converted, admitted by the limit guard and only
// then written, so the buffered state is always consistent. On any error
// the caller must discard txn.
func (p *Pipeline) Insert(ctx context.Context, txn kv.ReadWriter, sender string, format parser.Format, payload io.Reader) (*Result, error) {
	st, err := triplestore.LoadState(ctx, txn)
	if err != nil {
		return nil, err
	}
	if sender != st.Owner {
		return nil, &UnauthorizedError{Sender: sender}
	}

	lastKey, err := triplestore.LoadCounter(ctx, txn)
	if err != nil {
		return nil, err
	}

	stream, err := p.parser.Stream(format, payload)
	if err != nil {
		return nil, &ParseError{Reason: "open document", Err: err}
	}

	guard := limits.NewGuard(st.Limits, st.Stat)
	conv := newConverter(lastKey + 1)
	result := &Result{}

	for n := 1; ; n++ {
		raw, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Triple: n, Err: err}
		}

		t, err := conv.triple(raw)
		if err != nil {
			return nil, &ParseError{Triple: n, Reason: "invalid term", Err: err}
		}

		pk := lastKey + 1
		if err := guard.Admit(t.Size()); err != nil {
			return nil, err
		}
		if err := triplestore.Put(txn, pk, t); err != nil {
			return nil, fmt.Errorf("put triple %d: %w", pk, err)
		}
		lastKey = pk

		if result.FirstKey == 0 {
			result.FirstKey = pk
		}
		result.LastKey = pk
	}

	result.Inserted = guard.Admitted()
	result.Stat = guard.Stat()
	if result.Inserted == 0 {
		return result, nil
	}

	st.Stat = result.Stat
	if err := triplestore.SaveState(txn, st); err != nil {
		return nil, err
	}
	triplestore.SaveCounter(txn, lastKey)
	return result, nil
}
