package triplestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/rdf"
)

// TripleFunc is called for each visited triple. Returning false stops the visit.
type TripleFunc func(pk uint64, t rdf.Triple) (bool, error)

// Put buffers a triple under pk together with its index entry.
func Put(w kv.Writer, pk uint64, t rdf.Triple) error {
	data, err := marshalTriple(t)
	if err != nil {
		return err
	}
	w.Set(tripleKey(pk), data)
	w.Set(indexKey(t.Subject, t.Predicate, pk), []byte{})
	return nil
}

// Reader reads triples from a kv.Reader, optionally through a Cache.
type Reader struct {
	r     kv.Reader
	cache *Cache
}

// NewReader creates a triple reader. cache may be nil.
func NewReader(r kv.Reader, cache *Cache) *Reader {
	return &Reader{r: r, cache: cache}
}

// Get returns the triple stored under pk.
func (r *Reader) Get(ctx context.Context, pk uint64) (rdf.Triple, error) {
	if t, ok := r.cache.get(pk); ok {
		return t, nil
	}
	data, err := r.r.Get(ctx, tripleKey(pk))
	if errors.Is(err, kv.ErrNotFound) {
		return rdf.Triple{}, &kv.StorageError{Op: "get triple", Err: fmt.Errorf("dangling key %d: %w", pk, err)}
	}
	if err != nil {
		return rdf.Triple{}, err
	}
	return r.decode(pk, data)
}

// Scan visits every triple in primary key order.
func (r *Reader) Scan(ctx context.Context, fn TripleFunc) error {
	return r.r.Scan(ctx, triplesKey, func(key, value []byte) (bool, error) {
		pk, err := pkSuffix(key)
		if err != nil {
			return false, &kv.StorageError{Op: "scan triples", Err: err}
		}
		t, ok := r.cache.get(pk)
		if !ok {
			if t, err = r.decode(pk, value); err != nil {
				return false, err
			}
		}
		return fn(pk, t)
	})
}

// ScanSubjectPredicate visits, in primary key order, every triple whose
// subject and predicate equal s and p, using the secondary index.
func (r *Reader) ScanSubjectPredicate(ctx context.Context, s rdf.Subject, p rdf.Predicate, fn TripleFunc) error {
	return r.r.Scan(ctx, indexPrefix(s, p), func(key, _ []byte) (bool, error) {
		pk, err := pkSuffix(key)
		if err != nil {
			return false, &kv.StorageError{Op: "scan index", Err: err}
		}
		t, err := r.Get(ctx, pk)
		if err != nil {
			return false, err
		}
		return fn(pk, t)
	})
}

// Count returns the number of stored triple records.
func (r *Reader) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.r.Scan(ctx, triplesKey, func(_, _ []byte) (bool, error) {
		n++
		return true, nil
	})
	return n, err
}

func (r *Reader) decode(pk uint64, data []byte) (rdf.Triple, error) {
	t, err := unmarshalTriple(data)
	if err != nil {
		return rdf.Triple{}, &kv.StorageError{Op: "decode triple", Err: fmt.Errorf("key %d: %w", pk, err)}
	}
	r.cache.add(pk, t)
	return t, nil
}
