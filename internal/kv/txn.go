package kv

import (
	"bytes"
	"context"

	"github.com/google/btree"
)

// Txn is an explicit transaction over a Storage.
//
// Writes are buffered in an ordered in-memory tree; reads see the
// committed state with the buffered writes laid over it. Nothing reaches
// the Storage until Commit, which flushes every write through a single
// Apply. Discard drops the buffer. A Txn is not safe for concurrent use.
type Txn struct {
	base    Storage
	pending *btree.BTreeG[item]
	done    bool
}

var _ ReadWriter = (*Txn)(nil)

// Begin starts a transaction on s.
func Begin(s Storage) *Txn {
	return &Txn{base: s, pending: newTree()}
}

// Get implements Reader with read-your-writes semantics.
func (t *Txn) Get(ctx context.Context, key []byte) ([]byte, error) {
	if it, ok := t.pending.Get(item{key: key}); ok {
		return clone(it.value), nil
	}
	return t.base.Get(ctx, key)
}

// Set buffers a write. It is applied only if the transaction commits.
func (t *Txn) Set(key, value []byte) {
	t.pending.ReplaceOrInsert(item{key: clone(key), value: clone(value)})
}

// Scan implements Reader, merging buffered writes into the committed
// key order. A buffered value shadows the committed value for the same key.
func (t *Txn) Scan(ctx context.Context, prefix []byte, fn ScanFunc) error {
	var local []item
	t.pending.AscendGreaterOrEqual(item{key: prefix}, func(it item) bool {
		if !bytes.HasPrefix(it.key, prefix) {
			return false
		}
		local = append(local, it)
		return true
	})

	i := 0
	stopped := false
	err := t.base.Scan(ctx, prefix, func(key, value []byte) (bool, error) {
		for i < len(local) && bytes.Compare(local[i].key, key) < 0 {
			cont, err := fn(local[i].key, local[i].value)
			i++
			if err != nil || !cont {
				stopped = true
				return false, err
			}
		}
		if i < len(local) && bytes.Equal(local[i].key, key) {
			value = local[i].value
			i++
		}
		cont, err := fn(key, value)
		if err != nil || !cont {
			stopped = true
			return false, err
		}
		return true, nil
	})
	if err != nil || stopped {
		return err
	}

	for ; i < len(local); i++ {
		cont, err := fn(local[i].key, local[i].value)
		if err != nil || !cont {
			return err
		}
	}
	return nil
}

// Len returns the number of buffered writes.
func (t *Txn) Len() int {
	return t.pending.Len()
}

// Commit flushes all buffered writes atomically. An empty transaction
// commits without touching the storage. The Txn cannot be reused.
func (t *Txn) Commit(ctx context.Context) error {
	if t.done {
		return ErrTxnDone
	}
	t.done = true

	if t.pending.Len() == 0 {
		return nil
	}
	writes := make([]Write, 0, t.pending.Len())
	t.pending.Ascend(func(it item) bool {
		writes = append(writes, Write{Key: it.key, Value: it.value})
		return true
	})
	t.pending.Clear(false)
	return t.base.Apply(ctx, writes)
}

// Discard drops all buffered writes. Safe to call after Commit.
func (t *Txn) Discard() {
	if t.done {
		return
	}
	t.done = true
	t.pending.Clear(false)
}
