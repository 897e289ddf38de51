package kv

import (
	"bytes"
	"context"
	"sync"

	"github.com/google/btree"
)

type item struct {
	key   []byte
	value []byte
}

func itemLess(a, b item) bool {
	return bytes.Compare(a.key, b.key) < 0
}

func newTree() *btree.BTreeG[item] {
	return btree.NewG(32, itemLess)
}

// Memory is an in-memory Storage backed by an ordered B-tree.
type Memory struct {
	mu     sync.RWMutex
	tree   *btree.BTreeG[item]
	closed bool
}

var _ Storage = (*Memory)(nil)

// NewMemory creates an empty in-memory storage.
func NewMemory() *Memory {
	return &Memory{tree: newTree()}
}

// Get implements Reader.
func (m *Memory) Get(_ context.Context, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, &StorageError{Op: "get", Err: ErrClosed}
	}
	it, ok := m.tree.Get(item{key: key})
	if !ok {
		return nil, ErrNotFound
	}
	return clone(it.value), nil
}

// Scan implements Reader. Entries are read one page at a time and the lock
// is released before fn runs.
func (m *Memory) Scan(ctx context.Context, prefix []byte, fn ScanFunc) error {
	var after []byte
	for {
		if err := ctx.Err(); err != nil {
			return &StorageError{Op: "scan", Err: err}
		}
		page, err := m.page(prefix, after)
		if err != nil {
			return err
		}
		for _, it := range page {
			cont, err := fn(it.key, it.value)
			if err != nil || !cont {
				return err
			}
		}
		if len(page) < scanPageSize {
			return nil
		}
		after = page[len(page)-1].key
	}
}

// page collects up to scanPageSize entries with the prefix, strictly after
// the given key when it is non-nil.
func (m *Memory) page(prefix, after []byte) ([]item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, &StorageError{Op: "scan", Err: ErrClosed}
	}

	pivot := prefix
	if after != nil {
		pivot = after
	}
	page := make([]item, 0, scanPageSize)
	m.tree.AscendGreaterOrEqual(item{key: pivot}, func(it item) bool {
		if !bytes.HasPrefix(it.key, prefix) {
			return false
		}
		if after != nil && bytes.Equal(it.key, after) {
			return true
		}
		page = append(page, it)
		return len(page) < scanPageSize
	})
	return page, nil
}

// Apply implements Storage.
func (m *Memory) Apply(_ context.Context, writes []Write) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return &StorageError{Op: "apply", Err: ErrClosed}
	}
	for _, w := range writes {
		m.tree.ReplaceOrInsert(item{key: clone(w.Key), value: clone(w.Value)})
	}
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.tree.Len()
}

// Close implements Storage. Later operations fail with ErrClosed.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
