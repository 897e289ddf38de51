package kv

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStorage wraps Memory and fails every Apply.
type failingStorage struct {
	*Memory
}

func (f failingStorage) Apply(context.Context, []Write) error {
	return &StorageError{Op: "apply", Err: errors.New("disk full")}
}

// TestTxn_ReadYourWrites tests that buffered writes are visible inside the txn only.
func TestTxn_ReadYourWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	txn := Begin(m)
	txn.Set([]byte("a"), []byte("1"))

	v, err := txn.Get(ctx, []byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)

	_, err = m.Get(ctx, []byte("a"))
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestTxn_CommitFlushes tests that Commit makes all writes visible.
func TestTxn_CommitFlushes(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	txn := Begin(m)
	txn.Set([]byte("a"), []byte("1"))
	txn.Set([]byte("b"), []byte("2"))
	assert.Equal(t, 2, txn.Len())

	require.NoError(t, txn.Commit(ctx))
	assert.Equal(t, 2, m.Len())

	assert.ErrorIs(t, txn.Commit(ctx), ErrTxnDone)
}

// TestTxn_DiscardDrops tests that discarded writes never reach storage.
func TestTxn_DiscardDrops(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	txn := Begin(m)
	txn.Set([]byte("a"), []byte("1"))
	txn.Discard()

	assert.Equal(t, 0, m.Len())
	assert.ErrorIs(t, txn.Commit(ctx), ErrTxnDone)
}

// TestTxn_CommitFailure tests that a failing Apply surfaces as StorageError.
func TestTxn_CommitFailure(t *testing.T) {
	m := NewMemory()
	txn := Begin(failingStorage{m})
	txn.Set([]byte("a"), []byte("1"))

	err := txn.Commit(context.Background())
	require.Error(t, err)
	assert.True(t, IsStorageError(err))
	assert.Equal(t, 0, m.Len())
}

// TestTxn_ScanMergesPending tests merged scans over committed and buffered keys.
func TestTxn_ScanMergesPending(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Apply(ctx, []Write{
		{Key: []byte("p1"), Value: []byte("old")},
		{Key: []byte("p3"), Value: []byte("c")},
	}))

	txn := Begin(m)
	txn.Set([]byte("p0"), []byte("n"))
	txn.Set([]byte("p1"), []byte("new"))
	txn.Set([]byte("p4"), []byte("n"))
	txn.Set([]byte("q0"), []byte("other"))

	var got []string
	err := txn.Scan(ctx, []byte("p"), func(key, value []byte) (bool, error) {
		got = append(got, string(key)+"="+string(value))
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"p0=n", "p1=new", "p3=c", "p4=n"}, got)
}

// TestTxn_ScanStopInPending tests stopping while draining buffered keys.
func TestTxn_ScanStopInPending(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Apply(ctx, []Write{{Key: []byte("b")}}))

	txn := Begin(m)
	txn.Set([]byte("a"), nil)
	txn.Set([]byte("c"), nil)

	var got []string
	err := txn.Scan(ctx, nil, func(key, _ []byte) (bool, error) {
		got = append(got, string(key))
		return len(got) < 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got)
}

// TestTxn_EmptyCommit tests that an empty commit does not touch storage.
func TestTxn_EmptyCommit(t *testing.T) {
	txn := Begin(failingStorage{NewMemory()})
	assert.NoError(t, txn.Commit(context.Background()))
}
