package kv

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get when the key does not exist.
var ErrNotFound = errors.New("kv: key not found")

// ErrClosed is returned by operations on a closed storage.
var ErrClosed = errors.New("kv: storage closed")

// ErrTxnDone is returned when a committed or discarded Txn is reused.
var ErrTxnDone = errors.New("kv: transaction already finished")

// scanPageSize bounds how many entries a backend reads per page.
const scanPageSize = 128

// ScanFunc is called for each key visited by Scan.
// Returning false stops the scan. key and value must not be retained or modified.
type ScanFunc func(key, value []byte) (bool, error)

// Reader is the read side of the host storage boundary.
type Reader interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Scan visits every key starting with prefix in ascending byte order.
	Scan(ctx context.Context, prefix []byte, fn ScanFunc) error
}

// Writer accepts buffered writes.
type Writer interface {
	Set(key, value []byte)
}

// ReadWriter is a Reader that also buffers writes (a Txn).
type ReadWriter interface {
	Reader
	Writer
}

// Write is a single key/value assignment applied by Storage.Apply.
type Write struct {
	Key   []byte
	Value []byte
}

// Storage is a committed key-value store.
type Storage interface {
	Reader

	// Apply stores all writes atomically. Either every write becomes
	// visible or none does.
	Apply(ctx context.Context, writes []Write) error

	Close() error
}

// StorageError reports a failure of the underlying storage.
// The host error is preserved and reachable through errors.Unwrap.
type StorageError struct {
	Op  string // "get", "scan", "apply", ...
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError returns true if the error is a StorageError.
// Uses errors.As to handle wrapped errors.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// PrefixEnd returns the smallest key greater than every key with the given
// prefix, or nil when no such key exists (prefix is empty or all 0xFF).
func PrefixEnd(prefix []byte) []byte {
	end := clone(prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}

// clone copies b. The result is never nil so empty values stay distinct
// from missing ones.
func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
