package triplestore

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/limits"
)

var (
	// ErrNotInstantiated is returned when the store has no state record yet.
	ErrNotInstantiated = errors.New("store not instantiated")

	// ErrAlreadyInstantiated is returned by a second Instantiate.
	ErrAlreadyInstantiated = errors.New("store already instantiated")
)

// State is the store record created once at instantiation.
// Owner and Limits never change afterwards; Stat moves only on commit.
type State struct {
	Owner  string        `json:"owner"`
	Limits limits.Limits `json:"limits"`
	Stat   limits.Stat   `json:"stat"`
}

// Instantiate writes the initial state record and a zero key counter.
func Instantiate(ctx context.Context, rw kv.ReadWriter, owner string, l limits.Limits) (*State, error) {
	_, err := rw.Get(ctx, stateKey)
	switch {
	case err == nil:
		return nil, ErrAlreadyInstantiated
	case !errors.Is(err, kv.ErrNotFound):
		return nil, fmt.Errorf("read state: %w", err)
	}

	st := &State{Owner: owner, Limits: l}
	if err := SaveState(rw, st); err != nil {
		return nil, err
	}
	SaveCounter(rw, 0)
	return st, nil
}

// LoadState reads the store record.
func LoadState(ctx context.Context, r kv.Reader) (*State, error) {
	data, err := r.Get(ctx, stateKey)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotInstantiated
	}
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, &kv.StorageError{Op: "decode state", Err: err}
	}
	return &st, nil
}

// SaveState buffers the store record.
func SaveState(w kv.Writer, st *State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	w.Set(stateKey, data)
	return nil
}

// LoadCounter reads the last assigned primary key.
// Zero means no triple has ever been committed.
func LoadCounter(ctx context.Context, r kv.Reader) (uint64, error) {
	data, err := r.Get(ctx, counterKey)
	if errors.Is(err, kv.ErrNotFound) {
		return 0, ErrNotInstantiated
	}
	if err != nil {
		return 0, fmt.Errorf("read key counter: %w", err)
	}
	if len(data) != 8 {
		return 0, &kv.StorageError{Op: "decode key counter", Err: fmt.Errorf("want 8 bytes, got %d", len(data))}
	}
	return binary.BigEndian.Uint64(data), nil
}

// SaveCounter buffers the last assigned primary key.
func SaveCounter(w kv.Writer, pk uint64) {
	w.Set(counterKey, binary.BigEndian.AppendUint64(nil, pk))
}
