package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/roach88/semstore/internal/compiler"
	"github.com/roach88/semstore/internal/ingest"
	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/limits"
	"github.com/roach88/semstore/internal/parser"
	"github.com/roach88/semstore/internal/query"
	"github.com/roach88/semstore/internal/triplestore"
)

// DefaultCacheSize is the number of decoded triples kept in memory.
const DefaultCacheSize = 4096

// Engine serves instantiate, insert and select calls against one store.
//
// Calls are serialized: each one runs to completion, inside its own
// transaction, before the next starts. A failed call leaves no trace in
// storage.
type Engine struct {
	mu           sync.Mutex
	storage      kv.Storage
	pipeline     *ingest.Pipeline
	parser       parser.Parser
	logger       *slog.Logger
	defaultLimit uint64
	cacheSize    int
	cache        *triplestore.Cache
}

// Option configures an Engine.
type Option func(*Engine)

// WithParser replaces the document parser.
func WithParser(p parser.Parser) Option {
	return func(e *Engine) {
		e.parser = p
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithDefaultLimit sets the limit applied to queries that do not set one.
//
// Default: compiler.DefaultLimit (30). The value is always clamped to the
// store's max_query_limit.
func WithDefaultLimit(n uint64) Option {
	return func(e *Engine) {
		e.defaultLimit = n
	}
}

// WithCacheSize sets the decoded-triple cache size. Zero disables the cache.
func WithCacheSize(n int) Option {
	return func(e *Engine) {
		e.cacheSize = n
	}
}

// New creates an Engine over storage. The engine does not own storage;
// closing it is the caller's job.
func New(storage kv.Storage, opts ...Option) *Engine {
	e := &Engine{
		storage:      storage,
		parser:       parser.Default{},
		logger:       slog.Default(),
		defaultLimit: compiler.DefaultLimit,
		cacheSize:    DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.pipeline = ingest.New(e.parser)
	e.cache = triplestore.NewCache(e.cacheSize)
	return e
}

// Instantiate creates the store with its owner and limits. It fails with
// triplestore.ErrAlreadyInstantiated on an existing store.
func (e *Engine) Instantiate(ctx context.Context, owner string, l limits.Limits) (*triplestore.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := kv.Begin(e.storage)
	st, err := triplestore.Instantiate(ctx, txn, owner, l)
	if err != nil {
		txn.Discard()
		return nil, err
	}
	if err := txn.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit instantiate: %w", err)
	}

	e.logger.Info("store instantiated", "action", "instantiate", "owner", owner)
	return st, nil
}

// Insert parses payload as format and appends every triple it contains.
// Either all triples are stored or none are. Returns the number inserted.
func (e *Engine) Insert(ctx context.Context, sender string, format parser.Format, payload io.Reader) (uint64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	txn := kv.Begin(e.storage)
	res, err := e.pipeline.Insert(ctx, txn, sender, format, payload)
	if err != nil {
		txn.Discard()
		e.logger.Warn("insert rejected",
			"action", "insert",
			"sender", sender,
			"format", format,
			"code", Code(err),
			"error", err)
		return 0, err
	}
	if err := txn.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit insert: %w", err)
	}

	e.logger.Info("insert committed",
		"action", "insert",
		"inserted_count", res.Inserted,
		"triples_count", res.Stat.TriplesCount,
		"byte_size", res.Stat.ByteSize)
	return res.Inserted, nil
}

// Select compiles and evaluates q against the committed triples.
func (e *Engine) Select(ctx context.Context, q *query.SelectQuery) (*SelectResponse, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := triplestore.LoadState(ctx, e.storage)
	if err != nil {
		return nil, err
	}

	plan, err := compiler.Compile(q, st.Limits, compiler.Options{DefaultLimit: e.defaultLimit})
	if err != nil {
		e.logger.Debug("query rejected", "code", Code(err), "error", err)
		return nil, err
	}

	reader := triplestore.NewReader(e.storage, e.cache)
	bindings, err := Evaluate(ctx, reader, plan)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("query evaluated",
		"patterns", len(plan.Patterns),
		"limit", plan.Limit,
		"bindings", len(bindings))
	return Project(plan.Vars, bindings), nil
}

// Store returns the store record: owner, limits and usage. The recorded
// triple count must equal the number of stored triple records.
func (e *Engine) Store(ctx context.Context) (*triplestore.State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := triplestore.LoadState(ctx, e.storage)
	if err != nil {
		return nil, err
	}
	n, err := triplestore.NewReader(e.storage, nil).Count(ctx)
	if err != nil {
		return nil, err
	}
	if n != st.Stat.TriplesCount {
		e.logger.Error("store usage out of sync", "triples_count", st.Stat.TriplesCount, "records", n)
		return nil, &kv.StorageError{
			Op:  "check store",
			Err: fmt.Errorf("triples_count is %d but %d records are stored", st.Stat.TriplesCount, n),
		}
	}
	return st, nil
}
