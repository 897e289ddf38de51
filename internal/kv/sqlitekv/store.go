// Package sqlitekv implements kv.Storage on top of SQLite.
//
// A single table holds every key. Each Apply runs in one SQL transaction,
// so the host's commit-or-nothing guarantee maps directly onto SQLite's.
package sqlitekv

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/semstore/internal/kv"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 1 - kv table (BLOB keys, WITHOUT ROWID)
const currentSchemaVersion = 1

// pageSize bounds how many rows a scan reads per query.
const pageSize = 256

// Store is a durable kv.Storage backed by SQLite.
type Store struct {
	db *sql.DB
}

var _ kv.Storage = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get implements kv.Reader.
func (s *Store) Get(ctx context.Context, key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT v FROM kv WHERE k = ?", nonNil(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, &kv.StorageError{Op: "get", Err: err}
	}
	return nonNil(value), nil
}

// Scan implements kv.Reader.
//
// Rows are read one page at a time and the rows handle is closed before fn
// runs. With a single pooled connection, holding it open across callbacks
// would deadlock any nested Get or Scan.
func (s *Store) Scan(ctx context.Context, prefix []byte, fn kv.ScanFunc) error {
	upper := kv.PrefixEnd(prefix)
	lower := nonNil(prefix)
	inclusive := true

	for {
		page, err := s.page(ctx, lower, inclusive, upper)
		if err != nil {
			return &kv.StorageError{Op: "scan", Err: err}
		}
		for _, e := range page {
			cont, err := fn(e.key, e.value)
			if err != nil || !cont {
				return err
			}
		}
		if len(page) < pageSize {
			return nil
		}
		lower = page[len(page)-1].key
		inclusive = false
	}
}

type entry struct {
	key   []byte
	value []byte
}

func (s *Store) page(ctx context.Context, lower []byte, inclusive bool, upper []byte) ([]entry, error) {
	op := ">"
	if inclusive {
		op = ">="
	}
	query := fmt.Sprintf("SELECT k, v FROM kv WHERE k %s ?", op)
	args := []any{lower}
	if upper != nil {
		query += " AND k < ?"
		args = append(args, upper)
	}
	query += " ORDER BY k ASC LIMIT ?"
	args = append(args, pageSize)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	page := make([]entry, 0, pageSize)
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.key, &e.value); err != nil {
			return nil, err
		}
		e.value = nonNil(e.value)
		page = append(page, e)
	}
	return page, rows.Err()
}

// Apply implements kv.Storage. All writes share one SQL transaction.
func (s *Store) Apply(ctx context.Context, writes []kv.Write) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &kv.StorageError{Op: "apply", Err: fmt.Errorf("begin transaction: %w", err)}
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO kv (k, v) VALUES (?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v
	`)
	if err != nil {
		return &kv.StorageError{Op: "apply", Err: fmt.Errorf("prepare upsert: %w", err)}
	}
	defer stmt.Close()

	for _, w := range writes {
		if _, err := stmt.ExecContext(ctx, nonNil(w.Key), nonNil(w.Value)); err != nil {
			return &kv.StorageError{Op: "apply", Err: fmt.Errorf("write %x: %w", w.Key, err)}
		}
	}

	if err := tx.Commit(); err != nil {
		return &kv.StorageError{Op: "apply", Err: fmt.Errorf("commit: %w", err)}
	}
	return nil
}

// nonNil maps nil to an empty slice. go-sqlite3 binds a nil []byte as NULL.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and stamps the schema version.
// Refuses databases written by a newer schema.
func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version > currentSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than supported version %d", version, currentSchemaVersion)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
