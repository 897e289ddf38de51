package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/semstore/internal/config"
	"github.com/roach88/semstore/internal/engine"
	"github.com/roach88/semstore/internal/kv/sqlitekv"
)

// session is one command's view of the store: the engine, the database
// it runs on and the configuration it was built from.
type session struct {
	engine  *engine.Engine
	storage *sqlitekv.Store
	config  *config.Config // nil when no --config was given
}

// loadConfig reads --config, if set.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.Config == "" {
		return nil, nil
	}
	return config.Load(opts.Config)
}

// openSession opens the database at --db and builds an engine tuned by
// the configuration file. extra options are applied last.
func openSession(opts *RootOptions, extra ...engine.Option) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	slog.Debug("opening database", "path", opts.Database)
	st, err := sqlitekv.Open(opts.Database)
	if err != nil {
		return nil, commandError(ErrCodeOpenStore, err)
	}

	engOpts := []engine.Option{engine.WithLogger(slog.Default())}
	if cfg != nil {
		engOpts = append(engOpts,
			engine.WithDefaultLimit(cfg.DefaultQueryLimit),
			engine.WithCacheSize(cfg.CacheSize),
		)
	}
	engOpts = append(engOpts, extra...)

	return &session{
		engine:  engine.New(st, engOpts...),
		storage: st,
		config:  cfg,
	}, nil
}

// Close releases the database.
func (s *session) Close() {
	if err := s.storage.Close(); err != nil {
		slog.Warn("closing database", "error", err)
	}
}

// openInput returns the named file, or stdin for "-".
func openInput(path string, stdin io.Reader) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, commandError(ErrCodeReadInput, fmt.Errorf("open input: %w", err))
	}
	return f, nil
}
