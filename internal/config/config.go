// Package config loads store configuration files written in CUE.
//
// A configuration names the store owner, its seven limit ceilings and a
// few engine tunables:
//
//	owner: "did:example:alice"
//	limits: {
//		max_triple_count:         10000
//		max_query_variable_count: 8
//	}
//	default_query_limit: 50
//
// Files are unified with an embedded closed schema, so unknown fields,
// negative ceilings and a missing owner are reported with their position.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/semstore/internal/limits"
)

//go:embed schema.cue
var schemaSource string

// Error codes reported in LoadError.Code.
const (
	ErrCodeRead   = "E201" // file cannot be read
	ErrCodeSyntax = "E202" // not valid CUE
	ErrCodeSchema = "E203" // does not satisfy the schema
	ErrCodeDecode = "E204" // cannot be decoded into Config
)

// Config is a decoded store configuration.
type Config struct {
	Owner             string        `json:"owner"`
	Limits            limits.Limits `json:"limits"`
	DefaultQueryLimit uint64        `json:"default_query_limit"`
	CacheSize         int           `json:"cache_size"`
}

// LoadError is a configuration error with its CUE position, if known.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads and parses the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: err.Error()}
	}
	return Parse(path, data)
}

// Parse validates data against the schema and decodes it. filename is
// only used in error positions.
func Parse(filename string, data []byte) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing here is a build defect.
		panic(fmt.Sprintf("config: invalid embedded schema: %v", err))
	}

	v := ctx.CompileBytes(data, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(ErrCodeSyntax, err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Config")).Unify(v)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(ErrCodeSchema, err)
	}

	var cfg Config
	if err := unified.Decode(&cfg); err != nil {
		return nil, formatCUEError(ErrCodeDecode, err)
	}
	return &cfg, nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(code string, err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}

	first := errs[0]
	loadErr := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		loadErr.Pos = positions[0]
	}
	return loadErr
}
