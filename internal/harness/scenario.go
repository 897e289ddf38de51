package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/semstore/internal/limits"
	"github.com/roach88/semstore/internal/parser"
)

// Scenario defines a store scenario: a store configuration, the steps run
// against it and the assertions checked at the end.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Owner is the store owner passed to instantiate.
	Owner string `yaml:"owner"`

	// Backend selects the storage: "memory" (default) or "sqlite".
	Backend string `yaml:"backend,omitempty"`

	// Limits maps ceiling names to values. Missing ceilings are unbounded.
	Limits map[string]uint64 `yaml:"limits,omitempty"`

	// DefaultQueryLimit overrides the engine's default query limit.
	DefaultQueryLimit uint64 `yaml:"default_query_limit,omitempty"`

	// Steps run in order, each in its own engine call.
	Steps []Step `yaml:"steps"`

	// Assertions are evaluated after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// baseDir resolves relative insert files.
	baseDir string
}

// Backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Step is exactly one insert or select, with an optional expectation.
type Step struct {
	Insert *InsertStep `yaml:"insert,omitempty"`
	Select *SelectStep `yaml:"select,omitempty"`

	// Expect checks the step outcome. Nil means the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// InsertStep inserts a document given inline or as a file.
type InsertStep struct {
	Sender string `yaml:"sender"`
	Format string `yaml:"format,omitempty"` // inferred from File when empty
	File   string `yaml:"file,omitempty"`
	Data   string `yaml:"data,omitempty"`
}

// format resolves the document format, inferring it from File when unset.
func (i *InsertStep) format() (parser.Format, error) {
	if i.Format == "" && i.File != "" {
		return parser.FormatFromPath(i.File)
	}
	return parser.ParseFormat(i.Format)
}

// SelectStep runs a select query. Query has the JSON query shape.
type SelectStep struct {
	Query map[string]any `yaml:"query"`
}

// Expect specifies the expected outcome of a step.
type Expect struct {
	// Error is the expected engine error code. Empty means success.
	Error string `yaml:"error,omitempty"`

	// Count is the number of inserted triples or returned bindings.
	Count *uint64 `yaml:"count,omitempty"`

	// Bindings lists the expected solutions in order. Each maps variables
	// to terms in N-Triples syntax; unlisted variables are not checked.
	Bindings []map[string]string `yaml:"bindings,omitempty"`
}

// Assertion validates the trace or the final store usage.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_stat": triple count (and byte size, if set) after the last step
	// - "trace_count": number of trace events with Action and Outcome
	Type string `yaml:"type"`

	// Action filters trace events (used by trace_count).
	Action string `yaml:"action,omitempty"`

	// Outcome filters trace events by "ok" or error code (used by trace_count).
	Outcome string `yaml:"outcome,omitempty"`

	// Count is the expected triple count or event count.
	Count uint64 `yaml:"count"`

	// ByteSize is the expected store byte size (used by final_stat).
	ByteSize *uint64 `yaml:"byte_size,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalStat  = "final_stat"
	AssertTraceCount = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}
	scenario.baseDir = filepath.Dir(path)
	return scenario, nil
}

// ParseScenario parses scenario YAML. Relative insert files resolve
// against the working directory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// storeLimits converts the limits map into limits.Limits.
func (s *Scenario) storeLimits() (limits.Limits, error) {
	var l limits.Limits
	for name, value := range s.Limits {
		if err := l.Set(limits.Kind(name), value); err != nil {
			return limits.Limits{}, err
		}
	}
	return l, nil
}

// path resolves an insert file against the scenario directory.
func (s *Scenario) path(file string) string {
	if filepath.IsAbs(file) || s.baseDir == "" {
		return file
	}
	return filepath.Join(s.baseDir, file)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Owner == "" {
		return fmt.Errorf("owner is required")
	}

	switch s.Backend {
	case "", BackendMemory, BackendSQLite:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendMemory, BackendSQLite, s.Backend)
	}

	if _, err := s.storeLimits(); err != nil {
		return fmt.Errorf("limits: %w", err)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, a := range s.Assertions {
		switch a.Type {
		case AssertFinalStat:
		case AssertTraceCount:
			if a.Action == "" {
				return fmt.Errorf("assertions[%d]: action is required for trace_count", i)
			}
		case "":
			return fmt.Errorf("assertions[%d]: type is required", i)
		default:
			return fmt.Errorf("assertions[%d]: unknown type %q", i, a.Type)
		}
	}
	return nil
}

func validateStep(i int, step *Step) error {
	switch {
	case step.Insert != nil && step.Select != nil:
		return fmt.Errorf("steps[%d]: insert and select are mutually exclusive", i)
	case step.Insert != nil:
		ins := step.Insert
		if ins.Sender == "" {
			return fmt.Errorf("steps[%d].insert: sender is required", i)
		}
		if _, err := ins.format(); err != nil {
			return fmt.Errorf("steps[%d].insert: %w", i, err)
		}
		if (ins.File == "") == (ins.Data == "") {
			return fmt.Errorf("steps[%d].insert: exactly one of file or data is required", i)
		}
	case step.Select != nil:
		if step.Select.Query == nil {
			return fmt.Errorf("steps[%d].select: query is required", i)
		}
	default:
		return fmt.Errorf("steps[%d]: insert or select is required", i)
	}
	return nil
}
