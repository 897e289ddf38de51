package harness

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/roach88/semstore/internal/engine"
	"github.com/roach88/semstore/internal/kv"
	"github.com/roach88/semstore/internal/kv/sqlitekv"
	"github.com/roach88/semstore/internal/query"
)

// setupError marks a step that could not be attempted, as opposed to an
// engine call that failed.
type setupError struct {
	err error
}

func (e *setupError) Error() string {
	return e.err.Error()
}

// Harness runs the steps of one scenario against one engine.
type Harness struct {
	scenario *Scenario
	engine   *engine.Engine
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh store for isolation. Execution flow:
//  1. Open the backend and instantiate the store
//  2. Run every step, recording a trace event and checking its expectation
//  3. Read the final store usage and evaluate assertions
//
// A returned error means the scenario could not run at all; failed
// expectations are reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with engine logs sent to logger.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	storage, cleanup, err := openBackend(scenario.Backend)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	l, err := scenario.storeLimits()
	if err != nil {
		return nil, err
	}

	h := &Harness{
		scenario: scenario,
		engine: engine.New(storage,
			engine.WithLogger(logger),
			engine.WithDefaultLimit(scenario.DefaultQueryLimit),
		),
	}

	ctx := context.Background()
	result := NewResult()

	if _, err := h.engine.Instantiate(ctx, scenario.Owner, l); err != nil {
		return nil, fmt.Errorf("failed to instantiate store: %w", err)
	}
	result.record(TraceEvent{Step: 0, Action: ActionInstantiate, Outcome: OutcomeOK})

	for i, step := range scenario.Steps {
		if err := h.runStep(ctx, i+1, step, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}

	st, err := h.engine.Store(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}
	result.Stat = st.Stat

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// runStep executes one step. Engine errors are outcomes, not failures;
// only harness problems such as an unreadable file are returned.
func (h *Harness) runStep(ctx context.Context, n int, step Step, result *Result) error {
	var (
		event = TraceEvent{Step: n}
		err   error
		count uint64
	)

	switch {
	case step.Insert != nil:
		event.Action = ActionInsert
		count, err = h.insert(ctx, step.Insert)
		if err == nil {
			event.Inserted = &count
		}
	case step.Select != nil:
		event.Action = ActionSelect
		event.Response, err = h.selectQuery(ctx, step.Select)
		if err == nil {
			count = uint64(len(event.Response.Results.Bindings))
		}
	}

	var setupErr *setupError
	if errors.As(err, &setupErr) {
		return setupErr.err
	}

	event.Outcome = OutcomeOK
	if err != nil {
		event.Outcome = string(engine.Code(err))
	}
	result.record(event)

	for _, msg := range checkExpect(n, step.Expect, event, count) {
		result.AddError(msg)
	}
	return nil
}

func (h *Harness) insert(ctx context.Context, ins *InsertStep) (uint64, error) {
	format, err := ins.format()
	if err != nil {
		return 0, &setupError{err: err}
	}

	payload := []byte(ins.Data)
	if ins.File != "" {
		payload, err = os.ReadFile(h.scenario.path(ins.File))
		if err != nil {
			return 0, &setupError{err: fmt.Errorf("read insert file: %w", err)}
		}
	}
	return h.engine.Insert(ctx, ins.Sender, format, bytes.NewReader(payload))
}

func (h *Harness) selectQuery(ctx context.Context, sel *SelectStep) (*engine.SelectResponse, error) {
	data, err := json.Marshal(sel.Query)
	if err != nil {
		return nil, &setupError{err: fmt.Errorf("encode query: %w", err)}
	}
	q, err := query.Parse(data)
	if err != nil {
		return nil, err
	}
	return h.engine.Select(ctx, q)
}

// checkExpect compares a step outcome with its expectation.
func checkExpect(n int, expect *Expect, event TraceEvent, count uint64) []string {
	if expect == nil {
		if event.Outcome != OutcomeOK {
			return []string{fmt.Sprintf("step %d: %s failed with %s", n, event.Action, event.Outcome)}
		}
		return nil
	}

	wantOutcome := OutcomeOK
	if expect.Error != "" {
		wantOutcome = expect.Error
	}
	if event.Outcome != wantOutcome {
		return []string{fmt.Sprintf("step %d: expected outcome %s, got %s", n, wantOutcome, event.Outcome)}
	}
	if event.Outcome != OutcomeOK {
		return nil
	}

	var errs []string
	if expect.Count != nil && *expect.Count != count {
		errs = append(errs, fmt.Sprintf("step %d: expected count %d, got %d", n, *expect.Count, count))
	}
	if expect.Bindings != nil && event.Response != nil {
		errs = append(errs, compareBindings(n, expect.Bindings, event.Response.Results.Bindings)...)
	}
	return errs
}

func compareBindings(n int, want []map[string]string, got []map[string]engine.Value) []string {
	if len(want) != len(got) {
		return []string{fmt.Sprintf("step %d: expected %d bindings, got %d", n, len(want), len(got))}
	}
	var errs []string
	for i := range want {
		for name, term := range want[i] {
			v, ok := got[i][name]
			switch {
			case !ok:
				errs = append(errs, fmt.Sprintf("step %d: binding %d: %s is unbound", n, i, name))
			case v.String() != term:
				errs = append(errs, fmt.Sprintf("step %d: binding %d: %s = %s, want %s", n, i, name, v.String(), term))
			}
		}
	}
	return errs
}

// openBackend returns the storage for a scenario and its cleanup.
func openBackend(backend string) (kv.Storage, func(), error) {
	switch backend {
	case "", BackendMemory:
		m := kv.NewMemory()
		return m, func() { m.Close() }, nil
	case BackendSQLite:
		dir, err := os.MkdirTemp("", "semstore-scenario-")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create temp dir: %w", err)
		}
		st, err := sqlitekv.Open(filepath.Join(dir, "store.db"))
		if err != nil {
			os.RemoveAll(dir)
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return st, func() {
			st.Close()
			os.RemoveAll(dir)
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q", backend)
	}
}
