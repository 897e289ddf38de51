package harness

import (
	"github.com/roach88/semstore/internal/engine"
	"github.com/roach88/semstore/internal/limits"
)

// Trace actions.
const (
	ActionInstantiate = "instantiate"
	ActionInsert      = "insert"
	ActionSelect      = "select"
)

// OutcomeOK is the outcome of a successful step.
const OutcomeOK = "ok"

// TraceEvent records one engine call and its outcome.
type TraceEvent struct {
	Step     int                    `json:"step"`
	Action   string                 `json:"action"`
	Outcome  string                 `json:"outcome"` // "ok" or an engine error code
	Inserted *uint64                `json:"inserted,omitempty"`
	Response *engine.SelectResponse `json:"response,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per engine call, instantiate first.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Stat is the store usage after the last step.
	Stat limits.Stat `json:"stat"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// record appends an event to the trace.
func (r *Result) record(event TraceEvent) {
	r.Trace = append(r.Trace, event)
}
