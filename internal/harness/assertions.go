package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			fmt.Fprintf(&buf, "  [%d] %s %s\n", event.Step, event.Action, event.Outcome)
		}
	}
	return buf.String()
}

// assertFinalStat checks the store usage after the last step.
func assertFinalStat(result *Result, assertion Assertion) error {
	if result.Stat.TriplesCount != assertion.Count {
		return &AssertionError{
			Type:     AssertFinalStat,
			Expected: fmt.Sprintf("%d triples", assertion.Count),
			Actual:   fmt.Sprintf("%d triples", result.Stat.TriplesCount),
			Trace:    result.Trace,
		}
	}
	if assertion.ByteSize != nil && result.Stat.ByteSize != *assertion.ByteSize {
		return &AssertionError{
			Type:     AssertFinalStat,
			Expected: fmt.Sprintf("%d bytes", *assertion.ByteSize),
			Actual:   fmt.Sprintf("%d bytes", result.Stat.ByteSize),
			Trace:    result.Trace,
		}
	}
	return nil
}

// assertTraceCount checks how many events match the action and, if set,
// the outcome.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	var count uint64
	for _, event := range trace {
		if event.Action != assertion.Action {
			continue
		}
		if assertion.Outcome != "" && event.Outcome != assertion.Outcome {
			continue
		}
		count++
	}

	if count != assertion.Count {
		what := assertion.Action
		if assertion.Outcome != "" {
			what += " (" + assertion.Outcome + ")"
		}
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, what),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// EvaluateAssertions checks every assertion against result and returns
// the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertFinalStat:
			err = assertFinalStat(result, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
