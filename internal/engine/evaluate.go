package engine

import (
	"context"
	"fmt"

	"github.com/roach88/semstore/internal/compiler"
	"github.com/roach88/semstore/internal/rdf"
	"github.com/roach88/semstore/internal/triplestore"
)

// Binding maps variable names to the terms they are bound to.
type Binding map[string]rdf.Term

// Evaluate runs plan against r and returns at most plan.Limit bindings.
//
// Patterns are joined left to right with a nested loop. For each pattern
// the candidate triples come from the (subject, predicate) index when both
// positions are fixed or already bound, otherwise from a full scan. Both
// sources yield triples in ascending primary key order, so the result order
// is fully determined by the stored data. Evaluation stops as soon as the
// limit is reached.
//
// A plan without patterns yields a single empty binding.
func Evaluate(ctx context.Context, r *triplestore.Reader, plan *compiler.Plan) ([]Binding, error) {
	ev := &evaluator{
		reader:   r,
		patterns: plan.Patterns,
		limit:    plan.Limit,
		current:  make(Binding),
		out:      []Binding{},
	}
	if ev.limit == 0 {
		return ev.out, nil
	}
	if _, err := ev.solve(ctx, 0); err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	return ev.out, nil
}

type evaluator struct {
	reader   *triplestore.Reader
	patterns []compiler.Pattern
	limit    uint64
	current  Binding
	out      []Binding
}

// solve extends the current binding with every match of patterns[i:].
// It returns false once the limit has been reached.
func (ev *evaluator) solve(ctx context.Context, i int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if i == len(ev.patterns) {
		solution := make(Binding, len(ev.current))
		for k, v := range ev.current {
			solution[k] = v
		}
		ev.out = append(ev.out, solution)
		return uint64(len(ev.out)) < ev.limit, nil
	}

	p := ev.patterns[i]
	visit := func(_ uint64, t rdf.Triple) (bool, error) {
		bound, ok := ev.match(p, t)
		if !ok {
			return true, nil
		}
		more, err := ev.solve(ctx, i+1)
		for _, name := range bound {
			delete(ev.current, name)
		}
		return more, err
	}

	sTerm, sFixed := ev.resolve(p.Subject)
	pTerm, pFixed := ev.resolve(p.Predicate)
	if !sFixed || !pFixed {
		return ev.scan(ctx, func(fn triplestore.TripleFunc) error {
			return ev.reader.Scan(ctx, fn)
		}, visit)
	}

	subject, ok := sTerm.AsSubject()
	if !ok {
		return true, nil
	}
	predicate, ok := pTerm.AsPredicate()
	if !ok {
		return true, nil
	}
	return ev.scan(ctx, func(fn triplestore.TripleFunc) error {
		return ev.reader.ScanSubjectPredicate(ctx, subject, predicate, fn)
	}, visit)
}

// scan runs a triple source and reports whether evaluation should go on.
func (ev *evaluator) scan(ctx context.Context, source func(triplestore.TripleFunc) error, visit triplestore.TripleFunc) (bool, error) {
	more := true
	err := source(func(pk uint64, t rdf.Triple) (bool, error) {
		next, err := visit(pk, t)
		more = next
		return next, err
	})
	if err != nil {
		return false, err
	}
	return more, ctx.Err()
}

// resolve returns the term a slot currently stands for, if any.
func (ev *evaluator) resolve(s compiler.Slot) (rdf.Term, bool) {
	if !s.IsVariable() {
		return s.Term, true
	}
	t, ok := ev.current[s.Variable]
	return t, ok
}

// match unifies p with t. On success it returns the variables it bound;
// on failure the current binding is left untouched.
func (ev *evaluator) match(p compiler.Pattern, t rdf.Triple) ([]string, bool) {
	var bound []string
	positions := [3]struct {
		slot compiler.Slot
		term rdf.Term
	}{
		{p.Subject, t.Subject.Term()},
		{p.Predicate, rdf.NodeTerm(t.Predicate)},
		{p.Object, t.Object.Term()},
	}

	for _, pos := range positions {
		if !pos.slot.IsVariable() {
			if !pos.slot.Term.Equal(pos.term) {
				return ev.unbind(bound), false
			}
			continue
		}
		if existing, ok := ev.current[pos.slot.Variable]; ok {
			if !existing.Equal(pos.term) {
				return ev.unbind(bound), false
			}
			continue
		}
		ev.current[pos.slot.Variable] = pos.term
		bound = append(bound, pos.slot.Variable)
	}
	return bound, true
}

func (ev *evaluator) unbind(names []string) []string {
	for _, name := range names {
		delete(ev.current, name)
	}
	return nil
}
