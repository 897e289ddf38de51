// Package compiler turns a SelectQuery into an executable Plan.
//
// Compilation resolves every prefixed IRI, converts fixed slots into
// canonical rdf terms, enforces the query ceilings and settles the
// effective limit. The resulting Plan needs no further validation.
package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/semstore/internal/limits"
	"github.com/roach88/semstore/internal/query"
	"github.com/roach88/semstore/internal/rdf"
)

// DefaultLimit is used when neither the query nor the options set a limit.
const DefaultLimit uint64 = 30

const xsdString = "http://www.w3.org/2001/XMLSchema#string"

// Options tunes compilation.
type Options struct {
	// DefaultLimit applies to queries without a limit. Zero means
	// DefaultLimit. It is clamped to max_query_limit when that is set.
	DefaultLimit uint64
}

// Compile validates q against the store limits and resolves it into a Plan.
//
// Steps, in order:
//  1. Build the prefix table, rejecting duplicate names
//     with DuplicatePrefixError
//  2. Resolve every IRI; a prefixed IRI with an undeclared prefix fails
//     with UnknownPrefixError
//  3. Count distinct variables against max_query_variable_count
//  4. Check that every selected variable occurs in some pattern
//  5. Check the requested limit against max_query_limit, or apply the default
func Compile(q *query.SelectQuery, l limits.Limits, opts Options) (*Plan, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	prefixes := make(map[string]string, len(q.Prefixes))
	for _, p := range q.Prefixes {
		if _, dup := prefixes[p.Prefix]; dup {
			return nil, &DuplicatePrefixError{Name: p.Prefix}
		}
		prefixes[p.Prefix] = p.Namespace
	}
	r := &resolver{prefixes: prefixes}

	plan := &Plan{
		Vars:     append([]string{}, q.Select...),
		Patterns: make([]Pattern, 0, len(q.Where)),
	}
	for i, tp := range q.Where {
		p, err := r.pattern(tp)
		if err != nil {
			if ce, ok := err.(*CompileError); ok {
				ce.Field = fmt.Sprintf("where[%d].%s", i, ce.Field)
			}
			return nil, err
		}
		plan.Patterns = append(plan.Patterns, p)
	}

	inPatterns := patternVariables(plan.Patterns)
	distinct := make(map[string]struct{}, len(inPatterns)+len(q.Select))
	for v := range inPatterns {
		distinct[v] = struct{}{}
	}
	for _, v := range q.Select {
		distinct[v] = struct{}{}
	}
	if err := l.CheckQueryVariables(uint64(len(distinct))); err != nil {
		return nil, tooComplex(err)
	}

	seen := make(map[string]bool, len(q.Select))
	for _, v := range q.Select {
		if seen[v] {
			return nil, &CompileError{Field: "select", Message: fmt.Sprintf("variable %q selected twice", v)}
		}
		seen[v] = true
		if _, ok := inPatterns[v]; !ok {
			return nil, &UnboundVariableError{Variable: v}
		}
	}

	limit, err := effectiveLimit(q.Limit, l, opts)
	if err != nil {
		return nil, err
	}
	plan.Limit = limit
	return plan, nil
}

func effectiveLimit(requested *uint64, l limits.Limits, opts Options) (uint64, error) {
	if requested != nil {
		if err := l.CheckQueryLimit(*requested); err != nil {
			return 0, tooComplex(err)
		}
		return *requested, nil
	}

	limit := opts.DefaultLimit
	if limit == 0 {
		limit = DefaultLimit
	}
	if ceiling, ok := l.Ceiling(limits.KindMaxQueryLimit); ok && limit > ceiling {
		limit = ceiling
	}
	return limit, nil
}

func patternVariables(patterns []Pattern) map[string]struct{} {
	vars := make(map[string]struct{})
	for _, p := range patterns {
		for _, s := range []Slot{p.Subject, p.Predicate, p.Object} {
			if s.IsVariable() {
				vars[s.Variable] = struct{}{}
			}
		}
	}
	return vars
}

// resolver converts query terms into canonical terms.
type resolver struct {
	prefixes map[string]string
}

func (r *resolver) pattern(tp query.TriplePattern) (Pattern, error) {
	s, err := r.subject(tp.Subject)
	if err != nil {
		return Pattern{}, err
	}
	p, err := r.predicate(tp.Predicate)
	if err != nil {
		return Pattern{}, err
	}
	o, err := r.object(tp.Object)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Subject: s, Predicate: p, Object: o}, nil
}

func (r *resolver) subject(v query.VarOrNode) (Slot, error) {
	if v.Node == nil {
		return Var(v.Variable), nil
	}
	t, err := r.node(*v.Node, "subject")
	if err != nil {
		return Slot{}, err
	}
	return Fixed(t), nil
}

func (r *resolver) predicate(v query.VarOrNamedNode) (Slot, error) {
	if v.NamedNode == nil {
		return Var(v.Variable), nil
	}
	n, err := r.iri(*v.NamedNode, "predicate")
	if err != nil {
		return Slot{}, err
	}
	return Fixed(rdf.NodeTerm(n)), nil
}

func (r *resolver) object(v query.VarOrNodeOrLiteral) (Slot, error) {
	switch {
	case v.Node != nil:
		t, err := r.node(*v.Node, "object")
		if err != nil {
			return Slot{}, err
		}
		return Fixed(t), nil
	case v.Literal != nil:
		l, err := r.literal(*v.Literal)
		if err != nil {
			return Slot{}, err
		}
		return Fixed(rdf.LiteralTerm(l)), nil
	default:
		return Var(v.Variable), nil
	}
}

func (r *resolver) node(n query.Node, field string) (rdf.Term, error) {
	if n.BlankNode != nil {
		return rdf.BlankTerm(*n.BlankNode), nil
	}
	node, err := r.iri(*n.NamedNode, field)
	if err != nil {
		return rdf.Term{}, err
	}
	return rdf.NodeTerm(node), nil
}

func (r *resolver) literal(l query.Literal) (rdf.Literal, error) {
	switch {
	case l.Simple != nil:
		return rdf.SimpleLiteral(*l.Simple), nil
	case l.LanguageTaggedString != nil:
		ls := l.LanguageTaggedString
		lang, err := rdf.NormalizeLang(ls.Language)
		if err != nil {
			return rdf.Literal{}, &CompileError{Field: "object", Message: err.Error()}
		}
		return rdf.LangLiteral(ls.Value, lang), nil
	default:
		tv := l.TypedValue
		dt, err := r.iri(tv.Datatype, "object")
		if err != nil {
			return rdf.Literal{}, err
		}
		if dt.IRI() == xsdString {
			return rdf.SimpleLiteral(tv.Value), nil
		}
		return rdf.TypedLiteral(tv.Value, dt), nil
	}
}

// iri resolves a prefixed or full IRI into a Node.
func (r *resolver) iri(i query.IRI, field string) (rdf.Node, error) {
	full := i.Full
	if i.Prefixed != "" {
		name, local, _ := strings.Cut(i.Prefixed, ":")
		ns, ok := r.prefixes[name]
		if !ok {
			return rdf.Node{}, &UnknownPrefixError{Name: name}
		}
		full = ns + local
	}
	n, err := rdf.ExplodeIRI(full)
	if err != nil {
		return rdf.Node{}, &CompileError{Field: field, Message: err.Error()}
	}
	return n, nil
}
