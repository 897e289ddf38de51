// Package engine evaluates select queries and serves the store's public
// operations.
//
// An Engine wraps a kv.Storage and exposes four calls:
//
//   - Instantiate writes the owner and limits of a new store
//   - Insert parses a document and appends its triples atomically
//   - Select compiles a query, evaluates it and projects the result
//   - Store returns the owner, limits and current usage
//
// EVALUATION:
//
// Evaluate joins the compiled patterns left to right with a nested loop.
// A pattern whose subject and predicate are known, either fixed or bound
// by an earlier pattern, reads candidates from the (subject, predicate)
// index. Any other pattern scans all triples. Both paths yield triples in
// ascending primary key order, so for the same data and query the result
// order never changes. Evaluation stops once the limit is reached.
//
// PROJECTION:
//
// Project turns bindings into a SelectResponse:
//
//	{"head":{"vars":["s"]},"results":{"bindings":[{"s":{"type":"uri","value":{"full":"..."}}}]}}
//
// ERRORS:
//
// Code maps any error returned by the engine to a stable ErrorCode that
// the CLI and the scenario harness report.
package engine
