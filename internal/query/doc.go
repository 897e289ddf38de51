// Package query defines the SELECT query accepted by semstore.
//
// Queries are plain data and decode from JSON. Unions use the externally
// tagged form: an object with exactly one variant key set, e.g.
//
//	{"variable": "s"}
//	{"node": {"named_node": {"prefixed": "foaf:Person"}}}
//	{"literal": {"language_tagged_string": {"value": "chat", "language": "fr"}}}
//
// Validate checks structure only. Prefix resolution, variable counting and
// limit checks belong to the compiler.
package query
