// Package rdf provides the canonical term model for semstore.
//
// Every other internal package imports rdf; rdf imports nothing internal.
//
// Term kinds are closed sets, so each union is a comparable struct with a
// Kind discriminator rather than an interface:
//   - Subject   = Named(Node) | Blank(id)
//   - Predicate = Node
//   - Object    = Named(Node) | Blank(id) | Literal
//   - Literal   = Simple(text) | Lang(text, tag) | Typed(text, datatype)
//
// Because every type is comparable, Triple equality is plain ==.
// Switches over a Kind must list every case; the default branch panics.
package rdf
