// Package triplestore persists triples and their (subject, predicate)
// index on top of the kv storage boundary.
//
// KEY LAYOUT:
//
// Every key starts with a one-byte table prefix:
//
//	0x01                               store state (owner, limits, stat)
//	0x02                               primary key counter
//	0x03 | pk                          triple record (JSON)
//	0x04 | subject | predicate | pk    secondary index entry (empty value)
//
// Primary keys are big-endian uint64, so a prefix scan visits triples in
// insertion order. Subject and predicate are length-prefixed, so the
// prefix for one (subject, predicate) pair never matches another pair.
//
// The store is append-only. Put writes the triple record and its index
// entry together, and both land in the same kv.Txn as the counter and
// stat updates, so they commit or vanish as one unit.
package triplestore
