// Package kv is the host storage boundary for semstore.
//
// The store only needs three primitives from its host: ordered key lookup,
// atomic batch save, and range scan by key prefix. Storage captures those;
// Txn layers an explicit transaction on top of any Storage by buffering
// writes in memory and flushing them through one Apply on Commit.
//
// Two backends exist:
//   - Memory: a google/btree ordered map, used by tests and ephemeral stores
//   - sqlitekv.Store: a SQLite table keyed by BLOB, for durable stores
//
// Keys are compared as raw bytes. Scans visit keys in ascending order and
// read in pages, so a callback may start a nested scan on the same Storage.
package kv
