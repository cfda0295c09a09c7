// Package syntax wraps tree-sitter parsing and querying for C++ source.
//
// An Engine owns one parser and the last parsed tree for a single piece
// of content. Callers feed it content snapshots tagged with a buffer
// revision; when the revision changes the engine computes a minimal edit
// and re-parses incrementally instead of from scratch.
//
// Queries use the tree-sitter query language, including #eq? predicates.
// Results come back as Match values holding named Captures with byte
// ranges and the captured text, so callers never touch raw tree nodes.
package syntax
