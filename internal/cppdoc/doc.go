// Package cppdoc implements structural editing of C and C++ files.
//
// A Document pairs a text buffer with a syntax engine and offers
// semantic operations on top of both: adding and deleting methods and
// members, managing include directives and forward declarations,
// commenting code in and out, fencing function bodies with
// preprocessor sections, and resolving the header that belongs to a
// source file (and vice versa).
//
// Operations never take ownership of a cursor. Callers thread a
// text.Selection through the operations that move it and receive the
// updated selection back. Each mutating operation applies its buffer
// edits as one undo group.
//
// A Document is not safe for concurrent use. Callers serialize access
// per document; the PairCache shared between documents is the only
// concurrency-safe piece.
package cppdoc
