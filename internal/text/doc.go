// Package text provides the mutable text buffer that all structural edits
// operate on, together with the position types shared across the engine.
//
// The package provides:
//
//   - Buffer: a thread-safe byte-addressed text buffer with line indexing,
//     line ending normalization, and revision tracking
//   - Range, Point: half-open byte ranges and line/column positions
//   - Selection: an immutable anchor/head pair threaded through operations
//   - Edit, Change: edit descriptions and their invertible change records
//   - History: grouped undo/redo so one structural operation is one undo step
//   - Block navigation: matching-delimiter scanning over raw characters
//   - Find: literal and regexp search in either direction
//
// Offsets are byte offsets into the UTF-8 buffer content. The structural
// query layer reports byte ranges as well, so the two sides always agree on
// addressing without a conversion step.
//
// Ranges captured before a mutation are not valid after it. Callers that
// need a position past an edit re-resolve it; nothing in this package tracks
// positions across edits.
//
// Basic usage:
//
//	buf := text.NewBufferFromString("int main() {\n}\n")
//	end, _ := buf.Insert(13, "\treturn 0;\n")
//	_ = buf.DeleteRange(text.NewRange(0, 4))
//
// Thread Safety:
//
// Buffer methods are individually thread-safe, but the engine contract is
// exclusive access per buffer for the duration of an operation. The locks
// catch misuse; they are not an invitation to interleave edits.
package text
