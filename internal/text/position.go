package text

import (
	"fmt"
	"sync/atomic"
)

// ByteOffset is a byte position in the buffer. It is the fundamental
// position type; every range, selection, and query capture is expressed
// in byte offsets so the text layer and the syntax layer agree without
// conversion.
type ByteOffset = int

// Point is a line and column position. Both are 0-indexed; Column is
// measured in bytes from the start of the line.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other.
func (p Point) Compare(other Point) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other.
func (p Point) Before(other Point) bool {
	return p.Compare(other) < 0
}

// After returns true if p comes after other.
func (p Point) After(other Point) bool {
	return p.Compare(other) > 0
}

// Revision identifies a buffer state. Every mutation produces a new
// revision, letting derived data (parse trees, symbol lists) detect
// staleness without diffing content.
type Revision uint64

var revisionCounter uint64

// NewRevision generates a unique revision value.
func NewRevision() Revision {
	return Revision(atomic.AddUint64(&revisionCounter, 1))
}
