package text

import (
	"io"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

// LineEnding specifies the line ending style a buffer was loaded with.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns the dominant line ending style in s.
// Content with no line breaks defaults to LF.
func DetectLineEnding(s string) LineEnding {
	crlf := strings.Count(s, "\r\n")
	lf := strings.Count(s, "\n") - crlf
	cr := strings.Count(s, "\r") - crlf
	if crlf >= lf && crlf >= cr && crlf > 0 {
		return LineEndingCRLF
	}
	if cr > lf {
		return LineEndingCR
	}
	return LineEndingLF
}

// Buffer is a byte-addressed mutable text buffer with a line index.
//
// Content is always stored LF-normalized; the original line ending style is
// recorded so it can be restored when the buffer is written back out. Edit
// arithmetic in the layers above assumes a one-byte newline, which the
// normalization guarantees.
type Buffer struct {
	mu         sync.RWMutex
	content    []byte
	lineStarts []ByteOffset
	revision   Revision
	lineEnding LineEnding
}

// Option configures a new Buffer.
type Option func(*Buffer)

// WithLineEnding sets the line ending style restored on save.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) { b.lineEnding = le }
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revision:   NewRevision(),
		lineEnding: LineEndingLF,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.rebuildLineIndex()
	return b
}

// NewBufferFromString creates a buffer with initial content. The line
// ending style is detected from the content unless an option overrides it.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := &Buffer{
		revision:   NewRevision(),
		lineEnding: DetectLineEnding(s),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.content = []byte(normalizeToLF(s))
	b.rebuildLineIndex()
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBufferFromString(string(data), opts...), nil
}

// normalizeToLF converts all line endings to LF.
func normalizeToLF(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// rebuildLineIndex recomputes the line start offsets. Callers hold the
// write lock (or own the buffer exclusively during construction).
func (b *Buffer) rebuildLineIndex() {
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, c := range b.content {
		if c == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

// Read operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.content)
}

// TextRange returns the text in the given byte range. The range is
// clamped to the buffer bounds.
func (b *Buffer) TextRange(r Range) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	start, end := b.clampLocked(r.Start), b.clampLocked(r.End)
	if start >= end {
		return ""
	}
	return string(b.content[start:end])
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content)
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.content) == 0
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.content) {
		return 0, false
	}
	return b.content[offset], true
}

// RuneAt returns the rune starting at the given byte offset.
// Returns utf8.RuneError and size 0 if the offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if offset < 0 || offset >= len(b.content) {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(b.content[offset:])
}

// LineCount returns the number of lines. A trailing newline opens a
// final empty line, matching the line index the editor exposes.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineText returns the text of a line (without its newline).
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return string(b.content[b.lineStarts[line]:b.lineEndLocked(line)])
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.content)
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the byte offset just past the last character of a
// line, before its newline.
func (b *Buffer) LineEndOffset(line int) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.content)
	}
	return b.lineEndLocked(line)
}

func (b *Buffer) lineEndLocked(line int) ByteOffset {
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return len(b.content)
}

// LineAt returns the line number containing the given offset.
func (b *Buffer) LineAt(offset ByteOffset) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineAtLocked(b.clampLocked(offset))
}

func (b *Buffer) lineAtLocked(offset ByteOffset) int {
	i := sort.Search(len(b.lineStarts), func(i int) bool {
		return b.lineStarts[i] > offset
	})
	return i - 1
}

// OffsetToPoint converts a byte offset to a line/column position.
// Offsets outside the buffer are clamped.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = b.clampLocked(offset)
	line := b.lineAtLocked(offset)
	return Point{Line: line, Column: offset - b.lineStarts[line]}
}

// PointToOffset converts a line/column position to a byte offset.
// The column is clamped to the line length, the line to the buffer.
func (b *Buffer) PointToOffset(p Point) ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lineStarts) {
		return len(b.content)
	}
	offset := b.lineStarts[p.Line] + p.Column
	if end := b.lineEndLocked(p.Line); offset > end {
		return end
	}
	if offset < b.lineStarts[p.Line] {
		return b.lineStarts[p.Line]
	}
	return offset
}

// IndentationAt returns the leading whitespace of the line containing
// the given offset.
func (b *Buffer) IndentationAt(offset ByteOffset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	line := b.lineAtLocked(b.clampLocked(offset))
	start, end := b.lineStarts[line], b.lineEndLocked(line)
	i := start
	for i < end && (b.content[i] == ' ' || b.content[i] == '\t') {
		i++
	}
	return string(b.content[start:i])
}

func (b *Buffer) clampLocked(offset ByteOffset) ByteOffset {
	if offset < 0 {
		return 0
	}
	if offset > len(b.content) {
		return len(b.content)
	}
	return offset
}

// Write operations

// Insert inserts text at the given offset and returns the offset just
// past the inserted text.
func (b *Buffer) Insert(offset ByteOffset, s string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > len(b.content) {
		return 0, ErrOffsetOutOfRange
	}

	s = normalizeToLF(s)
	b.content = append(b.content[:offset], append([]byte(s), b.content[offset:]...)...)
	b.rebuildLineIndex()
	b.revision = NewRevision()

	return offset + len(s), nil
}

// DeleteRange removes the text in the given range.
func (b *Buffer) DeleteRange(r Range) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Start < 0 || r.Start > r.End || r.End > len(b.content) {
		return ErrRangeInvalid
	}

	b.content = append(b.content[:r.Start], b.content[r.End:]...)
	b.rebuildLineIndex()
	b.revision = NewRevision()

	return nil
}

// Replace replaces the text in the given range and returns the offset
// just past the replacement.
func (b *Buffer) Replace(r Range, s string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if r.Start < 0 || r.Start > r.End || r.End > len(b.content) {
		return 0, ErrRangeInvalid
	}

	s = normalizeToLF(s)
	b.content = append(b.content[:r.Start], append([]byte(s), b.content[r.End:]...)...)
	b.rebuildLineIndex()
	b.revision = NewRevision()

	return r.Start + len(s), nil
}

// ApplyEdit applies a single edit and returns the invertible change record.
func (b *Buffer) ApplyEdit(edit Edit) (Change, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > len(b.content) {
		return Change{}, ErrRangeInvalid
	}

	oldText := string(b.content[edit.Range.Start:edit.Range.End])
	s := normalizeToLF(edit.NewText)
	b.content = append(b.content[:edit.Range.Start], append([]byte(s), b.content[edit.Range.End:]...)...)
	b.rebuildLineIndex()
	b.revision = NewRevision()

	return Change{
		Range:    edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: edit.Range.Start + len(s)},
		OldText:  oldText,
		NewText:  s,
	}, nil
}

// ApplyEdits applies multiple edits atomically. Edits must be sorted in
// strict reverse order (highest offset first) and must not overlap, so
// that applying one cannot invalidate the ranges of those still pending.
// Violations reject the whole batch before any mutation.
func (b *Buffer) ApplyEdits(edits []Edit) ([]Change, error) {
	if len(edits) == 0 {
		return nil, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return nil, ErrEditsOverlap
		}
	}
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > len(b.content) {
			return nil, ErrRangeInvalid
		}
	}

	changes := make([]Change, 0, len(edits))
	for _, edit := range edits {
		oldText := string(b.content[edit.Range.Start:edit.Range.End])
		s := normalizeToLF(edit.NewText)
		b.content = append(b.content[:edit.Range.Start], append([]byte(s), b.content[edit.Range.End:]...)...)
		changes = append(changes, Change{
			Range:    edit.Range,
			NewRange: Range{Start: edit.Range.Start, End: edit.Range.Start + len(s)},
			OldText:  oldText,
			NewText:  s,
		})
	}

	b.rebuildLineIndex()
	b.revision = NewRevision()
	return changes, nil
}

// Buffer state

// Revision returns the current revision.
func (b *Buffer) Revision() Revision {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineEnding returns the line ending style restored on save.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// SetLineEnding sets the line ending style restored on save.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lineEnding = le
}

// Export returns the buffer content with the recorded line ending style
// applied, for writing back to disk.
func (b *Buffer) Export() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := string(b.content)
	if b.lineEnding == LineEndingLF {
		return s
	}
	return strings.ReplaceAll(s, "\n", b.lineEnding.Sequence())
}
