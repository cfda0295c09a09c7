package text

import "fmt"

// Edit describes a single text edit: a range to replace and the new text.
type Edit struct {
	Range   Range
	NewText string
}

// NewEdit creates an Edit.
func NewEdit(r Range, newText string) Edit {
	return Edit{Range: r, NewText: newText}
}

// NewInsert creates an Edit that inserts text at a position.
func NewInsert(offset ByteOffset, s string) Edit {
	return Edit{Range: Range{Start: offset, End: offset}, NewText: s}
}

// NewDelete creates an Edit that deletes a range of text.
func NewDelete(r Range) Edit {
	return Edit{Range: r}
}

// String returns a human-readable representation of the edit.
func (e Edit) String() string {
	if e.Range.IsEmpty() {
		return fmt.Sprintf("Insert(%d, %q)", e.Range.Start, e.NewText)
	}
	if e.NewText == "" {
		return fmt.Sprintf("Delete%s", e.Range.String())
	}
	return fmt.Sprintf("Replace%s with %q", e.Range.String(), e.NewText)
}

// Delta returns the change in buffer length caused by this edit.
func (e Edit) Delta() int {
	return len(e.NewText) - e.Range.Len()
}

// Change records an applied edit with enough context to invert it.
// History stores changes so a grouped operation undoes as one unit.
type Change struct {
	Range    Range  // range that was replaced
	NewRange Range  // resulting range after the edit
	OldText  string // text that was removed
	NewText  string // text that was inserted
}

// Invert returns the change that undoes this one.
func (c Change) Invert() Change {
	return Change{
		Range:    c.NewRange,
		NewRange: c.Range,
		OldText:  c.NewText,
		NewText:  c.OldText,
	}
}

// ToEdit converts the change to an Edit for reapplication.
func (c Change) ToEdit() Edit {
	return Edit{Range: c.Range, NewText: c.NewText}
}

// Delta returns the length change the edit caused.
func (c Change) Delta() int {
	return len(c.NewText) - len(c.OldText)
}
