package cppdoc

import (
	"strings"

	"graft/internal/text"
)

// ToggleComment comments out the current selection or line. A
// selection covering whole lines gets a "//" on every line, a partial
// selection is wrapped in "/*" and "*/", and without a selection the
// current line is commented unless it is blank. The returned selection
// covers the commented text, shifted by the inserted markers and
// keeping the original orientation.
func (d *Document) ToggleComment(sel text.Selection) text.Selection {
	sel = sel.Clamp(d.buffer.Len())
	cursorPos := sel.Head

	d.beginEdit("comment", sel)

	if !sel.IsEmpty() {
		selStart := sel.Start()
		selEnd := sel.End()
		str1 := d.buffer.TextRange(text.Range{Start: d.buffer.LineStartOffset(d.buffer.LineAt(selStart)), End: selStart})
		str2 := d.buffer.TextRange(text.Range{Start: d.buffer.LineStartOffset(d.buffer.LineAt(selEnd)), End: selEnd})

		selectionStartPos := selStart
		offset := 0
		if strings.TrimSpace(str1) == "" && strings.TrimSpace(str2) == "" {
			// Only whitespace around the selection bounds: comment
			// whole lines, bottom up so earlier offsets stay valid.
			selectionStartPos = d.buffer.LineStartOffset(d.buffer.LineAt(selStart))
			endPos := selEnd
			if str2 == "" {
				endPos = selEnd - 1
			}
			startLine := d.buffer.LineAt(selStart)
			for line := d.buffer.LineAt(endPos); line >= startLine; line-- {
				if err := d.insertAt(d.buffer.LineStartOffset(line), "//"); err != nil {
					d.cancelEdit()
					return sel
				}
				offset += 2
			}
		} else {
			if err := d.insertAt(selEnd, "*/"); err != nil {
				d.cancelEdit()
				return sel
			}
			if err := d.insertAt(selStart, "/*"); err != nil {
				d.cancelEdit()
				return sel
			}
			offset = 4
		}

		var after text.Selection
		if cursorPos == selEnd {
			after = text.Selection{Anchor: selectionStartPos, Head: selEnd + offset}
		} else {
			after = text.Selection{Anchor: selEnd + offset, Head: selectionStartPos}
		}
		d.endEdit(after)
		return after
	}

	line := d.buffer.LineAt(cursorPos)
	if strings.TrimSpace(d.buffer.LineText(line)) == "" {
		d.cancelEdit()
		return sel
	}
	if err := d.insertAt(d.buffer.LineStartOffset(line), "//"); err != nil {
		d.cancelEdit()
		return sel
	}
	after := text.NewCursor(cursorPos + 2)
	d.endEdit(after)
	return after
}
