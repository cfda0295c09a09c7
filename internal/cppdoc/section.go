package cppdoc

import (
	"context"
	"strings"

	"graft/internal/text"
)

// ToggleSection fences code with the configured preprocessor tag.
//
// With a selection the selected lines are wrapped in #ifdef/#endif.
// With a bare cursor the body of the surrounding function is toggled:
// the first toggle adds an #else branch holding the configured debug
// statement and a return matching the function's return type, the
// second toggle removes the whole scaffolding again. The cursor is
// shifted by exactly the scaffolding length so toggling twice gives
// back the original document.
func (d *Document) ToggleSection(ctx context.Context, sel text.Selection) text.Selection {
	tag := d.cfg.Cpp.ToggleSection.Tag
	endifString := "#endif // " + tag
	ifdefString := "#ifdef " + tag
	elseString := "#else // " + tag

	sel = sel.Clamp(d.buffer.Len())

	if !sel.IsEmpty() {
		return d.toggleSectionSelection(sel, ifdefString, endifString)
	}
	return d.toggleSectionAtCursor(ctx, sel, ifdefString, elseString, endifString)
}

// toggleSectionSelection wraps the selected lines in #ifdef/#endif and
// puts the cursor on the line following the inserted #endif.
func (d *Document) toggleSectionSelection(sel text.Selection, ifdefString, endifString string) text.Selection {
	min := sel.Start()
	max := sel.End()

	// A selection ending at the very start of a line does not include
	// that line.
	endAnchor := max
	if d.buffer.OffsetToPoint(max).Column == 0 {
		endAnchor = max - 1
	}
	endLine := d.buffer.LineAt(endAnchor)

	d.beginEdit("toggle section", sel)
	if err := d.insertAt(d.buffer.LineEndOffset(endLine), "\n"+endifString); err != nil {
		d.cancelEdit()
		return sel
	}
	if err := d.insertAt(d.buffer.LineStartOffset(d.buffer.LineAt(min)), ifdefString+"\n"); err != nil {
		d.cancelEdit()
		return sel
	}
	after := text.NewCursor(d.buffer.LineStartOffset(endLine + 3))
	d.endEdit(after)
	return after
}

// toggleSectionAtCursor toggles the body of the function containing
// the cursor.
func (d *Document) toggleSectionAtCursor(ctx context.Context, sel text.Selection, ifdefString, elseString, endifString string) text.Selection {
	sym, err := d.CurrentFunction(ctx, sel)
	if err != nil {
		log.Errorf("toggling a section: %s", err)
		return sel
	}
	if sym == nil {
		log.Errorf("the cursor is not inside a function in %s", d.path)
		return sel
	}

	cursorPos := sel.Head
	endLine := d.buffer.LineAt(sym.Range.End)

	if strings.HasPrefix(d.buffer.LineText(endLine-1), endifString) {
		// The section is toggled off: remove the scaffolding.
		prevLineStart := d.buffer.LineStartOffset(endLine - 1)
		delStart := prevLineStart
		if elseRange, found := d.buffer.Find(elseString, prevLineStart, text.FindOptions{Backward: true}); found && elseRange.Start > sym.Range.Start {
			delStart = elseRange.Start
		}

		d.beginEdit("toggle section", sel)
		if err := d.deleteRange(text.Range{Start: delStart, End: d.buffer.LineStartOffset(endLine)}); err != nil {
			d.cancelEdit()
			return sel
		}
		bracePos := text.MoveBlock(d.buffer, delStart, text.Backward)
		ifdefLine := d.buffer.LineAt(bracePos) + 1
		ifdefRange := text.Range{
			Start: d.buffer.LineStartOffset(ifdefLine),
			End:   d.buffer.LineStartOffset(ifdefLine + 1),
		}
		if err := d.deleteRange(ifdefRange); err != nil {
			d.cancelEdit()
			return sel
		}
		after := text.NewCursor(cursorPos - len(ifdefString) - 1).Clamp(d.buffer.Len())
		d.endEdit(after)
		return after
	}

	// Toggle off: insert #else with a debug statement and a return
	// before the closing brace, then the #ifdef after the opening one.
	tab := d.cfg.Tab()
	txt := elseString + "\n"
	if debug := d.cfg.Cpp.ToggleSection.Debug; debug != "" {
		txt += tab + strings.ReplaceAll(debug, "%1", sym.Name) + ";\n"
	}
	txt += tab + returnStatement(sym.ReturnType, d.cfg.Cpp.ToggleSection.ReturnValues) + "\n"
	txt += endifString + "\n"

	d.beginEdit("toggle section", sel)
	if err := d.insertAt(sym.Range.End-1, txt); err != nil {
		d.cancelEdit()
		return sel
	}
	bracePos := text.MoveBlock(d.buffer, sym.Range.End-1+len(txt), text.Backward)
	if err := d.insertAt(bracePos+1, "\n"+ifdefString); err != nil {
		d.cancelEdit()
		return sel
	}
	after := text.NewCursor(cursorPos + len(ifdefString) + 1)
	d.endEdit(after)
	return after
}

// returnStatement picks the return for the disabled branch: the
// configured value for the type when there is one, plain return for
// void, nullptr for pointers and a value-initialized {} otherwise.
func returnStatement(returnType string, returnValues map[string]string) string {
	if v, ok := returnValues[returnType]; ok {
		return "return " + v + ";"
	}
	if returnType == "" || returnType == "void" {
		return "return;"
	}
	if strings.HasSuffix(returnType, "*") {
		return "return nullptr;"
	}
	return "return {};"
}
