package text

import "sync"

// DefaultHistoryLimit bounds the number of undo entries kept.
const DefaultHistoryLimit = 1000

// historyEntry is one undo unit: the changes applied by one grouped
// operation plus the selections restored on undo and redo.
type historyEntry struct {
	name    string
	changes []Change
	before  Selection
	after   Selection
}

// History records grouped buffer changes for undo and redo.
//
// One structural operation opens a group, applies its edits through the
// owning document (which records each resulting Change), and closes the
// group. Undo reverts the whole group as a single unit and hands back the
// selection captured when the group opened, so a caller never observes a
// partially-applied operation. Groups nest; only the outermost open and
// close take effect.
type History struct {
	mu    sync.Mutex
	undo  []historyEntry
	redo  []historyEntry
	open  *historyEntry
	depth int
	limit int
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{limit: DefaultHistoryLimit}
}

// BeginGroup opens an edit group. The selection is restored when the
// group is undone.
func (h *History) BeginGroup(name string, before Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.depth++
	if h.depth > 1 {
		return
	}
	h.open = &historyEntry{name: name, before: before}
}

// Record appends a change to the open group. Changes recorded outside a
// group are dropped; ungrouped edits are not undoable.
func (h *History) Record(c Change) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.open == nil {
		return
	}
	h.open.changes = append(h.open.changes, c)
}

// EndGroup closes the current group. The selection is restored when the
// group is redone. Groups that recorded no changes are discarded.
func (h *History) EndGroup(after Selection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth > 0 || h.open == nil {
		return
	}
	entry := h.open
	h.open = nil
	if len(entry.changes) == 0 {
		return
	}
	entry.after = after
	h.undo = append(h.undo, *entry)
	h.redo = h.redo[:0]
	if len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
}

// CancelGroup abandons the open group without recording an undo entry.
// Changes already applied to the buffer stay applied.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.depth == 0 {
		return
	}
	h.depth--
	if h.depth == 0 {
		h.open = nil
	}
}

// CanUndo returns true when an undo entry is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo) > 0
}

// CanRedo returns true when a redo entry is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redo) > 0
}

// UndoCount returns the number of undoable entries.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undo)
}

// Undo reverts the most recent group and returns the selection captured
// when that group opened.
func (h *History) Undo(b *Buffer) (Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undo) == 0 {
		return Selection{}, ErrNothingToUndo
	}
	entry := h.undo[len(h.undo)-1]

	// Revert in reverse application order: each change's post-edit range
	// is valid exactly until the change before it is reverted.
	for i := len(entry.changes) - 1; i >= 0; i-- {
		c := entry.changes[i]
		if _, err := b.ApplyEdit(Edit{Range: c.NewRange, NewText: c.OldText}); err != nil {
			return Selection{}, err
		}
	}

	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, entry)
	return entry.before, nil
}

// Redo reapplies the most recently undone group and returns the selection
// captured when that group closed.
func (h *History) Redo(b *Buffer) (Selection, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.redo) == 0 {
		return Selection{}, ErrNothingToRedo
	}
	entry := h.redo[len(h.redo)-1]

	for _, c := range entry.changes {
		if _, err := b.ApplyEdit(c.ToEdit()); err != nil {
			return Selection{}, err
		}
	}

	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, entry)
	return entry.after, nil
}
