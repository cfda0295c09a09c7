package text

import "testing"

func TestSelectionBasics(t *testing.T) {
	s := NewSelection(10, 4)

	if s.Start() != 4 || s.End() != 10 {
		t.Errorf("bounds = %d..%d, want 4..10", s.Start(), s.End())
	}
	if s.Len() != 6 {
		t.Errorf("len = %d, want 6", s.Len())
	}
	if s.Range() != (Range{Start: 4, End: 10}) {
		t.Errorf("range = %v", s.Range())
	}
	if s.IsEmpty() {
		t.Error("selection with extent reported empty")
	}
}

func TestSelectionCursor(t *testing.T) {
	c := NewCursor(7)

	if !c.IsEmpty() {
		t.Error("cursor should be empty")
	}
	if c.Cursor() != 7 {
		t.Errorf("cursor = %d, want 7", c.Cursor())
	}
}

func TestSelectionNormalize(t *testing.T) {
	s := NewSelection(10, 4).Normalize()

	if s.Anchor != 4 || s.Head != 10 {
		t.Errorf("normalized = %v", s)
	}

	forward := NewSelection(2, 8)
	if forward.Normalize() != forward {
		t.Error("forward selection should be unchanged")
	}
}

func TestSelectionExtendAndMove(t *testing.T) {
	s := NewSelection(3, 5)

	ext := s.Extend(9)
	if ext.Anchor != 3 || ext.Head != 9 {
		t.Errorf("extend = %v", ext)
	}

	moved := s.MoveBy(2)
	if moved.Anchor != 5 || moved.Head != 7 {
		t.Errorf("moveBy = %v", moved)
	}

	collapsed := s.MoveTo(1)
	if !collapsed.IsEmpty() || collapsed.Head != 1 {
		t.Errorf("moveTo = %v", collapsed)
	}
}

func TestSelectionClamp(t *testing.T) {
	s := NewSelection(-3, 50).Clamp(10)

	if s.Anchor != 0 || s.Head != 10 {
		t.Errorf("clamped = %v", s)
	}
}

func TestSelectionContains(t *testing.T) {
	s := NewSelection(4, 8)

	if !s.Contains(4) || !s.Contains(7) {
		t.Error("expected containment at 4 and 7")
	}
	if s.Contains(8) {
		t.Error("end offset is exclusive")
	}
	if NewCursor(4).Contains(4) {
		t.Error("empty selection contains nothing")
	}
}
