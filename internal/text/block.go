package text

import "strings"

// Direction is the direction of travel for block navigation.
type Direction int8

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// MoveBlock scans from startPos for the boundary of the enclosing
// delimiter block and returns the resulting position. A block is delimited
// by matching (), {} or [].
//
// The scan counts delimiters that open relative to the direction of travel
// and decrements on ones that close it; the first decrement that drives the
// counter negative is the matching boundary. Moving forward the result
// lands just past the closing delimiter; moving backward it lands just
// before the opening one. When startPos is already at the extremity, or no
// boundary is found before the extremity, startPos is returned unchanged.
func MoveBlock(b *Buffer, startPos ByteOffset, dir Direction) ByteOffset {
	return moveBlockIn(b.Text(), startPos, dir)
}

func moveBlockIn(content string, startPos ByteOffset, dir Direction) ByteOffset {
	inc := int(dir)
	lastPos := 0
	if dir == Forward {
		lastPos = len(content)
	}
	if startPos == lastPos {
		return startPos
	}

	var incSet, decSet string
	if dir == Forward {
		incSet, decSet = "({[", ")}]"
	} else {
		incSet, decSet = ")}]", "({["
	}

	charAt := func(p int) byte {
		if p < 0 || p >= len(content) {
			return 0
		}
		return content[p]
	}

	pos := startPos + inc

	// When the adjacent character opens a block for this direction, step
	// inside it so the scan does not re-match the same delimiter.
	if c := charAt(pos); c != 0 && strings.IndexByte(incSet, c) >= 0 {
		pos += inc
	}

	counter := 0
	pos += inc

	hitLast := func(p int) bool {
		if dir == Forward {
			return p >= lastPos
		}
		return p <= lastPos
	}

	for !hitLast(pos) {
		c := charAt(pos)
		switch {
		case strings.IndexByte(incSet, c) >= 0:
			counter++
		case strings.IndexByte(decSet, c) >= 0:
			counter--
			if counter < 0 {
				if inc > 0 {
					return pos + inc
				}
				return pos
			}
		}
		pos += inc
	}
	return startPos
}

// GotoBlockStart moves to the start of the enclosing block, count times.
func GotoBlockStart(b *Buffer, pos ByteOffset, count int) ByteOffset {
	content := b.Text()
	for ; count > 0; count-- {
		pos = moveBlockIn(content, pos, Backward)
	}
	return pos
}

// GotoBlockEnd moves to the end of the enclosing block, count times.
func GotoBlockEnd(b *Buffer, pos ByteOffset, count int) ByteOffset {
	content := b.Text()
	for ; count > 0; count-- {
		pos = moveBlockIn(content, pos, Forward)
	}
	return pos
}

// SelectBlockStart selects from the selection's upper bound to the start
// of the enclosing block, count times, and returns the new selection.
func SelectBlockStart(b *Buffer, sel Selection, count int) Selection {
	content := b.Text()
	anchor := sel.End()
	pos := sel.Head
	for ; count > 0; count-- {
		pos = moveBlockIn(content, pos, Backward)
	}
	return NewSelection(anchor, pos)
}

// SelectBlockEnd selects from the selection's lower bound to the end of
// the enclosing block, count times, and returns the new selection.
func SelectBlockEnd(b *Buffer, sel Selection, count int) Selection {
	content := b.Text()
	anchor := sel.Start()
	pos := sel.Head
	for ; count > 0; count-- {
		pos = moveBlockIn(content, pos, Forward)
	}
	return NewSelection(anchor, pos)
}

// SelectBlockUp selects the whole enclosing block: the block end is found
// first (count times), then the matching start from there, and the
// selection spans the two with the cursor at the block end.
func SelectBlockUp(b *Buffer, sel Selection, count int) Selection {
	content := b.Text()
	pos := sel.Head
	for ; count > 0; count-- {
		pos = moveBlockIn(content, pos, Forward)
	}
	start := moveBlockIn(content, pos, Backward)
	return NewSelection(start, pos)
}
