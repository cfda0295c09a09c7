package cppdoc

import (
	"graft/internal/syntax"
	"graft/internal/text"
)

// RangeMark labels a byte range of the document, typically a query
// capture. The zero value is invalid.
type RangeMark struct {
	Label string
	Range text.Range
	valid bool
}

// NewRangeMark creates a valid mark over r.
func NewRangeMark(label string, r text.Range) RangeMark {
	return RangeMark{Label: label, Range: r, valid: true}
}

// IsValid reports whether the mark points at an actual range.
func (m RangeMark) IsValid() bool { return m.valid }

// ClassBodyMatch is the result of a class or struct lookup.
type ClassBodyMatch struct {
	ClassName string
	Range     text.Range
	Body      RangeMark
}

// Found reports whether a class was matched.
func (c ClassBodyMatch) Found() bool { return c.Body.IsValid() }

// MethodMatch describes one method definition or declaration. For
// declarations Body is the zero range.
type MethodMatch struct {
	Scope         string
	Name          string
	ReturnType    string
	Parameters    []syntax.Capture
	ParameterList text.Range
	Body          text.Range
	Range         text.Range
}

// MemberMatch describes one data member declaration inside a class.
type MemberMatch struct {
	ClassName string
	Name      string
	Type      string
	Range     text.Range
}

// Found reports whether a member was matched.
func (m MemberMatch) Found() bool { return m.Name != "" }

// FunctionCallMatch describes one call expression.
type FunctionCallMatch struct {
	Name      string
	Range     text.Range
	Arguments []syntax.Capture
}

// MessageMapEntry is one entry between BEGIN_MESSAGE_MAP and
// END_MESSAGE_MAP, for example ON_COMMAND or ON_WM_PAINT.
type MessageMapEntry struct {
	Name       string
	Range      text.Range
	Parameters []syntax.Capture
}

// MessageMapMatch is the parsed MFC message map of a class.
type MessageMapMatch struct {
	ClassName      string
	SuperClassName string
	Range          text.Range
	Entries        []MessageMapEntry
}

// Found reports whether a message map was matched.
func (m MessageMapMatch) Found() bool { return m.ClassName != "" }
