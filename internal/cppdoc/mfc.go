package cppdoc

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"graft/internal/text"
)

// MFCExtractDDX collects the DDX_* control bindings from the
// DoDataExchange method of the given class. The result maps the
// control ID to the bound member variable. A class without a
// DoDataExchange method gives an empty map.
func (d *Document) MFCExtractDDX(className string) map[string]string {
	ddx := map[string]string{}
	content := d.buffer.Text()

	re := regexp.MustCompile(`void\s*` + regexp.QuoteMeta(className) + `\s*::DoDataExchange\s*\(`)
	loc := re.FindStringIndex(content)
	if loc == nil {
		return ddx
	}

	// Scan to the closing brace of the method body.
	end := -1
	depth := 0
	for i := loc[1]; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 {
		return ddx
	}

	entryRE := regexp.MustCompile(`DDX_.*\(.*,\s*(.*)\s*,\s*(.*)\)`)
	for _, m := range entryRE.FindAllStringSubmatch(content[loc[1]:end], -1) {
		ddx[m[1]] = m[2]
	}
	return ddx
}

const messageMapQuery = `(translation_unit
 ( (expression_statement (call_expression
      function: (identifier) @begin_ident (#eq? @begin_ident "BEGIN_MESSAGE_MAP")
      arguments: (argument_list (identifier) @class %s (identifier) @superclass)) @begin)
   [(expression_statement (call_expression
      function: (identifier) @message-name
      arguments: (argument_list ((_) @parameter ("," (_) @parameter)*)?))) @message
    (_)]*
   (expression_statement (call_expression
      function: (identifier) @end_ident (#eq? @end_ident "END_MESSAGE_MAP")) @end)))`

// MFCExtractMessageMap parses the BEGIN_MESSAGE_MAP/END_MESSAGE_MAP
// block, restricted to the given class when one is named. The zero
// value is returned when the document holds no message map.
func (d *Document) MFCExtractMessageMap(ctx context.Context, className ...string) MessageMapMatch {
	classFilter := ""
	if len(className) > 0 {
		classFilter = fmt.Sprintf(`(#eq? @class "%s")`, className[0])
	}

	matches, err := d.query(ctx, fmt.Sprintf(messageMapQuery, classFilter))
	if err != nil {
		log.Errorf("extracting the message map: %s", err)
		return MessageMapMatch{}
	}
	if len(matches) == 0 {
		log.Warningf("no message map found in %s", d.path)
		return MessageMapMatch{}
	}

	m := matches[0]
	result := MessageMapMatch{}
	if c, ok := m.Get("class"); ok {
		result.ClassName = c.Text
	}
	if c, ok := m.Get("superclass"); ok {
		result.SuperClassName = c.Text
	}
	begin, beginOK := m.Get("begin")
	end, endOK := m.Get("end")
	if beginOK && endOK {
		result.Range = text.Range{Start: begin.Range.Start, End: end.Range.End}
	}

	names := m.GetAll("message-name")
	params := m.GetAll("parameter")
	for _, msg := range m.GetAll("message") {
		entry := MessageMapEntry{Range: msg.Range}
		for _, n := range names {
			if msg.Range.ContainsRange(n.Range) {
				entry.Name = n.Text
				break
			}
		}
		for _, p := range params {
			if msg.Range.ContainsRange(p.Range) {
				entry.Parameters = append(entry.Parameters, p)
			}
		}
		result.Entries = append(result.Entries, entry)
	}
	return result
}

// MFCReplaceAfxMsgDeclaration replaces the afx_msg declaration of the
// given handler with newDeclaration, semicolon included. Several
// declarations of the same name are all replaced.
func (d *Document) MFCReplaceAfxMsgDeclaration(ctx context.Context, afxMsgName, newDeclaration string) bool {
	pattern := fmt.Sprintf(`(field_declaration
  type: (_) @type (#eq? @type "afx_msg")
  (function_declarator declarator: (field_identifier) @name (#eq? @name "%s"))) @function`, afxMsgName)

	matches, err := d.query(ctx, pattern)
	if err != nil {
		log.Errorf("replacing afx_msg %s: %s", afxMsgName, err)
		return false
	}
	if len(matches) == 0 {
		log.Warningf("no afx_msg declaration '%s' in %s", afxMsgName, d.path)
		return false
	}
	if len(matches) > 1 {
		log.Warningf("%d afx_msg declarations '%s' in %s, replacing all of them", len(matches), afxMsgName, d.path)
	}

	var edits []text.Edit
	for _, m := range matches {
		if c, ok := m.Get("function"); ok {
			edits = append(edits, text.NewEdit(c.Range, newDeclaration))
		}
	}
	if len(edits) == 0 {
		return false
	}
	sort.Slice(edits, func(i, j int) bool { return edits[i].Range.Start > edits[j].Range.Start })

	d.beginEdit("replace afx_msg declaration", text.NewCursor(edits[len(edits)-1].Range.Start))
	if err := d.applyEdits(edits); err != nil {
		d.cancelEdit()
		log.Errorf("replacing afx_msg %s in %s: %s", afxMsgName, d.path, err)
		return false
	}
	d.endEdit(text.NewCursor(edits[len(edits)-1].Range.Start + len(newDeclaration)))
	return true
}
