package cppdoc

import (
	"regexp"
	"strings"

	"graft/internal/text"
)

var (
	includeLineRE = regexp.MustCompile(`^\s*#\s*include\s*(<[^>]*>|"[^"]*")`)
	pragmaOnceRE  = regexp.MustCompile(`^\s*#\s*pragma\s+once\b`)
)

type includeLine struct {
	line int
	name string
}

// includeLines returns every #include directive of the document with
// its argument, delimiters included.
func (d *Document) includeLines() []includeLine {
	var lines []includeLine
	count := d.buffer.LineCount()
	for i := 0; i < count; i++ {
		if m := includeLineRE.FindStringSubmatch(d.buffer.LineText(i)); m != nil {
			lines = append(lines, includeLine{line: i, name: m[1]})
		}
	}
	return lines
}

// Include is one #include directive of a document.
type Include struct {
	// Name is the include argument with its delimiters, for example
	// "<vector>" or "\"myclass.h\"".
	Name string
	// Line is the 0-based line holding the directive.
	Line int
}

// Includes lists the #include directives of the document in file order.
func (d *Document) Includes() []Include {
	var out []Include
	for _, l := range d.includeLines() {
		out = append(out, Include{Name: l.name, Line: l.line})
	}
	return out
}

// includeGroups splits include lines into blocks of consecutive lines.
func includeGroups(lines []includeLine) [][]includeLine {
	var groups [][]includeLine
	for _, l := range lines {
		if n := len(groups); n > 0 {
			last := groups[n-1]
			if last[len(last)-1].line == l.line-1 {
				groups[n-1] = append(last, l)
				continue
			}
		}
		groups = append(groups, []includeLine{l})
	}
	return groups
}

// validIncludeArg reports whether include carries its delimiters,
// either <file> or "file".
func validIncludeArg(include string) bool {
	if len(include) < 2 {
		return false
	}
	if include[0] == '<' && include[len(include)-1] == '>' {
		return true
	}
	return include[0] == '"' && include[len(include)-1] == '"'
}

func groupHasStyle(group []includeLine, style byte) bool {
	for _, l := range group {
		if l.name[0] == style {
			return true
		}
	}
	return false
}

// pragmaOnceLine returns the line of a leading #pragma once, or -1.
// Only blank lines may precede the pragma.
func (d *Document) pragmaOnceLine() int {
	count := d.buffer.LineCount()
	for i := 0; i < count; i++ {
		txt := d.buffer.LineText(i)
		if strings.TrimSpace(txt) == "" {
			continue
		}
		if pragmaOnceRE.MatchString(txt) {
			return i
		}
		return -1
	}
	return -1
}

// lineInsertion returns where to insert content so it lands on its own
// lines directly below afterLine, fixing the content up when the
// buffer lacks a trailing newline.
func (d *Document) lineInsertion(afterLine int, content string) (text.ByteOffset, string) {
	if afterLine+1 < d.buffer.LineCount() {
		return d.buffer.LineStartOffset(afterLine + 1), content
	}
	return d.buffer.Len(), "\n" + strings.TrimSuffix(content, "\n")
}

// InsertInclude adds an #include directive for the given file. The
// argument must carry its delimiters, for example "<vector>" or
// "\"myclass.h\"". With newGroup the include starts its own block
// below the existing ones, otherwise it joins the last block using the
// same delimiter style. Including an already included file changes
// nothing.
func (d *Document) InsertInclude(include string, newGroup bool) bool {
	include = strings.TrimSpace(include)
	if !validIncludeArg(include) {
		log.Errorf("invalid include %s, expected <file> or \"file\"", include)
		return false
	}

	lines := d.includeLines()
	for _, l := range lines {
		if l.name == include {
			log.Infof("%s already includes %s", d.path, include)
			return true
		}
	}

	directive := "#include " + include

	var pos text.ByteOffset
	var content string
	switch {
	case len(lines) == 0:
		if pragma := d.pragmaOnceLine(); pragma >= 0 {
			pos, content = d.lineInsertion(pragma, "\n"+directive+"\n")
		} else {
			pos, content = 0, directive+"\n"
		}
	case newGroup:
		pos, content = d.lineInsertion(lines[len(lines)-1].line, "\n"+directive+"\n")
	default:
		groups := includeGroups(lines)
		group := groups[len(groups)-1]
		for i := len(groups) - 1; i >= 0; i-- {
			if groupHasStyle(groups[i], include[0]) {
				group = groups[i]
				break
			}
		}
		pos, content = d.lineInsertion(group[len(group)-1].line, directive+"\n")
	}

	d.beginEdit("insert include", text.NewCursor(pos))
	if err := d.insertAt(pos, content); err != nil {
		d.cancelEdit()
		return false
	}
	d.endEdit(text.NewCursor(pos + len(content)))
	return true
}

// RemoveInclude deletes the #include directive for the given file,
// whole line included. Removing an include that is not there changes
// nothing.
func (d *Document) RemoveInclude(include string) bool {
	include = strings.TrimSpace(include)
	if !validIncludeArg(include) {
		log.Errorf("invalid include %s, expected <file> or \"file\"", include)
		return false
	}

	for _, l := range d.includeLines() {
		if l.name != include {
			continue
		}
		pos := d.buffer.LineStartOffset(l.line)
		d.beginEdit("remove include", text.NewCursor(pos))
		if err := d.deleteLine(l.line); err != nil {
			d.cancelEdit()
			return false
		}
		d.endEdit(text.NewCursor(pos).Clamp(d.buffer.Len()))
		return true
	}

	log.Infof("%s does not include %s", d.path, include)
	return true
}
