package cppdoc

import (
	"regexp"
	"strings"

	"graft/internal/text"
)

var lastIncludeRE = regexp.MustCompile(`(?m)^#include\s*`)

// InsertForwardDeclaration inserts a forward declaration into a header
// file, below the last #include. The declaration is given as
// "class Foo" or "struct Bar"; a qualified name such as
// "class Core::Document" nests the declaration in namespace blocks. An
// already declared name changes nothing.
func (d *Document) InsertForwardDeclaration(fwdDecl string) bool {
	if !d.IsHeader() {
		log.Warningf("%s is not a header file, cannot insert a forward declaration", d.path)
		return false
	}

	fwdDecl = strings.TrimSpace(fwdDecl)
	idx := strings.IndexByte(fwdDecl, ' ')
	if idx < 0 {
		log.Warningf("malformed forward declaration %q, expected \"class Name\" or \"struct Name\"", fwdDecl)
		return false
	}
	prefix := fwdDecl[:idx]
	if prefix != "class" && prefix != "struct" {
		log.Warningf("malformed forward declaration %q, expected \"class Name\" or \"struct Name\"", fwdDecl)
		return false
	}
	rest := strings.TrimSpace(fwdDecl[idx+1:])
	if rest == "" {
		log.Warningf("malformed forward declaration %q, missing name", fwdDecl)
		return false
	}

	parts := strings.Split(rest, "::")
	result := prefix + " " + parts[len(parts)-1] + ";"
	if _, found := d.buffer.Find(result, 0, text.FindOptions{WholeWords: true}); found {
		log.Infof("%s already declares %s", d.path, result)
		return true
	}
	// Wrap in namespaces from the innermost out.
	for i := len(parts) - 2; i >= 0; i-- {
		result = "namespace " + parts[i] + " {\n" + result + "\n}"
	}

	match, found := d.buffer.FindRegex(lastIncludeRE, d.buffer.Len(), text.FindOptions{Backward: true})
	if !found {
		log.Warningf("%s has no #include to anchor the forward declaration", d.path)
		return false
	}

	pos := d.buffer.LineEndOffset(d.buffer.LineAt(match.Start))
	d.beginEdit("insert forward declaration", text.NewCursor(pos))
	if err := d.insertAt(pos, "\n\n"+result); err != nil {
		d.cancelEdit()
		return false
	}
	d.endEdit(text.NewCursor(pos + len("\n\n"+result)))
	return true
}
