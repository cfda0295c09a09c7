package cppdoc

import (
	"context"
	"sort"
	"strings"

	"graft/internal/text"
)

// MethodPosition selects where InsertCodeInMethod puts the code.
type MethodPosition int

const (
	StartOfMethod MethodPosition = iota
	EndOfMethod
)

func (p MethodPosition) String() string {
	switch p {
	case StartOfMethod:
		return "start"
	case EndOfMethod:
		return "end"
	}
	return "unknown"
}

// InsertCodeInMethod inserts code just inside the opening or closing
// brace of the named method. Code lines are indented by one configured
// indent unit.
func (d *Document) InsertCodeInMethod(ctx context.Context, methodName, code string, at MethodPosition) bool {
	sym, err := d.FindSymbol(ctx, methodName)
	if err != nil {
		log.Errorf("inserting code in %s: %s", methodName, err)
		return false
	}
	if sym == nil {
		log.Warningf("can't find method '%s' in %s", methodName, d.path)
		return false
	}
	if !sym.IsFunction() {
		log.Warningf("'%s' in %s is not a method", methodName, d.path)
		return false
	}
	if b, ok := d.buffer.ByteAt(sym.Range.End - 1); !ok || b != '}' {
		log.Warningf("method '%s' in %s has no body", methodName, d.path)
		return false
	}

	tab := d.cfg.Tab()
	code = strings.ReplaceAll(code, "\n", "\n"+tab)

	var pos text.ByteOffset
	var insertion string
	switch at {
	case StartOfMethod:
		code = strings.TrimSuffix(code, tab)
		bracePos := text.MoveBlock(d.buffer, sym.Range.End-1, text.Backward)
		pos = bracePos + 1
		insertion = "\n" + tab + code
	case EndOfMethod:
		if !strings.HasSuffix(code, "\n"+tab) {
			code += "\n"
		}
		code = strings.TrimSuffix(code, tab)
		pos = sym.Range.End - 1
		insertion = tab + code
	default:
		log.Errorf("unknown method position %d", at)
		return false
	}

	d.beginEdit("insert code in method", text.NewCursor(pos))
	if err := d.insertAt(pos, insertion); err != nil {
		d.cancelEdit()
		return false
	}
	d.endEdit(text.NewCursor(pos + len(insertion)))
	return true
}

// Declaration specifiers that only belong in the class body, stripped
// before a declaration is turned into a definition.
var declarationSpecifiers = []string{
	"override",
	"final",
	"virtual",
	"static",
	"Q_INVOKABLE",
	"Q_SLOT",
	"Q_SIGNAL",
}

// AddMethodDefinition appends the definition matching the given
// declaration after the last closing brace of the file, or at the end
// of an empty file.
func (d *Document) AddMethodDefinition(declaration, className, body string) bool {
	decl := declaration
	for _, spec := range declarationSpecifiers {
		decl = strings.ReplaceAll(decl, spec, "")
	}
	decl = strings.Join(strings.Fields(decl), " ")

	openParen := strings.IndexByte(decl, '(')
	if openParen < 0 {
		log.Warningf("malformed method declaration %q, missing parameter list", declaration)
		return false
	}
	spaceIdx := strings.LastIndex(decl[:openParen], " ")
	if spaceIdx < 0 {
		log.Warningf("malformed method declaration %q, missing return type", declaration)
		return false
	}

	returnType := decl[:spaceIdx]
	name := decl[spaceIdx+1 : openParen]
	methodDef := returnType + " " + className + "::" + name + decl[openParen:]
	if body == "" {
		methodDef += " {}"
	} else {
		methodDef += " {\n" + body + "\n}"
	}

	insertPos := d.buffer.Len()
	if lastBrace := strings.LastIndexByte(d.buffer.Text(), '}'); lastBrace >= 0 {
		insertPos = d.buffer.LineEndOffset(d.buffer.LineAt(lastBrace))
	}
	insertion := "\n\n" + methodDef

	d.beginEdit("add method definition", text.NewCursor(insertPos))
	if err := d.insertAt(insertPos, insertion); err != nil {
		d.cancelEdit()
		return false
	}
	// Leave the cursor just inside the new body.
	after := text.NewCursor(insertPos + len(insertion) - 1)
	if body != "" {
		after = text.NewCursor(insertPos + len(insertion) - 2)
	}
	d.endEdit(after)
	return true
}

// AddMethod declares the method in the header and defines it in the
// source, whichever of the two this document is. A missing counterpart
// skips that half with a log line.
func (d *Document) AddMethod(ctx context.Context, declaration, className string, specifier AccessSpecifier, body string) bool {
	counterpart, err := d.OpenHeaderSource()
	if err != nil {
		log.Errorf("opening the counterpart of %s: %s", d.path, err)
		counterpart = nil
	}

	header, source := d, counterpart
	if !d.IsHeader() {
		header, source = counterpart, d
	}

	result := true
	if header != nil {
		result = header.AddMethodDeclaration(ctx, declaration, className, specifier) && result
	} else {
		log.Errorf("no header file found for %s, skipping the declaration of %s", d.path, declaration)
	}
	if source != nil {
		result = source.AddMethodDefinition(declaration, className, body) && result
	} else {
		log.Errorf("no source file found for %s, skipping the definition of %s", d.path, declaration)
	}
	return result
}

// DeleteMethodLocal deletes every matching declaration and definition
// of the method in this document only. An empty signature matches all
// overloads.
func (d *Document) DeleteMethodLocal(ctx context.Context, methodName, signature string) bool {
	symbols, err := d.Symbols(ctx)
	if err != nil {
		log.Errorf("deleting %s: %s", methodName, err)
		return false
	}

	var matching []Symbol
	for _, s := range symbols {
		if s.IsFunction() && s.Name == methodName && (signature == "" || s.Signature == signature) {
			matching = append(matching, s)
		}
	}
	if len(matching) == 0 {
		log.Debugf("no method '%s' in %s", methodName, d.path)
		return false
	}

	// Delete bottom up so the remaining ranges stay valid.
	sort.Slice(matching, func(i, j int) bool { return matching[i].Range.Start > matching[j].Range.Start })
	edits := make([]text.Edit, 0, len(matching))
	for _, s := range matching {
		edits = append(edits, text.NewDelete(s.Range))
	}

	top := text.NewCursor(matching[len(matching)-1].Range.Start)
	d.beginEdit("delete method", top)
	if err := d.applyEdits(edits); err != nil {
		d.cancelEdit()
		log.Errorf("deleting %s from %s: %s", methodName, d.path, err)
		return false
	}
	d.endEdit(top)
	return true
}

// DeleteMethod deletes the method from this document and from its
// header/source counterpart. An empty signature deletes every
// overload.
func (d *Document) DeleteMethod(ctx context.Context, methodName, signature string) bool {
	deleted := false
	counterpart, err := d.OpenHeaderSource()
	if err != nil {
		log.Errorf("opening the counterpart of %s: %s", d.path, err)
	} else if counterpart != nil {
		deleted = counterpart.DeleteMethodLocal(ctx, methodName, signature)
	}
	if d.DeleteMethodLocal(ctx, methodName, signature) {
		deleted = true
	}
	if !deleted {
		log.Warningf("no method '%s' found to delete", methodName)
	}
	return deleted
}

// DeleteMethodAtCursor deletes the method containing the cursor from
// this document and its counterpart. Exactly the overload under the
// cursor dies.
func (d *Document) DeleteMethodAtCursor(ctx context.Context, sel text.Selection) bool {
	sym, err := d.CurrentFunction(ctx, sel)
	if err != nil {
		log.Errorf("deleting the method at the cursor: %s", err)
		return false
	}
	if sym == nil {
		log.Errorf("the cursor is not inside a method in %s", d.path)
		return false
	}
	return d.DeleteMethod(ctx, sym.Name, sym.Signature)
}
