package script

import (
	"context"

	"github.com/tidwall/gjson"
	lua "github.com/yuin/gopher-lua"

	"graft/internal/config"
	"graft/internal/cppdoc"
	"graft/internal/project"
	"graft/internal/text"
)

const documentTypeName = "graft.document"

// Bindings exposes a project catalog and a settings store to Lua as
// the graft module:
//
//	local graft = require("graft")
//	local doc = graft.project.open("src/widget.cpp")
//	doc:insert_include("<vector>")
//	graft.settings.set("last_run", doc:path())
type Bindings struct {
	cat   *project.Catalog
	store *config.Store
}

// NewBindings creates bindings over the given catalog and store.
func NewBindings(cat *project.Catalog, store *config.Store) *Bindings {
	return &Bindings{cat: cat, store: store}
}

// Install preloads the graft module into the state.
func (b *Bindings) Install(s *State) {
	s.Preload("graft", b.loader)
}

func (b *Bindings) loader(L *lua.LState) int {
	registerDocumentType(L)

	mod := L.NewTable()
	L.SetField(mod, "project", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"root":  b.projectRoot,
		"files": b.projectFiles,
		"open":  b.projectOpen,
	}))
	L.SetField(mod, "settings", L.SetFuncs(L.NewTable(), map[string]lua.LGFunction{
		"get": b.settingsGet,
		"set": b.settingsSet,
	}))
	L.Push(mod)
	return 1
}

func (b *Bindings) projectRoot(L *lua.LState) int {
	L.Push(lua.LString(b.cat.Root()))
	return 1
}

// projectFiles lists the project files, filtered to the suffixes
// given as arguments when there are any.
func (b *Bindings) projectFiles(L *lua.LState) int {
	var files []string
	if L.GetTop() == 0 {
		files = b.cat.Files()
	} else {
		suffixes := make([]string, 0, L.GetTop())
		for i := 1; i <= L.GetTop(); i++ {
			suffixes = append(suffixes, L.CheckString(i))
		}
		files = b.cat.FilesWithSuffixes(suffixes)
	}
	out := L.NewTable()
	for _, f := range files {
		out.Append(lua.LString(f))
	}
	L.Push(out)
	return 1
}

func (b *Bindings) projectOpen(L *lua.LState) int {
	path := L.CheckString(1)
	doc, err := b.cat.Open(path)
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	pushDocument(L, doc)
	return 1
}

func (b *Bindings) settingsGet(L *lua.LState) int {
	path := L.CheckString(1)
	res, ok := b.store.Get(path)
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	switch res.Type {
	case gjson.String:
		L.Push(lua.LString(res.Str))
	case gjson.Number:
		L.Push(lua.LNumber(res.Num))
	case gjson.True:
		L.Push(lua.LTrue)
	case gjson.False:
		L.Push(lua.LFalse)
	case gjson.Null:
		L.Push(lua.LNil)
	default:
		// Objects and arrays surface as their raw JSON text.
		L.Push(lua.LString(res.Raw))
	}
	return 1
}

func (b *Bindings) settingsSet(L *lua.LState) int {
	path := L.CheckString(1)
	var err error
	switch v := L.Get(2); v.Type() {
	case lua.LTString:
		err = b.store.Set(path, string(v.(lua.LString)))
	case lua.LTNumber:
		err = b.store.Set(path, float64(v.(lua.LNumber)))
	case lua.LTBool:
		err = b.store.Set(path, bool(v.(lua.LBool)))
	case lua.LTNil:
		err = b.store.Delete(path)
	default:
		L.ArgError(2, "string, number, boolean or nil expected")
	}
	if err != nil {
		L.RaiseError("settings.set %s: %s", path, err.Error())
	}
	return 0
}

// docHandle pairs a document with the selection the script threads
// through it. Two handles on the same document carry independent
// selections.
type docHandle struct {
	doc *cppdoc.Document
	sel text.Selection
}

func registerDocumentType(L *lua.LState) {
	mt := L.NewTypeMetatable(documentTypeName)
	L.SetField(mt, "__index", L.SetFuncs(L.NewTable(), documentMethods))
}

func pushDocument(L *lua.LState, doc *cppdoc.Document) {
	ud := L.NewUserData()
	ud.Value = &docHandle{doc: doc, sel: text.NewCursor(0)}
	L.SetMetatable(ud, L.GetTypeMetatable(documentTypeName))
	L.Push(ud)
}

func checkDocument(L *lua.LState) *docHandle {
	ud := L.CheckUserData(1)
	if h, ok := ud.Value.(*docHandle); ok {
		return h
	}
	L.ArgError(1, "document expected")
	return nil
}

func checkAccess(L *lua.LState, n int) cppdoc.AccessSpecifier {
	s := L.OptString(n, "public")
	access, err := cppdoc.ParseAccessSpecifier(s)
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return access
}

var documentMethods = map[string]lua.LGFunction{
	"path":       docPath,
	"text":       docText,
	"line":       docLine,
	"line_count": docLineCount,
	"is_header":  docIsHeader,
	"dirty":      docDirty,
	"save":       docSave,

	"cursor":        docCursor,
	"set_cursor":    docSetCursor,
	"select":        docSelect,
	"selection":     docSelection,
	"selected_text": docSelectedText,

	"goto_block_start":   docGotoBlockStart,
	"goto_block_end":     docGotoBlockEnd,
	"select_block_start": docSelectBlockStart,
	"select_block_end":   docSelectBlockEnd,
	"select_block_up":    docSelectBlockUp,

	"toggle_comment": docToggleComment,
	"toggle_section": docToggleSection,

	"includes":                   docIncludes,
	"insert_include":             docInsertInclude,
	"remove_include":             docRemoveInclude,
	"insert_forward_declaration": docInsertForwardDeclaration,

	"add_member":              docAddMember,
	"add_method_declaration":  docAddMethodDeclaration,
	"add_method_definition":   docAddMethodDefinition,
	"add_method":              docAddMethod,
	"delete_method":           docDeleteMethod,
	"delete_method_at_cursor": docDeleteMethodAtCursor,
	"insert_code_in_method":   docInsertCodeInMethod,

	"symbols":          docSymbols,
	"current_function": docCurrentFunction,
	"current_symbol":   docCurrentSymbol,

	"header_source":      docHeaderSource,
	"open_header_source": docOpenHeaderSource,

	"mfc_extract_ddx": docMFCExtractDDX,
}

func docPath(L *lua.LState) int {
	L.Push(lua.LString(checkDocument(L).doc.Path()))
	return 1
}

func docText(L *lua.LState) int {
	L.Push(lua.LString(checkDocument(L).doc.Text()))
	return 1
}

// docLine returns one line of text. Lua line numbers start at 1.
func docLine(L *lua.LState) int {
	h := checkDocument(L)
	n := L.CheckInt(2)
	if n < 1 || n > h.doc.Buffer().LineCount() {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(h.doc.Buffer().LineText(n - 1)))
	return 1
}

func docLineCount(L *lua.LState) int {
	L.Push(lua.LNumber(checkDocument(L).doc.Buffer().LineCount()))
	return 1
}

func docIsHeader(L *lua.LState) int {
	L.Push(lua.LBool(checkDocument(L).doc.IsHeader()))
	return 1
}

func docDirty(L *lua.LState) int {
	L.Push(lua.LBool(checkDocument(L).doc.Dirty()))
	return 1
}

func docSave(L *lua.LState) int {
	if err := checkDocument(L).doc.Save(); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func docCursor(L *lua.LState) int {
	L.Push(lua.LNumber(checkDocument(L).sel.Cursor()))
	return 1
}

func docSetCursor(L *lua.LState) int {
	h := checkDocument(L)
	h.sel = text.NewCursor(L.CheckInt(2)).Clamp(h.doc.Buffer().Len())
	return 0
}

func docSelect(L *lua.LState) int {
	h := checkDocument(L)
	h.sel = text.NewSelection(L.CheckInt(2), L.CheckInt(3)).Clamp(h.doc.Buffer().Len())
	return 0
}

func docSelection(L *lua.LState) int {
	h := checkDocument(L)
	L.Push(lua.LNumber(h.sel.Anchor))
	L.Push(lua.LNumber(h.sel.Head))
	return 2
}

func docSelectedText(L *lua.LState) int {
	h := checkDocument(L)
	L.Push(lua.LString(h.doc.TextRange(h.sel.Range())))
	return 1
}

func docGotoBlockStart(L *lua.LState) int {
	h := checkDocument(L)
	pos := h.doc.GotoBlockStart(h.sel.Cursor(), L.OptInt(2, 1))
	h.sel = text.NewCursor(pos)
	L.Push(lua.LNumber(pos))
	return 1
}

func docGotoBlockEnd(L *lua.LState) int {
	h := checkDocument(L)
	pos := h.doc.GotoBlockEnd(h.sel.Cursor(), L.OptInt(2, 1))
	h.sel = text.NewCursor(pos)
	L.Push(lua.LNumber(pos))
	return 1
}

func docSelectBlockStart(L *lua.LState) int {
	h := checkDocument(L)
	h.sel = h.doc.SelectBlockStart(h.sel, L.OptInt(2, 1))
	return 0
}

func docSelectBlockEnd(L *lua.LState) int {
	h := checkDocument(L)
	h.sel = h.doc.SelectBlockEnd(h.sel, L.OptInt(2, 1))
	return 0
}

func docSelectBlockUp(L *lua.LState) int {
	h := checkDocument(L)
	h.sel = h.doc.SelectBlockUp(h.sel, L.OptInt(2, 1))
	return 0
}

func docToggleComment(L *lua.LState) int {
	h := checkDocument(L)
	h.sel = h.doc.ToggleComment(h.sel)
	return 0
}

func docToggleSection(L *lua.LState) int {
	h := checkDocument(L)
	h.sel = h.doc.ToggleSection(context.Background(), h.sel)
	return 0
}

// docIncludes lists the #include directives as tables with a name and
// a 1-based line.
func docIncludes(L *lua.LState) int {
	h := checkDocument(L)
	out := L.NewTable()
	for _, inc := range h.doc.Includes() {
		t := L.NewTable()
		L.SetField(t, "name", lua.LString(inc.Name))
		L.SetField(t, "line", lua.LNumber(inc.Line+1))
		out.Append(t)
	}
	L.Push(out)
	return 1
}

func docInsertInclude(L *lua.LState) int {
	h := checkDocument(L)
	ok := h.doc.InsertInclude(L.CheckString(2), L.OptBool(3, false))
	L.Push(lua.LBool(ok))
	return 1
}

func docRemoveInclude(L *lua.LState) int {
	h := checkDocument(L)
	L.Push(lua.LBool(h.doc.RemoveInclude(L.CheckString(2))))
	return 1
}

func docInsertForwardDeclaration(L *lua.LState) int {
	h := checkDocument(L)
	L.Push(lua.LBool(h.doc.InsertForwardDeclaration(L.CheckString(2))))
	return 1
}

func docAddMember(L *lua.LState) int {
	h := checkDocument(L)
	ok := h.doc.AddMember(context.Background(), L.CheckString(2), L.CheckString(3), checkAccess(L, 4))
	L.Push(lua.LBool(ok))
	return 1
}

func docAddMethodDeclaration(L *lua.LState) int {
	h := checkDocument(L)
	ok := h.doc.AddMethodDeclaration(context.Background(), L.CheckString(2), L.CheckString(3), checkAccess(L, 4))
	L.Push(lua.LBool(ok))
	return 1
}

func docAddMethodDefinition(L *lua.LState) int {
	h := checkDocument(L)
	ok := h.doc.AddMethodDefinition(L.CheckString(2), L.CheckString(3), L.OptString(4, ""))
	L.Push(lua.LBool(ok))
	return 1
}

func docAddMethod(L *lua.LState) int {
	h := checkDocument(L)
	ok := h.doc.AddMethod(context.Background(),
		L.CheckString(2), L.CheckString(3), checkAccess(L, 4), L.OptString(5, ""))
	L.Push(lua.LBool(ok))
	return 1
}

func docDeleteMethod(L *lua.LState) int {
	h := checkDocument(L)
	ok := h.doc.DeleteMethod(context.Background(), L.CheckString(2), L.OptString(3, ""))
	L.Push(lua.LBool(ok))
	return 1
}

func docDeleteMethodAtCursor(L *lua.LState) int {
	h := checkDocument(L)
	L.Push(lua.LBool(h.doc.DeleteMethodAtCursor(context.Background(), h.sel)))
	return 1
}

func docInsertCodeInMethod(L *lua.LState) int {
	h := checkDocument(L)
	var at cppdoc.MethodPosition
	switch where := L.OptString(4, "end"); where {
	case "start":
		at = cppdoc.StartOfMethod
	case "end":
		at = cppdoc.EndOfMethod
	default:
		L.ArgError(4, "expected \"start\" or \"end\"")
	}
	ok := h.doc.InsertCodeInMethod(context.Background(), L.CheckString(2), L.CheckString(3), at)
	L.Push(lua.LBool(ok))
	return 1
}

func symbolToTable(L *lua.LState, sym cppdoc.Symbol) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "name", lua.LString(sym.Name))
	L.SetField(t, "kind", lua.LString(sym.Kind.String()))
	L.SetField(t, "signature", lua.LString(sym.Signature))
	L.SetField(t, "from", lua.LNumber(sym.Range.Start))
	L.SetField(t, "to", lua.LNumber(sym.Range.End))
	return t
}

func docSymbols(L *lua.LState) int {
	h := checkDocument(L)
	syms, err := h.doc.Symbols(context.Background())
	if err != nil {
		L.RaiseError("symbols: %s", err.Error())
	}
	out := L.NewTable()
	for _, sym := range syms {
		out.Append(symbolToTable(L, sym))
	}
	L.Push(out)
	return 1
}

func docCurrentFunction(L *lua.LState) int {
	h := checkDocument(L)
	sym, err := h.doc.CurrentFunction(context.Background(), h.sel)
	if err != nil {
		L.RaiseError("current_function: %s", err.Error())
	}
	if sym == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(symbolToTable(L, *sym))
	return 1
}

func docCurrentSymbol(L *lua.LState) int {
	h := checkDocument(L)
	sym, err := h.doc.CurrentSymbol(context.Background(), h.sel)
	if err != nil {
		L.RaiseError("current_symbol: %s", err.Error())
	}
	if sym == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(symbolToTable(L, *sym))
	return 1
}

func docHeaderSource(L *lua.LState) int {
	h := checkDocument(L)
	other := h.doc.CorrespondingHeaderSource()
	if other == "" {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(other))
	return 1
}

func docOpenHeaderSource(L *lua.LState) int {
	h := checkDocument(L)
	other, err := h.doc.OpenHeaderSource()
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	if other == nil {
		L.Push(lua.LNil)
		return 1
	}
	pushDocument(L, other)
	return 1
}

func docMFCExtractDDX(L *lua.LState) int {
	h := checkDocument(L)
	t := L.NewTable()
	for idc, member := range h.doc.MFCExtractDDX(L.CheckString(2)) {
		L.SetField(t, idc, lua.LString(member))
	}
	L.Push(t)
	return 1
}
