package cppdoc

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"graft/internal/config"
	"graft/internal/project/vfs"
	"graft/internal/syntax"
	"graft/internal/text"
)

var log = commonlog.GetLogger("graft.cppdoc")

// Workspace gives a document access to the rest of the project. It is
// implemented by the project catalog.
type Workspace interface {
	// Root returns the project root directory.
	Root() string

	// FilesWithSuffixes returns the absolute paths of all project
	// files whose suffix (without dot) is one of the given ones.
	FilesWithSuffixes(suffixes []string) []string

	// Open returns the document for path, loading it if necessary.
	Open(path string) (*Document, error)

	// Get returns the already open document for path, or nil.
	Get(path string) *Document
}

// Document is one C or C++ file under edit.
type Document struct {
	id    string
	path  string
	fs    vfs.VFS
	cfg   *config.Config
	ws    Workspace
	pairs *PairCache

	buffer  *text.Buffer
	history *text.History
	engine  *syntax.Engine
	dirty   bool
}

// Option configures a Document.
type Option func(*Document)

// WithConfig sets the tool configuration.
func WithConfig(cfg *config.Config) Option {
	return func(d *Document) { d.cfg = cfg }
}

// WithWorkspace attaches the project catalog used for cross file
// operations.
func WithWorkspace(ws Workspace) Option {
	return func(d *Document) { d.ws = ws }
}

// WithPairCache sets the shared header/source pair cache.
func WithPairCache(pc *PairCache) Option {
	return func(d *Document) { d.pairs = pc }
}

// WithFS sets the file system used for loading and saving.
func WithFS(fsys vfs.VFS) Option {
	return func(d *Document) { d.fs = fsys }
}

// New creates a document over the given content. The content is not
// read from or written to disk until Save is called.
func New(path string, content string, opts ...Option) *Document {
	d := &Document{
		id:      uuid.NewString(),
		path:    path,
		fs:      vfs.NewOSFS(),
		cfg:     config.Default(),
		buffer:  text.NewBufferFromString(content),
		history: text.NewHistory(),
		engine:  syntax.NewEngine(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.pairs == nil {
		d.pairs = NewPairCache()
	}
	return d
}

// Load reads the file at path and creates a document for it.
func Load(path string, opts ...Option) (*Document, error) {
	d := New(path, "", opts...)
	data, err := d.fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	d.buffer = text.NewBufferFromString(string(data))
	return d, nil
}

// ID returns the unique identifier of this document instance.
func (d *Document) ID() string { return d.id }

// Path returns the file path of the document.
func (d *Document) Path() string { return d.path }

// Text returns the whole buffer content.
func (d *Document) Text() string { return d.buffer.Text() }

// TextRange returns the content of the given byte range.
func (d *Document) TextRange(r text.Range) string { return d.buffer.TextRange(r) }

// Buffer exposes the underlying text buffer.
func (d *Document) Buffer() *text.Buffer { return d.buffer }

// Dirty reports whether the document has unsaved changes.
func (d *Document) Dirty() bool { return d.dirty }

// Suffix returns the file suffix without the leading dot.
func (d *Document) Suffix() string {
	return strings.TrimPrefix(filepath.Ext(d.path), ".")
}

// IsHeader reports whether the document is a header file. Header
// suffixes start with 'h' by convention.
func (d *Document) IsHeader() bool {
	return d.cfg.Cpp.IsHeaderSuffix(d.Suffix())
}

// Save writes the buffer back to its file, restoring the original line
// endings.
func (d *Document) Save() error {
	if err := d.fs.WriteFile(d.path, []byte(d.buffer.Export()), 0o644); err != nil {
		return fmt.Errorf("saving %s: %w", d.path, err)
	}
	d.dirty = false
	return nil
}

// Undo reverts the last edit group and returns the selection recorded
// before it.
func (d *Document) Undo() (text.Selection, error) {
	sel, err := d.history.Undo(d.buffer)
	if err != nil {
		return sel, err
	}
	d.dirty = true
	return sel, nil
}

// Redo reapplies the last undone edit group.
func (d *Document) Redo() (text.Selection, error) {
	sel, err := d.history.Redo(d.buffer)
	if err != nil {
		return sel, err
	}
	d.dirty = true
	return sel, nil
}

// CanUndo reports whether an undo step is available.
func (d *Document) CanUndo() bool { return d.history.CanUndo() }

// CanRedo reports whether a redo step is available.
func (d *Document) CanRedo() bool { return d.history.CanRedo() }

// Close releases the syntax engine. The document must not be used
// afterwards.
func (d *Document) Close() {
	d.engine.Close()
}

// beginEdit opens an undo group. Every mutating operation wraps its
// edits in exactly one group so the whole operation undoes as a unit.
func (d *Document) beginEdit(name string, before text.Selection) {
	d.history.BeginGroup(name, before)
}

func (d *Document) endEdit(after text.Selection) {
	d.history.EndGroup(after)
}

func (d *Document) cancelEdit() {
	d.history.CancelGroup()
}

// applyEdit applies one edit to the buffer and records it for undo.
func (d *Document) applyEdit(e text.Edit) error {
	change, err := d.buffer.ApplyEdit(e)
	if err != nil {
		return err
	}
	d.history.Record(change)
	d.dirty = true
	return nil
}

// applyEdits applies a batch of edits in strict reverse document
// order. Overlapping or misordered edits are rejected as a whole.
func (d *Document) applyEdits(edits []text.Edit) error {
	changes, err := d.buffer.ApplyEdits(edits)
	if err != nil {
		return err
	}
	for _, c := range changes {
		d.history.Record(c)
	}
	d.dirty = true
	return nil
}

func (d *Document) insertAt(pos text.ByteOffset, s string) error {
	return d.applyEdit(text.NewInsert(pos, s))
}

func (d *Document) deleteRange(r text.Range) error {
	return d.applyEdit(text.NewDelete(r))
}

// insertAtLine inserts text at the start of the given zero based line.
// Lines past the end of the buffer append at the buffer end.
func (d *Document) insertAtLine(line int, s string) error {
	pos := d.buffer.Len()
	if line < d.buffer.LineCount() {
		pos = d.buffer.LineStartOffset(line)
	}
	return d.insertAt(pos, s)
}

// deleteLine removes the given zero based line including its newline.
func (d *Document) deleteLine(line int) error {
	if line < 0 || line >= d.buffer.LineCount() {
		return text.ErrOffsetOutOfRange
	}
	start := d.buffer.LineStartOffset(line)
	end := d.buffer.Len()
	if line+1 < d.buffer.LineCount() {
		end = d.buffer.LineStartOffset(line + 1)
	}
	return d.deleteRange(text.Range{Start: start, End: end})
}

// sync brings the syntax engine up to date with the buffer.
func (d *Document) sync(ctx context.Context) error {
	return d.engine.Update(ctx, []byte(d.buffer.Text()), d.buffer.Revision())
}

// query parses if needed and runs a tree query over the whole buffer.
func (d *Document) query(ctx context.Context, pattern string) ([]syntax.Match, error) {
	if err := d.sync(ctx); err != nil {
		return nil, err
	}
	return d.engine.Query(pattern)
}

// queryInRange parses if needed and runs a tree query limited to r.
func (d *Document) queryInRange(ctx context.Context, pattern string, r text.Range) ([]syntax.Match, error) {
	if err := d.sync(ctx); err != nil {
		return nil, err
	}
	return d.engine.QueryInRange(pattern, r)
}

// GotoBlockStart moves from pos to the start of the enclosing
// delimiter block, count times.
func (d *Document) GotoBlockStart(pos text.ByteOffset, count int) text.ByteOffset {
	return text.GotoBlockStart(d.buffer, pos, count)
}

// GotoBlockEnd moves from pos to the end of the enclosing delimiter
// block, count times.
func (d *Document) GotoBlockEnd(pos text.ByteOffset, count int) text.ByteOffset {
	return text.GotoBlockEnd(d.buffer, pos, count)
}

// SelectBlockStart extends the selection to the enclosing block start.
func (d *Document) SelectBlockStart(sel text.Selection, count int) text.Selection {
	return text.SelectBlockStart(d.buffer, sel, count)
}

// SelectBlockEnd extends the selection to the enclosing block end.
func (d *Document) SelectBlockEnd(sel text.Selection, count int) text.Selection {
	return text.SelectBlockEnd(d.buffer, sel, count)
}

// SelectBlockUp selects the whole enclosing delimiter block.
func (d *Document) SelectBlockUp(sel text.Selection, count int) text.Selection {
	return text.SelectBlockUp(d.buffer, sel, count)
}
