package syntax

import (
	"context"
	"fmt"
	"sync"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/cpp"

	"graft/internal/text"
)

// Engine parses C++ content and answers queries against the resulting
// syntax tree. It is safe for concurrent use.
type Engine struct {
	mu       sync.Mutex
	parser   *sitter.Parser
	language *sitter.Language
	tree     *sitter.Tree
	content  []byte
	revision text.Revision
	parsed   bool
	queries  map[string]*sitter.Query
}

// NewEngine creates an engine for the C++ grammar.
func NewEngine() *Engine {
	lang := cpp.GetLanguage()
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Engine{
		parser:   parser,
		language: lang,
		queries:  make(map[string]*sitter.Query),
	}
}

// Update parses content tagged with the given buffer revision. If the
// revision matches the last parsed one the call is a no-op. Otherwise
// the engine computes the byte edit between the old and new content and
// re-parses incrementally.
func (e *Engine) Update(ctx context.Context, content []byte, rev text.Revision) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.parsed && rev == e.revision {
		return nil
	}

	if e.tree != nil {
		edit, err := computeEdit(e.content, content)
		if err != nil {
			return err
		}
		if edit != nil {
			e.tree.Edit(*edit)
		}
	}

	tree, err := e.parser.ParseCtx(ctx, e.tree, content)
	if err != nil {
		return fmt.Errorf("parse content: %w", err)
	}
	if e.tree != nil {
		e.tree.Close()
	}

	e.tree = tree
	e.content = content
	e.revision = rev
	e.parsed = true
	return nil
}

// Revision reports the revision of the last parsed content.
func (e *Engine) Revision() text.Revision {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.revision
}

// Close releases the tree, the compiled queries and the parser. The
// engine must not be used afterwards.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, q := range e.queries {
		q.Close()
	}
	e.queries = nil
	if e.tree != nil {
		e.tree.Close()
		e.tree = nil
	}
	if e.parser != nil {
		e.parser.Close()
		e.parser = nil
	}
	e.content = nil
	e.parsed = false
}

// computeEdit derives the tree-sitter edit between two content
// snapshots by trimming the common prefix and suffix. It returns nil
// when the snapshots are identical.
func computeEdit(oldContent, newContent []byte) (*sitter.EditInput, error) {
	prefix := 0
	for prefix < len(oldContent) && prefix < len(newContent) && oldContent[prefix] == newContent[prefix] {
		prefix++
	}
	if prefix == len(oldContent) && prefix == len(newContent) {
		return nil, nil
	}

	suffix := 0
	for suffix < len(oldContent)-prefix && suffix < len(newContent)-prefix &&
		oldContent[len(oldContent)-1-suffix] == newContent[len(newContent)-1-suffix] {
		suffix++
	}

	startIndex, err := safecast.Conv[uint32](prefix)
	if err != nil {
		return nil, fmt.Errorf("edit start index: %w", err)
	}
	oldEndIndex, err := safecast.Conv[uint32](len(oldContent) - suffix)
	if err != nil {
		return nil, fmt.Errorf("edit old end index: %w", err)
	}
	newEndIndex, err := safecast.Conv[uint32](len(newContent) - suffix)
	if err != nil {
		return nil, fmt.Errorf("edit new end index: %w", err)
	}

	return &sitter.EditInput{
		StartIndex:  startIndex,
		OldEndIndex: oldEndIndex,
		NewEndIndex: newEndIndex,
		StartPoint:  pointAt(oldContent, prefix),
		OldEndPoint: pointAt(oldContent, len(oldContent)-suffix),
		NewEndPoint: pointAt(newContent, len(newContent)-suffix),
	}, nil
}

// pointAt computes the row and column of a byte offset by scanning for
// newlines from the start of the content.
func pointAt(content []byte, offset int) sitter.Point {
	var row, column uint32
	for i := 0; i < offset && i < len(content); i++ {
		if content[i] == '\n' {
			row++
			column = 0
		} else {
			column++
		}
	}
	return sitter.Point{Row: row, Column: column}
}
