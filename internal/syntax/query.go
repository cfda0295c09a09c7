package syntax

import (
	"fmt"

	"fortio.org/safecast"
	sitter "github.com/smacker/go-tree-sitter"

	"graft/internal/text"
)

// Capture is a single named capture of a query match.
type Capture struct {
	Name  string
	Range text.Range
	Text  string
}

// Match is one query match with its captures in query order.
type Match struct {
	Captures []Capture
}

// Get returns the first capture with the given name.
func (m Match) Get(name string) (Capture, bool) {
	for _, c := range m.Captures {
		if c.Name == name {
			return c, true
		}
	}
	return Capture{}, false
}

// GetAll returns every capture with the given name, in match order.
func (m Match) GetAll(name string) []Capture {
	var out []Capture
	for _, c := range m.Captures {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Has reports whether the match contains a capture with the given name.
func (m Match) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Span returns the smallest range covering every capture of the match.
func (m Match) Span() text.Range {
	if len(m.Captures) == 0 {
		return text.Range{}
	}
	span := m.Captures[0].Range
	for _, c := range m.Captures[1:] {
		if c.Range.Start < span.Start {
			span.Start = c.Range.Start
		}
		if c.Range.End > span.End {
			span.End = c.Range.End
		}
	}
	return span
}

// Query runs a tree-sitter query over the whole parsed content.
// Matches whose #eq? predicates fail are dropped.
func (e *Engine) Query(pattern string) ([]Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.execQuery(pattern, nil)
}

// QueryInRange runs a query and keeps only matches whose capture span
// lies entirely within r.
func (e *Engine) QueryInRange(pattern string, r text.Range) ([]Match, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.execQuery(pattern, &r)
}

func (e *Engine) execQuery(pattern string, limit *text.Range) ([]Match, error) {
	if !e.parsed {
		return nil, ErrNotParsed
	}

	query, err := e.compiled(pattern)
	if err != nil {
		return nil, err
	}

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, e.tree.RootNode())

	var matches []Match
	for {
		m, ok := cursor.NextMatch()
		if !ok {
			break
		}
		m = cursor.FilterPredicates(m, e.content)
		if len(m.Captures) == 0 {
			continue
		}
		match, err := e.buildMatch(query, m)
		if err != nil {
			return nil, err
		}
		if len(match.Captures) == 0 {
			continue
		}
		if limit != nil && !limit.ContainsRange(match.Span()) {
			continue
		}
		matches = append(matches, match)
	}
	return matches, nil
}

// compiled returns the compiled form of pattern, compiling and caching
// it on first use. Callers must hold e.mu.
func (e *Engine) compiled(pattern string) (*sitter.Query, error) {
	if q, ok := e.queries[pattern]; ok {
		return q, nil
	}
	q, err := sitter.NewQuery([]byte(pattern), e.language)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidQuery, err)
	}
	e.queries[pattern] = q
	return q, nil
}

// buildMatch converts a raw tree-sitter match into a Match, dropping
// captures whose node offsets fall outside the parsed content.
func (e *Engine) buildMatch(query *sitter.Query, m *sitter.QueryMatch) (Match, error) {
	captures := make([]Capture, 0, len(m.Captures))
	for _, c := range m.Captures {
		start, err := safecast.Conv[int](c.Node.StartByte())
		if err != nil {
			return Match{}, fmt.Errorf("capture start offset: %w", err)
		}
		end, err := safecast.Conv[int](c.Node.EndByte())
		if err != nil {
			return Match{}, fmt.Errorf("capture end offset: %w", err)
		}
		if start > end || end > len(e.content) {
			continue
		}
		captures = append(captures, Capture{
			Name:  query.CaptureNameForId(c.Index),
			Range: text.Range{Start: start, End: end},
			Text:  string(e.content[start:end]),
		})
	}
	return Match{Captures: captures}, nil
}
