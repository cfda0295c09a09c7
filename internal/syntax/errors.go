package syntax

import "errors"

var (
	// ErrNotParsed is returned when a query runs before any content
	// has been parsed.
	ErrNotParsed = errors.New("no syntax tree, update the engine first")

	// ErrInvalidQuery is returned when a query string fails to compile.
	ErrInvalidQuery = errors.New("invalid query")
)
