package cppdoc

import "errors"

var (
	// ErrUnknownAccessSpecifier is returned when parsing an access
	// specifier name that is not public, protected or private.
	ErrUnknownAccessSpecifier = errors.New("unknown access specifier")

	// ErrNoWorkspace is returned by operations that need the project
	// catalog when the document was opened standalone.
	ErrNoWorkspace = errors.New("document has no workspace")
)
