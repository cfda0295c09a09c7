package config

import (
	"errors"
	"fmt"
)

// ErrInvalidValue marks a configuration value the tool cannot use.
var ErrInvalidValue = errors.New("invalid configuration value")

// ParseError reports a syntax error in a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
