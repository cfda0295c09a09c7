package config

import (
	"fmt"
	"strings"
)

// Config is the root of the tool configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor"`
	Cpp     CppConfig     `toml:"cpp"`
	Logging LoggingConfig `toml:"logging"`
}

// EditorConfig controls how inserted code is indented.
type EditorConfig struct {
	TabSize      int  `toml:"tab_size"`
	InsertSpaces bool `toml:"insert_spaces"`
}

// CppConfig maps file suffixes to the header or source role and holds
// the section toggling settings.
type CppConfig struct {
	// Suffixes lists the recognized C++ file suffixes, without the
	// leading dot. A suffix starting with 'h' marks a header file,
	// anything else a source file.
	Suffixes      []string              `toml:"suffixes"`
	ToggleSection ToggleSectionSettings `toml:"toggle_section"`
}

// ToggleSectionSettings drives how function bodies are fenced with
// preprocessor sections.
type ToggleSectionSettings struct {
	// Tag is the preprocessor define used for the section.
	Tag string `toml:"tag"`
	// Debug is an optional statement inserted in the disabled branch.
	// A %1 placeholder is replaced with the function name.
	Debug string `toml:"debug"`
	// ReturnValues maps a return type to the expression returned from
	// the disabled branch. Values given in the configuration file are
	// merged over the defaults.
	ReturnValues map[string]string `toml:"return_values"`
}

// LoggingConfig selects the log verbosity.
type LoggingConfig struct {
	Level string `toml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			TabSize:      4,
			InsertSpaces: true,
		},
		Cpp: CppConfig{
			Suffixes: []string{"h", "hpp", "hxx", "hh", "c", "cpp", "cxx", "cc"},
			ToggleSection: ToggleSectionSettings{
				Tag:   "KDAB_TEMPORARILY_REMOVED",
				Debug: `qDebug("%1 is commented out")`,
				ReturnValues: map[string]string{
					"BOOL": "false",
				},
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Tab returns one level of indentation following the editor settings.
func (c *Config) Tab() string {
	if c.Editor.InsertSpaces {
		return strings.Repeat(" ", c.Editor.TabSize)
	}
	return "\t"
}

// Validate checks the configuration for values the tool cannot work
// with.
func (c *Config) Validate() error {
	if c.Editor.TabSize < 1 {
		return fmt.Errorf("%w: editor.tab_size must be at least 1, got %d", ErrInvalidValue, c.Editor.TabSize)
	}
	if len(c.Cpp.Suffixes) == 0 {
		return fmt.Errorf("%w: cpp.suffixes must not be empty", ErrInvalidValue)
	}
	for _, suffix := range c.Cpp.Suffixes {
		if suffix == "" || strings.HasPrefix(suffix, ".") {
			return fmt.Errorf("%w: cpp.suffixes entries must be bare suffixes, got %q", ErrInvalidValue, suffix)
		}
	}
	if c.Cpp.ToggleSection.Tag == "" {
		return fmt.Errorf("%w: cpp.toggle_section.tag must not be empty", ErrInvalidValue)
	}
	switch c.Logging.Level {
	case "", "error", "warning", "info", "debug", "trace":
	default:
		return fmt.Errorf("%w: logging.level %q is not a log level", ErrInvalidValue, c.Logging.Level)
	}
	return nil
}

// IsHeaderSuffix reports whether a suffix names a header file.
func (c *CppConfig) IsHeaderSuffix(suffix string) bool {
	return strings.HasPrefix(strings.ToLower(suffix), "h")
}

// KnowsSuffix reports whether the suffix is a recognized C++ suffix.
func (c *CppConfig) KnowsSuffix(suffix string) bool {
	lower := strings.ToLower(suffix)
	for _, s := range c.Suffixes {
		if s == lower {
			return true
		}
	}
	return false
}

// CandidateSuffixes returns the suffixes of the opposite role: source
// suffixes for a header suffix and header suffixes for a source one.
func (c *CppConfig) CandidateSuffixes(suffix string) []string {
	wantHeader := !c.IsHeaderSuffix(suffix)
	var out []string
	for _, s := range c.Suffixes {
		if c.IsHeaderSuffix(s) == wantHeader {
			out = append(out, s)
		}
	}
	return out
}
