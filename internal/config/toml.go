package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem abstracts file access so loading can be tested against an
// in-memory file system.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem on the real file system.
type OSFS struct{}

func (OSFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the OS file system.
func DefaultFS() FileSystem {
	return OSFS{}
}

// Loader reads a Config from a TOML file.
type Loader struct {
	fs   FileSystem
	path string
}

// NewLoader creates a loader for the given path on the OS file system.
func NewLoader(path string) *Loader {
	return &Loader{fs: DefaultFS(), path: path}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fsys FileSystem, path string) *Loader {
	return &Loader{fs: fsys, path: path}
}

// Load reads the configured path. A missing file is not an error, the
// defaults are returned instead.
func (l *Loader) Load() (*Config, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads a specific path, falling back to the defaults when the
// file does not exist.
func (l *Loader) LoadFrom(path string) (*Config, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return l.parse(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *Loader) LoadFromReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return l.parse("<reader>", data)
}

// parse unmarshals TOML over the defaults, so values absent from the
// file keep their built-in setting.
func (l *Loader) parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
			perr.Message = derr.String()
		}
		return nil, perr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", source, err)
	}
	return cfg, nil
}
