package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Store is a JSON document holding ad-hoc settings addressed by dotted
// paths, for example "cpp.toggle_section.tag". Scripts use it to stash
// values between runs. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	path  string
	data  []byte
	dirty bool
}

// NewStore loads the JSON document at path. A missing file yields an
// empty store that will be created on the first Save.
func NewStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Store{path: path, data: []byte("{}")}, nil
		}
		return nil, fmt.Errorf("reading settings file %s: %w", path, err)
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("settings file %s: %w", path, ErrInvalidValue)
	}
	return &Store{path: path, data: data}, nil
}

// NewStoreFromJSON creates an unsaved store over the given document.
func NewStoreFromJSON(data []byte) (*Store, error) {
	if len(data) == 0 {
		data = []byte("{}")
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("settings document: %w", ErrInvalidValue)
	}
	return &Store{data: data}, nil
}

// Get returns the value at path and whether it exists.
func (s *Store) Get(path string) (gjson.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := gjson.GetBytes(s.data, path)
	return res, res.Exists()
}

// GetString returns the string at path, or def when absent.
func (s *Store) GetString(path, def string) string {
	if res, ok := s.Get(path); ok {
		return res.String()
	}
	return def
}

// GetInt returns the integer at path, or def when absent.
func (s *Store) GetInt(path string, def int64) int64 {
	if res, ok := s.Get(path); ok {
		return res.Int()
	}
	return def
}

// GetBool returns the boolean at path, or def when absent.
func (s *Store) GetBool(path string, def bool) bool {
	if res, ok := s.Get(path); ok {
		return res.Bool()
	}
	return def
}

// Set stores value at path, creating intermediate objects as needed.
func (s *Store) Set(path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := sjson.SetBytes(s.data, path, value)
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	s.data = data
	s.dirty = true
	return nil
}

// SetRaw stores a raw JSON value at path.
func (s *Store) SetRaw(path string, raw string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !gjson.Valid(raw) {
		return fmt.Errorf("setting %s: %w", path, ErrInvalidValue)
	}
	data, err := sjson.SetRawBytes(s.data, path, []byte(raw))
	if err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	s.data = data
	s.dirty = true
	return nil
}

// Delete removes the value at path. Deleting an absent path is a no-op.
func (s *Store) Delete(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := sjson.DeleteBytes(s.data, path)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	s.data = data
	s.dirty = true
	return nil
}

// Dirty reports whether the store holds unsaved changes.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// JSON returns a copy of the current document.
func (s *Store) JSON() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Save writes the document back to its file. Saving a store created
// from raw JSON without a path is an error.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return errors.New("settings store has no backing file")
	}
	if err := os.WriteFile(s.path, s.data, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}
