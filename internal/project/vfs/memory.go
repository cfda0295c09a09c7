package vfs

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS implements VFS using an in-memory file system. It is primarily
// used for testing. Paths are slash separated and rooted at "/";
// WriteFile creates missing parent directories.
//
// MemFS is safe for concurrent use.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]*memFile
	dirs  map[string]bool
}

type memFile struct {
	content []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMemFS creates a new in-memory file system.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string]*memFile),
		dirs:  map[string]bool{"/": true},
	}
}

var _ VFS = (*MemFS)(nil)

func (m *MemFS) cleanPath(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// Open opens a file for reading.
func (m *MemFS) Open(filePath string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	f, ok := m.files[filePath]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

// ReadFile reads the entire file content.
func (m *MemFS) ReadFile(filePath string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	f, ok := m.files[filePath]
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: filePath, Err: fs.ErrNotExist}
	}

	content := make([]byte, len(f.content))
	copy(content, f.content)
	return content, nil
}

// WriteFile writes data to a file, creating it and any missing parent
// directories.
func (m *MemFS) WriteFile(filePath string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	filePath = m.cleanPath(filePath)
	if m.dirs[filePath] {
		return &fs.PathError{Op: "write", Path: filePath, Err: errors.New("is a directory")}
	}

	for dir := path.Dir(filePath); dir != "/"; dir = path.Dir(dir) {
		m.dirs[dir] = true
	}

	content := make([]byte, len(data))
	copy(content, data)
	m.files[filePath] = &memFile{
		content: content,
		mode:    perm,
		modTime: time.Now(),
	}
	return nil
}

// Stat returns file information.
func (m *MemFS) Stat(filePath string) (FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	if f, ok := m.files[filePath]; ok {
		return m.fileInfo(filePath, f), nil
	}
	if m.dirs[filePath] {
		return m.dirInfo(filePath), nil
	}
	return FileInfo{}, &fs.PathError{Op: "stat", Path: filePath, Err: fs.ErrNotExist}
}

// Exists returns true if the path exists.
func (m *MemFS) Exists(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	filePath = m.cleanPath(filePath)
	_, ok := m.files[filePath]
	return ok || m.dirs[filePath]
}

// IsDir returns true if the path is a directory.
func (m *MemFS) IsDir(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[m.cleanPath(filePath)]
}

// ReadDir reads the named directory.
func (m *MemFS) ReadDir(dirPath string) ([]DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dirPath = m.cleanPath(dirPath)
	if !m.dirs[dirPath] {
		return nil, &fs.PathError{Op: "readdir", Path: dirPath, Err: fs.ErrNotExist}
	}

	var entries []DirEntry
	for d := range m.dirs {
		if d != dirPath && path.Dir(d) == dirPath {
			entries = append(entries, NewDirEntry(m.dirInfo(d)))
		}
	}
	for p, f := range m.files {
		if path.Dir(p) == dirPath {
			entries = append(entries, NewDirEntry(m.fileInfo(p, f)))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// WalkDir walks the file tree rooted at root in lexical path order.
func (m *MemFS) WalkDir(root string, fn WalkDirFunc) error {
	root = m.cleanPath(root)

	type walkEntry struct {
		path string
		info FileInfo
	}

	m.mu.RLock()
	if !m.dirs[root] {
		if f, ok := m.files[root]; ok {
			info := m.fileInfo(root, f)
			m.mu.RUnlock()
			return fn(root, NewDirEntry(info), nil)
		}
		m.mu.RUnlock()
		return fn(root, nil, &fs.PathError{Op: "walkdir", Path: root, Err: fs.ErrNotExist})
	}

	var entries []walkEntry
	for d := range m.dirs {
		if d != root && m.underDir(d, root) {
			entries = append(entries, walkEntry{d, m.dirInfo(d)})
		}
	}
	for p, f := range m.files {
		if m.underDir(p, root) {
			entries = append(entries, walkEntry{p, m.fileInfo(p, f)})
		}
	}
	rootInfo := m.dirInfo(root)
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })

	if err := fn(root, NewDirEntry(rootInfo), nil); err != nil {
		if errors.Is(err, SkipDir) {
			return nil
		}
		return err
	}

	var skip string
	for _, e := range entries {
		if skip != "" && strings.HasPrefix(e.path, skip) {
			continue
		}
		if err := fn(e.path, NewDirEntry(e.info), nil); err != nil {
			if errors.Is(err, SkipDir) {
				if e.info.IsDir() {
					skip = e.path + "/"
					continue
				}
				skip = path.Dir(e.path) + "/"
				continue
			}
			return err
		}
	}
	return nil
}

// Abs returns the absolute form of the path.
func (m *MemFS) Abs(p string) (string, error) {
	return m.cleanPath(p), nil
}

func (m *MemFS) underDir(p, dir string) bool {
	if dir == "/" {
		return p != "/"
	}
	return strings.HasPrefix(p, dir+"/")
}

func (m *MemFS) fileInfo(filePath string, f *memFile) FileInfo {
	return NewFileInfo(filePath, path.Base(filePath), int64(len(f.content)), f.mode, f.modTime, false)
}

func (m *MemFS) dirInfo(dirPath string) FileInfo {
	return NewFileInfo(dirPath, path.Base(dirPath), 0, fs.ModeDir|0o755, time.Time{}, true)
}
