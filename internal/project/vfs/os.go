package vfs

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFS implements VFS using the operating system's file system.
type OSFS struct{}

// NewOSFS creates a new OS file system.
func NewOSFS() *OSFS {
	return &OSFS{}
}

var _ VFS = (*OSFS)(nil)

// Open opens a file for reading.
func (f *OSFS) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

// ReadFile reads the entire file content.
func (f *OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to a file, creating it if necessary.
func (f *OSFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// Stat returns file information.
func (f *OSFS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return osFileInfoToVFS(path, info), nil
}

// Exists returns true if the path exists.
func (f *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	// Permission errors mean we cannot determine existence, but the
	// path may exist.
	return !errors.Is(err, os.ErrNotExist)
}

// IsDir returns true if the path is a directory.
func (f *OSFS) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReadDir reads the named directory. Entries whose metadata cannot be
// read, for example files deleted mid-listing, are skipped.
func (f *OSFS) ReadDir(path string) ([]DirEntry, error) {
	osEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	entries := make([]DirEntry, 0, len(osEntries))
	for _, e := range osEntries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		entries = append(entries, NewDirEntry(osFileInfoToVFS(filepath.Join(path, e.Name()), info)))
	}
	return entries, nil
}

// WalkDir walks the file tree rooted at root.
func (f *OSFS) WalkDir(root string, fn WalkDirFunc) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fn(path, nil, err)
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			return fn(path, nil, infoErr)
		}
		return fn(path, NewDirEntry(osFileInfoToVFS(path, info)), nil)
	})
}

// Abs returns the absolute path.
func (f *OSFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func osFileInfoToVFS(path string, info os.FileInfo) FileInfo {
	return NewFileInfo(
		path,
		info.Name(),
		info.Size(),
		info.Mode(),
		info.ModTime(),
		info.IsDir(),
	)
}
