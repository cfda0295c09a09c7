// Package vfs provides a virtual file system abstraction.
//
// The VFS interface allows swapping the underlying file system, so the
// project catalog and the documents can be tested against an in-memory
// file system instead of real directories.
package vfs

import (
	"io"
	"io/fs"
	"time"
)

// VFS is a virtual file system abstraction.
type VFS interface {
	// Open opens a file for reading.
	Open(path string) (io.ReadCloser, error)

	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// Stat returns file information.
	Stat(path string) (FileInfo, error)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// IsDir returns true if the path is a directory.
	IsDir(path string) bool

	// ReadDir reads the named directory and returns its entries
	// sorted by name.
	ReadDir(path string) ([]DirEntry, error)

	// WalkDir walks the file tree rooted at root.
	WalkDir(root string, fn WalkDirFunc) error

	// Abs returns the absolute path.
	Abs(path string) (string, error)
}

// FileInfo describes a file or directory.
type FileInfo struct {
	path    string
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

// NewFileInfo creates a FileInfo from the given parameters.
func NewFileInfo(path, name string, size int64, mode fs.FileMode, modTime time.Time, isDir bool) FileInfo {
	return FileInfo{
		path:    path,
		name:    name,
		size:    size,
		mode:    mode,
		modTime: modTime,
		isDir:   isDir,
	}
}

// Path returns the full path.
func (fi FileInfo) Path() string { return fi.path }

// Name returns the base name.
func (fi FileInfo) Name() string { return fi.name }

// Size returns the file size in bytes.
func (fi FileInfo) Size() int64 { return fi.size }

// Mode returns the file mode.
func (fi FileInfo) Mode() fs.FileMode { return fi.mode }

// ModTime returns the modification time.
func (fi FileInfo) ModTime() time.Time { return fi.modTime }

// IsDir returns true if this is a directory.
func (fi FileInfo) IsDir() bool { return fi.isDir }

// IsRegular returns true if this is a regular file.
func (fi FileInfo) IsRegular() bool { return fi.mode.IsRegular() }

// WalkDirFunc is the type of function called by WalkDir.
type WalkDirFunc func(path string, d DirEntry, err error) error

// DirEntry is the interface for directory entries.
type DirEntry interface {
	// Name returns the name of the file or directory.
	Name() string

	// IsDir returns true if this is a directory.
	IsDir() bool

	// Info returns the FileInfo for this entry.
	Info() (FileInfo, error)
}

type dirEntry struct {
	info FileInfo
}

// NewDirEntry creates a DirEntry from FileInfo.
func NewDirEntry(info FileInfo) DirEntry {
	return &dirEntry{info: info}
}

func (d *dirEntry) Name() string            { return d.info.Name() }
func (d *dirEntry) IsDir() bool             { return d.info.IsDir() }
func (d *dirEntry) Info() (FileInfo, error) { return d.info, nil }

// SkipDir is used as a return value from WalkDirFunc to indicate that
// the directory named in the call should be skipped.
var SkipDir = fs.SkipDir
