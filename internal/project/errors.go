package project

import "errors"

// Errors returned by the catalog.
var (
	// ErrNotDirectory indicates the project root is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrWatcherRunning indicates the catalog already has a running
	// watcher.
	ErrWatcherRunning = errors.New("watcher already running")
)
