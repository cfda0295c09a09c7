package project

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitForFiles(t *testing.T, c *Catalog, what string, cond func([]string) bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond(c.Files()) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s, have %v", what, c.Files())
}

func containsPath(files []string, path string) bool {
	for _, f := range files {
		if f == path {
			return true
		}
	}
	return false
}

func TestWatcher_TracksCreateAndRemove(t *testing.T) {
	dir := t.TempDir()
	seed := filepath.Join(dir, "main.cpp")
	if err := os.WriteFile(seed, []byte("int main() {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(c.Close)
	if !containsPath(c.Files(), seed) {
		t.Fatalf("expected the scan to find %s, have %v", seed, c.Files())
	}
	if err := c.StartWatcher(); err != nil {
		t.Fatalf("StartWatcher failed: %v", err)
	}

	extra := filepath.Join(dir, "extra.cpp")
	if err := os.WriteFile(extra, []byte("int f() {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	waitForFiles(t, c, "extra.cpp to appear", func(files []string) bool {
		return containsPath(files, extra)
	})

	if err := os.Remove(extra); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	waitForFiles(t, c, "extra.cpp to disappear", func(files []string) bool {
		return !containsPath(files, extra)
	})
}

func TestWatcher_MovedDirectory(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(c.Close)
	if err := c.StartWatcher(); err != nil {
		t.Fatalf("StartWatcher failed: %v", err)
	}

	staging := t.TempDir()
	sub := filepath.Join(staging, "pkg")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	inner := filepath.Join(sub, "a.cpp")
	if err := os.WriteFile(inner, []byte("int a;\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	target := filepath.Join(dir, "pkg")
	if err := os.Rename(sub, target); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	waitForFiles(t, c, "the moved directory's file", func(files []string) bool {
		return containsPath(files, filepath.Join(target, "a.cpp"))
	})
}

func TestStartWatcher_Twice(t *testing.T) {
	dir := t.TempDir()
	c, err := Open(context.Background(), dir)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(c.Close)

	if err := c.StartWatcher(); err != nil {
		t.Fatalf("StartWatcher failed: %v", err)
	}
	if err := c.StartWatcher(); !errors.Is(err, ErrWatcherRunning) {
		t.Errorf("expected ErrWatcherRunning, got %v", err)
	}

	c.Close()
	if err := c.StartWatcher(); err != nil {
		t.Errorf("StartWatcher after Close failed: %v", err)
	}
}
