package vfs

import (
	"errors"
	"io/fs"
	"sort"
	"testing"
)

func TestMemFSReadWrite(t *testing.T) {
	m := NewMemFS()

	if err := m.WriteFile("/src/main.cpp", []byte("int main() {}\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := m.ReadFile("/src/main.cpp")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "int main() {}\n" {
		t.Errorf("unexpected content: %q", data)
	}

	// Parent directories are created implicitly.
	if !m.IsDir("/src") {
		t.Error("/src should be a directory")
	}
	if !m.Exists("/src/main.cpp") {
		t.Error("file should exist")
	}
	if m.Exists("/src/other.cpp") {
		t.Error("missing file should not exist")
	}
}

func TestMemFSReadMissing(t *testing.T) {
	m := NewMemFS()

	_, err := m.ReadFile("/nope.cpp")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
	_, err = m.Stat("/nope.cpp")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemFSStat(t *testing.T) {
	m := NewMemFS()
	if err := m.WriteFile("/a/b.h", []byte("#pragma once\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	info, err := m.Stat("/a/b.h")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Name() != "b.h" || info.IsDir() || info.Size() != 13 {
		t.Errorf("unexpected file info: name=%q dir=%v size=%d", info.Name(), info.IsDir(), info.Size())
	}

	info, err = m.Stat("/a")
	if err != nil {
		t.Fatalf("Stat dir failed: %v", err)
	}
	if !info.IsDir() {
		t.Error("/a should be a directory")
	}
}

func TestMemFSReadDir(t *testing.T) {
	m := NewMemFS()
	for _, f := range []string{"/p/z.h", "/p/a.cpp", "/p/sub/b.cpp"} {
		if err := m.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	entries, err := m.ReadDir("/p")
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	want := []string{"a.cpp", "sub", "z.h"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("expected %v, got %v", want, names)
			break
		}
	}
	if !entries[1].IsDir() {
		t.Error("sub should be a directory")
	}

	if _, err := m.ReadDir("/missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}

func TestMemFSWalkDir(t *testing.T) {
	m := NewMemFS()
	files := []string{"/p/a.cpp", "/p/a.h", "/p/sub/b.cpp", "/q/c.h"}
	for _, f := range files {
		if err := m.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	var visited []string
	err := m.WalkDir("/p", func(path string, d DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			visited = append(visited, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir failed: %v", err)
	}

	sort.Strings(visited)
	want := []string{"/p/a.cpp", "/p/a.h", "/p/sub/b.cpp"}
	if len(visited) != len(want) {
		t.Fatalf("expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("expected %v, got %v", want, visited)
			break
		}
	}
}

func TestMemFSWalkDirSkip(t *testing.T) {
	m := NewMemFS()
	for _, f := range []string{"/p/.git/objects/x", "/p/main.cpp"} {
		if err := m.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	var visited []string
	err := m.WalkDir("/p", func(path string, d DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == ".git" {
			return SkipDir
		}
		if !d.IsDir() {
			visited = append(visited, path)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir failed: %v", err)
	}
	if len(visited) != 1 || visited[0] != "/p/main.cpp" {
		t.Errorf("expected only /p/main.cpp, got %v", visited)
	}
}

func TestMemFSAbs(t *testing.T) {
	m := NewMemFS()
	got, err := m.Abs("src/../main.cpp")
	if err != nil {
		t.Fatalf("Abs failed: %v", err)
	}
	if got != "/main.cpp" {
		t.Errorf("expected /main.cpp, got %q", got)
	}
}

func TestOSFSImplementsVFS(t *testing.T) {
	var _ VFS = NewOSFS()
}
