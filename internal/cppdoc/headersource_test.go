package cppdoc

import (
	"errors"
	"testing"

	"graft/internal/project/vfs"
)

func TestPairCache_PutGet(t *testing.T) {
	pc := NewPairCache()
	if _, ok := pc.Get("/src/a.cpp"); ok {
		t.Error("expected a miss on an empty cache")
	}
	pc.Put("/src/a.cpp", "/src/a.h")
	if got, ok := pc.Get("/src/a.cpp"); !ok || got != "/src/a.h" {
		t.Errorf("expected /src/a.h, got %q (ok=%v)", got, ok)
	}
	if got, ok := pc.Get("/src/a.h"); !ok || got != "/src/a.cpp" {
		t.Errorf("expected the reverse mapping /src/a.cpp, got %q (ok=%v)", got, ok)
	}
	if pc.Len() != 2 {
		t.Errorf("expected 2 cache entries, got %d", pc.Len())
	}
}

func seedFiles(t *testing.T, mem *vfs.MemFS, paths ...string) {
	t.Helper()
	for _, p := range paths {
		if err := mem.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", p, err)
		}
	}
}

func TestCorrespondingHeaderSource_SameDir(t *testing.T) {
	mem := vfs.NewMemFS()
	seedFiles(t, mem, "/src/widget.cpp", "/src/widget.h")
	pc := NewPairCache()
	d := newTestDoc(t, "/src/widget.cpp", "", WithFS(mem), WithPairCache(pc))

	if got := d.CorrespondingHeaderSource(); got != "/src/widget.h" {
		t.Errorf("expected /src/widget.h, got %q", got)
	}
	if got, ok := pc.Get("/src/widget.h"); !ok || got != "/src/widget.cpp" {
		t.Errorf("expected the pair to be cached both ways, got %q (ok=%v)", got, ok)
	}
}

func TestCorrespondingHeaderSource_FromHeader(t *testing.T) {
	mem := vfs.NewMemFS()
	seedFiles(t, mem, "/src/widget.cpp", "/src/widget.h")
	d := newTestDoc(t, "/src/widget.h", "", WithFS(mem), WithPairCache(NewPairCache()))

	if got := d.CorrespondingHeaderSource(); got != "/src/widget.cpp" {
		t.Errorf("expected /src/widget.cpp, got %q", got)
	}
}

func TestCorrespondingHeaderSource_ProjectWide(t *testing.T) {
	ws := &fakeWorkspace{
		root:  "/proj",
		files: []string{"/proj/include/widget.h", "/proj/include/other.h"},
	}
	d := newTestDoc(t, "/proj/src/widget.cpp", "",
		WithFS(vfs.NewMemFS()), WithWorkspace(ws), WithPairCache(NewPairCache()))

	if got := d.CorrespondingHeaderSource(); got != "/proj/include/widget.h" {
		t.Errorf("expected /proj/include/widget.h, got %q", got)
	}
	if ws.scans != 1 {
		t.Fatalf("expected one workspace scan, got %d", ws.scans)
	}
	if got := d.CorrespondingHeaderSource(); got != "/proj/include/widget.h" {
		t.Errorf("expected the cached path, got %q", got)
	}
	if ws.scans != 1 {
		t.Errorf("expected the second lookup to hit the cache, got %d scans", ws.scans)
	}
}

func TestCorrespondingHeaderSource_PicksNearest(t *testing.T) {
	ws := &fakeWorkspace{
		root: "/proj",
		files: []string{
			"/proj/other/widget.h",
			"/proj/app/include/widget.h",
		},
	}
	d := newTestDoc(t, "/proj/app/src/widget.cpp", "",
		WithFS(vfs.NewMemFS()), WithWorkspace(ws), WithPairCache(NewPairCache()))

	if got := d.CorrespondingHeaderSource(); got != "/proj/app/include/widget.h" {
		t.Errorf("expected the header sharing the longest path prefix, got %q", got)
	}
}

func TestCorrespondingHeaderSource_NoCounterpart(t *testing.T) {
	d := newTestDoc(t, "/src/lonely.cpp", "", WithFS(vfs.NewMemFS()),
		WithWorkspace(&fakeWorkspace{root: "/src"}), WithPairCache(NewPairCache()))

	if got := d.CorrespondingHeaderSource(); got != "" {
		t.Errorf("expected no counterpart, got %q", got)
	}
}

func TestOpenHeaderSource_OpensViaWorkspace(t *testing.T) {
	mem := vfs.NewMemFS()
	seedFiles(t, mem, "/src/widget.cpp", "/src/widget.h")
	header := newTestDoc(t, "/src/widget.h", "", WithFS(mem))
	ws := &fakeWorkspace{root: "/src", docs: map[string]*Document{"/src/widget.h": header}}
	d := newTestDoc(t, "/src/widget.cpp", "", WithFS(mem),
		WithWorkspace(ws), WithPairCache(NewPairCache()))

	got, err := d.OpenHeaderSource()
	if err != nil {
		t.Fatalf("OpenHeaderSource failed: %v", err)
	}
	if got != header {
		t.Error("expected the workspace document for /src/widget.h")
	}
}

func TestOpenHeaderSource_NoWorkspace(t *testing.T) {
	mem := vfs.NewMemFS()
	seedFiles(t, mem, "/src/widget.cpp", "/src/widget.h")
	d := newTestDoc(t, "/src/widget.cpp", "", WithFS(mem), WithPairCache(NewPairCache()))

	if _, err := d.OpenHeaderSource(); !errors.Is(err, ErrNoWorkspace) {
		t.Errorf("expected ErrNoWorkspace, got %v", err)
	}
}

func TestOpenHeaderSource_NoCounterpart(t *testing.T) {
	d := newTestDoc(t, "/src/lonely.cpp", "", WithFS(vfs.NewMemFS()), WithPairCache(NewPairCache()))

	got, err := d.OpenHeaderSource()
	if err != nil {
		t.Fatalf("OpenHeaderSource failed: %v", err)
	}
	if got != nil {
		t.Error("expected nil for a document without a counterpart")
	}
}
