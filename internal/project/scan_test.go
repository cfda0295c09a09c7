package project

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"graft/internal/project/vfs"
)

func TestScanTree_SortedAndFiltered(t *testing.T) {
	mem := vfs.NewMemFS()
	for _, f := range []string{
		"/p/b.cpp",
		"/p/a.cpp",
		"/p/sub/deep/x.h",
		"/p/.git/config",
		"/p/src/.hidden.cpp",
	} {
		if err := mem.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	files, err := scanTree(context.Background(), mem, "/p")
	if err != nil {
		t.Fatalf("scanTree failed: %v", err)
	}
	want := []string{"/p/a.cpp", "/p/b.cpp", "/p/sub/deep/x.h"}
	if len(files) != len(want) {
		t.Fatalf("expected %v, got %v", want, files)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("expected %v, got %v", want, files)
			break
		}
	}
}

func TestScanTree_WideTree(t *testing.T) {
	mem := vfs.NewMemFS()
	count := 0
	for i := 0; i < 40; i++ {
		for j := 0; j < 3; j++ {
			path := fmt.Sprintf("/p/dir%02d/file%d.cpp", i, j)
			if err := mem.WriteFile(path, []byte("x"), 0o644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			count++
		}
	}

	files, err := scanTree(context.Background(), mem, "/p")
	if err != nil {
		t.Fatalf("scanTree failed: %v", err)
	}
	if len(files) != count {
		t.Fatalf("expected %d files, got %d", count, len(files))
	}
	if files[0] != "/p/dir00/file0.cpp" || files[count-1] != "/p/dir39/file2.cpp" {
		t.Errorf("expected sorted output, got first %q and last %q", files[0], files[count-1])
	}
}

func TestScanTree_Cancelled(t *testing.T) {
	mem := vfs.NewMemFS()
	if err := mem.WriteFile("/p/a.cpp", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := scanTree(ctx, mem, "/p"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestScanTree_MissingRoot(t *testing.T) {
	mem := vfs.NewMemFS()
	files, err := scanTree(context.Background(), mem, "/nope")
	if err != nil {
		t.Fatalf("scanTree failed: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected no files, got %v", files)
	}
}
