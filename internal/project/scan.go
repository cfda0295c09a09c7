package project

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"graft/internal/project/vfs"
)

// scanWorkers bounds the number of directories listed concurrently.
const scanWorkers = 8

// scanTree lists every regular file under root in sorted order.
// Subdirectories are walked concurrently. Entries whose name starts
// with a dot are skipped, and a directory that cannot be listed is
// logged and dropped rather than failing the whole scan.
func scanTree(ctx context.Context, fsys vfs.VFS, root string) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scanWorkers)

	var (
		mu    sync.Mutex
		files []string
	)

	var walk func(dir string) error
	walk = func(dir string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries, err := fsys.ReadDir(dir)
		if err != nil {
			log.Warningf("scan: skipping %s: %s", dir, err)
			return nil
		}
		for _, e := range entries {
			if strings.HasPrefix(e.Name(), ".") {
				continue
			}
			sub := filepath.Join(dir, e.Name())
			if e.IsDir() {
				// g.Go from inside a worker can deadlock the pool
				// once the limit is reached, so walk synchronously
				// when no slot is free.
				if !g.TryGo(func() error { return walk(sub) }) {
					if err := walk(sub); err != nil {
						return err
					}
				}
				continue
			}
			mu.Lock()
			files = append(files, sub)
			mu.Unlock()
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
