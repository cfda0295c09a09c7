package project

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"graft/internal/project/vfs"
)

// watcher mirrors file system changes into the catalog's scanned file
// list. fsnotify reports per directory, so the whole tree is added to
// the watch set and directories created later are picked up from
// their create events.
type watcher struct {
	cat     *Catalog
	fsw     *fsnotify.Watcher
	closeCh chan struct{}
	wg      sync.WaitGroup
}

func newWatcher(cat *Catalog) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &watcher{
		cat:     cat,
		fsw:     fsw,
		closeCh: make(chan struct{}),
	}
	if err := w.addTree(cat.Root()); err != nil {
		fsw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// addTree adds root and every directory below it to the watch set,
// skipping dot directories.
func (w *watcher) addTree(root string) error {
	return w.cat.fs.WalkDir(root, func(path string, d vfs.DirEntry, err error) error {
		if err != nil {
			log.Warningf("watch: skipping %s: %s", path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return vfs.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			log.Warningf("watch: cannot watch %s: %s", path, err)
		}
		return nil
	})
}

func (w *watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Errorf("watch: %s", err)
		}
	}
}

func (w *watcher) handle(ev fsnotify.Event) {
	if strings.HasPrefix(filepath.Base(ev.Name), ".") {
		return
	}
	switch {
	case ev.Op.Has(fsnotify.Create):
		if w.cat.fs.IsDir(ev.Name) {
			// A directory moved into the tree may already hold
			// files; scan it instead of waiting for events.
			if err := w.addTree(ev.Name); err != nil {
				log.Warningf("watch: %s", err)
			}
			files, err := scanTree(context.Background(), w.cat.fs, ev.Name)
			if err != nil {
				log.Warningf("watch: scanning %s: %s", ev.Name, err)
				return
			}
			for _, f := range files {
				w.cat.addScannedFile(f)
			}
		} else {
			w.cat.addScannedFile(ev.Name)
		}
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.cat.removeScanned(ev.Name)
	}
}

func (w *watcher) stop() {
	close(w.closeCh)
	w.fsw.Close()
	w.wg.Wait()
}
