package project

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"

	"graft/internal/config"
	"graft/internal/cppdoc"
	"graft/internal/project/vfs"
)

var log = commonlog.GetLogger("graft.project")

// Catalog tracks the files under one project root and the documents
// open on them. Documents opened through the catalog share its
// configuration, file system and header/source pair cache, so a
// cross file operation started in one document finds its counterpart
// through the same catalog.
//
// Catalog implements cppdoc.Workspace. It is safe for concurrent use.
type Catalog struct {
	root string
	fs   vfs.VFS
	cfg  *config.Config

	mu    sync.RWMutex
	files []string
	docs  map[string]*cppdoc.Document
	pairs *cppdoc.PairCache
	watch *watcher
}

var _ cppdoc.Workspace = (*Catalog)(nil)

// Option configures a Catalog.
type Option func(*Catalog)

// WithFS sets the file system the catalog scans and the documents
// load from.
func WithFS(fsys vfs.VFS) Option {
	return func(c *Catalog) { c.fs = fsys }
}

// WithConfig sets the tool configuration handed to every document.
func WithConfig(cfg *config.Config) Option {
	return func(c *Catalog) { c.cfg = cfg }
}

// Open scans the tree rooted at root and returns its catalog.
func Open(ctx context.Context, root string, opts ...Option) (*Catalog, error) {
	c := &Catalog{
		fs:    vfs.NewOSFS(),
		cfg:   config.Default(),
		docs:  make(map[string]*cppdoc.Document),
		pairs: cppdoc.NewPairCache(),
	}
	for _, opt := range opts {
		opt(c)
	}

	abs, err := c.fs.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("opening project %s: %w", root, err)
	}
	if !c.fs.IsDir(abs) {
		return nil, fmt.Errorf("opening project %s: %w", abs, ErrNotDirectory)
	}
	c.root = abs

	if err := c.Rescan(ctx); err != nil {
		return nil, err
	}
	log.Infof("opened project %s with %d files", c.root, len(c.files))
	return c, nil
}

// Rescan walks the project tree again and replaces the scanned file
// list. Open documents are kept.
func (c *Catalog) Rescan(ctx context.Context) error {
	files, err := scanTree(ctx, c.fs, c.root)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", c.root, err)
	}
	c.mu.Lock()
	c.files = files
	c.mu.Unlock()
	return nil
}

// Root returns the project root directory.
func (c *Catalog) Root() string { return c.root }

// Files returns the scanned files in sorted order.
func (c *Catalog) Files() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.files))
	copy(out, c.files)
	return out
}

// FilesWithSuffixes returns the scanned files whose suffix, compared
// without the dot and case insensitively, is one of the given ones.
func (c *Catalog) FilesWithSuffixes(suffixes []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for _, f := range c.files {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(f), "."))
		for _, s := range suffixes {
			if ext == strings.ToLower(s) {
				out = append(out, f)
				break
			}
		}
	}
	return out
}

// Open returns the document for path, loading it if it is not open
// yet. The same path always yields the same document instance.
func (c *Catalog) Open(path string) (*cppdoc.Document, error) {
	abs, err := c.fs.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if d, ok := c.docs[abs]; ok {
		return d, nil
	}
	d, err := cppdoc.Load(abs,
		cppdoc.WithFS(c.fs),
		cppdoc.WithConfig(c.cfg),
		cppdoc.WithPairCache(c.pairs),
		cppdoc.WithWorkspace(c),
	)
	if err != nil {
		return nil, err
	}
	c.docs[abs] = d
	log.Debugf("opened %s as document %s", abs, d.ID())
	return d, nil
}

// Get returns the already open document for path, or nil.
func (c *Catalog) Get(path string) *cppdoc.Document {
	abs, err := c.fs.Abs(path)
	if err != nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.docs[abs]
}

// Documents returns the open documents sorted by path.
func (c *Catalog) Documents() []*cppdoc.Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*cppdoc.Document, 0, len(c.docs))
	for _, d := range c.docs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path() < out[j].Path() })
	return out
}

// StartWatcher begins mirroring file system changes into the scanned
// file list, so long running sessions see created and removed files
// without a rescan. Watching is meaningful only on the operating
// system file system.
func (c *Catalog) StartWatcher() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.watch != nil {
		return ErrWatcherRunning
	}
	w, err := newWatcher(c)
	if err != nil {
		return fmt.Errorf("watching %s: %w", c.root, err)
	}
	c.watch = w
	return nil
}

// Close stops the watcher and releases every open document.
func (c *Catalog) Close() {
	c.mu.Lock()
	w := c.watch
	c.watch = nil
	docs := make([]*cppdoc.Document, 0, len(c.docs))
	for _, d := range c.docs {
		docs = append(docs, d)
	}
	c.docs = make(map[string]*cppdoc.Document)
	c.mu.Unlock()

	if w != nil {
		w.stop()
	}
	for _, d := range docs {
		d.Close()
	}
}

// addScannedFile inserts a path into the sorted file list.
func (c *Catalog) addScannedFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := sort.SearchStrings(c.files, path)
	if i < len(c.files) && c.files[i] == path {
		return
	}
	c.files = append(c.files, "")
	copy(c.files[i+1:], c.files[i:])
	c.files[i] = path
	log.Debugf("watch: added %s", path)
}

// removeScanned drops a path, and everything under it when it was a
// directory, from the file list.
func (c *Catalog) removeScanned(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := path + string(filepath.Separator)
	kept := c.files[:0]
	for _, f := range c.files {
		if f == path || strings.HasPrefix(f, prefix) {
			log.Debugf("watch: removed %s", f)
			continue
		}
		kept = append(kept, f)
	}
	c.files = kept
}
