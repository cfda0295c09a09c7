package script

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	"graft/internal/config"
	"graft/internal/project"
)

var log = commonlog.GetLogger("graft.script")

// Report summarizes one script run.
type Report struct {
	// RunID uniquely identifies the run in logs and error messages.
	RunID string
	// Script is the name the run was started under.
	Script string
	// Saved lists the documents written back after the run.
	Saved []string
	// Dirty lists the documents a dry run would have written.
	Dirty []string
}

// Runner executes Lua scripts against a project catalog. Each run
// gets a fresh sandboxed state, and documents the script modified are
// saved when the run completes.
type Runner struct {
	cat   *project.Catalog
	store *config.Store

	// DryRun reports modified documents instead of saving them.
	DryRun bool
}

// NewRunner creates a runner over the given catalog and settings store.
func NewRunner(cat *project.Catalog, store *config.Store) *Runner {
	return &Runner{cat: cat, store: store}
}

// RunFile reads and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) (Report, error) {
	code, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("reading script: %w", err)
	}
	return r.Run(ctx, filepath.Base(path), string(code))
}

// Run executes code in a fresh state and saves the documents it
// modified. The returned report is valid even when the script errors,
// so callers can see how far it got.
func (r *Runner) Run(ctx context.Context, name, code string) (Report, error) {
	rep := Report{RunID: uuid.NewString(), Script: name}
	log.Infof("run %s: %s", rep.RunID, name)

	s := NewState()
	defer s.Close()
	s.L.SetContext(ctx)
	NewBindings(r.cat, r.store).Install(s)

	if err := s.DoString(code); err != nil {
		return rep, fmt.Errorf("run %s: %w", rep.RunID, err)
	}

	for _, d := range r.cat.Documents() {
		if !d.Dirty() {
			continue
		}
		if r.DryRun {
			rep.Dirty = append(rep.Dirty, d.Path())
			continue
		}
		if err := d.Save(); err != nil {
			return rep, fmt.Errorf("run %s: saving %s: %w", rep.RunID, d.Path(), err)
		}
		rep.Saved = append(rep.Saved, d.Path())
	}

	if r.store.Dirty() && !r.DryRun {
		if err := r.store.Save(); err != nil {
			return rep, fmt.Errorf("run %s: saving settings: %w", rep.RunID, err)
		}
	}
	return rep, nil
}
