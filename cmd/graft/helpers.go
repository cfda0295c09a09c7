package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"graft/internal/config"
	"graft/internal/cppdoc"
	"graft/internal/project"
	"graft/internal/text"
)

var (
	pathColor  = color.New(color.FgCyan)
	matchColor = color.New(color.FgGreen, color.Bold)
	warnColor  = color.New(color.FgYellow)
)

// levelVerbosity maps the configured log level to a commonlog
// verbosity. A --verbose count above zero overrides it.
func levelVerbosity(level string) int {
	switch level {
	case "error", "warning":
		return 0
	case "debug":
		return 2
	case "trace":
		return 3
	default:
		return 1
	}
}

func configPath() string {
	if configFlag != "" {
		return configFlag
	}
	return filepath.Join(projectFlag, "graft.toml")
}

func settingsPath() string {
	if settingsFlag != "" {
		return settingsFlag
	}
	return filepath.Join(projectFlag, "graft.json")
}

// openProject loads the configuration and scans the project root.
func openProject(cmd *cobra.Command) (*project.Catalog, error) {
	cfg, err := config.NewLoader(configPath()).Load()
	if err != nil {
		return nil, err
	}
	if verboseFlag == 0 {
		commonlog.Configure(levelVerbosity(cfg.Logging.Level), nil)
	}
	return project.Open(cmd.Context(), projectFlag, project.WithConfig(cfg))
}

// withDocument opens path through a fresh catalog and hands both to
// fn, closing the catalog afterwards.
func withDocument(cmd *cobra.Command, path string, fn func(*project.Catalog, *cppdoc.Document) error) error {
	cat, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()
	d, err := cat.Open(path)
	if err != nil {
		return err
	}
	return fn(cat, d)
}

// saveDirty writes every modified document back, or lists what a dry
// run would have written.
func saveDirty(cmd *cobra.Command, cat *project.Catalog) error {
	for _, d := range cat.Documents() {
		if !d.Dirty() {
			continue
		}
		if dryRunFlag {
			warnColor.Fprintf(cmd.OutOrStdout(), "would write %s\n", d.Path())
			continue
		}
		if err := d.Save(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", d.Path())
	}
	return nil
}

// position renders an offset as 1-based line:column.
func position(d *cppdoc.Document, off text.ByteOffset) string {
	pt := d.Buffer().OffsetToPoint(off)
	return fmt.Sprintf("%d:%d", pt.Line+1, pt.Column+1)
}

// parseLineSpec reads a 1-based line spec, either "7" or "3:9", and
// returns the inclusive line pair.
func parseLineSpec(spec string, lineCount int) (int, int, error) {
	first, second, ranged := strings.Cut(spec, ":")
	a, err := strconv.Atoi(first)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid line spec %q", spec)
	}
	b := a
	if ranged {
		if b, err = strconv.Atoi(second); err != nil {
			return 0, 0, fmt.Errorf("invalid line spec %q", spec)
		}
	}
	if a < 1 || b < a || b > lineCount {
		return 0, 0, fmt.Errorf("line spec %q outside 1..%d", spec, lineCount)
	}
	return a, b, nil
}

// lineSelection builds a selection covering whole lines a..b, 1-based
// and inclusive.
func lineSelection(buf *text.Buffer, a, b int) text.Selection {
	start := buf.LineStartOffset(a - 1)
	end := buf.LineStartOffset(b)
	return text.NewSelection(start, end)
}
