package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graft/internal/config"
	"graft/internal/script"
)

var runCmd = &cobra.Command{
	Use:   "run script.lua",
	Short: "Run a Lua script against the project",
	Long: `Run executes a Lua script with the graft module preloaded. The script
can open project files, edit them and stash values in the settings
store; modified documents are written back when the script finishes.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Bool("watch", false, "watch the project tree while the script runs")
}

func runRun(cmd *cobra.Command, args []string) error {
	cat, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	if watch, _ := cmd.Flags().GetBool("watch"); watch {
		if err := cat.StartWatcher(); err != nil {
			return err
		}
	}

	store, err := config.NewStore(settingsPath())
	if err != nil {
		return err
	}

	r := script.NewRunner(cat, store)
	r.DryRun = dryRunFlag
	rep, err := r.RunFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	for _, p := range rep.Saved {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", p)
	}
	for _, p := range rep.Dirty {
		warnColor.Fprintf(cmd.OutOrStdout(), "would write %s\n", p)
	}
	return nil
}
