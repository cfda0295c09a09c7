// Command graft edits C and C++ sources structurally: includes,
// class members and methods, comment and preprocessor toggling, block
// navigation and Lua-scripted batch edits.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var (
	projectFlag  string
	configFlag   string
	settingsFlag string
	verboseFlag  int
	dryRunFlag   bool
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "Structural editing for C/C++ sources",
	Long: `Graft edits C and C++ sources through their syntax tree instead of
plain text: it inserts includes and forward declarations, adds and
deletes class members and methods across header/source pairs, toggles
comments and preprocessor sections, and runs Lua scripts that batch
such edits over a whole project.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		commonlog.Configure(verboseFlag, nil)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "C", ".", "project root directory")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "configuration file (default <project>/graft.toml)")
	rootCmd.PersistentFlags().StringVar(&settingsFlag, "settings", "", "settings file (default <project>/graft.json)")
	rootCmd.PersistentFlags().CountVarP(&verboseFlag, "verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&dryRunFlag, "dry-run", "n", false, "report edits instead of writing files")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(symbolsCmd)
	rootCmd.AddCommand(includesCmd)
	rootCmd.AddCommand(includeCmd)
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(methodCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(blockCmd)
	rootCmd.AddCommand(pairCmd)
	rootCmd.AddCommand(filesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
