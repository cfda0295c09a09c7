package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
)

var pairCmd = &cobra.Command{
	Use:   "pair file",
	Short: "Resolve the header/source counterpart of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runPair,
}

func runPair(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		other := d.CorrespondingHeaderSource()
		if other == "" {
			return fmt.Errorf("no counterpart found for %s", d.Path())
		}
		fmt.Fprintln(cmd.OutOrStdout(), pathColor.Sprint(other))
		return nil
	})
}
