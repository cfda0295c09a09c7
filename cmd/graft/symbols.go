package main

import (
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
)

var symbolsCmd = &cobra.Command{
	Use:   "symbols file",
	Short: "List the classes, functions, methods and members of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbols,
}

func runSymbols(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		syms, err := d.Symbols(cmd.Context())
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Name", "Kind", "Position", "Signature"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetColumnAlignment([]int{
			tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
			tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
		})
		for _, s := range syms {
			table.Append([]string{s.Name, s.Kind.String(), position(d, s.Range.Start), s.Signature})
		}
		table.Render()
		return nil
	})
}
