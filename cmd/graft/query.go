package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
)

var queryCmd = &cobra.Command{
	Use:   "query file pattern",
	Short: "Run a tree-sitter query against a file",
	Long: `Query matches a tree-sitter query pattern against the parsed file and
prints every match with its captures, one match per line.

Example:
  graft query widget.cpp '(function_definition declarator: (_) @decl)'`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		matches, err := d.Query(cmd.Context(), args[1])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, m := range matches {
			fmt.Fprint(out, pathColor.Sprint(position(d, m.Span().Start)))
			for _, c := range m.Captures {
				fmt.Fprintf(out, "  @%s=%s", c.Name, matchColor.Sprint(c.Text))
			}
			fmt.Fprintln(out)
		}
		if len(matches) == 0 {
			fmt.Fprintln(out, "no matches")
		}
		return nil
	})
}
