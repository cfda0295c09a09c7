package main

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
)

var includesCmd = &cobra.Command{
	Use:   "includes file",
	Short: "List the #include directives of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncludes,
}

var includeCmd = &cobra.Command{
	Use:   "include",
	Short: "Add or remove #include directives",
}

var includeAddCmd = &cobra.Command{
	Use:   "add file include",
	Short: "Add an #include directive",
	Long: `Add inserts an #include directive, joining the include block with the
same delimiter style. The argument carries its delimiters, for example
'<vector>' or '"myclass.h"'. Adding an already included file changes
nothing.`,
	Args: cobra.ExactArgs(2),
	RunE: runIncludeAdd,
}

var includeRemoveCmd = &cobra.Command{
	Use:   "remove file include",
	Short: "Remove an #include directive",
	Args:  cobra.ExactArgs(2),
	RunE:  runIncludeRemove,
}

func init() {
	includeAddCmd.Flags().Bool("new-group", false, "start a new include block")
	includeCmd.AddCommand(includeAddCmd)
	includeCmd.AddCommand(includeRemoveCmd)
}

func runIncludes(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.SetHeader([]string{"Line", "Include"})
		table.SetBorder(false)
		table.SetCenterSeparator("")
		table.SetColumnAlignment([]int{tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})
		for _, inc := range d.Includes() {
			table.Append([]string{strconv.Itoa(inc.Line + 1), inc.Name})
		}
		table.Render()
		return nil
	})
}

func runIncludeAdd(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		newGroup, _ := cmd.Flags().GetBool("new-group")
		if !d.InsertInclude(args[1], newGroup) {
			return fmt.Errorf("cannot insert include %s", args[1])
		}
		return saveDirty(cmd, cat)
	})
}

func runIncludeRemove(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		if !d.RemoveInclude(args[1]) {
			return fmt.Errorf("cannot remove include %s", args[1])
		}
		return saveDirty(cmd, cat)
	})
}
