package main

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files [suffix...]",
	Short: "List the project files",
	Long: `Files lists the scanned project tree. With suffix arguments only
files with one of those suffixes are listed:

  graft files
  graft files h hpp`,
	RunE: runFiles,
}

func runFiles(cmd *cobra.Command, args []string) error {
	cat, err := openProject(cmd)
	if err != nil {
		return err
	}
	defer cat.Close()

	files := cat.Files()
	if len(args) > 0 {
		files = cat.FilesWithSuffixes(args)
	}

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Path"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT})
	for _, f := range files {
		table.Append([]string{f})
	}
	table.SetFooter([]string{fmt.Sprintf("Total %d", len(files))})
	table.Render()
	return nil
}
