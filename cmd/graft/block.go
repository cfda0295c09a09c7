package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
	"graft/internal/text"
)

var blockCmd = &cobra.Command{
	Use:   "block",
	Short: "Probe delimiter block boundaries",
	Long: `Block reports where the {}, () or [] block enclosing a byte offset
starts or ends, as an offset and a 1-based line:column position.`,
}

var blockStartCmd = &cobra.Command{
	Use:   "start file offset",
	Short: "Find the start of the enclosing block",
	Args:  cobra.ExactArgs(2),
	RunE:  runBlockStart,
}

var blockEndCmd = &cobra.Command{
	Use:   "end file offset",
	Short: "Find the end of the enclosing block",
	Args:  cobra.ExactArgs(2),
	RunE:  runBlockEnd,
}

func init() {
	blockStartCmd.Flags().Int("count", 1, "number of block levels to skip outward")
	blockEndCmd.Flags().Int("count", 1, "number of block levels to skip outward")
	blockCmd.AddCommand(blockStartCmd)
	blockCmd.AddCommand(blockEndCmd)
}

func runBlockStart(cmd *cobra.Command, args []string) error {
	return probeBlock(cmd, args, (*cppdoc.Document).GotoBlockStart)
}

func runBlockEnd(cmd *cobra.Command, args []string) error {
	return probeBlock(cmd, args, (*cppdoc.Document).GotoBlockEnd)
}

func probeBlock(cmd *cobra.Command, args []string, move func(*cppdoc.Document, text.ByteOffset, int) text.ByteOffset) error {
	offset, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid offset %q", args[1])
	}
	count, _ := cmd.Flags().GetInt("count")
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		pos := move(d, offset, count)
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", pos, pathColor.Sprint(position(d, pos)))
		return nil
	})
}
