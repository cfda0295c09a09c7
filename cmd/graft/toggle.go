package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
	"graft/internal/text"
)

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle comments and preprocessor sections",
}

var toggleCommentCmd = &cobra.Command{
	Use:   "comment file lines",
	Short: "Comment out lines",
	Long: `Comment puts "//" in front of the given lines. Lines are 1-based,
either a single line or an inclusive range:

  graft toggle comment widget.cpp 12
  graft toggle comment widget.cpp 12:20`,
	Args: cobra.ExactArgs(2),
	RunE: runToggleComment,
}

var toggleSectionCmd = &cobra.Command{
	Use:   "section file lines",
	Short: "Toggle a preprocessor section",
	Long: `Section fences code with the configured preprocessor tag. With a
single line the body of the function containing that line is toggled,
and toggling again removes the scaffolding. With a line range the
lines are wrapped in #ifdef/#endif.`,
	Args: cobra.ExactArgs(2),
	RunE: runToggleSection,
}

func init() {
	toggleCmd.AddCommand(toggleCommentCmd)
	toggleCmd.AddCommand(toggleSectionCmd)
}

func runToggleComment(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		a, b, err := parseLineSpec(args[1], d.Buffer().LineCount())
		if err != nil {
			return err
		}
		d.ToggleComment(lineSelection(d.Buffer(), a, b))
		if !d.Dirty() {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to comment")
			return nil
		}
		return saveDirty(cmd, cat)
	})
}

func runToggleSection(cmd *cobra.Command, args []string) error {
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		a, b, err := parseLineSpec(args[1], d.Buffer().LineCount())
		if err != nil {
			return err
		}
		sel := text.NewCursor(d.Buffer().LineStartOffset(a - 1))
		if b != a {
			sel = lineSelection(d.Buffer(), a, b)
		}
		d.ToggleSection(cmd.Context(), sel)
		if !d.Dirty() {
			return fmt.Errorf("no function found at line %d", a)
		}
		return saveDirty(cmd, cat)
	})
}
