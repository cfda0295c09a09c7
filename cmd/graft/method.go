package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
)

var methodCmd = &cobra.Command{
	Use:   "method",
	Short: "Edit class methods across header/source pairs",
}

var methodAddCmd = &cobra.Command{
	Use:   "add file class declaration",
	Short: "Add a method declaration and definition",
	Long: `Add puts the declaration into the class and the definition into the
counterpart file, or next to the class when the file has no
counterpart.

Example:
  graft method add widget.h Widget "void clear()" --body "m_items.clear();"`,
	Args: cobra.ExactArgs(3),
	RunE: runMethodAdd,
}

var methodDeleteCmd = &cobra.Command{
	Use:   "delete file method",
	Short: "Delete a method from declaration and definition",
	Long: `Delete removes the named method from the file and from its
header/source counterpart. The method name is qualified, for example
Widget::clear. Without --signature every overload goes.`,
	Args: cobra.ExactArgs(2),
	RunE: runMethodDelete,
}

func init() {
	methodAddCmd.Flags().String("access", "public", "access specifier (public|protected|private)")
	methodAddCmd.Flags().String("body", "", "definition body")
	methodDeleteCmd.Flags().String("signature", "", "parameter list selecting one overload, for example \"(int, bool)\"")
	methodCmd.AddCommand(methodAddCmd)
	methodCmd.AddCommand(methodDeleteCmd)
}

func runMethodAdd(cmd *cobra.Command, args []string) error {
	access, err := accessFlag(cmd)
	if err != nil {
		return err
	}
	body, _ := cmd.Flags().GetString("body")
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		if !d.AddMethod(cmd.Context(), args[2], args[1], access, body) {
			return fmt.Errorf("cannot add method %q to class %s", args[2], args[1])
		}
		return saveDirty(cmd, cat)
	})
}

func runMethodDelete(cmd *cobra.Command, args []string) error {
	signature, _ := cmd.Flags().GetString("signature")
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		if !d.DeleteMethod(cmd.Context(), args[1], signature) {
			return fmt.Errorf("cannot delete method %s", args[1])
		}
		return saveDirty(cmd, cat)
	})
}
