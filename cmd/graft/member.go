package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graft/internal/cppdoc"
	"graft/internal/project"
)

var memberCmd = &cobra.Command{
	Use:   "member",
	Short: "Edit class members",
}

var memberAddCmd = &cobra.Command{
	Use:   "add file class declaration",
	Short: "Add a member variable to a class",
	Long: `Add appends a member variable to the class, creating the access
section when the class has none.

Example:
  graft member add widget.h Widget "int m_count" --access private`,
	Args: cobra.ExactArgs(3),
	RunE: runMemberAdd,
}

func init() {
	memberAddCmd.Flags().String("access", "public", "access specifier (public|protected|private)")
	memberCmd.AddCommand(memberAddCmd)
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	access, err := accessFlag(cmd)
	if err != nil {
		return err
	}
	return withDocument(cmd, args[0], func(cat *project.Catalog, d *cppdoc.Document) error {
		if !d.AddMember(cmd.Context(), args[2], args[1], access) {
			return fmt.Errorf("cannot add member %q to class %s", args[2], args[1])
		}
		return saveDirty(cmd, cat)
	})
}

func accessFlag(cmd *cobra.Command) (cppdoc.AccessSpecifier, error) {
	s, _ := cmd.Flags().GetString("access")
	return cppdoc.ParseAccessSpecifier(s)
}
