package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// treeCmd groups tree management commands
var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Manage trees",
}

// treeCreateCmd represents the tree create command
var treeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision a fresh tree",
	Long: `Provision a fresh tree and print its identifier.

Example:
  kestrel tree create`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		tree, err := s.CreateTree()
		if err != nil {
			return fmt.Errorf("failed to create tree: %w", err)
		}
		fmt.Println(tree)
		return nil
	},
}

func init() {
	treeCmd.AddCommand(treeCreateCmd)
	rootCmd.AddCommand(treeCmd)
}
