package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// putCmd represents the put command
var putCmd = &cobra.Command{
	Use:   "put <tree> <rowid> <value>...",
	Short: "Write a row into a tree",
	Long: `Write a row under a row id, replacing any existing row.

Example:
  kestrel put 1 42 text:alice int:30 null`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid tree id %q: %w", args[0], err)
		}
		rowid, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid row id %q: %w", args[1], err)
		}
		rec, err := parseRow(args[2:])
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Put(uint32(tree), rowid, rec); err != nil {
			return fmt.Errorf("failed to put row: %w", err)
		}
		fmt.Printf("put row %d into tree %d\n", rowid, tree)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}
