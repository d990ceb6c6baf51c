package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <tree> <rowid>",
	Short: "Read one row from a tree",
	Long: `Read the row stored under a row id.

Example:
  kestrel get 1 42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid tree id %q: %w", args[0], err)
		}
		rowid, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid row id %q: %w", args[1], err)
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.Get(uint32(tree), rowid)
		if err != nil {
			return fmt.Errorf("failed to get row: %w", err)
		}
		fmt.Println(formatRow(rec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)
}
