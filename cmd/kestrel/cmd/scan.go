package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <tree>",
	Short: "List a tree's rows in row id order",
	Long: `Walk a tree with a cursor and print every row.

Example:
  kestrel scan 1 --reverse`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid tree id %q: %w", args[0], err)
		}
		reverse, _ := cmd.Flags().GetBool("reverse")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := s.OpenCursor(uint32(tree))
		if err != nil {
			return fmt.Errorf("failed to open cursor: %w", err)
		}
		defer c.Close()

		move := c.Next
		if reverse {
			move = c.Prev
			if _, err := c.Last(); err != nil {
				return err
			}
		} else {
			if _, err := c.Rewind(); err != nil {
				return err
			}
		}

		rows := 0
		for {
			rec, err := c.Record()
			if err != nil {
				return err
			}
			if rec == nil {
				break
			}
			rowid, _, err := c.RowID()
			if err != nil {
				return err
			}
			fmt.Printf("%d: %s\n", rowid, formatRow(rec))
			rows++

			if _, err := move(); err != nil {
				return err
			}
		}
		fmt.Printf("%d row(s)\n", rows)
		return nil
	},
}

func init() {
	scanCmd.Flags().Bool("reverse", false, "Scan in descending row id order")
	rootCmd.AddCommand(scanCmd)
}
