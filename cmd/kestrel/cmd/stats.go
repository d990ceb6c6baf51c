package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show store identity and row counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		stats, err := s.Stats()
		if err != nil {
			return fmt.Errorf("failed to gather stats: %w", err)
		}
		fmt.Printf("instance: %s\n", stats.InstanceID)
		fmt.Printf("trees:    %d\n", stats.Trees)
		fmt.Printf("rows:     %d\n", stats.Rows)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
