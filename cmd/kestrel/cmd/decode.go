package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestreldb/kestrel/pkg/codec"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a wire-format record into its column values",
	Long: `Decode a hex-encoded record and print one column per line.

Example:
  kestrel decode 060006071112000000000000002a...`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}
		rec, err := codec.Decode(data)
		if err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}
		fmt.Println(formatRow(rec))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
