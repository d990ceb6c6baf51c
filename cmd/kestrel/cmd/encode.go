package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestreldb/kestrel/pkg/codec"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <value>...",
	Short: "Encode a row into the record wire format",
	Long: `Encode column values into the SQLite-compatible record format and
print the result as hex.

Example:
  kestrel encode null 42 float:1.5 text:hi blob:010203`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := parseRow(args)
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(codec.Encode(rec)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}
