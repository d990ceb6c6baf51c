package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestreldb/kestrel/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long: `Write a default configuration to the config path unless one is
already present.

Example:
  kestrel init --data-dir /var/lib/kestrel`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		if config.ConfigExists(configPath) {
			return fmt.Errorf("config already exists at %s", configPath)
		}

		cfg := config.DefaultConfig()
		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}
		if err := config.SaveConfig(cfg, configPath); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("wrote config to %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
