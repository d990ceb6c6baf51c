/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kestreldb/kestrel/pkg/config"
)

type contextKey string

const configKey contextKey = "config"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "kestrel",
	Short: "Kestrel - Embeddable record storage engine",
	Long: `Kestrel is an embeddable storage engine speaking the SQLite record
format, with ordered trees of rows addressed by cursors.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		cfg := config.DefaultConfig()
		if config.ConfigExists(configPath) {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			cfg = loaded
		}
		if dataDir, _ := cmd.Flags().GetString("data-dir"); dataDir != "" {
			cfg.DataDir = dataDir
		}
		cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// configFromContext returns the configuration resolved by the root command.
func configFromContext(cmd *cobra.Command) (*config.Config, error) {
	cfg, ok := cmd.Context().Value(configKey).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("config not found in context")
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().String("config", config.GetDefaultConfigPath(), "Path to the config file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory for the store (overrides config)")
}
