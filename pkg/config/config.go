package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the Kestrel configuration
type Config struct {
	DataDir string  `yaml:"data_dir"`
	Storage Storage `yaml:"storage"`
	Logging Logging `yaml:"logging"`
}

// Storage contains record store and tree configuration
type Storage struct {
	Sync      bool `yaml:"sync"`
	TreeOrder int  `yaml:"tree_order"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Storage: Storage{
			Sync:      true,
			TreeOrder: 64,
		},
		Logging: Logging{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// SaveConfig saves the configuration to the specified path
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetDefaultConfigPath returns the per-user default config location
func GetDefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "kestrel.yaml"
	}
	return filepath.Join(home, ".kestrel", "config.yaml")
}

// ConfigExists checks whether a config file is present at the path
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return err == nil
}

// Validate checks the configuration for values the engine cannot run with
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	if c.Storage.TreeOrder != 0 && c.Storage.TreeOrder < 3 {
		return fmt.Errorf("storage.tree_order must be at least 3, got %d", c.Storage.TreeOrder)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging.level %q", c.Logging.Level)
	}
	return nil
}
