package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	ConfigDirName  = ".shelp"
	ConfigFileName = "config.json"
)

// Config is the single piece of durable state: the model the operator picked
// during setup.
type Config struct {
	Model string `json:"model"`
}

// FileStore adapts the package-level Load/Save functions to an interface
// value for callers that take a store.
type FileStore struct{}

func (FileStore) Load() (*Config, error) { return Load() }
func (FileStore) Save(cfg *Config) error { return Save(cfg) }

// GetConfigDir returns the path to the config directory.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ConfigDirName), nil
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, ConfigFileName), nil
}

// Load reads the configuration from disk. A missing, unreadable, or malformed
// file means "no preference yet" and returns (nil, nil) so the caller can
// fall into setup; it is not an error condition.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, nil
	}

	if cfg.Model == "" {
		return nil, nil
	}

	return &cfg, nil
}

// Save writes the configuration to disk, creating the config directory if
// needed. Unlike Load, failures propagate: this runs during a user-initiated
// setup, and a silently lost preference would be confusing.
func Save(cfg *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath, err := GetConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
