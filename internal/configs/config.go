package configs

import (
	"fmt"
	"os"
)

// Config is the user-level envault configuration stored in config.toml.
// All fields are optional; zero values fall back to built-in defaults.
type Config struct {
	// KeyPath overrides the default key file location.
	KeyPath string `toml:"key_path"`

	// EnvFile overrides the default env file location.
	EnvFile string `toml:"env_file"`
}

// LoadConfig loads config.toml, returning a zero config if the file does
// not exist.
func LoadConfig() (*Config, error) {
	settings, err := Settings()
	if err != nil {
		return nil, err
	}

	config := &Config{}
	if _, err := os.Stat(settings.ConfigFile); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(settings.ConfigFile, config); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return config, nil
}

// SaveConfig writes the configuration to config.toml, creating the envault
// config directory if needed.
func SaveConfig(config *Config) error {
	settings, err := Settings()
	if err != nil {
		return err
	}

	if err := SaveTOML(settings.ConfigFile, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}
