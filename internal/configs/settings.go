package configs

import (
	"os"
	"path/filepath"
)

// UserSettings holds the per-user paths envault writes to outside of the
// working directory.
type UserSettings struct {
	// ConfigPath is the envault directory under the user config dir.
	ConfigPath string

	// ConfigFile is the path of config.toml inside ConfigPath.
	ConfigFile string
}

// DefaultEnvFile is the env file path used when no --file flag or config
// override is given. Matches the conventional dotenv location.
const DefaultEnvFile = "./.env"

// defaultKeyName is the key file created beside the user config when no
// explicit key path is given.
const defaultKeyName = ".env.key"

// Settings resolves the per-user envault paths.
//
// Unlike the env file, which defaults to the working directory, the key
// lives under the user config dir so that an encrypted env file committed
// or copied by accident is useless without the user's machine.
func Settings() (*UserSettings, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(configDir, "envault")
	return &UserSettings{
		ConfigPath: configPath,
		ConfigFile: filepath.Join(configPath, "config.toml"),
	}, nil
}

// DefaultKeyPath returns the key file path used when the caller does not
// supply one: the key_path from config.toml if set, otherwise
// <user-config-dir>/envault/.env.key.
func DefaultKeyPath() (string, error) {
	settings, err := Settings()
	if err != nil {
		return "", err
	}

	config, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if config.KeyPath != "" {
		return config.KeyPath, nil
	}

	return filepath.Join(settings.ConfigPath, defaultKeyName), nil
}
