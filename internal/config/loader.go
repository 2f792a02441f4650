package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PREAUTHD_STORAGE_BACKEND.
const EnvPrefix = "PREAUTHD"

// LoadConfig loads configuration from multiple sources in priority order:
// 1. Default values
// 2. Configuration file (toml, yaml or json), if configPath is set
// 3. Environment variables (PREAUTHD_ prefix)
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults first
	setDefaults(v)

	// 2. Load main configuration file
	if configPath != "" {
		if err := loadMainConfig(v, configPath); err != nil {
			return nil, fmt.Errorf("failed to load main config: %w", err)
		}
	}

	// 3. Set up environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 4. Unmarshal into struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.configPath = configPath

	// 5. Validate the complete configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// loadMainConfig loads the main configuration file
func loadMainConfig(v *viper.Viper, configPath string) error {
	v.SetConfigFile(configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %s", configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	return nil
}

// SaveExampleConfig saves an example configuration file
func SaveExampleConfig(configPath string) error {
	v := viper.New()
	setDefaults(v)

	for key, value := range generateExampleConfig() {
		v.Set(key, value)
	}

	v.SetConfigFile(configPath)
	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("failed to write example config: %w", err)
	}
	return nil
}

// generateExampleConfig generates example configuration values
func generateExampleConfig() map[string]interface{} {
	return map[string]interface{}{
		"storage.backend":     "pebble",
		"storage.path":        "/var/lib/preauthd/ledger",
		"storage.compression": "lz4",

		"journal.driver": "sqlite",
		"journal.dsn":    "/var/lib/preauthd/journal.db",

		"log.level":  "info",
		"log.format": "json",
	}
}
