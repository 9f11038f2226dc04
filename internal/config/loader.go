package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and
// environment variables. If configFile is empty, it searches for
// library-client.yaml/.yml in standard locations. The search requires
// an explicit YAML extension so the binary itself is never matched.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file in any standard location. Set name/type
		// without search paths so ReadInConfig returns
		// ConfigFileNotFoundError (handled gracefully by LoadConfig).
		viper.SetConfigName("library-client")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: LIBRARY_CLIENT_API_BASE, etc.
	viper.SetEnvPrefix("LIBRARY_CLIENT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a library-client
// config file with an explicit YAML extension.
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".library-client"),
		"/etc/library-client",
	}
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "library-client"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds nested config keys for environment variable
// support. Example: LIBRARY_CLIENT_STORAGE_BACKEND overrides
// storage.backend.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("api_base")
	_ = viper.BindEnv("asset_base")
	_ = viper.BindEnv("timeout")
	_ = viper.BindEnv("log_level")

	_ = viper.BindEnv("storage.backend")
	_ = viper.BindEnv("storage.path")
	_ = viper.BindEnv("storage.redis.addr")
	_ = viper.BindEnv("storage.redis.password")
	_ = viper.BindEnv("storage.redis.db")
}

// LoadConfig reads the configuration file, applies environment
// overrides and defaults, and validates the result. A missing config
// file is not an error; the client then runs on env vars and defaults.
func LoadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
