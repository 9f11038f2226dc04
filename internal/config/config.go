// Package config provides configuration types and loading for the
// library client.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by SetDefaults.
const (
	DefaultAPIBase = "http://111.231.168.29/api"
	DefaultTimeout = "30s"
	DefaultBackend = "file"
)

// Config is the top-level client configuration.
type Config struct {
	// APIBase is the API address every request is issued against.
	APIBase string `yaml:"api_base" mapstructure:"api_base" validate:"required,url"`

	// AssetBase is the address static assets are served from. When
	// empty it is derived from APIBase by stripping a trailing "/api".
	AssetBase string `yaml:"asset_base" mapstructure:"asset_base" validate:"omitempty,url"`

	// Timeout bounds how long a call may remain outstanding (e.g. "30s").
	Timeout string `yaml:"timeout" mapstructure:"timeout" validate:"required"`

	// LogLevel controls slog verbosity.
	LogLevel string `yaml:"log_level" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`

	// Storage selects and configures the durable session backend.
	Storage StorageConfig `yaml:"storage" mapstructure:"storage"`
}

// StorageConfig configures the durable session storage backend.
type StorageConfig struct {
	// Backend is one of memory, file, redis, sqlite.
	Backend string `yaml:"backend" mapstructure:"backend" validate:"required,oneof=memory file redis sqlite"`

	// Path is the file/database location for the file and sqlite
	// backends. Empty means the conventional per-user location.
	Path string `yaml:"path" mapstructure:"path"`

	// Redis configures the redis backend.
	Redis RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig holds connection settings for the redis backend.
type RedisConfig struct {
	Addr     string `yaml:"addr" mapstructure:"addr"`
	Password string `yaml:"password" mapstructure:"password"`
	DB       int    `yaml:"db" mapstructure:"db"`
}

// SetDefaults fills in default values for optional fields.
func (c *Config) SetDefaults() {
	if c.APIBase == "" {
		c.APIBase = DefaultAPIBase
	}
	if c.Timeout == "" {
		c.Timeout = DefaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultBackend
	}
	if c.Storage.Backend == "redis" && c.Storage.Redis.Addr == "" {
		c.Storage.Redis.Addr = "localhost:6379"
	}
}

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	return nil
}

// RequestTimeout returns the parsed request timeout. Validate must
// have succeeded first.
func (c *Config) RequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		d, _ = time.ParseDuration(DefaultTimeout)
	}
	return d
}
