package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"baltpermits/internal/permits"
)

// Config holds all application configuration.
type Config struct {
	API APIConfig
	Log LogConfig
}

// APIConfig holds permit data source configuration.
type APIConfig struct {
	Endpoint string
	Timeout  time.Duration
	PageSize int
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables, with defaults
// suitable for querying the public Baltimore layer out of the box.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PERMITS_API_ENDPOINT", permits.DefaultEndpoint)
	v.SetDefault("PERMITS_HTTP_TIMEOUT", 30)
	v.SetDefault("PERMITS_PAGE_SIZE", 1000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)

	v.AutomaticEnv()

	cfg := &Config{
		API: APIConfig{
			Endpoint: v.GetString("PERMITS_API_ENDPOINT"),
			Timeout:  time.Duration(v.GetInt("PERMITS_HTTP_TIMEOUT")) * time.Second,
			PageSize: v.GetInt("PERMITS_PAGE_SIZE"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return fmt.Errorf("PERMITS_API_ENDPOINT is required")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("PERMITS_HTTP_TIMEOUT must be positive")
	}
	if c.API.PageSize < 1 || c.API.PageSize > 1000 {
		return fmt.Errorf("PERMITS_PAGE_SIZE must be between 1 and 1000")
	}
	return nil
}
