package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// EnvAPIKey is read when steam.api_key is not set in the config file
const EnvAPIKey = "STEAM_API_KEY"

// Load loads the configuration from file.
// With an explicit configPath the file must exist; otherwise the standard
// locations are searched and defaults are used when nothing is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	if err := v.BindEnv("steam.api_key", EnvAPIKey); err != nil {
		return nil, fmt.Errorf("error binding %s: %w", EnvAPIKey, err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".steam-dilemma"))
		}

		// Check /etc
		v.AddConfigPath("/etc/steam-dilemma/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configPath != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", "127.0.0.1:3000")
	v.SetDefault("server.static_dir", "client/dist")
	v.SetDefault("server.read_timeout", "5s")
	v.SetDefault("server.write_timeout", "45s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.placeholder_name", "unknown")
	v.SetDefault("server.rate_limit.rps", 5)
	v.SetDefault("server.rate_limit.burst", 10)

	// Steam defaults
	v.SetDefault("steam.api_key", "")
	v.SetDefault("steam.base_url", "http://api.steampowered.com")
	v.SetDefault("steam.timeout", "30s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if cfg.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}

	if cfg.Server.RateLimit.RPS > 0 && cfg.Server.RateLimit.Burst <= 0 {
		return fmt.Errorf("server.rate_limit.burst must be positive when rate limiting is enabled")
	}

	if cfg.Steam.Timeout <= 0 {
		return fmt.Errorf("steam.timeout must be positive")
	}

	if cfg.Steam.BaseURL == "" {
		return fmt.Errorf("steam.base_url is required")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
