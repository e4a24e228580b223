package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "BGTASKS"

// Default values applied before any file or environment override.
var defaults = map[string]interface{}{
	"server.port":            3001,
	"server.log_level":       "info",
	"server.posts_delay":     "500ms",
	"client.base_url":        "http://localhost:3001",
	"client.request_timeout": "10s",
	"timer.interval":         "1s",
	"notify.ttl":             "5s",
	"worker.default_input":   1000,
}

// Load configuration from defaults, an optional config file and environment
// variables. Environment variables take precedence over values from config
// files. If configPath is empty, config.yaml is looked up in the working
// directory and skipped when absent.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// BGTASKS_SERVER_PORT overrides server.port, and so on.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
