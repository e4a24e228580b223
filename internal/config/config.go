package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Client ClientConfig `mapstructure:"client" validate:"required"`
	Timer  TimerConfig  `mapstructure:"timer"  validate:"required"`
	Notify NotifyConfig `mapstructure:"notify" validate:"required"`
	Worker WorkerConfig `mapstructure:"worker"`
}

// ServerConfig contains the sample-data service settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// PostsDelay is the artificial latency of GET /api/posts.
	PostsDelay time.Duration `mapstructure:"posts_delay" validate:"gte=0"`
}

// ClientConfig contains settings for talking to the sample-data service.
type ClientConfig struct {
	BaseURL        string        `mapstructure:"base_url"        validate:"required,url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// TimerConfig contains the timer controller settings.
type TimerConfig struct {
	Interval time.Duration `mapstructure:"interval" validate:"gt=0"`
}

// NotifyConfig contains the notification center settings.
type NotifyConfig struct {
	TTL time.Duration `mapstructure:"ttl" validate:"gt=0"`
}

// WorkerConfig contains the worker dispatcher settings.
type WorkerConfig struct {
	DefaultInput int `mapstructure:"default_input" validate:"gte=0"`
}
