// Package config loads and validates application configuration from
// defaults, an optional YAML file and BGTASKS_-prefixed environment variables.
package config
