// Package config provides configuration management for plansh.
package config

import (
	"os"
	"time"
)

// Config holds all user-tunable settings.
type Config struct {
	// Model is the model identifier sent to the completion endpoint.
	Model string `yaml:"model"`
	// BaseURL is the completion API root.
	BaseURL string `yaml:"baseURL"`
	// APIKeyEnv names the environment variable holding the API key.
	// The key itself never lives in the config file.
	APIKeyEnv string `yaml:"apiKeyEnv"`
	// RequestTimeoutSeconds bounds each completion request. Zero disables
	// the timeout entirely; a hung endpoint then blocks the session.
	RequestTimeoutSeconds int `yaml:"requestTimeoutSeconds"`
	// LogLevel is the zap level name (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`
	// Prompt is the interactive prompt string.
	Prompt string `yaml:"prompt"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Model:     "llama3",
		BaseURL:   "http://localhost:11434/v1",
		APIKeyEnv: "PLANSH_API_KEY",
		LogLevel:  "info",
		Prompt:    "> ",
	}
}

// RequestTimeout returns the request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// APIKey resolves the configured API key from the environment.
// Empty when unset, which is valid for local endpoints.
func (c *Config) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}
