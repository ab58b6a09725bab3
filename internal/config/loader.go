package config

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader handles loading and parsing of config.yaml files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a configuration loader. The logger is optional.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// LoadResult contains the result of loading a configuration file.
// Errors are non-fatal: the Config is always usable.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a yaml file. A missing file returns
// defaults with no error; a malformed file returns defaults with the parse
// error collected.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(content, result.Config); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		result.Config = DefaultConfig()
		return result, nil
	}

	l.applyEnvOverrides(result.Config)
	fillDefaults(result.Config)

	return result, nil
}

// applyEnvOverrides lets PLANSH_* environment variables override the file.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	if model := os.Getenv("PLANSH_MODEL"); model != "" {
		cfg.Model = model
	}
	if baseURL := os.Getenv("PLANSH_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
}

// fillDefaults backfills fields the file left empty.
func fillDefaults(cfg *Config) {
	defaults := DefaultConfig()
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = defaults.APIKeyEnv
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaults.LogLevel
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaults.Prompt
	}
}
