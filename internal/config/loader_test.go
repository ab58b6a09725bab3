package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		loader := NewLoader(nil)

		result, err := loader.LoadFromFile("/nonexistent/config.yaml")
		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		assert.Equal(t, DefaultConfig(), result.Config)
	})

	t.Run("valid file overrides defaults", func(t *testing.T) {
		path := writeConfigFile(t, `
model: qwen2.5-coder
baseURL: http://inference.local/v1
requestTimeoutSeconds: 30
logLevel: debug
`)
		loader := NewLoader(nil)

		result, err := loader.LoadFromFile(path)
		require.NoError(t, err)
		assert.Empty(t, result.Errors)
		assert.Equal(t, "qwen2.5-coder", result.Config.Model)
		assert.Equal(t, "http://inference.local/v1", result.Config.BaseURL)
		assert.Equal(t, 30*time.Second, result.Config.RequestTimeout())
		assert.Equal(t, "debug", result.Config.LogLevel)
		// untouched fields keep defaults
		assert.Equal(t, "> ", result.Config.Prompt)
	})

	t.Run("malformed file collects error and keeps defaults", func(t *testing.T) {
		path := writeConfigFile(t, "model: [unclosed")
		loader := NewLoader(nil)

		result, err := loader.LoadFromFile(path)
		require.NoError(t, err)
		assert.NotEmpty(t, result.Errors)
		assert.Equal(t, DefaultConfig(), result.Config)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfigFile(t, "model: from-file\n")
		t.Setenv("PLANSH_MODEL", "from-env")

		loader := NewLoader(nil)
		result, err := loader.LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "from-env", result.Config.Model)
	})
}

func TestAPIKey(t *testing.T) {
	t.Run("resolves from environment", func(t *testing.T) {
		t.Setenv("PLANSH_API_KEY", "sk-test")
		cfg := DefaultConfig()
		assert.Equal(t, "sk-test", cfg.APIKey())
	})

	t.Run("empty when env var unset", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.APIKeyEnv = "PLANSH_TEST_UNSET_KEY"
		assert.Equal(t, "", cfg.APIKey())
	})
}
