package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[api]
base_url = "https://intake.example.com"
token = "secret"

[sync]
debounce_ms = 1200

[export]
dir = "/tmp/exports"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://intake.example.com", cfg.ResolvedBaseURL())
	assert.Equal(t, "secret", cfg.ResolvedToken())
	assert.Equal(t, 1200*time.Millisecond, cfg.ResolvedDebounce())
	assert.Equal(t, "/tmp/exports", cfg.ResolvedExportDir())
}

func TestLoad_RejectsBadValues(t *testing.T) {
	path := writeConfig(t, `
[sync]
debounce_ms = 999999
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestDefaults(t *testing.T) {
	var cfg Config

	assert.Equal(t, "http://localhost:8000", cfg.ResolvedBaseURL())
	assert.Empty(t, cfg.ResolvedToken())
	assert.Equal(t, 700*time.Millisecond, cfg.ResolvedDebounce())
	assert.Equal(t, ".", cfg.ResolvedExportDir())
	assert.NotEmpty(t, cfg.ResolvedCachePath())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GREENPLATE_API_URL", "http://env.example.com")
	t.Setenv("GREENPLATE_API_TOKEN", "env-token")

	cfg := Config{API: APIConfig{BaseURL: "http://file.example.com", Token: "file-token"}}

	assert.Equal(t, "http://env.example.com", cfg.ResolvedBaseURL())
	assert.Equal(t, "env-token", cfg.ResolvedToken())
}
