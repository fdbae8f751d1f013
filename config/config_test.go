package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "https://api.monday.com/v2", cfg.MondayAPIURL)
	assert.Equal(t, 100*time.Millisecond, cfg.UploadDelay())
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout())
	assert.False(t, cfg.TokenConfigured())
	assert.Empty(t, cfg.Validate())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("MONDAY_API_TOKEN", "abc123")
	t.Setenv("PORT", "8080")
	t.Setenv("UPLOAD_DELAY_MS", "250")

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.MondayAPIToken)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.UploadDelay())
	assert.True(t, cfg.TokenConfigured())
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	content := "# local settings\nMONDAY_API_TOKEN=\"from-dotenv\"\nLOG_FORMAT=json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultEnvFile), []byte(content), 0600))

	v, err := NewViper("")
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.MondayAPIToken)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_YAMLConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.yaml")
	content := "port: \"4000\"\nlog_level: debug\nallowed_origins:\n  - https://example.com\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	v, err := NewViper(path)
	require.NoError(t, err)
	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
}

func TestNewViper_MissingExplicitFile(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Port = "99999"
	cfg.LogFormat = "xml"
	cfg.UploadDelayMs = -1
	cfg.MondayAPIURL = "not a url"

	errs := cfg.Validate()
	fields := make([]string, 0, len(errs))
	for _, e := range errs {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"port", "log_format", "upload_delay_ms", "monday_api_url"}, fields)

	err := ValidationErrors(errs)
	assert.Contains(t, err.Error(), "4 validation errors")
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
