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
	path := filepath.Join(t.TempDir(), ".clinicctl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Point at an explicit empty file so a developer's own
	// .clinicctl.yaml cannot leak into the test.
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.Server.URL)
	assert.Equal(t, 15*time.Second, cfg.Server.Timeout)
	assert.Equal(t, time.Duration(0), cfg.Cache.TTL)
	assert.Empty(t, cfg.Credentials.Dir)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.True(t, cfg.Output.Colors)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  url: https://clinic.example.com/api
  timeout: 30s
cache:
  ttl: 5m
credentials:
  dir: /tmp/clinicctl-test
logging:
  level: debug
output:
  colors: false
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://clinic.example.com/api", cfg.Server.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "/tmp/clinicctl-test", cfg.Credentials.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Output.Colors)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/api", cfg.Server.URL)
}

func TestLoad_InvalidLoggingLevel(t *testing.T) {
	path := writeConfig(t, "logging:\n  level: loud\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestLoad_InvalidTimeout(t *testing.T) {
	path := writeConfig(t, "server:\n  timeout: -1s\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}
