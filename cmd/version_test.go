package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupVersionTest(t *testing.T) {
	t.Helper()
	SetBuildInfo("abc1234", "2026-08-31T10:00:00Z")
	// Reset flags between test runs to avoid state leaking
	_ = versionCmd.Flags().Set("short", "false")
	_ = versionCmd.Flags().Set("json", "false")
}

func TestVersionOutput_ContainsFields(t *testing.T) {
	setupVersionTest(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())

	out := buf.String()
	for _, field := range []string{"commit:", "built:", "go version:", "platform:"} {
		assert.Contains(t, out, field)
	}
}

func TestVersionShort(t *testing.T) {
	setupVersionTest(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--short"})

	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 1, "short output is a single line, got: %q", buf.String())
}

func TestVersionJSON(t *testing.T) {
	setupVersionTest(t)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"version", "--json"})

	require.NoError(t, rootCmd.Execute())

	var result map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result), "invalid JSON output: %s", buf.String())

	for _, key := range []string{"version", "commit", "built", "goVersion", "platform"} {
		assert.Contains(t, result, key)
	}
}
