package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseConfig(t *testing.T) {
	path := writeFile(t, "basic.yaml", "format: '%.3f'\nprecision: 128\necho: true\n")
	c := defaultConfig()
	require.NoError(t, c.ParseConfig(path))
	assert.Equal(t, Config{Format: "%.3f", Precision: 128, Echo: true, LogLevel: "info"}, c)
}

func TestParseConfigErrors(t *testing.T) {
	c := defaultConfig()
	err := c.ParseConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := writeFile(t, "bad.yaml", "precision: lots\n")
	err = c.ParseConfig(path)
	assert.ErrorContains(t, err, "parsing config")
}

func TestConfigValue(t *testing.T) {
	path := writeFile(t, "basic.yaml", "log-level: debug\n")
	c := defaultConfig()
	v := configValue{c: &c}
	require.NoError(t, v.Set(path))
	assert.Equal(t, path, v.String())
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "%g", c.Format)
}
