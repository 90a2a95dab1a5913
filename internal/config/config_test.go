package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sdpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, "")
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sdpack.db", cfg.Database)
	assert.Equal(t, "windows-1252", cfg.Charset)
	assert.Equal(t, []string{".vso", ".pso"}, cfg.Extensions)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, `
database: shaders.db
charset: iso-8859-1
extensions: [".VSO", ".fx"]
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "shaders.db", cfg.Database)
	assert.Equal(t, "iso-8859-1", cfg.Charset)
	// extensions are normalized to lower case
	assert.Equal(t, []string{".vso", ".fx"}, cfg.Extensions)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadInvalidCharset(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, "charset: ebcdic\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid charset configuration")
}

func TestLoadInvalidExtension(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := writeConfigFile(t, `extensions: ["vso"]`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must start with '.'")
}
