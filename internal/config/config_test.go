package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "cp1047", cfg.Convert.SourceEncoding)
	assert.Equal(t, "utf-8", cfg.Convert.TargetEncoding)
	assert.Zero(t, cfg.Convert.FoldWidth)
	assert.Equal(t, runtime.NumCPU(), cfg.Batch.Workers)
	assert.True(t, cfg.Batch.Lock)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[convert]
source_encoding = " utf-8 "
target_encoding = "IBM-1047"
fold_width = 80

[batch]
source_dir = "/data/in"
destination_dir = "/data/out"
workers = 3
extensions = ["txt", ".dat"]
lock = false

[logging]
level = "DEBUG"
format = "json"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", cfg.Convert.SourceEncoding)
	assert.Equal(t, "IBM-1047", cfg.Convert.TargetEncoding)
	assert.Equal(t, 80, cfg.Convert.FoldWidth)
	assert.Equal(t, "/data/in", cfg.Batch.SourceDir)
	assert.Equal(t, "/data/out", cfg.Batch.DestinationDir)
	assert.Equal(t, 3, cfg.Batch.Workers)
	assert.Equal(t, []string{"txt", ".dat"}, cfg.Batch.Extensions)
	assert.False(t, cfg.Batch.Lock)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "[convert]\nfold_width = 72\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cp1047", cfg.Convert.SourceEncoding)
	assert.Equal(t, 72, cfg.Convert.FoldWidth)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadConfigWarningLevel(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "[logging]\nlevel = \"WARNING\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidateLoggingCase(t *testing.T) {
	for _, level := range []string{"WARN", "warning", "Warning", " debug "} {
		cfg := DefaultConfig()
		cfg.Logging.Level = level
		cfg.Logging.Format = "JSON"
		assert.NoError(t, cfg.Validate(), "level %q", level)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"negative fold", "[convert]\nfold_width = -1\n", ErrInvalidValue},
		{"empty encoding", "[convert]\nsource_encoding = \"  \"\n", ErrRequired},
		{"bad workers", "[batch]\nworkers = -2\n", ErrInvalidValue},
		{"bad format", "[logging]\nformat = \"xml\"\n", ErrInvalidValue},
		{"bad level", "[logging]\nlevel = \"loud\"\n", ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoadConfigSyntaxError(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "[convert\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadConfigMissingExplicitPath(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEncodeLoadsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Convert.FoldWidth = 40
	data, err := cfg.Encode()
	require.NoError(t, err)

	loaded, err := LoadConfig(writeConfig(t, string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg.Convert, loaded.Convert)
	assert.Equal(t, cfg.Logging, loaded.Logging)
}
