package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "project.yaml", cfg.Project.File)
	assert.Equal(t, ".projtree", cfg.Project.SystemDir)
	assert.Equal(t, VersioningAuto, cfg.Project.Versioning)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, explicit := cfg.Versioning()
	assert.False(t, explicit)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `project:
  file: game.json
  system_dir: .tooling
  versioning: "off"
  strict: true
log:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "game.json", cfg.Project.File)
	assert.Equal(t, ".tooling", cfg.Project.SystemDir)
	assert.True(t, cfg.Project.Strict)

	enabled, explicit := cfg.Versioning()
	assert.True(t, explicit)
	assert.False(t, enabled)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "project:\n  file: game.yaml\nlog:\n  level: info\n")
	t.Setenv("PROJTREE_PROJECT_FILE", "other.json")
	t.Setenv("PROJTREE_PROJECT_SYSTEM_DIR", ".meta")
	t.Setenv("PROJTREE_LOG_LEVEL", "error")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.json", cfg.Project.File)
	assert.Equal(t, ".meta", cfg.Project.SystemDir)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"versioning", "project:\n  versioning: sometimes\n", "project.versioning"},
		{"level", "log:\n  level: loud\n", "log.level"},
		{"format", "log:\n  format: xml\n", "log.format"},
		{"file path", "project:\n  file: sub/project.yaml\n", "project.file"},
		{"yaml", "project: [\n", "failed to load config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLogConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	LogConfig{Level: "error", Format: "json"}.Logger(&buf, false).Warn("hidden")
	assert.Empty(t, buf.String())

	LogConfig{Level: "error", Format: "json"}.Logger(&buf, true).Debug("shown")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "json handler")
	assert.Contains(t, buf.String(), "shown")
}
