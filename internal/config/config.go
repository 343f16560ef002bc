// Package config loads CLI defaults from projtree.yaml and PROJTREE_* variables.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// FileName is the optional config file looked up in the project root.
const FileName = "projtree.yaml"

// EnvPrefix prefixes the environment overrides, e.g. PROJTREE_PROJECT_FILE.
const EnvPrefix = "PROJTREE_"

// Versioning modes.
const (
	VersioningAuto = "auto"
	VersioningOn   = "on"
	VersioningOff  = "off"
)

// Config holds the CLI configuration.
type Config struct {
	Project ProjectConfig `koanf:"project"`
	Log     LogConfig     `koanf:"log"`
}

// ProjectConfig controls how the project file is stored.
type ProjectConfig struct {
	File       string `koanf:"file"`
	SystemDir  string `koanf:"system_dir"`
	Versioning string `koanf:"versioning"`
	Strict     bool   `koanf:"strict"`
}

// LogConfig controls the CLI logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func applyDefaults(cfg *Config) {
	if cfg.Project.File == "" {
		cfg.Project.File = "project.yaml"
	}
	if cfg.Project.SystemDir == "" {
		cfg.Project.SystemDir = ".projtree"
	}
	if cfg.Project.Versioning == "" {
		cfg.Project.Versioning = VersioningAuto
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Validate checks enumerated values.
func (c *Config) Validate() error {
	switch c.Project.Versioning {
	case VersioningAuto, VersioningOn, VersioningOff:
	default:
		return fmt.Errorf("project.versioning must be auto, on or off, got %q", c.Project.Versioning)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	if strings.ContainsAny(c.Project.File, `/\`) {
		return fmt.Errorf("project.file must be a file name, got %q", c.Project.File)
	}
	return nil
}

// Versioning reports the explicit versioning choice; ok is false for auto.
func (c *Config) Versioning() (enabled, ok bool) {
	switch c.Project.Versioning {
	case VersioningOn:
		return true, true
	case VersioningOff:
		return false, true
	}
	return false, false
}

// SlogLevel parses the configured level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// Logger builds the logger described by l, writing to w. verbose forces debug.
func (l LogConfig) Logger(w io.Writer, verbose bool) *slog.Logger {
	level, err := l.SlogLevel()
	if err != nil || verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
