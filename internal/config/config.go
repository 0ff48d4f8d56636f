// Package config provides configuration loading for quill sessions.
//
// Configuration is read from TOML or YAML files; a missing file is not
// an error and yields the defaults. A Watcher can reload the file on
// change for long-running hosts.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Config holds session configuration.
type Config struct {
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// EditorConfig controls engine behavior.
type EditorConfig struct {
	// DefaultBlockType tags text nodes created from plain input.
	DefaultBlockType string `toml:"default_block_type" yaml:"default_block_type"`

	// RulesSelectable controls whether horizontal rules accept a caret.
	RulesSelectable bool `toml:"rules_selectable" yaml:"rules_selectable"`

	// ImagesSelectable controls whether images accept a caret.
	ImagesSelectable bool `toml:"images_selectable" yaml:"images_selectable"`
}

// ScriptConfig controls the Lua scripting surface.
type ScriptConfig struct {
	// Enabled gates script execution entirely.
	Enabled bool `toml:"enabled" yaml:"enabled"`

	// Path is a script to run against the document.
	Path string `toml:"path" yaml:"path"`
}

// LoggingConfig controls diagnostic output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error, off.
	Level string `toml:"level" yaml:"level"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Editor: EditorConfig{
			DefaultBlockType: "paragraph",
			RulesSelectable:  true,
			ImagesSelectable: true,
		},
		Script: ScriptConfig{
			Enabled: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidValue, c.Logging.Level)
	}
	if c.Editor.DefaultBlockType == "" {
		return fmt.Errorf("%w: editor.default_block_type is empty", ErrInvalidValue)
	}
	return nil
}

// Load reads configuration from path, choosing the format by extension.
// A missing file returns the defaults with no error.
func Load(path string) (Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return NewYAMLLoader(path).Load()
	default:
		return NewTOMLLoader(path).Load()
	}
}
