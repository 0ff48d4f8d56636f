package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config must validate: %v", err)
	}
}

func TestMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.toml")
	src := `
[editor]
default_block_type = "header1"
rules_selectable = false

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Editor.DefaultBlockType != "header1" {
		t.Errorf("expected header1, got %q", cfg.Editor.DefaultBlockType)
	}
	if cfg.Editor.RulesSelectable {
		t.Error("expected rules_selectable false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug, got %q", cfg.Logging.Level)
	}
	// Untouched sections keep their defaults.
	if !cfg.Editor.ImagesSelectable {
		t.Error("expected images_selectable default true")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quill.yaml")
	src := `
editor:
  default_block_type: blockquote
script:
  enabled: false
  path: setup.lua
`
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Editor.DefaultBlockType != "blockquote" {
		t.Errorf("expected blockquote, got %q", cfg.Editor.DefaultBlockType)
	}
	if cfg.Script.Enabled {
		t.Error("expected script disabled")
	}
	if cfg.Script.Path != "setup.lua" {
		t.Errorf("expected setup.lua, got %q", cfg.Script.Path)
	}
}

func TestParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("[editor\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.Contains(perr.Error(), path) {
		t.Errorf("error should name the file: %v", perr)
	}
}

func TestValidateRejectsBadLevel(t *testing.T) {
	cfg := Default()
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected ErrInvalidValue, got %v", err)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"info\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan Config, 1)
	w, err := NewWatcher(path, func(cfg Config, err error) {
		if err != nil {
			t.Errorf("reload failed: %v", err)
			return
		}
		select {
		case reloaded <- cfg:
		default:
		}
	}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[logging]\nlevel = \"warn\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-reloaded:
		if cfg.Logging.Level != "warn" {
			t.Errorf("expected warn after reload, got %q", cfg.Logging.Level)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.toml")
	if err := os.WriteFile(path, []byte(""), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, func(Config, error) {})
	if err != nil {
		t.Fatalf("NewWatcher failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("first close: %v", err)
	}
	if err := w.Close(); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}
