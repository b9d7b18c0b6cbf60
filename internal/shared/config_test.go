package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	t.Run("parses a full config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		contents := `
[organize]
target_dir = "/tmp/downloads"
dry_run = true
verbose = true

[rules]
webp = "Images"
epub = "Documents"

[database]
path = "history.db"
max_open_conns = 2
max_idle_conns = 1
`
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if config.Organize.TargetDir != "/tmp/downloads" {
			t.Errorf("TargetDir = %q, want /tmp/downloads", config.Organize.TargetDir)
		}
		if !config.Organize.DryRun || !config.Organize.Verbose {
			t.Error("expected dry_run and verbose to parse as true")
		}
		if config.Rules["webp"] != "Images" || config.Rules["epub"] != "Documents" {
			t.Errorf("rules did not parse: %v", config.Rules)
		}
		if config.Database.Path != "history.db" {
			t.Errorf("Database.Path = %q, want history.db", config.Database.Path)
		}
		if config.Database.MaxOpenConns != 2 {
			t.Errorf("MaxOpenConns = %d, want 2", config.Database.MaxOpenConns)
		}
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("malformed file errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[organize\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		_, err := LoadConfig(path)
		if err == nil {
			t.Error("expected parse error")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Organize.TargetDir != "." {
		t.Errorf("default TargetDir = %q, want .", config.Organize.TargetDir)
	}
	if config.Organize.DryRun {
		t.Error("default dry_run should be false")
	}
	if config.Database.Path == "" {
		t.Error("default database path should be set")
	}
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("writes the example config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile failed: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("written config does not parse: %v", err)
		}
		if config.Organize.TargetDir != "." {
			t.Errorf("TargetDir = %q, want .", config.Organize.TargetDir)
		}
	})

	t.Run("refuses to clobber an existing file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("keep me"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read file: %v", err)
		}
		if string(data) != "keep me" {
			t.Error("existing file was overwritten")
		}
	})
}
