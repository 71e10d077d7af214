package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasklist/model"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), Default())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
backend = "sqlite"
path = "/tmp/tasks.db"

[logging]
level = "debug"

[ui]
default_priority = "high"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config failed: %v", err)
	}

	cfg, err := Load(path, Default())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Path != "/tmp/tasks.db" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging level %q", cfg.Logging.Level)
	}
	if cfg.UI.DefaultPriority != model.PriorityHigh {
		t.Fatalf("unexpected default priority %q", cfg.UI.DefaultPriority)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"backend":  "[storage]\nbackend = \"redis\"\n",
		"level":    "[logging]\nlevel = \"loud\"\n",
		"priority": "[ui]\ndefault_priority = \"urgent\"\n",
	}
	for name, content := range cases {
		path := filepath.Join(t.TempDir(), name+".toml")
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write config failed: %v", err)
		}
		if _, err := Load(path, Default()); err == nil || !strings.Contains(err.Error(), "invalid") {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestStoragePathDefaultsPerBackend(t *testing.T) {
	cfg := Default()
	if got := cfg.StoragePath("/data"); got != filepath.Join("/data", "tasklist.json") {
		t.Fatalf("unexpected file path %q", got)
	}
	cfg.Storage.Backend = BackendSQLite
	if got := cfg.StoragePath("/data"); got != filepath.Join("/data", "tasklist.db") {
		t.Fatalf("unexpected sqlite path %q", got)
	}
	cfg.Storage.Path = "/elsewhere/x.db"
	if got := cfg.StoragePath("/data"); got != "/elsewhere/x.db" {
		t.Fatalf("expected explicit path, got %q", got)
	}
}

func TestPathsForLinuxHonorsXDG(t *testing.T) {
	paths, err := PathsFor("linux", map[string]string{
		"XDG_CONFIG_HOME": "/xdg/config",
		"XDG_DATA_HOME":   "/xdg/data",
	}, "/home/u/.config", "/home/u/.local/share", "tasklist")
	if err != nil {
		t.Fatalf("paths failed: %v", err)
	}
	if paths.ConfigPath != filepath.Join("/xdg/config", "tasklist", "config.toml") {
		t.Fatalf("unexpected config path %q", paths.ConfigPath)
	}
	if paths.DataDir != filepath.Join("/xdg/data", "tasklist") {
		t.Fatalf("unexpected data dir %q", paths.DataDir)
	}
}

func TestPathsForRejectsEmptyInputs(t *testing.T) {
	if _, err := PathsFor("linux", nil, "", "/d", "tasklist"); err == nil {
		t.Fatalf("expected error for empty config dir")
	}
	if _, err := PathsFor("darwin", nil, "/c", "/d", " "); err == nil {
		t.Fatalf("expected error for empty app name")
	}
}
