package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	toml "github.com/pelletier/go-toml/v2"

	"tasklist/model"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

type Config struct {
	Storage StorageConfig `toml:"storage"`
	Logging LoggingConfig `toml:"logging"`
	UI      UIConfig      `toml:"ui"`
}

type StorageConfig struct {
	Backend Backend `toml:"backend"`
	// Path is the storage file; empty picks a default under the data dir.
	Path string `toml:"path"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
	// File receives log output while the TUI owns the terminal. Empty discards it.
	File string `toml:"file"`
}

type UIConfig struct {
	DefaultPriority model.Priority `toml:"default_priority"`
}

func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			DefaultPriority: model.PriorityLow,
		},
	}
}

// Load reads path over defaults. A missing or empty file yields defaults.
func Load(path string, defaults Config) (Config, error) {
	cfg := defaults
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if len(content) == 0 {
		return cfg, nil
	}

	if err := toml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode toml: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("invalid storage.backend: %q", c.Storage.Backend)
	}
	if _, err := log.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	if _, ok := model.ParsePriority(string(c.UI.DefaultPriority)); !ok {
		return fmt.Errorf("invalid ui.default_priority: %q", c.UI.DefaultPriority)
	}
	return nil
}

// StoragePath returns the configured storage path, or the backend's default
// file inside dataDir.
func (c Config) StoragePath(dataDir string) string {
	if p := strings.TrimSpace(c.Storage.Path); p != "" {
		return p
	}
	name := "tasklist.json"
	if c.Storage.Backend == BackendSQLite {
		name = "tasklist.db"
	}
	return filepath.Join(dataDir, name)
}
