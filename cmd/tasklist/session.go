package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"tasklist/app"
	"tasklist/config"
	"tasklist/store"
)

// session is one opened store plus the controller driving it.
type session struct {
	cfg       config.Config
	paths     config.Paths
	storePath string
	kv        store.KV
	ctrl      *app.Controller
	logger    *log.Logger
	status    string
	closeLog  func() error
}

func (s *session) Close() {
	if s.kv != nil {
		if err := s.kv.Close(); err != nil {
			s.logger.Warn("storage close failed", "err", err)
		}
	}
	if s.closeLog != nil {
		_ = s.closeLog()
	}
}

func resolvePaths(flags *globalFlags) (config.Paths, error) {
	paths, err := config.DefaultPaths(appName)
	if err != nil {
		return config.Paths{}, err
	}
	if p := envOr(flags.configPath, "TASKLIST_CONFIG"); p != "" {
		paths.ConfigPath = p
	}
	if d := envOr(flags.dataDir, "TASKLIST_DATA"); d != "" {
		paths.DataDir = d
	}
	return paths, nil
}

func loadConfig(flags *globalFlags, paths config.Paths) (config.Config, error) {
	cfg, err := config.Load(paths.ConfigPath, config.Default())
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %q: %w", paths.ConfigPath, err)
	}
	if flags.backend != "" {
		cfg.Storage.Backend = config.Backend(flags.backend)
	}
	if flags.storePath != "" {
		cfg.Storage.Path = flags.storePath
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// newLogger logs to stderr for one-shot commands. While the TUI owns the
// terminal, output goes to the configured log file or nowhere.
func newLogger(cfg config.LoggingConfig, stderr io.Writer, interactive bool) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("parse logging level %q: %w", cfg.Level, err)
	}

	out := stderr
	formatter := log.TextFormatter
	var closeFn func() error
	if interactive {
		out = io.Discard
		if cfg.File != "" {
			if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
				return nil, nil, fmt.Errorf("create log dir: %w", err)
			}
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
			if err != nil {
				return nil, nil, fmt.Errorf("open log file: %w", err)
			}
			out = f
			formatter = log.LogfmtFormatter
			closeFn = f.Close
		}
	}

	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          appName,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter,
	})
	return logger, closeFn, nil
}

func openStore(cfg config.Config, path string) (store.KV, string, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		kv, err := store.OpenSQLite(path)
		if err != nil {
			return nil, "", err
		}
		return kv, "", nil
	default:
		kv, status, err := store.OpenFile(path)
		if err != nil {
			return nil, "", err
		}
		return kv, status, nil
	}
}

func openSession(flags *globalFlags, stderr io.Writer, interactive bool) (*session, error) {
	paths, err := resolvePaths(flags)
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(flags, paths)
	if err != nil {
		return nil, err
	}
	logger, closeLog, err := newLogger(cfg.Logging, stderr, interactive)
	if err != nil {
		return nil, err
	}

	storePath := cfg.StoragePath(paths.DataDir)
	logger.Debug("opening storage", "backend", cfg.Storage.Backend, "path", storePath)
	kv, status, err := openStore(cfg, storePath)
	if err != nil {
		logger.Error("storage open failed", "path", storePath, "err", err)
		if closeLog != nil {
			_ = closeLog()
		}
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if status != "" {
		logger.Warn("storage recovered", "path", storePath, "status", status)
	}

	ctrl, err := app.Load(kv, app.Options{Logger: logger})
	if err != nil {
		_ = kv.Close()
		if closeLog != nil {
			_ = closeLog()
		}
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	if s := ctrl.Status(); s != "" {
		status = joinStatus(status, s)
	}

	return &session{
		cfg:       cfg,
		paths:     paths,
		storePath: storePath,
		kv:        kv,
		ctrl:      ctrl,
		logger:    logger,
		status:    status,
		closeLog:  closeLog,
	}, nil
}

func joinStatus(a, b string) string {
	if a == "" {
		return b
	}
	return a + "; " + b
}
