package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tasklist/tui"
)

var version = "dev"

const appName = "tasklist"

type program interface {
	Run() (tea.Model, error)
}

var programFactory = func(m tea.Model) program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dataDir    string
	backend    string
	storePath  string
	logLevel   string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           appName,
		Short:         "A small task list with a terminal UI",
		Long:          "tasklist keeps a newest-first list of short tasks with priorities, filters and a light/dark theme.",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(flags, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config TOML (env TASKLIST_CONFIG)")
	pf.StringVar(&flags.dataDir, "data", "", "data directory (env TASKLIST_DATA)")
	pf.StringVar(&flags.backend, "backend", "", "storage backend: file or sqlite")
	pf.StringVar(&flags.storePath, "store", "", "explicit storage file path")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newAddCmd(flags, stdout, stderr),
		newListCmd(flags, stdout, stderr),
		newToggleCmd(flags, stdout, stderr),
		newDeleteCmd(flags, stdout, stderr),
		newClearCompletedCmd(flags, stdout, stderr),
		newThemeCmd(flags, stdout, stderr),
		newPathsCmd(flags, stdout),
	)
	return root
}

func runTUI(flags *globalFlags, stderr io.Writer) error {
	sess, err := openSession(flags, stderr, true)
	if err != nil {
		return err
	}
	defer sess.Close()

	sess.logger.Info("starting tui", "store", sess.storePath, "backend", sess.cfg.Storage.Backend)
	m := tui.NewModel(sess.ctrl, tui.Options{
		DefaultPriority: sess.cfg.UI.DefaultPriority,
		StartupStatus:   sess.status,
		Logger:          sess.logger,
	})
	if _, err := programFactory(m).Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	sess.logger.Info("tui exited")
	return nil
}

func envOr(value, envKey string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv(envKey))
}
