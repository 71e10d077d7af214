package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"tasklist/app"
	"tasklist/model"
)

// withSession opens storage, runs fn, and closes everything afterwards.
func withSession(flags *globalFlags, stderr io.Writer, fn func(*session) error) error {
	sess, err := openSession(flags, stderr, false)
	if err != nil {
		return err
	}
	defer sess.Close()
	if sess.status != "" {
		_, _ = fmt.Fprintln(stderr, "warning:", sess.status)
	}
	return fn(sess)
}

func newAddCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var priority string
	cmd := &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task at the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(flags, stderr, func(s *session) error {
				p := s.cfg.UI.DefaultPriority
				if cmd.Flags().Changed("priority") {
					parsed, err := app.ParsePriority(priority)
					if err != nil {
						return err
					}
					p = parsed
				}
				text := strings.Join(args, " ")
				before := len(s.ctrl.State().Tasks)
				if err := s.ctrl.Dispatch(app.Command{Name: app.CmdAdd, Text: text, Priority: p}); err != nil {
					return err
				}
				st := s.ctrl.State()
				if len(st.Tasks) == before {
					_, _ = fmt.Fprintln(stdout, "nothing added: task text is empty")
					return nil
				}
				added := st.Tasks[0]
				_, _ = fmt.Fprintf(stdout, "added %d %q (%s)\n", added.ID, added.Text, added.Priority)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "priority: low, medium or high")
	return cmd
}

func newListCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	var filter string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print tasks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := app.ParseFilter(filter)
			if err != nil {
				return err
			}
			return withSession(flags, stderr, func(s *session) error {
				if err := s.ctrl.Dispatch(app.Command{Name: app.CmdFilter, Filter: f}); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(stdout, renderList(s.ctrl.View()))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", string(model.FilterAll), "filter: all, active or completed")
	return cmd
}

func newToggleCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return idCommand(flags, stdout, stderr, "toggle <id>", "Flip a task between open and completed", app.CmdToggle)
}

func newDeleteCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return idCommand(flags, stdout, stderr, "delete <id>", "Remove a task", app.CmdDelete)
}

func idCommand(flags *globalFlags, stdout, stderr io.Writer, use, short, name string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}
			return withSession(flags, stderr, func(s *session) error {
				if err := s.ctrl.Dispatch(app.Command{Name: name, ID: id}); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(stdout, s.ctrl.View().Label)
				return nil
			})
		},
	}
}

func newClearCompletedCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-completed",
		Short: "Remove every completed task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(flags, stderr, func(s *session) error {
				before := len(s.ctrl.State().Tasks)
				if err := s.ctrl.Dispatch(app.Command{Name: app.CmdClearCompleted}); err != nil {
					return err
				}
				removed := before - len(s.ctrl.State().Tasks)
				_, _ = fmt.Fprintf(stdout, "cleared %d completed; %s\n", removed, s.ctrl.View().Label)
				return nil
			})
		},
	}
}

func newThemeCmd(flags *globalFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "theme",
		Short: "Toggle between light and dark theme",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(flags, stderr, func(s *session) error {
				if err := s.ctrl.Dispatch(app.Command{Name: app.CmdToggleTheme}); err != nil {
					return err
				}
				v := s.ctrl.View()
				_, _ = fmt.Fprintf(stdout, "theme: %s %s\n", v.Theme, v.Glyph)
				return nil
			})
		},
	}
}

func newPathsCmd(flags *globalFlags, stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show resolved config and storage paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			paths, err := resolvePaths(flags)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(flags, paths)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "config: %s\n", paths.ConfigPath)
			_, _ = fmt.Fprintf(stdout, "data_dir: %s\n", paths.DataDir)
			_, _ = fmt.Fprintf(stdout, "backend: %s\n", cfg.Storage.Backend)
			_, _ = fmt.Fprintf(stdout, "store: %s\n", cfg.StoragePath(paths.DataDir))
			return nil
		},
	}
}

func renderList(v app.View) string {
	rows := make([][]string, 0, len(v.Rows))
	for _, r := range v.Rows {
		mark := "[ ]"
		if r.Completed {
			mark = "[x]"
		}
		rows = append(rows, []string{strconv.FormatInt(r.ID, 10), mark, r.Text, string(r.Priority)})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "", "Task", "Priority").
		Rows(rows...)
	return fmt.Sprintf("%s · %s\n%s\n%s", v.Date, v.Filter, t, v.Label)
}
