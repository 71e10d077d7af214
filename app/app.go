package app

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"tasklist/model"
	"tasklist/store"
)

var (
	ErrInvalidFilter   = errors.New("invalid filter")
	ErrInvalidPriority = errors.New("invalid priority")
	ErrUnknownCommand  = errors.New("unknown command")
)

// Command names accepted by Dispatch.
const (
	CmdAdd            = "add"
	CmdToggle         = "toggle"
	CmdDelete         = "delete"
	CmdClearCompleted = "clear-completed"
	CmdFilter         = "filter"
	CmdToggleTheme    = "toggle-theme"
)

// Command is one user action with its payload. Only the fields the named
// command reads are used.
type Command struct {
	Name     string
	ID       int64
	Text     string
	Priority model.Priority
	Filter   model.Filter
}

// persistTarget says which storage key a command writes after mutating.
type persistTarget int

const (
	persistNone persistTarget = iota
	persistTasks
	persistTheme
)

type handler struct {
	apply   func(*model.AppState, Command, func() int64)
	persist persistTarget
}

// commands is the dispatch table. Every entry runs mutate, persist, render
// in that order via Dispatch.
var commands = map[string]handler{
	CmdAdd:            {apply: addTask, persist: persistTasks},
	CmdToggle:         {apply: toggleTask, persist: persistTasks},
	CmdDelete:         {apply: deleteTask, persist: persistTasks},
	CmdClearCompleted: {apply: clearCompleted, persist: persistTasks},
	CmdFilter:         {apply: setFilter, persist: persistNone},
	CmdToggleTheme:    {apply: toggleTheme, persist: persistTheme},
}

// Renderer receives every freshly built view.
type Renderer interface {
	Render(View)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(View)

func (f RenderFunc) Render(v View) { f(v) }

// Options configures a Controller. Zero values pick sensible defaults.
type Options struct {
	Logger   *log.Logger
	Renderer Renderer
	Now      func() time.Time
}

// Controller owns the session state and the storage it mirrors.
// It is not safe for concurrent use.
type Controller struct {
	state    model.AppState
	kv       store.KV
	renderer Renderer
	logger   *log.Logger
	now      func() time.Time
	lastID   int64
	status   string
	view     View
}

// Load builds a controller from the key-value store. Corrupt task data is
// quarantined and replaced by an empty list; Status reports when that happened.
func Load(kv store.KV, opts Options) (*Controller, error) {
	c := &Controller{
		state:    model.NewState(),
		kv:       kv,
		renderer: opts.Renderer,
		logger:   opts.Logger,
		now:      opts.Now,
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	if c.now == nil {
		c.now = time.Now
	}

	tasks, raw, err := store.LoadTasks(kv)
	switch {
	case errors.Is(err, store.ErrCorruptTasks):
		c.logger.Warn("stored tasks are corrupt; starting empty", "err", err)
		if qErr := kv.Set(store.QuarantineKey, raw); qErr != nil {
			return nil, fmt.Errorf("quarantine corrupt tasks: %w", qErr)
		}
		if sErr := store.SaveTasks(kv, []model.Task{}); sErr != nil {
			return nil, fmt.Errorf("reset corrupt tasks: %w", sErr)
		}
		c.status = "Stored tasks were unreadable; started with an empty list"
		tasks = []model.Task{}
	case err != nil:
		return nil, err
	}
	c.state.Tasks = tasks

	theme, err := store.LoadTheme(kv)
	if err != nil {
		return nil, err
	}
	c.state.Theme = theme

	for _, t := range tasks {
		if t.ID > c.lastID {
			c.lastID = t.ID
		}
	}

	c.logger.Debug("state loaded", "tasks", len(tasks), "theme", theme.String())
	c.render()
	return c, nil
}

// SetRenderer replaces the renderer and immediately renders the current state.
func (c *Controller) SetRenderer(r Renderer) {
	c.renderer = r
	c.render()
}

// Status returns the startup status message, if any.
func (c *Controller) Status() string {
	return c.status
}

// State returns a copy of the current state.
func (c *Controller) State() model.AppState {
	return copyState(c.state)
}

// View returns the most recently rendered view.
func (c *Controller) View() View {
	return c.view
}

// Dispatch applies one command: mutate, persist, render.
// Domain no-ops (empty text, unknown id) are not errors.
func (c *Controller) Dispatch(cmd Command) error {
	h, ok := commands[cmd.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	if cmd.Name == CmdFilter && !cmd.Filter.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, cmd.Filter)
	}

	h.apply(&c.state, cmd, c.nextID)
	c.logger.Debug("command applied", "cmd", cmd.Name, "id", cmd.ID, "tasks", len(c.state.Tasks))

	if err := c.persist(h.persist); err != nil {
		c.logger.Error("persist failed", "cmd", cmd.Name, "err", err)
		c.render()
		return err
	}
	c.render()
	return nil
}

func (c *Controller) Add(text string, priority model.Priority) error {
	return c.Dispatch(Command{Name: CmdAdd, Text: text, Priority: priority})
}

func (c *Controller) Toggle(id int64) error {
	return c.Dispatch(Command{Name: CmdToggle, ID: id})
}

func (c *Controller) Delete(id int64) error {
	return c.Dispatch(Command{Name: CmdDelete, ID: id})
}

func (c *Controller) ClearCompleted() error {
	return c.Dispatch(Command{Name: CmdClearCompleted})
}

func (c *Controller) SetFilter(f model.Filter) error {
	return c.Dispatch(Command{Name: CmdFilter, Filter: f})
}

func (c *Controller) ToggleTheme() error {
	return c.Dispatch(Command{Name: CmdToggleTheme})
}

func (c *Controller) persist(target persistTarget) error {
	switch target {
	case persistTasks:
		return store.SaveTasks(c.kv, c.state.Tasks)
	case persistTheme:
		return store.SaveTheme(c.kv, c.state.Theme)
	}
	return nil
}

func (c *Controller) render() {
	c.view = Render(c.state, c.now())
	if c.renderer != nil {
		c.renderer.Render(c.view)
	}
}

// nextID returns a millisecond timestamp, bumped past the newest issued id.
func (c *Controller) nextID() int64 {
	id := c.now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func addTask(s *model.AppState, cmd Command, nextID func() int64) {
	text := strings.TrimSpace(cmd.Text)
	if text == "" {
		return
	}
	task := model.Task{
		ID:        nextID(),
		Text:      text,
		Completed: false,
		Priority:  cmd.Priority.Normalize(),
	}
	s.Tasks = append([]model.Task{task}, s.Tasks...)
}

func toggleTask(s *model.AppState, cmd Command, _ func() int64) {
	for i := range s.Tasks {
		if s.Tasks[i].ID == cmd.ID {
			s.Tasks[i].Completed = !s.Tasks[i].Completed
		}
	}
}

func deleteTask(s *model.AppState, cmd Command, _ func() int64) {
	s.Tasks = keepTasks(s.Tasks, func(t model.Task) bool { return t.ID != cmd.ID })
}

func clearCompleted(s *model.AppState, _ Command, _ func() int64) {
	s.Tasks = keepTasks(s.Tasks, func(t model.Task) bool { return !t.Completed })
}

func setFilter(s *model.AppState, cmd Command, _ func() int64) {
	s.Filter = cmd.Filter
}

func toggleTheme(s *model.AppState, _ Command, _ func() int64) {
	s.Theme = !s.Theme
}

func keepTasks(tasks []model.Task, keep func(model.Task) bool) []model.Task {
	kept := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			kept = append(kept, t)
		}
	}
	return kept
}

func copyState(state model.AppState) model.AppState {
	tasks := make([]model.Task, len(state.Tasks))
	copy(tasks, state.Tasks)
	out := state
	out.Tasks = tasks
	return out
}

// ParsePriority validates user-provided priority text.
func ParsePriority(s string) (model.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return model.PriorityLow, nil
	}
	p, ok := model.ParsePriority(s)
	if !ok {
		return model.PriorityLow, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}

// ParseFilter validates user-provided filter text.
func ParseFilter(s string) (model.Filter, error) {
	f := model.Filter(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return model.FilterAll, nil
	}
	if !f.Valid() {
		return model.FilterAll, fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
	return f, nil
}
