package tui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"tasklist/app"
	"tasklist/model"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeInput
)

// Options configures the terminal UI.
type Options struct {
	DefaultPriority model.Priority
	StartupStatus   string
	Logger          *log.Logger
	// Copy writes text to the system clipboard. Defaults to atotto/clipboard.
	Copy func(string) error
}

// Model is the bubbletea model. Every user action goes through the
// controller's Dispatch; the controller pushes the rebuilt view back here.
type Model struct {
	ctrl   *app.Controller
	view   app.View
	keys   keyMap
	help   help.Model
	input  textinput.Model
	logger *log.Logger
	copyFn func(string) error

	mode     uiMode
	cursor   int
	priority model.Priority

	status    string
	statusErr bool

	width  int
	height int
}

func NewModel(ctrl *app.Controller, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 0
	ti.Prompt = "› "

	m := &Model{
		ctrl:     ctrl,
		keys:     defaultKeyMap(),
		help:     help.New(),
		input:    ti,
		logger:   opts.Logger,
		copyFn:   opts.Copy,
		mode:     modeNormal,
		priority: opts.DefaultPriority.Normalize(),
		status:   strings.TrimSpace(opts.StartupStatus),
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.copyFn == nil {
		m.copyFn = clipboard.WriteAll
	}
	if m.status != "" {
		m.statusErr = true
	}
	ctrl.SetRenderer(app.RenderFunc(m.onRender))
	return m
}

func (m *Model) onRender(v app.View) {
	m.view = v
	m.clampCursor()
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = m.inputWidth()
		return m, nil
	case tea.KeyMsg:
		if m.mode == modeInput {
			return m, m.updateInputMode(msg)
		}
		return m, m.updateNormalMode(msg)
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Add):
		m.mode = modeInput
		m.setStatus("", false)
		return m.input.Focus()
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.selectedRow(); ok {
			m.dispatch(app.Command{Name: app.CmdToggle, ID: row.ID}, "")
		}
	case key.Matches(msg, m.keys.Delete):
		if row, ok := m.selectedRow(); ok {
			m.dispatch(app.Command{Name: app.CmdDelete, ID: row.ID}, "Deleted \""+truncateRunes(row.Text, 40)+"\"")
		}
	case key.Matches(msg, m.keys.ClearCompleted):
		before := m.view.Total
		m.dispatch(app.Command{Name: app.CmdClearCompleted}, "")
		if removed := before - m.view.Total; removed > 0 && !m.statusErr {
			m.setStatus(fmt.Sprintf("Cleared %d completed", removed), false)
		}
	case key.Matches(msg, m.keys.CycleFilter):
		m.setFilter(nextFilter(m.view.Filter))
	case key.Matches(msg, m.keys.FilterAll):
		m.setFilter(model.FilterAll)
	case key.Matches(msg, m.keys.FilterActive):
		m.setFilter(model.FilterActive)
	case key.Matches(msg, m.keys.FilterDone):
		m.setFilter(model.FilterCompleted)
	case key.Matches(msg, m.keys.Theme):
		m.dispatch(app.Command{Name: app.CmdToggleTheme}, "")
	case key.Matches(msg, m.keys.Copy):
		m.copyRemaining()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) updateInputMode(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeNormal
		m.input.Blur()
		m.input.Reset()
		return nil
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		if strings.TrimSpace(text) == "" {
			return nil
		}
		if m.dispatch(app.Command{Name: app.CmdAdd, Text: text, Priority: m.priority}, "") {
			m.input.Reset()
			m.cursor = 0
		}
		return nil
	case key.Matches(msg, m.keys.Priority):
		m.priority = m.priority.Next()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// dispatch runs one controller command and reports success.
func (m *Model) dispatch(cmd app.Command, success string) bool {
	if err := m.ctrl.Dispatch(cmd); err != nil {
		m.logger.Error("command failed", "cmd", cmd.Name, "err", err)
		m.setStatus("Error: "+err.Error(), true)
		return false
	}
	m.setStatus(success, false)
	return true
}

func (m *Model) setFilter(f model.Filter) {
	if m.dispatch(app.Command{Name: app.CmdFilter, Filter: f}, "") {
		m.cursor = 0
	}
}

func (m *Model) copyRemaining() {
	lines := make([]string, 0, len(m.view.Rows))
	for _, t := range m.ctrl.State().Tasks {
		if !t.Completed {
			lines = append(lines, "- "+t.Text)
		}
	}
	if len(lines) == 0 {
		m.setStatus("Nothing to copy", false)
		return
	}
	if err := m.copyFn(strings.Join(lines, "\n")); err != nil {
		m.logger.Warn("clipboard write failed", "err", err)
		m.setStatus("Clipboard unavailable: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Copied %d tasks", len(lines)), false)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) moveCursor(delta int) {
	if len(m.view.Rows) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.view.Rows)-1)
}

func (m *Model) clampCursor() {
	if len(m.view.Rows) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(m.view.Rows)-1)
}

func (m *Model) selectedRow() (app.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return app.Row{}, false
	}
	return m.view.Rows[m.cursor], true
}

func (m *Model) View() string {
	st := stylesFor(m.view.Theme)
	width := m.contentWidth()

	header := st.Title.Render("Tasks") + "  " + st.Date.Render(m.view.Date)
	glyph := st.Muted.Render(m.view.Glyph + " " + m.view.Theme.String())
	header = joinEdges(header, glyph, width)

	inputLine := m.input.View() + "  " + st.priorityTag(m.priority)
	if m.mode != modeInput {
		inputLine = st.Muted.Render("press a to add a task") + "  " + st.priorityTag(m.priority)
	}

	rows := m.renderRows(st, width)

	footer := joinEdges(
		st.Muted.Render(m.view.Label),
		st.Muted.Render("C clear completed"),
		width,
	)

	body := strings.Join([]string{header, inputLine, m.renderFilters(st), rows, footer}, "\n")
	frame := st.Frame
	if m.width > 0 {
		frame = frame.Width(width + 2)
	}

	parts := []string{frame.Render(body)}
	if m.status != "" {
		style := st.Status
		if m.statusErr {
			style = st.Error
		}
		parts = append(parts, style.Render(m.status))
	}
	if m.mode == modeInput {
		parts = append(parts, m.help.View(inputHelp{m.keys}))
	} else {
		parts = append(parts, m.help.View(m.keys))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderFilters(st styles) string {
	labels := map[model.Filter]string{
		model.FilterAll:       "All",
		model.FilterActive:    "Active",
		model.FilterCompleted: "Completed",
	}
	out := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		style := st.Filter
		if f == m.view.Filter {
			style = st.Active
		}
		out = append(out, style.Render(labels[f]))
	}
	return lipgloss.JoinHorizontal(lipgloss.Left, out...)
}

func (m *Model) renderRows(st styles, width int) string {
	if len(m.view.Rows) == 0 {
		msg := "No tasks yet"
		switch m.view.Filter {
		case model.FilterActive:
			msg = "Nothing left to do"
		case model.FilterCompleted:
			msg = "No completed tasks"
		}
		return st.Muted.Render(msg)
	}

	lines := make([]string, 0, len(m.view.Rows))
	for i, row := range m.view.Rows {
		check := "○"
		if row.Completed {
			check = "●"
		}
		text := truncateRunes(row.Text, width-6)
		textStyle := st.Row
		if row.Completed {
			textStyle = st.Done
		}
		line := st.priorityBar(row.Priority) + " " + check + " " + textStyle.Render(text)
		if i == m.cursor && m.mode == modeNormal {
			line = st.Selected.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 60
	}
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) inputWidth() int {
	w := m.contentWidth() - 14
	if w < 10 {
		w = 10
	}
	return w
}

func joinEdges(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func nextFilter(f model.Filter) model.Filter {
	for i, candidate := range model.Filters {
		if candidate == f {
			return model.Filters[(i+1)%len(model.Filters)]
		}
	}
	return model.FilterAll
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:max-1]) + "…"
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
