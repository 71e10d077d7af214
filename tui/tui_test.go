package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tasklist/app"
	"tasklist/model"
	"tasklist/store"
)

func newTestModel(t *testing.T) (*Model, *app.Controller, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemory()
	ctrl, err := app.Load(kv, app.Options{
		Now: func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) },
	})
	if err != nil {
		t.Fatalf("load controller failed: %v", err)
	}
	m := NewModel(ctrl, Options{DefaultPriority: model.PriorityLow})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m, ctrl, kv
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func addTask(m *Model, text string, priorityTabs int) {
	press(m, "a", text)
	for i := 0; i < priorityTabs; i++ {
		press(m, "tab")
	}
	press(m, "enter", "esc")
}

func TestAddThroughInputPrependsTask(t *testing.T) {
	m, ctrl, _ := newTestModel(t)

	addTask(m, "Buy milk", 2)
	addTask(m, "Call Bob", 1)

	st := ctrl.State()
	if len(st.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(st.Tasks))
	}
	if st.Tasks[0].Text != "Call Bob" || st.Tasks[1].Text != "Buy milk" {
		t.Fatalf("unexpected order: %+v", st.Tasks)
	}
	if st.Tasks[1].Priority != model.PriorityHigh {
		t.Fatalf("expected Buy milk to be high, got %q", st.Tasks[1].Priority)
	}
	// Priority selection carries over between adds.
	if st.Tasks[0].Priority != model.PriorityLow {
		t.Fatalf("expected Call Bob to be low after wrapping, got %q", st.Tasks[0].Priority)
	}
	if !strings.Contains(m.View(), "2 tasks remaining") {
		t.Fatalf("expected remaining label in view:\n%s", m.View())
	}
}

func TestBlankInputIsIgnored(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	press(m, "a", "   ", "enter", "esc")
	if n := len(ctrl.State().Tasks); n != 0 {
		t.Fatalf("expected no tasks, got %d", n)
	}
	if m.mode != modeNormal {
		t.Fatalf("expected normal mode after esc")
	}
}

func TestInputStaysOpenAfterAdd(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	press(m, "a", "first", "enter", "second", "enter")
	if m.mode != modeInput {
		t.Fatalf("expected input mode to stay active after add")
	}
	if n := len(ctrl.State().Tasks); n != 2 {
		t.Fatalf("expected 2 tasks, got %d", n)
	}
	if m.input.Value() != "" {
		t.Fatalf("expected input cleared, got %q", m.input.Value())
	}
}

func TestLongInputIsNotTruncated(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	long := strings.Repeat("word ", 60) + "end"
	press(m, "a", long, "enter", "esc")

	st := ctrl.State()
	if len(st.Tasks) != 1 || st.Tasks[0].Text != long {
		t.Fatalf("expected full %d-char text stored, got %+v", len(long), st.Tasks)
	}
}

func TestToggleDeleteAndFilterKeys(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	addTask(m, "Buy milk", 0)
	addTask(m, "Call Bob", 0)

	// Cursor starts on the newest task.
	press(m, "x")
	st := ctrl.State()
	if !st.Tasks[0].Completed || st.Tasks[1].Completed {
		t.Fatalf("expected only Call Bob completed, got %+v", st.Tasks)
	}
	if !strings.Contains(m.View(), "1 task remaining") {
		t.Fatalf("expected singular label in view")
	}

	press(m, "2")
	if ctrl.View().Filter != model.FilterActive {
		t.Fatalf("expected active filter")
	}
	if rows := ctrl.View().Rows; len(rows) != 1 || rows[0].Text != "Buy milk" {
		t.Fatalf("expected only Buy milk under active, got %+v", rows)
	}

	press(m, "d")
	if n := len(ctrl.State().Tasks); n != 1 || ctrl.State().Tasks[0].Text != "Call Bob" {
		t.Fatalf("expected Buy milk deleted, got %+v", ctrl.State().Tasks)
	}
	if len(ctrl.View().Rows) != 0 {
		t.Fatalf("expected empty active view")
	}
	if !strings.Contains(m.View(), "Nothing left to do") {
		t.Fatalf("expected empty-state message for active filter")
	}
}

func TestClearCompletedKey(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	addTask(m, "a", 0)
	addTask(m, "b", 0)
	addTask(m, "c", 0)
	press(m, "down", "x")

	press(m, "C")
	st := ctrl.State()
	if len(st.Tasks) != 2 || st.Tasks[0].Text != "c" || st.Tasks[1].Text != "a" {
		t.Fatalf("unexpected tasks after clear: %+v", st.Tasks)
	}
	if m.status != "Cleared 1 completed" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCycleFilterWraps(t *testing.T) {
	m, ctrl, _ := newTestModel(t)
	want := []model.Filter{model.FilterActive, model.FilterCompleted, model.FilterAll}
	for _, f := range want {
		press(m, "f")
		if got := ctrl.View().Filter; got != f {
			t.Fatalf("expected %s, got %s", f, got)
		}
	}
}

func TestThemeKeyPersistsAndSwapsGlyph(t *testing.T) {
	m, _, kv := newTestModel(t)
	if !strings.Contains(m.View(), app.SunGlyph) {
		t.Fatalf("expected sun glyph in light theme")
	}
	press(m, "t")
	if raw, _, _ := kv.Get(store.ThemeKey); raw != "true" {
		t.Fatalf("expected darkMode=true, got %q", raw)
	}
	view := m.View()
	if !strings.Contains(view, app.MoonGlyph) || strings.Contains(view, app.SunGlyph) {
		t.Fatalf("expected only the moon glyph in dark theme")
	}
}

func TestCopyRemainingUsesInjectedClipboard(t *testing.T) {
	m, _, _ := newTestModel(t)
	var copied string
	m.copyFn = func(s string) error {
		copied = s
		return nil
	}
	addTask(m, "Buy milk", 0)
	addTask(m, "Call Bob", 0)
	press(m, "x", "y")

	if copied != "- Buy milk" {
		t.Fatalf("unexpected clipboard text %q", copied)
	}

	m.copyFn = func(string) error { return errors.New("no clipboard") }
	press(m, "y")
	if !m.statusErr {
		t.Fatalf("expected error status when clipboard fails")
	}
}

func TestStartupStatusIsShown(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(store.TasksKey, "{broken")
	ctrl, err := app.Load(kv, app.Options{})
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	m := NewModel(ctrl, Options{StartupStatus: ctrl.Status()})
	if !strings.Contains(m.View(), "unreadable") {
		t.Fatalf("expected startup status in view:\n%s", m.View())
	}
}

func TestQuitKeyReturnsQuitCmd(t *testing.T) {
	m, _, _ := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := truncateRunes("héllo world", 5); got != "héll…" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateRunes("short", 10); got != "short" {
		t.Fatalf("unexpected truncation %q", got)
	}
}
