package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestContentWidthTracksTerminal(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.width = 120

	if got := m.contentWidth(); got != 116 {
		t.Fatalf("expected content width 116, got %d", got)
	}
	if got := m.inputWidth(); got != 102 {
		t.Fatalf("expected input width 102, got %d", got)
	}
}

func TestContentWidthSmallTerminalStillValid(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.width = 12

	if got := m.contentWidth(); got != 20 {
		t.Fatalf("expected content width floor of 20, got %d", got)
	}
	if got := m.inputWidth(); got != 10 {
		t.Fatalf("expected input width floor of 10, got %d", got)
	}

	m.width = 0
	if got := m.contentWidth(); got != 60 {
		t.Fatalf("expected default width before first resize, got %d", got)
	}
}

func TestJoinEdgesPadsToWidth(t *testing.T) {
	got := joinEdges("left", "right", 20)
	if lipgloss.Width(got) != 20 {
		t.Fatalf("expected width 20, got %d (%q)", lipgloss.Width(got), got)
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Fatalf("unexpected edges %q", got)
	}

	tight := joinEdges("left", "right", 3)
	if tight != "left right" {
		t.Fatalf("expected single-space gap when too narrow, got %q", tight)
	}
}

func TestLongTaskTextIsTruncatedInRows(t *testing.T) {
	m, _, _ := newTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 20})
	addTask(m, strings.Repeat("x", 80), 0)

	if !strings.Contains(m.View(), "…") {
		t.Fatalf("expected long text to be truncated:\n%s", m.View())
	}
}
