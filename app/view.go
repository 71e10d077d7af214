package app

import (
	"fmt"
	"time"

	"tasklist/model"
)

// Glyphs shown on the theme toggle.
const (
	SunGlyph  = "☀"
	MoonGlyph = "☾"
)

// Row is one visible task.
type Row struct {
	ID        int64
	Text      string
	Completed bool
	Priority  model.Priority
	// Class mirrors the presentation classes of a task row, e.g.
	// "task-item completed priority-high".
	Class string
}

// View is everything a front end needs to draw one frame.
type View struct {
	Rows      []Row
	Remaining int
	Label     string
	Total     int
	Filter    model.Filter
	Theme     model.Theme
	Glyph     string
	Date      string
}

// Render builds the view for state. It rebuilds every row on each call.
func Render(state model.AppState, now time.Time) View {
	filter := state.Filter
	if !filter.Valid() {
		filter = model.FilterAll
	}

	rows := make([]Row, 0, len(state.Tasks))
	for _, t := range state.Tasks {
		if !matchesFilter(filter, t.Completed) {
			continue
		}
		rows = append(rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Priority:  t.Priority.Normalize(),
			Class:     rowClass(t),
		})
	}

	remaining := RemainingCount(state.Tasks)
	glyph := SunGlyph
	if state.Theme == model.ThemeDark {
		glyph = MoonGlyph
	}

	return View{
		Rows:      rows,
		Remaining: remaining,
		Label:     RemainingLabel(remaining),
		Total:     len(state.Tasks),
		Filter:    filter,
		Theme:     state.Theme,
		Glyph:     glyph,
		Date:      now.Format("Monday, Jan 2"),
	}
}

// RemainingCount counts tasks that are not completed, regardless of filter.
func RemainingCount(tasks []model.Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// RemainingLabel formats "1 task remaining" / "N tasks remaining".
func RemainingLabel(n int) string {
	if n == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", n)
}

func matchesFilter(filter model.Filter, completed bool) bool {
	switch filter {
	case model.FilterCompleted:
		return completed
	case model.FilterActive:
		return !completed
	default:
		return true
	}
}

func rowClass(t model.Task) string {
	class := "task-item"
	if t.Completed {
		class += " completed"
	}
	return class + " priority-" + string(t.Priority.Normalize())
}
