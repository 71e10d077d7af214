package model

import (
	"encoding/json"
	"strings"
)

// Filter represents which tasks are shown.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// Valid reports whether f is a known filter.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Priority is a task priority label.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority maps free text to a priority. ok is false for unknown values.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(strings.ToLower(strings.TrimSpace(s))) {
	case PriorityLow:
		return PriorityLow, true
	case PriorityMedium:
		return PriorityMedium, true
	case PriorityHigh:
		return PriorityHigh, true
	}
	return PriorityLow, false
}

// Normalize returns p, or low when p is empty or unknown.
func (p Priority) Normalize() Priority {
	n, _ := ParsePriority(string(p))
	return n
}

// Next cycles low -> medium -> high -> low.
func (p Priority) Next() Priority {
	switch p.Normalize() {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return PriorityLow
	}
}

// UnmarshalJSON accepts any JSON value. Anything but a known priority string
// decodes as low.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*p = PriorityLow
		return nil
	}
	*p = Priority(s).Normalize()
	return nil
}

// Theme is the presentation mode.
type Theme bool

const (
	ThemeLight Theme = false
	ThemeDark  Theme = true
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Task is an individual todo item.
type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
}

// AppState is the whole session state. Only Tasks and Theme are persisted.
type AppState struct {
	Tasks  []Task
	Filter Filter
	Theme  Theme
}

// NewState returns an initialized empty state.
func NewState() AppState {
	return AppState{
		Tasks:  []Task{},
		Filter: FilterAll,
		Theme:  ThemeLight,
	}
}
