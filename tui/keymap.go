package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up             key.Binding
	Down           key.Binding
	Add            key.Binding
	Toggle         key.Binding
	Delete         key.Binding
	ClearCompleted key.Binding
	CycleFilter    key.Binding
	FilterAll      key.Binding
	FilterActive   key.Binding
	FilterDone     key.Binding
	Theme          key.Binding
	Copy           key.Binding
	Help           key.Binding
	Quit           key.Binding

	// Input mode.
	Submit   key.Binding
	Priority key.Binding
	Cancel   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:             key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:           key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Add:            key.NewBinding(key.WithKeys("a", "i"), key.WithHelp("a", "add task")),
		Toggle:         key.NewBinding(key.WithKeys("x", " ", "space", "enter"), key.WithHelp("x", "toggle")),
		Delete:         key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		ClearCompleted: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear completed")),
		CycleFilter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next filter")),
		FilterAll:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		FilterActive:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		FilterDone:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Theme:          key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy remaining")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
		Priority: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "priority")),
		Cancel:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "done")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Delete, k.CycleFilter, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Toggle, k.Delete},
		{k.ClearCompleted, k.CycleFilter, k.FilterAll, k.FilterActive, k.FilterDone},
		{k.Theme, k.Copy, k.Help, k.Quit},
	}
}

// inputHelp is shown while the text input has focus.
type inputHelp struct{ k keyMap }

func (h inputHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Submit, h.k.Priority, h.k.Cancel}
}

func (h inputHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
