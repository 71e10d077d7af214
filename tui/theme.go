package tui

import (
	"github.com/charmbracelet/lipgloss"

	"tasklist/model"
)

type palette struct {
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Accent   lipgloss.Color
	Border   lipgloss.Color
	Selected lipgloss.Color
	Error    lipgloss.Color
	Low      lipgloss.Color
	Medium   lipgloss.Color
	High     lipgloss.Color
}

var (
	lightPalette = palette{
		Text:     lipgloss.Color("#1F2933"),
		Muted:    lipgloss.Color("#7B8794"),
		Accent:   lipgloss.Color("#6C5CE7"),
		Border:   lipgloss.Color("#CBD2D9"),
		Selected: lipgloss.Color("#E4E7EB"),
		Error:    lipgloss.Color("#D64545"),
		Low:      lipgloss.Color("#3EBD93"),
		Medium:   lipgloss.Color("#F0B429"),
		High:     lipgloss.Color("#E12D39"),
	}
	darkPalette = palette{
		Text:     lipgloss.Color("#E4E7EB"),
		Muted:    lipgloss.Color("#9AA5B1"),
		Accent:   lipgloss.Color("#A29BFE"),
		Border:   lipgloss.Color("#3E4C59"),
		Selected: lipgloss.Color("#323F4B"),
		Error:    lipgloss.Color("#FF6B6B"),
		Low:      lipgloss.Color("#65D6AD"),
		Medium:   lipgloss.Color("#FCE588"),
		High:     lipgloss.Color("#FF9B9B"),
	}
)

type styles struct {
	palette  palette
	Title    lipgloss.Style
	Date     lipgloss.Style
	Frame    lipgloss.Style
	Row      lipgloss.Style
	Selected lipgloss.Style
	Done     lipgloss.Style
	Filter   lipgloss.Style
	Active   lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

func stylesFor(theme model.Theme) styles {
	p := lightPalette
	if theme == model.ThemeDark {
		p = darkPalette
	}
	return styles{
		palette:  p,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Date:     lipgloss.NewStyle().Foreground(p.Muted),
		Frame:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Row:      lipgloss.NewStyle().Foreground(p.Text),
		Selected: lipgloss.NewStyle().Foreground(p.Text).Background(p.Selected).Bold(true),
		Done:     lipgloss.NewStyle().Foreground(p.Muted).Strikethrough(true),
		Filter:   lipgloss.NewStyle().Foreground(p.Muted).Padding(0, 1),
		Active:   lipgloss.NewStyle().Foreground(p.Accent).Bold(true).Underline(true).Padding(0, 1),
		Muted:    lipgloss.NewStyle().Foreground(p.Muted),
		Status:   lipgloss.NewStyle().Foreground(p.Low),
		Error:    lipgloss.NewStyle().Foreground(p.Error),
	}
}

// priorityBar is the colored marker drawn in front of a row.
func (s styles) priorityBar(p model.Priority) string {
	return s.priorityStyle(p).Render("▌")
}

func (s styles) priorityTag(p model.Priority) string {
	return s.priorityStyle(p).Render("[" + string(p.Normalize()) + "]")
}

func (s styles) priorityStyle(p model.Priority) lipgloss.Style {
	switch p.Normalize() {
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(s.palette.Medium)
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(s.palette.High)
	}
	return lipgloss.NewStyle().Foreground(s.palette.Low)
}
