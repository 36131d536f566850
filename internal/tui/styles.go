package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#1F4E79")
	muted       = lipgloss.Color("#7A8087")
	warning     = lipgloss.Color("#FFC107")
	destructive = lipgloss.Color("#E53935")
	success     = lipgloss.Color("#8BC34A")
)

// Styles groups the lipgloss styles the page uses.
type Styles struct {
	Header       lipgloss.Style
	MockBadge    lipgloss.Style
	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
	Title        lipgloss.Style
	Label        lipgloss.Style
	Muted        lipgloss.Style
	Warning      lipgloss.Style
	Error        lipgloss.Style
	Selected     lipgloss.Style
	Help         lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(accent).Padding(0, 1),
		MockBadge:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#000000")).Background(warning).Padding(0, 1),
		Panel:        panel,
		FocusedPanel: panel.BorderForeground(success),
		Title:        lipgloss.NewStyle().Bold(true).Foreground(accent),
		Label:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Foreground(muted),
		Warning:      lipgloss.NewStyle().Foreground(warning),
		Error:        lipgloss.NewStyle().Foreground(destructive),
		Selected:     lipgloss.NewStyle().Bold(true).Foreground(success),
		Help:         lipgloss.NewStyle().Foreground(muted),
	}
}
