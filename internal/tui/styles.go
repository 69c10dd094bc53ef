package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary  lipgloss.Color
	Muted    lipgloss.Color
	Error    lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Normal   lipgloss.Color
	Selected lipgloss.Color
}{
	Primary:  lipgloss.Color("#6C5CE7"), // Purple
	Muted:    lipgloss.Color("#636E72"), // Gray
	Error:    lipgloss.Color("#D63031"), // Red
	Success:  lipgloss.Color("#00B894"), // Green
	Warning:  lipgloss.Color("#FDCB6E"), // Yellow
	Normal:   lipgloss.Color("#DFE6E9"), // Light gray
	Selected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App lipgloss.Style

	HeaderText lipgloss.Style
	HeaderMeta lipgloss.Style

	TaskNormal   lipgloss.Style
	TaskSelected lipgloss.Style
	TaskDone     lipgloss.Style
	TaskDeleted  lipgloss.Style

	ErrorMsg   lipgloss.Style
	StatusMsg  lipgloss.Style
	EmptyMsg   lipgloss.Style
	ConfirmBox lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		HeaderText: lipgloss.NewStyle().Bold(true).Foreground(Colors.Primary),
		HeaderMeta: lipgloss.NewStyle().Foreground(Colors.Muted),

		TaskNormal:   lipgloss.NewStyle().Foreground(Colors.Normal),
		TaskSelected: lipgloss.NewStyle().Bold(true).Foreground(Colors.Selected),
		TaskDone:     lipgloss.NewStyle().Foreground(Colors.Success),
		TaskDeleted:  lipgloss.NewStyle().Foreground(Colors.Muted).Strikethrough(true),

		ErrorMsg:  lipgloss.NewStyle().Foreground(Colors.Error),
		StatusMsg: lipgloss.NewStyle().Foreground(Colors.Success),
		EmptyMsg:  lipgloss.NewStyle().Foreground(Colors.Muted).Italic(true),
		ConfirmBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Padding(0, 1),
	}
}
