package tui

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

// Palette (ANSI 256)
const (
	ColorActive   = "170" // magenta: focus, cursor, toggles that are on
	ColorInactive = "240"
	ColorSelected = "236" // row background under the cursor
	ColorNormal   = "245"
	ColorDim      = "241"
	ColorVeryDim  = "242"
	ColorWarning  = "214"
	ColorSuccess  = "28"
	ColorWhite    = "255"
	ColorError    = "196"
	colorStatusBg = "62"
	colorStatusFg = "230"
)

var (
	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorNormal))

	// View titles such as "TABLES (3)"
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	ContentPaddingStyle = lipgloss.NewStyle().Padding(0, 1)

	DimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorVeryDim))
	HelpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))

	// Case and regex chips in the search bar
	ToggleOnStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorActive)).
			Foreground(lipgloss.Color(ColorWhite)).
			Bold(true).
			Padding(0, 1)
	ToggleOffStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)).
			Padding(0, 1)
)

// statusBarStyle colors the status bar by the severity of its message
func statusBarStyle(level slog.Level) lipgloss.Style {
	background := colorStatusBg
	switch {
	case level >= slog.LevelError:
		background = ColorError
	case level >= slog.LevelWarn:
		background = ColorWarning
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(background)).
		Foreground(lipgloss.Color(colorStatusFg)).
		Padding(0, 1)
}
