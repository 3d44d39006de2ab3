package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/scribe/internal/format"
)

var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8A8A8")).
			Background(lipgloss.Color("#303030"))

	activeButtonStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#5F5FD7"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#D0D0D0")).
			Background(lipgloss.Color("#262626"))

	toastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87D787"))

	errorToastStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))
)

// surfaceStyle paints empty cells of the text area.
func surfaceStyle(bg format.Color) lipgloss.Style {
	return lipgloss.NewStyle().Background(lipgloss.Color(string(bg)))
}

// textStyle renders document text with the whole-document format. Font
// family and size have no terminal equivalent and only show in the status
// bar.
func textStyle(f format.State, bg format.Color) lipgloss.Style {
	return surfaceStyle(bg).
		Foreground(lipgloss.Color(string(f.Color))).
		Bold(f.Bold).
		Italic(f.Italic).
		Underline(f.Underline)
}

// caretStyle draws the caret as a reversed cell.
func caretStyle(f format.State, bg format.Color) lipgloss.Style {
	return textStyle(f, bg).Reverse(true)
}
