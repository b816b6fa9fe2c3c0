package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// ErrorOverlay shows an error message on top of the UI until dismissed
type ErrorOverlay struct {
	Width int
	Theme theme.Theme

	title   string
	message string
}

// NewErrorOverlay creates a new error overlay
func NewErrorOverlay(th theme.Theme) *ErrorOverlay {
	return &ErrorOverlay{
		Width: 60,
		Theme: th,
	}
}

// SetError sets the error to display
func (e *ErrorOverlay) SetError(title, message string) {
	e.title = title
	e.message = message
}

// Title returns the current error title
func (e *ErrorOverlay) Title() string {
	return e.title
}

// Message returns the current error message
func (e *ErrorOverlay) Message() string {
	return e.message
}

// View renders the overlay
func (e *ErrorOverlay) View() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Error).
		Bold(true)

	messageStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Foreground).
		Width(e.Width - 4)

	hintStyle := lipgloss.NewStyle().
		Foreground(e.Theme.Muted).
		Italic(true)

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("✗ "+e.title),
		"",
		messageStyle.Render(e.message),
		"",
		hintStyle.Render("Enter/Esc: dismiss"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(e.Theme.Error).
		Padding(1, 2).
		Width(e.Width).
		Render(content)
}
