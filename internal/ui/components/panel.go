package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// Panel is a bordered box with an optional title and footer line
type Panel struct {
	Title   string
	Content string
	Footer  string
	Width   int
	Height  int
	Focused bool
	Theme   theme.Theme
}

// View renders the panel
func (p *Panel) View() string {
	if p.Width <= 0 || p.Height <= 0 {
		return ""
	}

	border := p.Theme.Border
	if p.Focused {
		border = p.Theme.BorderFocused
	}

	var lines []string
	if p.Title != "" {
		titleStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		lines = append(lines, titleStyle.Render(p.Title))
	}
	lines = append(lines, p.Content)

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)
	if p.Footer != "" {
		footer := lipgloss.NewStyle().Foreground(p.Theme.Muted).Render(p.Footer)
		// keep the footer on the last line of the box
		gap := p.Height - lipgloss.Height(body) - 1
		for i := 0; i < gap; i++ {
			body += "\n"
		}
		body += "\n" + footer
	}

	return lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Render(body)
}
