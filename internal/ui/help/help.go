package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key         string
	Description string
}

// Section is a titled group of key bindings
type Section struct {
	Title string
	Keys  []KeyBinding
}

// GetGlobalKeys returns global key bindings
func GetGlobalKeys() []KeyBinding {
	return []KeyBinding{
		{"?", "Toggle help"},
		{"q, Ctrl+C", "Quit application"},
		{"Esc/Enter", "Dismiss error"},
		{"a", "Apply filters"},
		{"y", "Copy query to clipboard"},
		{"Ctrl+S", "Save filters as favorite"},
		{"f", "Show favorites"},
	}
}

// GetDetailsKeys returns key bindings active while a popover is open
func GetDetailsKeys() []KeyBinding {
	return []KeyBinding{
		{"Enter", "Apply value / choose item"},
		{"Tab", "Switch range bound"},
		{"↑/k ↓/j", "Move in lists"},
		{"Esc", "Close popover"},
	}
}

// FromBindings converts bubbles key bindings to help entries
func FromBindings(bindings []key.Binding) []KeyBinding {
	keys := make([]KeyBinding, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		keys = append(keys, KeyBinding{Key: h.Key, Description: h.Desc})
	}
	return keys
}

// Sections returns the help sections, with bar describing the filter bar keys
func Sections(bar []key.Binding) []Section {
	return []Section{
		{Title: "Global", Keys: GetGlobalKeys()},
		{Title: "Filter bar", Keys: FromBindings(bar)},
		{Title: "Details", Keys: GetDetailsKeys()},
	}
}

// Render creates the help view
func Render(width, height int, th theme.Theme, bar []key.Binding) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.BorderFocused).
		Padding(1, 0)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(th.Info).
		Padding(0, 0, 0, 2)

	keyStyle := lipgloss.NewStyle().
		Foreground(th.Warning).
		Width(20)

	descStyle := lipgloss.NewStyle().
		Foreground(th.Foreground)

	var b strings.Builder

	b.WriteString(titleStyle.Render("lazyfilter - Keyboard Shortcuts"))
	b.WriteString("\n\n")

	for _, section := range Sections(bar) {
		b.WriteString(sectionStyle.Render(section.Title))
		b.WriteString("\n")
		for _, kb := range section.Keys {
			b.WriteString("  ")
			b.WriteString(keyStyle.Render(kb.Key))
			b.WriteString(descStyle.Render(kb.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Press '?' or Esc to close help"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(th.BorderFocused).
		Padding(1, 2).
		Width(max(width-4, 0)).
		Height(max(height-4, 0))

	return boxStyle.Render(b.String())
}
