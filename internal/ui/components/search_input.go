package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rebeliceyang/lazyfilter/internal/ui/theme"
)

// SearchInputMsg is sent when a search should be executed
type SearchInputMsg struct {
	Query string
}

// CloseSearchMsg is sent when search should be closed
type CloseSearchMsg struct{}

// SearchInput provides a search input box
type SearchInput struct {
	Input   textinput.Model
	Theme   theme.Theme
	Width   int
	Visible bool
}

// NewSearchInput creates a new search input
func NewSearchInput(th theme.Theme) *SearchInput {
	ti := textinput.New()
	ti.Placeholder = "Search name, query or tag..."
	ti.CharLimit = 256
	ti.Width = 40

	return &SearchInput{
		Input: ti,
		Theme: th,
		Width: 50,
	}
}

// Show makes the input visible and focused
func (s *SearchInput) Show() {
	s.Visible = true
	s.Input.Focus()
}

// Reset clears and hides the search input
func (s *SearchInput) Reset() {
	s.Input.SetValue("")
	s.Input.Blur()
	s.Visible = false
}

// Update handles messages
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			query := s.Input.Value()
			s.Input.Blur()
			s.Visible = false
			return s, func() tea.Msg {
				return SearchInputMsg{Query: query}
			}
		case "esc":
			s.Reset()
			return s, func() tea.Msg {
				return CloseSearchMsg{}
			}
		}
	}

	var cmd tea.Cmd
	s.Input, cmd = s.Input.Update(msg)
	return s, cmd
}

// View renders the search input
func (s *SearchInput) View() string {
	s.Input.Width = max(s.Width-10, 20)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(s.Theme.BorderFocused).
		Padding(0, 1).
		Width(s.Width)

	helpStyle := lipgloss.NewStyle().
		Foreground(s.Theme.Muted).
		Italic(true)

	content := "/ " + s.Input.View()
	helpText := helpStyle.Render("Enter: search │ Esc: clear")

	return boxStyle.Render(content + "\n" + helpText)
}
