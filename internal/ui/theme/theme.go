package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme and styling
type Theme struct {
	Name string

	// Background colors
	Background lipgloss.Color
	Foreground lipgloss.Color

	// UI elements
	Border        lipgloss.Color
	BorderFocused lipgloss.Color
	Selection     lipgloss.Color
	Cursor        lipgloss.Color
	Muted         lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	// Filter chips
	ChipBackground       lipgloss.Color
	ChipForeground       lipgloss.Color
	ChipActiveBackground lipgloss.Color
	ChipValue            lipgloss.Color
	ChipDefaultValue     lipgloss.Color
	ChipOptional         lipgloss.Color
	ChipDisable          lipgloss.Color
	MoreCriteria         lipgloss.Color
	Favorite             lipgloss.Color

	// Details popover
	PopoverBorder lipgloss.Color
	PopoverTitle  lipgloss.Color
	Placeholder   lipgloss.Color
}

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin", "catppuccin-mocha":
		return CatppuccinMochaTheme()
	case "default":
		return DefaultTheme()
	default:
		return DefaultTheme()
	}
}
