package theme

import "github.com/charmbracelet/lipgloss"

// DefaultTheme returns the default dark theme
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		// Background colors
		Background: lipgloss.Color("235"),
		Foreground: lipgloss.Color("252"),

		// UI elements
		Border:        lipgloss.Color("240"),
		BorderFocused: lipgloss.Color("62"),
		Selection:     lipgloss.Color("237"),
		Cursor:        lipgloss.Color("248"),
		Muted:         lipgloss.Color("244"),

		// Status colors
		Success: lipgloss.Color("42"),
		Warning: lipgloss.Color("220"),
		Error:   lipgloss.Color("196"),
		Info:    lipgloss.Color("75"),

		// Filter chips
		ChipBackground:       lipgloss.Color("237"),
		ChipForeground:       lipgloss.Color("252"),
		ChipActiveBackground: lipgloss.Color("62"),
		ChipValue:            lipgloss.Color("117"),
		ChipDefaultValue:     lipgloss.Color("244"),
		ChipOptional:         lipgloss.Color("180"),
		ChipDisable:          lipgloss.Color("203"),
		MoreCriteria:         lipgloss.Color("150"),
		Favorite:             lipgloss.Color("220"),

		// Details popover
		PopoverBorder: lipgloss.Color("62"),
		PopoverTitle:  lipgloss.Color("75"),
		Placeholder:   lipgloss.Color("240"),
	}
}
