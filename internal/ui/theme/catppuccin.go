package theme

import "github.com/charmbracelet/lipgloss"

// CatppuccinMochaTheme returns the Catppuccin Mocha theme
// A soothing pastel theme for cozy TUIs
// Based on: https://github.com/catppuccin/catppuccin
func CatppuccinMochaTheme() Theme {
	return Theme{
		Name: "catppuccin-mocha",

		// Background colors
		Background: lipgloss.Color("#1e1e2e"), // Base
		Foreground: lipgloss.Color("#cdd6f4"), // Text

		// UI elements
		Border:        lipgloss.Color("#45475a"), // Surface1
		BorderFocused: lipgloss.Color("#89b4fa"), // Blue
		Selection:     lipgloss.Color("#313244"), // Surface0
		Cursor:        lipgloss.Color("#f5e0dc"), // Rosewater
		Muted:         lipgloss.Color("#6c7086"), // Overlay0

		// Status colors
		Success: lipgloss.Color("#a6e3a1"), // Green
		Warning: lipgloss.Color("#f9e2af"), // Yellow
		Error:   lipgloss.Color("#f38ba8"), // Red
		Info:    lipgloss.Color("#89dceb"), // Sky

		// Filter chips
		ChipBackground:       lipgloss.Color("#313244"), // Surface0
		ChipForeground:       lipgloss.Color("#cdd6f4"), // Text
		ChipActiveBackground: lipgloss.Color("#45475a"), // Surface1
		ChipValue:            lipgloss.Color("#89b4fa"), // Blue
		ChipDefaultValue:     lipgloss.Color("#7f849c"), // Overlay1
		ChipOptional:         lipgloss.Color("#fab387"), // Peach
		ChipDisable:          lipgloss.Color("#f38ba8"), // Red
		MoreCriteria:         lipgloss.Color("#94e2d5"), // Teal
		Favorite:             lipgloss.Color("#f9e2af"), // Yellow

		// Details popover
		PopoverBorder: lipgloss.Color("#b4befe"), // Lavender
		PopoverTitle:  lipgloss.Color("#cba6f7"), // Mauve
		Placeholder:   lipgloss.Color("#585b70"), // Surface2
	}
}

// Additional Catppuccin colors available for future use:
// Flamingo:  #f2cdcd
// Pink:      #f5c2e7
// Maroon:    #eba0ac
// Sapphire:  #74c7ec
// Subtext1:  #bac2de
// Subtext0:  #a6adc8
// Overlay2:  #9399b2
// Mantle:    #181825
// Crust:     #11111b
