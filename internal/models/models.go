package models

import "time"

// AppState holds the application state
type AppState struct {
	Width    int
	Height   int
	ViewMode ViewMode

	// Query currently expressed by the filter bar
	Query       string
	LastApplied string
	StatusLine  string
}

// ViewMode identifies the current view
type ViewMode int

const (
	NormalMode ViewMode = iota
	HelpMode
	FavoritesMode
)

// NewAppState creates a new AppState with defaults
func NewAppState() AppState {
	return AppState{
		Width:    80,
		Height:   24,
		ViewMode: NormalMode,
	}
}

// Favorite is a saved filter query
type Favorite struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Query       string    `yaml:"query" json:"query"`
	Tags        []string  `yaml:"tags" json:"tags"`
	CreatedAt   time.Time `yaml:"created_at" json:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at" json:"updated_at"`
	LastUsed    time.Time `yaml:"last_used" json:"last_used"`
	UsageCount  int       `yaml:"usage_count" json:"usage_count"`
}
