package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// ErrInvalidFilters is returned when the configured filters cannot form a bar
var ErrInvalidFilters = errors.New("invalid filters")

// moreCriteriaID is taken by the bar's aggregate chip
const moreCriteriaID = "more-criteria"

// Config holds all application configuration
type Config struct {
	UI        UIConfig        `mapstructure:"ui"`
	Filters   []FilterConfig  `mapstructure:"filters"`
	History   HistoryConfig   `mapstructure:"history"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Log       LogConfig       `mapstructure:"log"`

	v *viper.Viper
}

type UIConfig struct {
	Theme        string `mapstructure:"theme"`
	MouseEnabled bool   `mapstructure:"mouse_enabled"`
	ShowHelpBar  bool   `mapstructure:"show_help_bar"`
}

// FilterConfig describes one filter of the bar
type FilterConfig struct {
	ID           string `mapstructure:"id"`
	Name         string `mapstructure:"name"`
	Kind         string `mapstructure:"kind"`
	Property     string `mapstructure:"property"`
	PropertyFrom string `mapstructure:"property_from"`
	PropertyTo   string `mapstructure:"property_to"`
	Value        string `mapstructure:"value"`
	From         string `mapstructure:"from"`
	To           string `mapstructure:"to"`
	Enabled      bool   `mapstructure:"enabled"`
	Optional     bool   `mapstructure:"optional"`
}

type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	MaxEntries int    `mapstructure:"max_entries"`
	Path       string `mapstructure:"path"`
}

type FavoritesConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		UI: UIConfig{
			Theme:        "default",
			MouseEnabled: true,
			ShowHelpBar:  true,
		},
		Filters: DefaultFilters(),
		History: HistoryConfig{
			Enabled:    true,
			MaxEntries: 1000,
		},
		Favorites: FavoritesConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultFilters is the bar shown when no filters are configured
func DefaultFilters() []FilterConfig {
	return []FilterConfig{
		{ID: "favorites", Name: "Favorites", Kind: string(models.KindFavorite), Enabled: true},
		{Name: "Text", Property: "q", Enabled: true},
		{Name: "Status", Property: "statuses", Enabled: true},
		{Name: "Assignee", Property: "assignees", Enabled: true, Optional: true},
		{Name: "Severity", Property: "severities", Enabled: false, Optional: true},
		{Name: "Created", Kind: string(models.KindDateRange), PropertyFrom: "createdAfter", PropertyTo: "createdBefore", Enabled: true, Optional: true},
		{Name: "Lines", Kind: string(models.KindRange), PropertyFrom: "linesFrom", PropertyTo: "linesTo", Enabled: false, Optional: true},
	}
}

// Load loads configuration from files. An empty path searches the default
// locations.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// 1. User config directory
		if configDir, err := GetConfigPath(); err == nil {
			v.AddConfigPath(configDir)
		}
		// 2. Current directory
		v.AddConfigPath(".")
		// 3. Default config directory
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	// Read config (it's okay if file doesn't exist, we have defaults)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	cfg.v = v
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ui.theme", "default")
	v.SetDefault("ui.mouse_enabled", true)
	v.SetDefault("ui.show_help_bar", true)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.max_entries", 1000)
	v.SetDefault("history.path", "")
	v.SetDefault("favorites.enabled", true)
	v.SetDefault("favorites.dir", "")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if len(cfg.Filters) == 0 {
		cfg.Filters = DefaultFilters()
	}
	if _, err := cfg.BuildFilters(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Watch calls fn with the reloaded configuration whenever the config file
// changes. It is a no-op when no file was read.
func (c *Config) Watch(fn func(*Config)) {
	if c.v == nil || c.v.ConfigFileUsed() == "" {
		return
	}
	v := c.v
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			slog.Warn("config reload failed", "file", e.Name, "error", err)
			return
		}
		cfg.v = v
		slog.Info("config reloaded", "file", e.Name, "op", e.Op.String())
		fn(cfg)
	})
	v.WatchConfig()
}

// FileUsed returns the config file that was read, if any
func (c *Config) FileUsed() string {
	if c.v == nil {
		return ""
	}
	return c.v.ConfigFileUsed()
}

// BuildFilters creates the filter models described by the configuration.
// Every filter needs an ID (explicit, or derived from its property) that no
// other filter uses.
func (c *Config) BuildFilters() ([]*models.Filter, error) {
	filters := make([]*models.Filter, 0, len(c.Filters))
	seen := make(map[string]int, len(c.Filters))
	for i, fc := range c.Filters {
		f := fc.Build()
		switch {
		case f.ID == "":
			return nil, fmt.Errorf("%w: filter %d (%q) needs an id, property or property_from", ErrInvalidFilters, i, fc.Name)
		case f.ID == moreCriteriaID:
			return nil, fmt.Errorf("%w: filter %d: id %q is reserved", ErrInvalidFilters, i, f.ID)
		}
		if j, ok := seen[f.ID]; ok {
			return nil, fmt.Errorf("%w: filters %d and %d share id %q", ErrInvalidFilters, j, i, f.ID)
		}
		seen[f.ID] = i
		filters = append(filters, f)
	}
	return filters, nil
}

// Build creates the filter model described by fc
func (fc FilterConfig) Build() *models.Filter {
	kind := models.Kind(fc.Kind)
	var value any
	switch kind {
	case models.KindRange, models.KindDateRange:
		if fc.From != "" || fc.To != "" {
			rv := models.RangeValue{}
			if fc.From != "" {
				rv[fc.PropertyFrom] = fc.From
			}
			if fc.To != "" {
				rv[fc.PropertyTo] = fc.To
			}
			value = rv
		}
	default:
		if fc.Value != "" {
			value = fc.Value
		}
	}

	return models.NewFilter(models.FilterOptions{
		ID:           fc.ID,
		Name:         fc.Name,
		Property:     fc.Property,
		PropertyFrom: fc.PropertyFrom,
		PropertyTo:   fc.PropertyTo,
		Kind:         kind,
		Value:        value,
		Enabled:      fc.Enabled,
		Optional:     fc.Optional,
	})
}

// HistoryPath returns the history database location
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// FavoritesDir returns the directory holding favorites.yaml
func (c *Config) FavoritesDir() (string, error) {
	if c.Favorites.Dir != "" {
		return c.Favorites.Dir, nil
	}
	return GetConfigPath()
}

// GetConfigPath returns the user config directory path
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazyfilter"), nil
}
