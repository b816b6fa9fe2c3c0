package favorites

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rebeliceyang/lazyfilter/internal/export"
	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

// ErrFavoriteNotFound is returned when no favorite has the requested ID
var ErrFavoriteNotFound = errors.New("favorite not found")

// FileName is the name of the favorites file inside the config directory
const FileName = "favorites.yaml"

// Manager manages saved filter queries
type Manager struct {
	path      string
	favorites []models.Favorite
}

// NewManager creates a new favorites manager
func NewManager(configDir string) (*Manager, error) {
	path := filepath.Join(configDir, FileName)

	m := &Manager{
		path:      path,
		favorites: []models.Favorite{},
	}

	if _, err := os.Stat(path); err == nil {
		if err := m.Load(); err != nil {
			return nil, fmt.Errorf("failed to load favorites: %w", err)
		}
	}

	return m, nil
}

// Path returns the favorites file location
func (m *Manager) Path() string {
	return m.path
}

// Load loads favorites from YAML file
func (m *Manager) Load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("failed to read favorites file: %w", err)
	}

	var favorites []models.Favorite
	if err := yaml.Unmarshal(data, &favorites); err != nil {
		return fmt.Errorf("failed to parse favorites: %w", err)
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	m.favorites = favorites

	return nil
}

// Save saves favorites to YAML file
func (m *Manager) Save() error {
	data, err := yaml.Marshal(m.favorites)
	if err != nil {
		return fmt.Errorf("failed to marshal favorites: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write favorites file: %w", err)
	}

	return nil
}

func (m *Manager) validate(id, name, query string) error {
	if name == "" {
		return fmt.Errorf("favorite name cannot be empty")
	}
	if query == "" {
		return fmt.Errorf("favorite query cannot be empty")
	}
	if _, err := filter.ParseQuery(query); err != nil {
		return fmt.Errorf("invalid favorite query: %w", err)
	}

	for _, fav := range m.favorites {
		if fav.ID != id && strings.EqualFold(fav.Name, name) {
			return fmt.Errorf("a favorite with the name '%s' already exists (names are case-insensitive)", name)
		}
	}
	return nil
}

// Add saves query as a new favorite
func (m *Manager) Add(name, description, query string, tags []string) (*models.Favorite, error) {
	name = strings.TrimSpace(name)
	query = strings.TrimSpace(query)

	if err := m.validate("", name, query); err != nil {
		return nil, err
	}

	now := time.Now()
	favorite := models.Favorite{
		ID:          uuid.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Query:       query,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	m.favorites = append(m.favorites, favorite)

	if err := m.Save(); err != nil {
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	return &favorite, nil
}

// Update updates an existing favorite
func (m *Manager) Update(id string, name, description, query string, tags []string) error {
	name = strings.TrimSpace(name)
	query = strings.TrimSpace(query)

	if err := m.validate(id, name, query); err != nil {
		return err
	}

	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFavoriteNotFound, id)
	}

	m.favorites[i].Name = name
	m.favorites[i].Description = strings.TrimSpace(description)
	m.favorites[i].Query = query
	m.favorites[i].Tags = tags
	m.favorites[i].UpdatedAt = time.Now()
	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// Delete deletes a favorite by ID
func (m *Manager) Delete(id string) error {
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFavoriteNotFound, id)
	}

	m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save favorites after deletion: %w", err)
	}
	return nil
}

func (m *Manager) index(id string) int {
	for i, fav := range m.favorites {
		if fav.ID == id {
			return i
		}
	}
	return -1
}

// Get returns a favorite by ID
func (m *Manager) Get(id string) (*models.Favorite, error) {
	i := m.index(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrFavoriteNotFound, id)
	}
	fav := m.favorites[i]
	return &fav, nil
}

// List returns a copy of all favorites in insertion order
func (m *Manager) List() []models.Favorite {
	out := make([]models.Favorite, len(m.favorites))
	copy(out, m.favorites)
	return out
}

// Search searches favorites by name, description, query or tags
func (m *Manager) Search(query string) []models.Favorite {
	if query == "" {
		return m.List()
	}

	query = strings.ToLower(query)
	var results []models.Favorite

	for _, fav := range m.favorites {
		if strings.Contains(strings.ToLower(fav.Name), query) ||
			strings.Contains(strings.ToLower(fav.Description), query) ||
			strings.Contains(strings.ToLower(fav.Query), query) {
			results = append(results, fav)
			continue
		}

		for _, tag := range fav.Tags {
			if strings.Contains(strings.ToLower(tag), query) {
				results = append(results, fav)
				break
			}
		}
	}

	return results
}

// RecordUsage updates usage statistics for a favorite
func (m *Manager) RecordUsage(id string) error {
	i := m.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrFavoriteNotFound, id)
	}

	m.favorites[i].UsageCount++
	m.favorites[i].LastUsed = time.Now()
	if err := m.Save(); err != nil {
		return fmt.Errorf("failed to save usage statistics: %w", err)
	}
	return nil
}

// GetMostUsed returns the most frequently used favorites
func (m *Manager) GetMostUsed(limit int) []models.Favorite {
	sorted := m.List()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UsageCount > sorted[j].UsageCount
	})
	return head(sorted, limit)
}

// GetRecent returns the most recently used favorites
func (m *Manager) GetRecent(limit int) []models.Favorite {
	sorted := m.List()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastUsed.After(sorted[j].LastUsed)
	})
	return head(sorted, limit)
}

func head(favorites []models.Favorite, limit int) []models.Favorite {
	if limit > 0 && limit < len(favorites) {
		return favorites[:limit]
	}
	return favorites
}

// Export writes all favorites to w in format, "csv" or "json"
func (m *Manager) Export(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case "csv":
		return export.WriteCSV(w, m.favorites)
	case "json", "":
		return export.WriteJSON(w, m.favorites)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// ExportToCSV exports all favorites to a CSV file next to favorites.yaml
// unless customPath is given.
func (m *Manager) ExportToCSV(customPath ...string) (string, error) {
	return m.exportTo("favorites.csv", export.ExportToCSV, customPath)
}

// ExportToJSON exports all favorites to a JSON file next to favorites.yaml
// unless customPath is given.
func (m *Manager) ExportToJSON(customPath ...string) (string, error) {
	return m.exportTo("favorites.json", export.ExportToJSON, customPath)
}

func (m *Manager) exportTo(name string, fn func([]models.Favorite, string) error, customPath []string) (string, error) {
	if len(m.favorites) == 0 {
		return "", fmt.Errorf("no favorites to export")
	}

	path := filepath.Join(filepath.Dir(m.path), name)
	if len(customPath) > 0 && customPath[0] != "" {
		path = customPath[0]
	}

	if err := fn(m.favorites, path); err != nil {
		return "", fmt.Errorf("failed to export favorites: %w", err)
	}
	return path, nil
}
