package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Sources of an applied query
const (
	SourceBar      = "bar"
	SourceFavorite = "favorite"
	SourceCLI      = "cli"
)

// HistoryEntry represents one applied filter query
type HistoryEntry struct {
	ID         int
	Query      string
	Source     string
	ParamCount int
	AppliedAt  time.Time
}

// Store manages filter history persistence
type Store struct {
	db         *sql.DB
	maxEntries int
}

// NewStore creates a new history store. maxEntries <= 0 keeps every entry.
func NewStore(path string, maxEntries int) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	// a single connection keeps ":memory:" databases alive between calls
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db, maxEntries: maxEntries}, nil
}

// Add records an applied query and prunes the oldest entries beyond the
// configured maximum
func (s *Store) Add(entry HistoryEntry) error {
	if entry.Source == "" {
		entry.Source = SourceBar
	}
	if entry.AppliedAt.IsZero() {
		entry.AppliedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO filter_history (query, source, param_count, applied_at)
		VALUES (?, ?, ?, ?)`,
		entry.Query,
		entry.Source,
		entry.ParamCount,
		entry.AppliedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}

	return s.prune()
}

func (s *Store) prune() error {
	if s.maxEntries <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM filter_history
		WHERE id NOT IN (
			SELECT id FROM filter_history
			ORDER BY applied_at DESC, id DESC
			LIMIT ?
		)`, s.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// GetRecent retrieves the most recent history entries
func (s *Store) GetRecent(limit int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, query, source, param_count, applied_at
		FROM filter_history
		ORDER BY applied_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return scanEntries(rows)
}

// Search retrieves history entries whose query contains text
func (s *Store) Search(text string, limit int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, query, source, param_count, applied_at
		FROM filter_history
		WHERE query LIKE ?
		ORDER BY applied_at DESC, id DESC
		LIMIT ?`, "%"+text+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	return scanEntries(rows)
}

// Count returns the number of stored entries
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM filter_history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]HistoryEntry, error) {
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.ID, &e.Query, &e.Source, &e.ParamCount, &e.AppliedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
