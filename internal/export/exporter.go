package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// CSVHeader is the header row of a favorites CSV export
var CSVHeader = []string{"Name", "Description", "Query", "Parameters", "Tags", "Created", "Updated", "Last Used", "Usage Count"}

// WriteCSV writes favorites as CSV to w
func WriteCSV(w io.Writer, favorites []models.Favorite) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, fav := range favorites {
		lastUsed := ""
		if !fav.LastUsed.IsZero() {
			lastUsed = fav.LastUsed.Format(timeLayout)
		}

		row := []string{
			fav.Name,
			fav.Description,
			fav.Query,
			paramKeys(fav.Query),
			strings.Join(fav.Tags, ", "),
			fav.CreatedAt.Format(timeLayout),
			fav.UpdatedAt.Format(timeLayout),
			lastUsed,
			fmt.Sprintf("%d", fav.UsageCount),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// paramKeys lists the parameter names of a stored query. Queries that no
// longer parse are reported as such instead of failing the export.
func paramKeys(query string) string {
	q, err := filter.ParseQuery(query)
	if err != nil {
		return "(malformed)"
	}
	keys := make([]string, 0, len(q))
	for _, p := range q {
		keys = append(keys, p.Key)
	}
	return strings.Join(keys, ", ")
}

// WriteJSON writes favorites as indented JSON to w
func WriteJSON(w io.Writer, favorites []models.Favorite) error {
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	data, err := json.MarshalIndent(favorites, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal favorites to JSON: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// ExportToCSV exports favorites to a CSV file
func ExportToCSV(favorites []models.Favorite, path string) error {
	return exportToFile(path, favorites, WriteCSV)
}

// ExportToJSON exports favorites to a JSON file
func ExportToJSON(favorites []models.Favorite, path string) error {
	return exportToFile(path, favorites, WriteJSON)
}

func exportToFile(path string, favorites []models.Favorite, write func(io.Writer, []models.Favorite) error) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := write(file, favorites); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
