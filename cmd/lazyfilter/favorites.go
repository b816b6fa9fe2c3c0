package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/favorites"
	"github.com/rebeliceyang/lazyfilter/internal/models"
)

var (
	exportFormat   string
	exportOutput   string
	favoritesSort  string
	favoritesLimit int
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage saved filter queries",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved filter queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := favoritesManager()
		if err != nil {
			return err
		}

		var list []models.Favorite
		switch favoritesSort {
		case "", "name":
			list = m.List()
			if favoritesLimit > 0 && favoritesLimit < len(list) {
				list = list[:favoritesLimit]
			}
		case "used":
			list = m.GetMostUsed(favoritesLimit)
		case "recent":
			list = m.GetRecent(favoritesLimit)
		default:
			return fmt.Errorf("unknown sort %q: use used or recent", favoritesSort)
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No favorites saved.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tQUERY\tTAGS\tUSED\tLAST USED")
		for _, fav := range list {
			lastUsed := "-"
			if !fav.LastUsed.IsZero() {
				lastUsed = fav.LastUsed.Local().Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", fav.Name, fav.Query, strings.Join(fav.Tags, ","), fav.UsageCount, lastUsed)
		}
		return w.Flush()
	},
}

var favoritesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved filter queries as CSV or JSON",
	Long: "export writes saved filter queries to stdout, or to a file with --output. " +
		"An empty --output= writes next to favorites.yaml.",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := favoritesManager()
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("output") {
			return m.Export(cmd.OutOrStdout(), exportFormat)
		}

		var path string
		switch strings.ToLower(exportFormat) {
		case "csv":
			path, err = m.ExportToCSV(exportOutput)
		case "json", "":
			path, err = m.ExportToJSON(exportOutput)
		default:
			return fmt.Errorf("unsupported export format %q", exportFormat)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d favorite(s) to %s\n", len(m.List()), path)
		return nil
	},
}

func favoritesManager() (*favorites.Manager, error) {
	cfg := loadConfig()
	dir, err := cfg.FavoritesDir()
	if err != nil {
		return nil, fmt.Errorf("favorites directory: %w", err)
	}
	return favorites.NewManager(dir)
}

func init() {
	favoritesListCmd.Flags().StringVar(&favoritesSort, "sort", "", "order: used (most used first) or recent (last used first)")
	favoritesListCmd.Flags().IntVarP(&favoritesLimit, "limit", "n", 0, "number of favorites to show (0 shows all)")

	favoritesExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "export format: csv or json")
	favoritesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to this file instead of stdout")

	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesExportCmd)
}
