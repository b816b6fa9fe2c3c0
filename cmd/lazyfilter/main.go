package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/app"
	"github.com/rebeliceyang/lazyfilter/internal/config"
	"github.com/rebeliceyang/lazyfilter/internal/favorites"
	"github.com/rebeliceyang/lazyfilter/internal/history"
)

var version = "0.1.0"

var (
	configPath string
	queryFlag  string
	printFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "lazyfilter",
	Short: "Build filter query strings from a terminal filter bar",
	Long: "lazyfilter shows a bar of filter chips. Each chip edits one query parameter; " +
		"the bar turns the enabled chips into a URL query string.",
	SilenceUsage: true,
	RunE:         runTUI,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "lazyfilter %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: search user config dir, . and ./config)")
	rootCmd.Flags().StringVarP(&queryFlag, "query", "q", "", "query string to restore into the bar on startup")
	rootCmd.Flags().BoolVarP(&printFlag, "print", "p", false, "print the last applied query on exit")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(favoritesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(applyCmd)
}

func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Warning: Could not load config: %v (using defaults)\n", err)
		return config.GetDefaults()
	}
	return cfg
}

func setupLogging(cfg *config.Config) (io.Closer, error) {
	if cfg.Log.File == "" {
		// the terminal belongs to the TUI
		slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
		return nil, nil
	}

	f, err := tea.LogToFile(cfg.Log.File, "lazyfilter")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	slog.SetLogLoggerLevel(parseLevel(cfg.Log.Level))
	return f, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func openFavorites(cfg *config.Config) *favorites.Manager {
	if !cfg.Favorites.Enabled {
		return nil
	}
	dir, err := cfg.FavoritesDir()
	if err != nil {
		slog.Warn("favorites directory unavailable", "error", err)
		return nil
	}
	m, err := favorites.NewManager(dir)
	if err != nil {
		slog.Warn("favorites unavailable", "error", err)
		return nil
	}
	return m
}

func openHistory(cfg *config.Config) *history.Store {
	if !cfg.History.Enabled {
		return nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		slog.Warn("history path unavailable", "error", err)
		return nil
	}
	s, err := history.NewStore(path, cfg.History.MaxEntries)
	if err != nil {
		slog.Warn("history unavailable", "path", path, "error", err)
		return nil
	}
	return s
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	logFile, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
	}

	store := openHistory(cfg)
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	zone.NewGlobal()

	a := app.New(cfg, app.Options{
		Favorites: openFavorites(cfg),
		History:   store,
		Query:     queryFlag,
	})
	defer a.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.MouseEnabled {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(a, opts...)
	cfg.Watch(func(c *config.Config) {
		p.Send(app.ConfigReloadedMsg{Config: c})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}

	if printFlag && a.LastApplied() != "" {
		fmt.Fprintln(cmd.OutOrStdout(), a.LastApplied())
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
