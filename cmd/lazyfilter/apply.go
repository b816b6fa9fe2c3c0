package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/app"
	"github.com/rebeliceyang/lazyfilter/internal/filter"
	"github.com/rebeliceyang/lazyfilter/internal/history"
)

var applyCmd = &cobra.Command{
	Use:   "apply QUERY",
	Short: "Restore a query into the configured filters and print what the bar keeps",
	Long: "apply restores QUERY into the filter bar without starting the TUI, records it in " +
		"the history and prints the query string of the enabled filters. Parameters no " +
		"filter knows about are dropped.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := filter.ParseQuery(args[0]); err != nil {
			return err
		}

		cfg := loadConfig()
		store := openHistory(cfg)
		if store != nil {
			defer func() { _ = store.Close() }()
		}

		a := app.New(cfg, app.Options{History: store, Query: args[0]})
		defer a.Close()

		fmt.Fprintln(cmd.OutOrStdout(), a.Apply(history.SourceCLI))
		return nil
	},
}
