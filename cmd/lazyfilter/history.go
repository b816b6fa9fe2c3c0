package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rebeliceyang/lazyfilter/internal/history"
)

var (
	historyLimit  int
	historySearch string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect applied filter queries",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recently applied queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		path, err := cfg.HistoryPath()
		if err != nil {
			return fmt.Errorf("history path: %w", err)
		}

		store, err := history.NewStore(path, cfg.History.MaxEntries)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		var entries []history.HistoryEntry
		if historySearch != "" {
			entries, err = store.Search(historySearch, historyLimit)
		} else {
			entries, err = store.GetRecent(historyLimit)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No history yet.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "APPLIED\tSOURCE\tPARAMS\tQUERY")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.AppliedAt.Local().Format("2006-01-02 15:04:05"), e.Source, e.ParamCount, e.Query)
		}
		if err := w.Flush(); err != nil {
			return err
		}

		total, err := store.Count()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d of %d entries\n", len(entries), total)
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of entries to show")
	historyListCmd.Flags().StringVarP(&historySearch, "search", "s", "", "only show queries containing this text")

	historyCmd.AddCommand(historyListCmd)
}
