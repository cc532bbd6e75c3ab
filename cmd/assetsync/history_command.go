package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"assetsync/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent sync outcomes from the run journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !cfg.Journal.Enabled {
				fmt.Fprintln(out, "Run journal is disabled (journal.enabled = false)")
				return nil
			}
			if _, err := os.Stat(cfg.JournalPath()); errors.Is(err, os.ErrNotExist) {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			store, err := journal.Open(cmd.Context(), cfg.JournalPath())
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer store.Close()

			var entries []journal.Entry
			if runID != "" {
				entries, err = store.ForRun(cmd.Context(), runID)
			} else {
				entries, err = store.Recent(cmd.Context(), limit)
			}
			if err != nil {
				return fmt.Errorf("read journal: %w", err)
			}
			if len(entries) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					shortRunID(e.RunID),
					e.Mode,
					string(e.Outcome),
					e.AssetID,
					e.Detail,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Time", "Run", "Mode", "Outcome", "Asset", "Detail"},
				rows,
				nil,
			))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show every entry of one run id")
	return cmd
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
