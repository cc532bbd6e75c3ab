package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assetsync/internal/assetindex"
	"assetsync/internal/assetname"
	"assetsync/internal/zone"
)

func newIndexCommand(ctx *commandContext) *cobra.Command {
	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "Inspect the local asset index",
	}
	indexCmd.AddCommand(newIndexListCommand(ctx))
	return indexCmd
}

func newIndexListCommand(ctx *commandContext) *cobra.Command {
	var missingOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List indexed assets and whether each binary is present locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			records, err := assetindex.Load(cfg.Paths.Root)
			if err != nil {
				if errors.Is(err, assetindex.ErrMissingIndex) {
					fmt.Fprintln(cmd.OutOrStdout(), "No index yet. Run 'assetsync pull' first.")
					return nil
				}
				return err
			}

			present := zone.NewLayout(cfg.Paths.Root).Names()
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				local := assetname.Encode(r.FileName, r.ID)
				_, ok := present[local]
				if missingOnly && ok {
					continue
				}
				rows = append(rows, []string{r.ID, r.FileName, local, yesNo(ok), r.Position, strings.TrimSpace(r.AltText)})
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No assets to show")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "File", "Local Name", "Present", "Position", "Alt Text"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
			))
			fmt.Fprintf(out, "%d of %d records shown\n", len(rows), len(records))
			return nil
		},
	}
	cmd.Flags().BoolVar(&missingOnly, "missing", false, "Only show records whose binary is not in the mirror")
	return cmd
}
