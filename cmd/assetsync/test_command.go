package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"assetsync/internal/logging"
	"assetsync/internal/preflight"
)

func newTestCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Check the mirror, free space, and API reachability",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "test")

			var lister preflight.Lister
			if strings.TrimSpace(cfg.API.URL) != "" {
				lister = ctx.newRemote(cfg)
			}
			results := preflight.RunAll(cmd.Context(), cfg, lister)

			colorize := shouldColorize(out)
			for _, r := range results {
				kind := statusOK
				if !r.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
			}
			if lister == nil {
				fmt.Fprintln(out, renderStatusLine("Content API", statusWarn, "api.url not configured", colorize))
			}

			logger = logging.NewComponentLogger(logger, "preflight")
			if !preflight.Passed(results) {
				logging.WarnWithContext(logger, "preflight failed", "preflight_failed",
					logging.String(logging.FieldErrorHint, "fix the checks marked ERROR"),
					logging.String(logging.FieldImpact, "sync runs may fail"))
				return errors.New("preflight checks failed")
			}
			logger.Info("preflight passed", logging.Int("checks", len(results)))
			return nil
		},
	}
}
