package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"assetsync/internal/assetindex"
	"assetsync/internal/config"
	"assetsync/internal/journal"
	"assetsync/internal/logging"
	"assetsync/internal/reconcile"
	"assetsync/internal/services"
	"assetsync/internal/zone"
)

// syncFunc runs one engine mode with the options the CLI assembled.
type syncFunc func(ctx context.Context, cfg *config.Config, layout zone.Layout, opts []reconcile.Option) (reconcile.Result, error)

func newPullCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "pull [limit]",
		Short: "Download remote assets into metadata/ and merge them into the index",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			limit := cfg.Pull.Limit
			if len(args) == 1 {
				limit, err = strconv.Atoi(strings.TrimSpace(args[0]))
				if err != nil {
					return services.Wrap(services.ErrInvalidArgument, "pull", "limit", "please, enter a valid number as limit", err)
				}
			}
			return runSync(cmd, ctx, reconcile.ModePull, func(runCtx context.Context, cfg *config.Config, layout zone.Layout, opts []reconcile.Option) (reconcile.Result, error) {
				opts = append(opts, reconcile.WithDelay(cfg.PullDelay()), reconcile.WithPageFirst(pageFirst(cfg)))
				puller := reconcile.NewPuller(ctx.newRemote(cfg), ctx.newFiles(cfg), layout, opts...)
				return puller.Pull(runCtx, limit)
			})
		},
	}
}

func newPushCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Send metadata updates and reuploads for indexed local files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, ctx, reconcile.ModePush, func(runCtx context.Context, cfg *config.Config, layout zone.Layout, opts []reconcile.Option) (reconcile.Result, error) {
				opts = append(opts, reconcile.WithDelay(cfg.PushDelay()))
				pusher := reconcile.NewPusher(ctx.newRemote(cfg), ctx.newFiles(cfg), layout, opts...)
				return pusher.Push(runCtx)
			})
		},
	}
}

func newPublishCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish",
		Short: "Publish every indexed local file outside ignore/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd, ctx, reconcile.ModePublish, func(runCtx context.Context, cfg *config.Config, layout zone.Layout, opts []reconcile.Option) (reconcile.Result, error) {
				opts = append(opts, reconcile.WithDelay(cfg.PublishDelay()))
				publisher := reconcile.NewPublisher(ctx.newRemote(cfg), layout, opts...)
				return publisher.Publish(runCtx)
			})
		},
	}
}

// runSync wraps one engine run with the mirror lock, a run id, the journal,
// and the console reporter. Per-file failures are reported but do not fail
// the command.
func runSync(cmd *cobra.Command, ctx *commandContext, mode reconcile.Mode, fn syncFunc) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPI(); err != nil {
		return services.Wrap(services.ErrConfiguration, string(mode), "", "", err)
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	lock, err := assetindex.Lock(cfg.Paths.Root)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	runID := uuid.NewString()
	runCtx := services.WithMode(services.WithRunID(cmd.Context(), runID), string(mode))
	logger = logging.WithContext(runCtx, logger)

	var store *journal.Store
	if cfg.Journal.Enabled {
		store, err = journal.Open(runCtx, cfg.JournalPath())
		if err != nil {
			logging.WarnWithContext(logger, "journal unavailable", "journal_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check "+cfg.JournalPath()),
				logging.String(logging.FieldImpact, "this run is not recorded in history"))
			store = nil
		} else {
			defer store.Close()
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, string(mode))
	logger.Info("run started", logging.String("root", cfg.Paths.Root))

	rep := newReporter(runCtx, out, cmd.ErrOrStderr(), logger, store, runID)
	layout := zone.NewLayout(cfg.Paths.Root)
	res, err := fn(runCtx, cfg, layout, []reconcile.Option{reconcile.WithObserver(rep)})
	if err != nil {
		logging.ErrorWithContext(logger, "run aborted", string(mode)+"_aborted",
			append(logging.ErrorAttrs(err), logging.String(logging.FieldErrorHint, abortHint(err)))...)
		return err
	}

	fmt.Fprintln(out, summaryLine(rep.printer, mode, res))
	logger.Info("run finished",
		logging.Int("failed", res.Failed),
		logging.Int("unmatched", res.Unmatched),
		logging.Int("ignored", res.Ignored))
	return nil
}

func pageFirst(cfg *config.Config) reconcile.PageFirst {
	if cfg.Pull.PageFirst == config.PageFirstPage {
		return reconcile.FirstPage
	}
	return reconcile.FirstLimit
}

func abortHint(err error) string {
	switch services.Kind(err) {
	case "missing_index":
		return "run 'assetsync pull' first"
	case "invalid_argument":
		return "check the command arguments"
	default:
		return "check api.url and api.token, then rerun"
	}
}
