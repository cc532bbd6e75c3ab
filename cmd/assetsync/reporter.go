package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"assetsync/internal/journal"
	"assetsync/internal/logging"
	"assetsync/internal/reconcile"
	"assetsync/internal/services"
)

// reporter turns engine events into console lines, log records, and journal
// entries.
type reporter struct {
	ctx      context.Context
	out      io.Writer
	errOut   io.Writer
	colorize bool
	printer  *message.Printer
	logger   *slog.Logger
	journal  *journal.Store
	runID    string
}

func newReporter(ctx context.Context, out, errOut io.Writer, logger *slog.Logger, store *journal.Store, runID string) *reporter {
	return &reporter{
		ctx:      ctx,
		out:      out,
		errOut:   errOut,
		colorize: shouldColorize(out),
		printer:  message.NewPrinter(language.English),
		logger:   logging.NewComponentLogger(logger, "reconcile"),
		journal:  store,
		runID:    runID,
	}
}

func (r *reporter) Observe(e reconcile.Event) {
	logger := r.logger
	if e.AssetID != "" {
		logger = logger.With(logging.String(logging.FieldAssetID, e.AssetID))
	}
	if e.Path != "" {
		logger = logger.With(logging.String(logging.FieldFile, e.Path))
	}
	eventType := string(e.Mode) + "_" + e.Kind.String()

	switch e.Kind {
	case reconcile.EventPage:
		logger.Debug("page fetched", logging.String(logging.FieldEventType, eventType), logging.String("page", e.Detail))
		if e.Done == 0 {
			logger.Debug("page size",
				logging.String(logging.FieldEventType, "pull_page_first"),
				logging.String("page", e.Detail),
				logging.String(logging.FieldErrorHint, "set pull.page_first = \"page\" to request page-sized batches"))
		}
	case reconcile.EventDownloaded, reconcile.EventPresent, reconcile.EventUpdated, reconcile.EventPublished:
		r.progress(e, displayName(e))
		logger.Info(e.Kind.String(), logging.String(logging.FieldEventType, eventType), logging.Int("done", e.Done), logging.Int("total", e.Total))
	case reconcile.EventUploaded:
		text := strings.TrimSpace(e.Detail)
		if text == "" {
			text = " ➜ ➜ " + displayName(e)
		}
		fmt.Fprintln(r.out, r.paint(ansiGreen, text))
		logger.Info("uploaded", logging.String(logging.FieldEventType, eventType), logging.String("response", e.Detail))
	case reconcile.EventIndexSaved:
		fmt.Fprintln(r.out, r.printer.Sprintf("index saved: %d records (%d new) ➜ %s", e.Total, e.Done, e.Path))
		logger.Info("index saved", logging.String(logging.FieldEventType, eventType), logging.Int("records", e.Total), logging.Int("new", e.Done))
	case reconcile.EventFailed:
		fmt.Fprintln(r.errOut, r.paint(ansiRed, fmt.Sprintf("✗ %s: %v", displayName(e), e.Err)))
		attrs := append(logging.ErrorAttrs(e.Err),
			logging.String(logging.FieldErrorHint, errorHint(e.Err)),
			logging.String(logging.FieldImpact, "file skipped; rerun to retry"))
		logging.WarnWithContext(logger, "file failed", eventType, attrs...)
	case reconcile.EventTraversal:
		fmt.Fprintln(r.errOut, r.paint(ansiYellow, fmt.Sprintf("! %v", e.Err)))
		logging.WarnWithContext(logger, "unreadable path", eventType,
			logging.Error(e.Err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "files below this path were not visited"))
	default:
		logger.Debug(e.Kind.String(), logging.String(logging.FieldEventType, eventType))
	}

	r.record(e)
}

func (r *reporter) progress(e reconcile.Event, name string) {
	line := r.printer.Sprintf("[ %d%%] [%d of %d] ➜ %s", e.Percent(), e.Done, e.Total, name)
	if e.Kind == reconcile.EventPresent {
		line = r.paint(ansiBlue, line)
	}
	fmt.Fprintln(r.out, line)
}

func (r *reporter) record(e reconcile.Event) {
	if r.journal == nil {
		return
	}
	outcome, ok := journalOutcome(e.Kind)
	if !ok {
		return
	}
	detail := e.Detail
	if e.Err != nil {
		detail = e.Err.Error()
	}
	entry := journal.Entry{
		RunID:   r.runID,
		Mode:    string(e.Mode),
		AssetID: e.AssetID,
		File:    e.Path,
		Outcome: outcome,
		Detail:  detail,
	}
	if err := r.journal.Record(r.ctx, entry); err != nil {
		logging.WarnWithContext(r.logger, "journal write failed", "journal_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check "+r.journal.Path()),
			logging.String(logging.FieldImpact, "run history is incomplete"))
	}
}

func journalOutcome(kind reconcile.EventKind) (journal.Outcome, bool) {
	switch kind {
	case reconcile.EventDownloaded:
		return journal.OutcomeDownloaded, true
	case reconcile.EventPresent:
		return journal.OutcomeSkipped, true
	case reconcile.EventUpdated:
		return journal.OutcomeUpdated, true
	case reconcile.EventUploaded:
		return journal.OutcomeUploaded, true
	case reconcile.EventPublished:
		return journal.OutcomePublished, true
	case reconcile.EventFailed:
		return journal.OutcomeFailed, true
	case reconcile.EventIndexSaved:
		return journal.OutcomeIndexed, true
	default:
		return "", false
	}
}

func (r *reporter) paint(color, text string) string {
	if !r.colorize {
		return text
	}
	return color + text + ansiReset
}

func displayName(e reconcile.Event) string {
	if e.Name != "" {
		return e.Name
	}
	if e.Path != "" {
		return filepath.Base(e.Path)
	}
	return e.AssetID
}

func errorHint(err error) string {
	switch services.Kind(err) {
	case "transfer":
		return "check network access to storage and free disk space"
	case "remote_call":
		return "check api.url, api.token, and the asset id"
	case "no_match":
		return "the remote record is incomplete"
	default:
		return "check logs for details"
	}
}

func summaryLine(p *message.Printer, mode reconcile.Mode, res reconcile.Result) string {
	switch mode {
	case reconcile.ModePull:
		return p.Sprintf("pull: %d pages, %d downloaded, %d already present, %d failed, %d records indexed",
			res.Pages, res.Downloaded, res.Present, res.Failed, res.IndexSize)
	case reconcile.ModePush:
		return p.Sprintf("push: %d updated, %d reuploaded, %d unclassified, %d unmatched, %d ignored, %d failed",
			res.Updated, res.Uploaded, res.Unclassified, res.Unmatched, res.Ignored, res.Failed)
	default:
		return p.Sprintf("publish: %d published, %d unmatched, %d ignored, %d failed",
			res.Published, res.Unmatched, res.Ignored, res.Failed)
	}
}
