package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"assetsync/internal/journal"
	"assetsync/internal/testsupport"
)

func TestRecordAndRecent(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		err := store.Record(ctx, journal.Entry{
			RunID:     "run-1",
			Mode:      "push",
			AssetID:   fmt.Sprintf("ck%d", i),
			File:      fmt.Sprintf("a ck%d a", i),
			Outcome:   journal.OutcomeUpdated,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(recent))
	}
	if recent[0].AssetID != "ck2" || recent[1].AssetID != "ck1" {
		t.Fatalf("expected newest first, got %s then %s", recent[0].AssetID, recent[1].AssetID)
	}
	if !recent[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("unexpected timestamp %v", recent[0].CreatedAt)
	}
	if recent[0].Outcome != journal.OutcomeUpdated {
		t.Fatalf("unexpected outcome %q", recent[0].Outcome)
	}

	all, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
}

func TestForRunFiltersAndKeepsOrder(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenJournal(t, cfg)
	ctx := context.Background()

	entries := []journal.Entry{
		{RunID: "a", Mode: "pull", Outcome: journal.OutcomeDownloaded, AssetID: "1"},
		{RunID: "b", Mode: "publish", Outcome: journal.OutcomeFailed, Detail: "boom"},
		{RunID: "a", Mode: "pull", Outcome: journal.OutcomeIndexed},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	got, err := store.ForRun(ctx, "a")
	if err != nil {
		t.Fatalf("ForRun: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for run a, got %d", len(got))
	}
	if got[0].Outcome != journal.OutcomeDownloaded || got[1].Outcome != journal.OutcomeIndexed {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].AssetID != "" || got[1].Detail != "" {
		t.Fatalf("expected empty optional fields, got %+v", got[1])
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := journal.Open(ctx, cfg.JournalPath())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(ctx, journal.Entry{RunID: "r", Mode: "push", Outcome: journal.OutcomeSkipped}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := testsupport.MustOpenJournal(t, cfg)
	got, err := reopened.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].Outcome != journal.OutcomeSkipped {
		t.Fatalf("unexpected entries after reopen: %+v", got)
	}
}

func TestSchemaMismatchIsReported(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	ctx := context.Background()

	store, err := journal.Open(ctx, cfg.JournalPath())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", cfg.JournalPath())
	if err != nil {
		t.Fatalf("open raw db: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("set version: %v", err)
	}
	db.Close()

	_, err = journal.Open(ctx, cfg.JournalPath())
	if !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
