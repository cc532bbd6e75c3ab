package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"assetsync/internal/journal"
	"assetsync/internal/logging"
	"assetsync/internal/reconcile"
	"assetsync/internal/services"
	"assetsync/internal/testsupport"
)

func TestReporterWritesProgressAndJournal(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithEnsuredDirs())
	store := testsupport.MustOpenJournal(t, cfg)

	var out, errOut bytes.Buffer
	rep := newReporter(context.Background(), &out, &errOut, logging.NewNop(), store, "run-1")

	rep.Observe(reconcile.Event{Kind: reconcile.EventUpdated, Mode: reconcile.ModePush, AssetID: "42", Name: "cat.png", Done: 1, Total: 1})
	rep.Observe(reconcile.Event{Kind: reconcile.EventUploaded, Mode: reconcile.ModePush, AssetID: "43", Name: "dog.png"})
	rep.Observe(reconcile.Event{Kind: reconcile.EventUploaded, Mode: reconcile.ModePush, AssetID: "44", Name: "cow.png", Detail: "<PostResponse/>"})
	rep.Observe(reconcile.Event{Kind: reconcile.EventFailed, Mode: reconcile.ModePush, AssetID: "45", Name: "pig.png",
		Err: services.Wrap(services.ErrRemoteCall, "update asset", "45", "", errors.New("boom"))})
	rep.Observe(reconcile.Event{Kind: reconcile.EventNoMatch, Mode: reconcile.ModePush, Path: "/tmp/x"})

	requireContains(t, out.String(), "[ 100%] [1 of 1] ➜ cat.png")
	requireContains(t, out.String(), " ➜ ➜ dog.png")
	requireContains(t, out.String(), "<PostResponse/>")
	requireContains(t, errOut.String(), "pig.png")
	requireContains(t, errOut.String(), "boom")

	entries, err := store.ForRun(context.Background(), "run-1")
	if err != nil {
		t.Fatalf("ForRun: %v", err)
	}
	want := []journal.Outcome{journal.OutcomeUpdated, journal.OutcomeUploaded, journal.OutcomeUploaded, journal.OutcomeFailed}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, e := range entries {
		if e.Outcome != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Outcome)
		}
		if e.Mode != "push" {
			t.Fatalf("entry %d: unexpected mode %q", i, e.Mode)
		}
	}
}

func TestReporterWithoutJournal(t *testing.T) {
	var out bytes.Buffer
	rep := newReporter(context.Background(), &out, &out, nil, nil, "")
	rep.Observe(reconcile.Event{Kind: reconcile.EventDownloaded, Mode: reconcile.ModePull, Name: "a.png", Done: 1, Total: 3})
	requireContains(t, out.String(), "[ 33%] [1 of 3] ➜ a.png")
}
