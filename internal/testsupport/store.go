package testsupport

import (
	"context"
	"testing"

	"assetsync/internal/config"
	"assetsync/internal/journal"
)

// MustOpenJournal opens the run journal for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *journal.Store {
	t.Helper()

	store, err := journal.Open(context.Background(), cfg.JournalPath())
	if err != nil {
		t.Fatalf("journal.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
