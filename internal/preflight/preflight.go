package preflight

import (
	"context"

	"assetsync/internal/config"
)

// MinFreeBytes is the free space below which the mirror check fails.
const MinFreeBytes = 100 << 20

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config. The API check
// is skipped when lister is nil.
func RunAll(ctx context.Context, cfg *config.Config, lister Lister) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Mirror root", cfg.Paths.Root),
		CheckFreeSpace("Free space", cfg.Paths.Root, MinFreeBytes),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
	}
	if lister != nil {
		results = append(results, CheckAPI(ctx, cfg.API.URL, lister))
	}
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}
