// Package logging assembles structured slog loggers and formatting helpers used
// across assetsync.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so command code can tag log
// lines with the run identifier, sync mode, and asset being processed.
// NewNop provides a discard logger for tests and wiring code that cannot fail.
package logging
