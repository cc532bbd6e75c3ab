// Package services defines shared utilities consumed by the sync engine and its
// external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, sync modes, and asset ids for
//     logging and the run journal.
//   - Structured error markers plus the Wrap helper that separate failures
//     which abort an invocation (missing index, bad arguments) from per-file
//     failures the engine isolates and reports.
//
// Integrations with the content-management API live in subpackages.
package services
