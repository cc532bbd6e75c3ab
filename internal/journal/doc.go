// Package journal records the outcome of every file handled by a sync run in a
// local SQLite database so operators can review past runs with
// `assetsync history`.
//
// Entries are append-only. Schema changes bump schemaVersion in schema.go;
// users delete journal.db to adopt the new schema.
package journal
