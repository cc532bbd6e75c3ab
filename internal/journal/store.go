package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Outcome is the result recorded for one unit of work.
type Outcome string

const (
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeUpdated    Outcome = "updated"
	OutcomeUploaded   Outcome = "uploaded"
	OutcomePublished  Outcome = "published"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeFailed     Outcome = "failed"
	OutcomeIndexed    Outcome = "indexed"
)

// Entry is one journal row.
type Entry struct {
	ID        int64
	RunID     string
	Mode      string
	AssetID   string
	File      string
	Outcome   Outcome
	Detail    string
	CreatedAt time.Time
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends an entry. A zero CreatedAt is stamped with the current time.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO entries (run_id, mode, asset_id, file, outcome, detail, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Mode,
		nullableString(entry.AssetID),
		nullableString(entry.File),
		string(entry.Outcome),
		nullableString(entry.Detail),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert journal entry: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first. A non-positive limit
// returns every entry.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, run_id, mode, asset_id, file, outcome, detail, created_at
        FROM entries ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// ForRun returns every entry of one run in insertion order.
func (s *Store) ForRun(ctx context.Context, runID string) ([]Entry, error) {
	return s.query(ctx, `SELECT id, run_id, mode, asset_id, file, outcome, detail, created_at
        FROM entries WHERE run_id = ? ORDER BY id`, runID)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal: %w", err)
	}
	return entries, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var (
		entry     Entry
		assetID   sql.NullString
		file      sql.NullString
		outcome   string
		detail    sql.NullString
		createdAt string
	)
	if err := rows.Scan(&entry.ID, &entry.RunID, &entry.Mode, &assetID, &file, &outcome, &detail, &createdAt); err != nil {
		return Entry{}, fmt.Errorf("scan journal entry: %w", err)
	}
	entry.AssetID = assetID.String
	entry.File = file.String
	entry.Outcome = Outcome(outcome)
	entry.Detail = detail.String
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		entry.CreatedAt = ts
	}
	return entry, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
