package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
)

// Repository stores competitors, pages, snapshots and changes in SQLite.
type Repository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewRepository opens (creating if needed) the database at storagePath and migrates the schema.
func NewRepository(ctx context.Context, log *slog.Logger, storagePath string) (*Repository, error) {
	dtb, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", storagePath))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Check if the connection is actually established.
	if err = dtb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("unable to establish connection to database: %w", err)
	}

	if err = initSchema(ctx, dtb); err != nil {
		return nil, fmt.Errorf("DB schema initialization error: %w", err)
	}

	return &Repository{db: dtb, log: log}, nil
}

// NewForTest wraps an already opened handle without touching the schema.
func NewForTest(db *sql.DB) *Repository {
	return &Repository{db: db, log: slog.New(slog.DiscardHandler)}
}

// initSchema creates the necessary tables if they don't already exist.
// changes.snapshot_id is deliberately not a foreign key: snapshots get pruned, changes stay.
func initSchema(ctx context.Context, dtb *sql.DB) error {
	const migrationQuery = `
	CREATE TABLE IF NOT EXISTS competitors (
		id TEXT PRIMARY KEY NOT NULL,
		name TEXT NOT NULL,
		alert_chat_id INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pages (
		id TEXT PRIMARY KEY NOT NULL,
		competitor_id TEXT NOT NULL REFERENCES competitors(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		id TEXT PRIMARY KEY NOT NULL,
		page_id TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
		raw_html TEXT NOT NULL,
		normalized_text TEXT NOT NULL,
		fingerprint TEXT NOT NULL,
		price TEXT,
		price_raw TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT '',
		confidence TEXT NOT NULL DEFAULT 'none',
		price_source TEXT NOT NULL DEFAULT '',
		captured_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_snapshots_page_captured ON snapshots (page_id, captured_at);

	CREATE TABLE IF NOT EXISTS changes (
		id TEXT PRIMARY KEY NOT NULL,
		page_id TEXT NOT NULL REFERENCES pages(id) ON DELETE CASCADE,
		snapshot_id TEXT NOT NULL,
		old_fingerprint TEXT NOT NULL,
		new_fingerprint TEXT NOT NULL,
		summary TEXT NOT NULL,
		analysis TEXT NOT NULL DEFAULT '',
		significance TEXT NOT NULL,
		change_type TEXT NOT NULL,
		old_price TEXT,
		new_price TEXT,
		price_delta TEXT,
		price_delta_pct TEXT,
		notified INTEGER NOT NULL DEFAULT 0,
		detected_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_changes_page_detected ON changes (page_id, detected_at);
	`
	_, err := dtb.ExecContext(ctx, migrationQuery)
	if err != nil {
		return fmt.Errorf("failed to execute migration query: %w", err)
	}

	return nil
}

// Close closes the connection to the database.
func (r *Repository) Close() error {
	if err := r.db.Close(); err != nil {
		r.log.Error("failed to close the database", "op", "repository.sqlite.Close", "error", err)
		return fmt.Errorf("failed to close the database: %w", err)
	}

	return nil
}

// DB is a getter for database handler.
func (r *Repository) DB() *sql.DB {
	return r.db
}

type rowScanner interface {
	Scan(dest ...any) error
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Timestamps are stored as unix nanoseconds so ordering survives sub-second captures.
func toUnix(t time.Time) int64 {
	return t.UTC().UnixNano()
}

func fromUnix(n int64) time.Time {
	return time.Unix(0, n).UTC()
}
