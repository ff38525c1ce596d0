package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/repository"
)

const snapshotColumns = "id, page_id, raw_html, normalized_text, fingerprint, " +
	"price, price_raw, currency, confidence, price_source, captured_at"

// CreateSnapshot stores a new snapshot.
func (r *Repository) CreateSnapshot(ctx context.Context, s models.Snapshot) error {
	const opn = "repository.sqlite.CreateSnapshot"

	if err := insertSnapshot(ctx, r.db, s); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// SaveCheck atomically stores the snapshot of a check together with the change it produced.
// change may be nil.
func (r *Repository) SaveCheck(ctx context.Context, s models.Snapshot, change *models.Change) error {
	const opn = "repository.sqlite.SaveCheck"

	tx, err := r.db.BeginTx(ctx, nil) //nolint:varnamelen // tx its a default naming for transaction
	if err != nil {
		return fmt.Errorf("%s: failed to begin transaction: %w", opn, err)
	}
	defer tx.Rollback() //nolint:errcheck // returns sql.ErrTxDone after a successful commit

	if err = insertSnapshot(ctx, tx, s); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	if change != nil {
		if err = insertChange(ctx, tx, *change); err != nil {
			return fmt.Errorf("%s: %w", opn, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%s: failed to commit transaction: %w", opn, err)
	}

	return nil
}

// GetLatestSnapshot returns the most recently captured snapshot of the page.
// Snapshots captured at the same instant are ordered by insertion.
func (r *Repository) GetLatestSnapshot(ctx context.Context, pageID string) (*models.Snapshot, error) {
	const opn = "repository.sqlite.GetLatestSnapshot"

	row := r.db.QueryRowContext(ctx,
		"SELECT "+snapshotColumns+" FROM snapshots WHERE page_id = ? ORDER BY captured_at DESC, rowid DESC LIMIT 1",
		pageID,
	)

	snap, err := scanSnapshot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%s: failed to get snapshot: %w", opn, err)
	}

	return snap, nil
}

// PruneSnapshots deletes all but the newest keep snapshots of the page and returns
// how many were removed. keep is clamped to at least one. Changes are left untouched.
func (r *Repository) PruneSnapshots(ctx context.Context, pageID string, keep int) (int64, error) {
	const opn = "repository.sqlite.PruneSnapshots"

	keep = max(keep, 1)

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM snapshots WHERE page_id = ? AND id NOT IN (
			SELECT id FROM snapshots WHERE page_id = ? ORDER BY captured_at DESC, rowid DESC LIMIT ?
		)`,
		pageID, pageID, keep,
	)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to delete snapshots: %w", opn, err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}

	if deleted > 0 {
		r.log.DebugContext(ctx, "snapshots pruned", "op", opn, "page_id", pageID, "deleted", deleted)
	}

	return deleted, nil
}

func insertSnapshot(ctx context.Context, ex execer, s models.Snapshot) error {
	confidence := s.Confidence
	if confidence == "" {
		confidence = models.ConfidenceNone
	}

	_, err := ex.ExecContext(ctx,
		"INSERT INTO snapshots ("+snapshotColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.ID, s.PageID, s.RawHTML, s.NormalizedText, s.Fingerprint,
		s.Price, s.PriceRaw, s.Currency, string(confidence), s.PriceSource, toUnix(s.CapturedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot %s: %w", s.ID, err)
	}

	return nil
}

func scanSnapshot(row rowScanner) (*models.Snapshot, error) {
	var (
		s          models.Snapshot
		confidence string
		captured   int64
	)
	err := row.Scan(&s.ID, &s.PageID, &s.RawHTML, &s.NormalizedText, &s.Fingerprint,
		&s.Price, &s.PriceRaw, &s.Currency, &confidence, &s.PriceSource, &captured)
	if err != nil {
		return nil, err
	}
	s.Confidence = models.Confidence(confidence)
	s.CapturedAt = fromUnix(captured)

	return &s, nil
}
