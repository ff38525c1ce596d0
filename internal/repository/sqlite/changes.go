package sqlite

import (
	"context"
	"fmt"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/repository"
)

const changeColumns = "id, page_id, snapshot_id, old_fingerprint, new_fingerprint, summary, analysis, " +
	"significance, change_type, old_price, new_price, price_delta, price_delta_pct, notified, detected_at"

// CreateChange stores a change record.
func (r *Repository) CreateChange(ctx context.Context, c models.Change) error {
	const opn = "repository.sqlite.CreateChange"

	if err := insertChange(ctx, r.db, c); err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	return nil
}

// MarkNotified flips the notified flag of a change.
func (r *Repository) MarkNotified(ctx context.Context, changeID string) error {
	const opn = "repository.sqlite.MarkNotified"

	res, err := r.db.ExecContext(ctx, "UPDATE changes SET notified = 1 WHERE id = ?", changeID)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %s: %w", opn, changeID, repository.ErrChangeNotFound)
	}

	return nil
}

// ListPageChanges returns the changes of one page in detection order.
func (r *Repository) ListPageChanges(ctx context.Context, pageID string) ([]models.Change, error) {
	const opn = "repository.sqlite.ListPageChanges"

	changes, err := r.queryChanges(ctx,
		"SELECT "+changeColumns+" FROM changes WHERE page_id = ? ORDER BY detected_at, rowid", pageID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return changes, nil
}

// ListRecentChanges returns up to limit of the competitor's newest changes, newest first.
func (r *Repository) ListRecentChanges(ctx context.Context, competitorID string, limit int) ([]models.Change, error) {
	const opn = "repository.sqlite.ListRecentChanges"

	changes, err := r.queryChanges(ctx, `
		SELECT c.id, c.page_id, c.snapshot_id, c.old_fingerprint, c.new_fingerprint, c.summary, c.analysis,
			c.significance, c.change_type, c.old_price, c.new_price, c.price_delta, c.price_delta_pct,
			c.notified, c.detected_at
		FROM changes c JOIN pages p ON p.id = c.page_id
		WHERE p.competitor_id = ?
		ORDER BY c.detected_at DESC, c.rowid DESC
		LIMIT ?`,
		competitorID, max(limit, 1),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return changes, nil
}

func (r *Repository) queryChanges(ctx context.Context, query string, args ...any) ([]models.Change, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get changes: %w", err)
	}
	defer rows.Close()

	var changes []models.Change
	for rows.Next() {
		var (
			c            models.Change
			significance string
			changeType   string
			detected     int64
		)
		err = rows.Scan(&c.ID, &c.PageID, &c.SnapshotID, &c.OldFingerprint, &c.NewFingerprint,
			&c.Summary, &c.Analysis, &significance, &changeType,
			&c.OldPrice, &c.NewPrice, &c.PriceDelta, &c.PriceDeltaPct, &c.Notified, &detected)
		if err != nil {
			return nil, fmt.Errorf("failed to scan change: %w", err)
		}
		c.Significance = models.Significance(significance)
		c.ChangeType = models.ChangeType(changeType)
		c.DetectedAt = fromUnix(detected)
		changes = append(changes, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return changes, nil
}

func insertChange(ctx context.Context, ex execer, c models.Change) error {
	_, err := ex.ExecContext(ctx,
		"INSERT INTO changes ("+changeColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		c.ID, c.PageID, c.SnapshotID, c.OldFingerprint, c.NewFingerprint, c.Summary, c.Analysis,
		string(c.Significance), string(c.ChangeType),
		c.OldPrice, c.NewPrice, c.PriceDelta, c.PriceDeltaPct, c.Notified, toUnix(c.DetectedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert change %s: %w", c.ID, err)
	}

	return nil
}
