package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/repository"
)

const competitorColumns = "id, name, alert_chat_id, created_at"

// UpsertCompetitor inserts the competitor or renames an existing one.
// A zero AlertChatID keeps whatever recipient is already stored.
func (r *Repository) UpsertCompetitor(ctx context.Context, c models.Competitor) error {
	const opn = "repository.sqlite.UpsertCompetitor"

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO competitors (id, name, alert_chat_id, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			alert_chat_id = CASE WHEN excluded.alert_chat_id != 0
				THEN excluded.alert_chat_id ELSE competitors.alert_chat_id END`,
		c.ID, c.Name, c.AlertChatID, toUnix(c.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to upsert competitor %s: %w", opn, c.ID, err)
	}

	return nil
}

// GetCompetitor returns the competitor with the given id.
func (r *Repository) GetCompetitor(ctx context.Context, id string) (*models.Competitor, error) {
	const opn = "repository.sqlite.GetCompetitor"

	row := r.db.QueryRowContext(ctx, "SELECT "+competitorColumns+" FROM competitors WHERE id = ?", id)
	c, err := scanCompetitor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %s: %w", opn, id, repository.ErrCompetitorNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get competitor: %w", opn, err)
	}

	return c, nil
}

// ListCompetitors returns every competitor ordered by name.
func (r *Repository) ListCompetitors(ctx context.Context) ([]models.Competitor, error) {
	const opn = "repository.sqlite.ListCompetitors"

	rows, err := r.db.QueryContext(ctx, "SELECT "+competitorColumns+" FROM competitors ORDER BY name, id")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get competitors: %w", opn, err)
	}
	defer rows.Close()

	var competitors []models.Competitor
	for rows.Next() {
		c, err := scanCompetitor(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan competitor: %w", opn, err)
		}
		competitors = append(competitors, *c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return competitors, nil
}

// SubscribeChat makes chatID the alert recipient of the competitor.
func (r *Repository) SubscribeChat(ctx context.Context, competitorID string, chatID int64) error {
	const opn = "repository.sqlite.SubscribeChat"

	return r.setAlertChat(ctx, opn, competitorID, chatID)
}

// UnsubscribeChat clears the competitor's alert recipient.
func (r *Repository) UnsubscribeChat(ctx context.Context, competitorID string) error {
	const opn = "repository.sqlite.UnsubscribeChat"

	return r.setAlertChat(ctx, opn, competitorID, 0)
}

func (r *Repository) setAlertChat(ctx context.Context, opn, competitorID string, chatID int64) error {
	res, err := r.db.ExecContext(ctx, "UPDATE competitors SET alert_chat_id = ? WHERE id = ?", chatID, competitorID)
	if err != nil {
		return fmt.Errorf("%s: %w", opn, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: failed to read affected rows: %w", opn, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %s: %w", opn, competitorID, repository.ErrCompetitorNotFound)
	}

	return nil
}

func scanCompetitor(row rowScanner) (*models.Competitor, error) {
	var (
		c       models.Competitor
		created int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.AlertChatID, &created); err != nil {
		return nil, err
	}
	c.CreatedAt = fromUnix(created)

	return &c, nil
}
