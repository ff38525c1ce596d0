package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/repository"
)

const pageColumns = "id, competitor_id, label, url, created_at"

// UpsertPage inserts the page or updates its label, url and owner.
func (r *Repository) UpsertPage(ctx context.Context, p models.Page) error {
	const opn = "repository.sqlite.UpsertPage"

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pages (id, competitor_id, label, url, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			competitor_id = excluded.competitor_id,
			label = excluded.label,
			url = excluded.url`,
		p.ID, p.CompetitorID, p.Label, p.URL, toUnix(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("%s: failed to upsert page %s: %w", opn, p.ID, err)
	}

	return nil
}

// GetPage returns the page with the given id.
func (r *Repository) GetPage(ctx context.Context, id string) (*models.Page, error) {
	const opn = "repository.sqlite.GetPage"

	p, err := scanPage(r.db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %s: %w", opn, id, repository.ErrPageNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get page: %w", opn, err)
	}

	return p, nil
}

// ListPages returns the competitor's pages in the order they were added.
func (r *Repository) ListPages(ctx context.Context, competitorID string) ([]models.Page, error) {
	const opn = "repository.sqlite.ListPages"

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE competitor_id = ? ORDER BY created_at, rowid", competitorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get pages: %w", opn, err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan page: %w", opn, err)
		}
		pages = append(pages, *p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration error: %w", opn, err)
	}

	return pages, nil
}

func scanPage(row rowScanner) (*models.Page, error) {
	var (
		p       models.Page
		created int64
	)
	if err := row.Scan(&p.ID, &p.CompetitorID, &p.Label, &p.URL, &created); err != nil {
		return nil, err
	}
	p.CreatedAt = fromUnix(created)

	return &p, nil
}
