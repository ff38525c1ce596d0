package checker

import (
	"context"

	"github.com/Houeta/rival-watch/internal/analyzer"
	"github.com/Houeta/rival-watch/internal/fetcher"
	"github.com/Houeta/rival-watch/internal/models"
)

// Fetcher retrieves raw page HTML.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.Response, error)
}

// PriceExtractor finds a price on a fetched page.
type PriceExtractor interface {
	Extract(rawHTML, text string) models.Extraction
}

// Store is the persistence the checker needs.
type Store interface {
	GetPage(ctx context.Context, id string) (*models.Page, error)
	GetCompetitor(ctx context.Context, id string) (*models.Competitor, error)
	ListCompetitors(ctx context.Context) ([]models.Competitor, error)
	ListPages(ctx context.Context, competitorID string) ([]models.Page, error)
	GetLatestSnapshot(ctx context.Context, pageID string) (*models.Snapshot, error)
	SaveCheck(ctx context.Context, snapshot models.Snapshot, change *models.Change) error
	PruneSnapshots(ctx context.Context, pageID string, keep int) (int64, error)
	MarkNotified(ctx context.Context, changeID string) error
}

// Analyzer gives a qualitative reading of a content change.
type Analyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (models.Analysis, error)
}

// Notifier delivers alerts to a chat.
type Notifier interface {
	SendAlert(ctx context.Context, recipient int64, alert models.Alert) (models.AlertResult, error)
}
