// Package checker runs the page check pipeline: fetch, normalize, extract a
// price, compare with the previous snapshot, classify, persist and alert.
package checker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/rival-watch/internal/analyzer"
	"github.com/Houeta/rival-watch/internal/content"
	"github.com/Houeta/rival-watch/internal/differ"
	"github.com/Houeta/rival-watch/internal/models"
	"github.com/Houeta/rival-watch/internal/price"
	"github.com/Houeta/rival-watch/internal/repository"
	"github.com/google/uuid"
)

const (
	DefaultRetention       = 10
	DefaultAnalyzerTimeout = 20 * time.Second

	analysisUnavailable = "AI analysis unavailable."
	maxDiffLines        = 40
)

// Config tunes the pipeline. Zero values fall back to the defaults.
type Config struct {
	Retention       int
	Thresholds      price.Thresholds
	AnalyzerTimeout time.Duration
	DefaultChatID   int64
}

// Checker is an orchestrator that performs a full verification cycle.
type Checker struct {
	log       *slog.Logger
	fetcher   Fetcher
	extractor PriceExtractor
	store     Store
	analyzer  Analyzer
	notifier  Notifier
	cfg       Config
	now       func() time.Time
	newID     func() string
}

// NewChecker creates a new Checker instance. analyzer and notifier may be nil.
func NewChecker(
	log *slog.Logger,
	pageFetcher Fetcher,
	extractor PriceExtractor,
	store Store,
	changeAnalyzer Analyzer,
	notifier Notifier,
	cfg Config,
) *Checker {
	if cfg.Retention <= 0 {
		cfg.Retention = DefaultRetention
	}
	if cfg.AnalyzerTimeout <= 0 {
		cfg.AnalyzerTimeout = DefaultAnalyzerTimeout
	}
	if cfg.Thresholds.MinPercent.IsZero() && cfg.Thresholds.MinAmount.IsZero() {
		cfg.Thresholds = price.DefaultThresholds()
	}

	return &Checker{
		log:       log,
		fetcher:   pageFetcher,
		extractor: extractor,
		store:     store,
		analyzer:  changeAnalyzer,
		notifier:  notifier,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
}

// CheckPage runs one check cycle for the page.
func (c *Checker) CheckPage(ctx context.Context, pageID string) (*models.CheckResult, error) {
	const opn = "checker.CheckPage"

	page, err := c.store.GetPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get page: %w", opn, err)
	}

	res, err := c.check(ctx, *page, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opn, err)
	}

	return res, nil
}

// CheckCompetitor checks every page of the competitor in turn. A failing page is
// recorded in the result and does not stop the batch.
func (c *Checker) CheckCompetitor(ctx context.Context, competitorID string) (*models.BatchResult, error) {
	const opn = "checker.CheckCompetitor"
	log := c.log.With("op", opn, "competitor_id", competitorID)

	competitor, err := c.store.GetCompetitor(ctx, competitorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get competitor: %w", opn, err)
	}

	pages, err := c.store.ListPages(ctx, competitorID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list pages: %w", opn, err)
	}

	batch := &models.BatchResult{CompetitorID: competitorID, Results: make([]models.PageResult, 0, len(pages))}
	for _, page := range pages {
		if err = ctx.Err(); err != nil {
			return batch, fmt.Errorf("%s: batch interrupted: %w", opn, err)
		}

		res, err := c.check(ctx, page, competitor)
		if err != nil {
			log.WarnContext(ctx, "Page check failed", "page_id", page.ID, "error", err)
			batch.Results = append(batch.Results, models.PageResult{PageID: page.ID, Error: err.Error()})
			continue
		}

		batch.Checked++
		if res.Change != nil {
			batch.Changes++
		}
		batch.Results = append(batch.Results, models.PageResult{
			PageID:          res.PageID,
			IsFirstSnapshot: res.IsFirstSnapshot,
			Change:          res.Change,
			PriceChange:     res.PriceChange,
		})
	}

	log.InfoContext(ctx, "Competitor checked", "pages", len(pages), "checked", batch.Checked, "changes", batch.Changes)

	return batch, nil
}

// CheckAll checks every competitor. A competitor that cannot be checked is logged and skipped.
func (c *Checker) CheckAll(ctx context.Context) ([]models.BatchResult, error) {
	const opn = "checker.CheckAll"
	log := c.log.With("op", opn)

	competitors, err := c.store.ListCompetitors(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list competitors: %w", opn, err)
	}

	results := make([]models.BatchResult, 0, len(competitors))
	for _, competitor := range competitors {
		batch, err := c.CheckCompetitor(ctx, competitor.ID)
		if batch != nil {
			results = append(results, *batch)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return results, fmt.Errorf("%s: %w", opn, ctxErr)
			}
			log.ErrorContext(ctx, "Competitor check failed", "competitor_id", competitor.ID, "error", err)
		}
	}

	return results, nil
}

func (c *Checker) check(ctx context.Context, page models.Page, competitor *models.Competitor) (*models.CheckResult, error) {
	log := c.log.With("op", "checker.check", "page_id", page.ID)

	resp, err := c.fetcher.Fetch(ctx, page.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	normalized, err := content.Normalize(resp.HTML)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize page: %w", err)
	}

	extraction := c.extractor.Extract(resp.HTML, normalized.NormalizedText)
	snapshot := models.Snapshot{
		ID:             c.newID(),
		PageID:         page.ID,
		RawHTML:        normalized.RawHTML,
		NormalizedText: normalized.NormalizedText,
		Fingerprint:    normalized.Fingerprint,
		Price:          extraction.Value,
		PriceRaw:       extraction.Raw,
		Currency:       extraction.Currency,
		Confidence:     extraction.Confidence,
		PriceSource:    extraction.Source,
		CapturedAt:     c.now(),
	}
	log.DebugContext(ctx, "Snapshot computed",
		"fingerprint", snapshot.Fingerprint, "price", snapshot.Price.Decimal.String(), "confidence", snapshot.Confidence)

	previous, err := c.store.GetLatestSnapshot(ctx, page.ID)
	if err != nil && !errors.Is(err, repository.ErrSnapshotNotFound) {
		return nil, fmt.Errorf("failed to get previous snapshot: %w", err)
	}

	result := &models.CheckResult{PageID: page.ID}
	var change *models.Change

	if previous == nil {
		log.InfoContext(ctx, "First snapshot stored as baseline")
		result.IsFirstSnapshot = true
	} else {
		change, result.PriceChange = c.classify(ctx, page, *previous, snapshot)
		result.Change = change
	}

	if err = c.store.SaveCheck(ctx, snapshot, change); err != nil {
		return nil, fmt.Errorf("failed to save check: %w", err)
	}

	if _, err = c.store.PruneSnapshots(ctx, page.ID, c.cfg.Retention); err != nil {
		log.WarnContext(ctx, "Failed to prune snapshots", "error", err)
	}

	if change != nil {
		log.InfoContext(ctx, "Change detected",
			"type", change.ChangeType, "significance", change.Significance, "summary", change.Summary)
		c.notify(ctx, page, competitor, change)
	}

	return result, nil
}

// classify compares the new snapshot with the previous one and composes the
// change to record, if any.
func (c *Checker) classify(
	ctx context.Context,
	page models.Page,
	previous, current models.Snapshot,
) (*models.Change, *models.PriceChange) {
	currency := current.Currency
	if currency == "" {
		currency = previous.Currency
	}

	decision := price.Evaluate(previous.Price, current.Price, current.Confidence, c.cfg.Thresholds)

	var priceChange *models.PriceChange
	if decision.Alert {
		priceChange = &models.PriceChange{Delta: decision.Delta, Confidence: current.Confidence, Currency: currency}
	}

	var diff models.DiffResult
	hasContentChange := previous.Fingerprint != current.Fingerprint
	if hasContentChange {
		diff = differ.Compare(previous.NormalizedText, current.NormalizedText)
		// a pure reordering has no line-set difference
		hasContentChange = diff.HasChanges
	}

	change := &models.Change{
		ID:             c.newID(),
		PageID:         page.ID,
		SnapshotID:     current.ID,
		OldFingerprint: previous.Fingerprint,
		NewFingerprint: current.Fingerprint,
		DetectedAt:     current.CapturedAt,
	}

	switch {
	case !hasContentChange && priceChange == nil:
		return nil, nil
	case !hasContentChange:
		change.ChangeType = models.ChangeTypePrice
		change.Summary = price.Summary(decision.Delta, currency)
		change.Significance = price.Significance(decision.Delta)
	default:
		c.composeContentChange(ctx, page, change, diff, priceChange)
	}

	if priceChange != nil {
		setPriceFields(change, decision.Delta)
	}

	if change.Significance == models.SignificanceNone {
		return nil, priceChange
	}

	return change, priceChange
}

func (c *Checker) composeContentChange(
	ctx context.Context,
	page models.Page,
	change *models.Change,
	diff models.DiffResult,
	priceChange *models.PriceChange,
) {
	change.ChangeType = models.ChangeTypeContent
	change.Summary = differ.Summary(diff)
	change.Significance = differ.Significance(diff)

	var priceContext string
	if priceChange != nil {
		priceContext = price.Summary(priceChange.Delta, priceChange.Currency)
		change.ChangeType = models.ChangeTypePrice
		change.Summary += "; " + priceContext
		if change.Significance == models.SignificanceLow {
			change.Significance = models.SignificanceMedium
		}
	}

	analysis := c.analyze(ctx, analyzer.Request{
		PageLabel:    page.Label,
		URL:          page.URL,
		DiffSummary:  describeDiff(diff),
		PriceContext: priceContext,
	})
	change.Analysis = analysis.Text
	if analysis.Significance.Rank() > 0 {
		change.Significance = analysis.Significance
	}
}

// analyze never fails: any analyzer error degrades to an unknown verdict.
func (c *Checker) analyze(ctx context.Context, req analyzer.Request) models.Analysis {
	unavailable := models.Analysis{Text: analysisUnavailable, Significance: models.SignificanceUnknown}
	if c.analyzer == nil {
		return unavailable
	}

	actx, cancel := context.WithTimeout(ctx, c.cfg.AnalyzerTimeout)
	defer cancel()

	analysis, err := c.analyzer.Analyze(actx, req)
	if err != nil {
		c.log.WarnContext(ctx, "Analyzer unavailable, keeping heuristic significance",
			"op", "checker.analyze", "url", req.URL, "error", err)
		return unavailable
	}

	return analysis
}

func (c *Checker) notify(ctx context.Context, page models.Page, competitor *models.Competitor, change *models.Change) {
	log := c.log.With("op", "checker.notify", "page_id", page.ID, "change_id", change.ID)
	if c.notifier == nil {
		return
	}

	if competitor == nil {
		var err error
		if competitor, err = c.store.GetCompetitor(ctx, page.CompetitorID); err != nil {
			log.WarnContext(ctx, "Failed to get competitor for alert", "error", err)
			return
		}
	}

	recipient := competitor.AlertChatID
	if recipient == 0 {
		recipient = c.cfg.DefaultChatID
	}
	if recipient == 0 {
		log.DebugContext(ctx, "No alert recipient configured")
		return
	}

	res, err := c.notifier.SendAlert(ctx, recipient, models.Alert{
		Competitor: *competitor,
		Page:       page,
		Changes:    []models.Change{*change},
	})
	if err != nil || !res.Sent {
		log.WarnContext(ctx, "Alert not sent", "reason", res.Reason, "error", err)
		return
	}

	if err = c.store.MarkNotified(ctx, change.ID); err != nil {
		log.ErrorContext(ctx, "Failed to mark change as notified", "error", err)
		return
	}
	change.Notified = true
}

func setPriceFields(change *models.Change, delta models.PriceDelta) {
	change.OldPrice = delta.OldPrice
	change.NewPrice = delta.NewPrice
	change.PriceDelta = delta.Amount
	change.PriceDeltaPct = delta.Percent
}

// describeDiff renders the summary followed by a bounded sample of changed lines.
func describeDiff(diff models.DiffResult) string {
	var b strings.Builder
	b.WriteString(differ.Summary(diff))

	written := 0
	for _, group := range []struct {
		prefix string
		lines  []string
	}{{"+ ", diff.Added}, {"- ", diff.Removed}} {
		for _, line := range group.lines {
			if written == maxDiffLines {
				b.WriteString("\n...")
				return b.String()
			}
			b.WriteString("\n" + group.prefix + line)
			written++
		}
	}

	return b.String()
}
