package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Significance - categorical severity of a detected change.
type Significance string

const (
	SignificanceNone    Significance = "none"
	SignificanceLow     Significance = "low"
	SignificanceMedium  Significance = "medium"
	SignificanceHigh    Significance = "high"
	SignificanceUnknown Significance = "unknown" // only ever reported by the analyzer
)

// Rank orders significance tiers; unknown ranks with none.
func (s Significance) Rank() int {
	switch s {
	case SignificanceLow:
		return 1
	case SignificanceMedium:
		return 2
	case SignificanceHigh:
		return 3
	default:
		return 0
	}
}

// ParseSignificance maps free text onto a tier, returning unknown for anything unrecognised.
func ParseSignificance(s string) Significance {
	switch Significance(s) {
	case SignificanceLow, SignificanceMedium, SignificanceHigh:
		return Significance(s)
	default:
		return SignificanceUnknown
	}
}

// ChangeType - what kind of signal produced a change record.
type ChangeType string

const (
	ChangeTypeContent ChangeType = "CONTENT"
	ChangeTypePrice   ChangeType = "PRICE_CHANGE"
)

// Direction of a price movement.
type Direction string

const (
	DirectionIncrease  Direction = "increase"
	DirectionDecrease  Direction = "decrease"
	DirectionUnchanged Direction = "unchanged"
	DirectionUnknown   Direction = "unknown"
)

// DiffResult - line-set difference between two normalized snapshots.
type DiffResult struct {
	Added        []string
	Removed      []string
	AddedCount   int
	RemovedCount int
	OldLines     int
	NewLines     int
	ChangeRatio  float64
	HasChanges   bool
}

// PriceDelta - comparison of two price observations.
type PriceDelta struct {
	OldPrice     decimal.NullDecimal
	NewPrice     decimal.NullDecimal
	Amount       decimal.NullDecimal
	Percent      decimal.NullDecimal
	IsMeaningful bool
	Direction    Direction
}

// Appeared reports a price showing up where none was found before.
func (d PriceDelta) Appeared() bool { return !d.OldPrice.Valid && d.NewPrice.Valid }

// Disappeared reports a previously found price that is no longer on the page.
func (d PriceDelta) Disappeared() bool { return d.OldPrice.Valid && !d.NewPrice.Valid }

// PriceChange - a price movement that passed the confidence-adjusted policy.
type PriceChange struct {
	Delta      PriceDelta
	Confidence Confidence
	Currency   string
}

// Change - persisted output of a check cycle that found something worth reporting.
type Change struct {
	ID             string
	PageID         string
	SnapshotID     string // snapshot that produced the change; may be pruned later
	OldFingerprint string
	NewFingerprint string
	Summary        string
	Analysis       string
	Significance   Significance
	ChangeType     ChangeType
	OldPrice       decimal.NullDecimal
	NewPrice       decimal.NullDecimal
	PriceDelta     decimal.NullDecimal
	PriceDeltaPct  decimal.NullDecimal
	Notified       bool
	DetectedAt     time.Time
}

// Analysis - verdict of the external qualitative analyzer.
type Analysis struct {
	Text         string
	Significance Significance
}

// AlertResult - outcome of handing changes to a notifier.
type AlertResult struct {
	Sent   bool
	Reason string
}

// CheckResult - outcome of checking a single page.
type CheckResult struct {
	PageID          string
	IsFirstSnapshot bool
	Change          *Change
	PriceChange     *PriceChange
}

// PageResult - per-page entry of a batch; Error is set when the check failed.
type PageResult struct {
	PageID          string
	IsFirstSnapshot bool
	Change          *Change
	PriceChange     *PriceChange
	Error           string
}

// BatchResult - aggregate of checking every page of a competitor.
type BatchResult struct {
	CompetitorID string
	Checked      int
	Changes      int
	Results      []PageResult
}

// Alert - changes of one page handed to a notifier, with the context needed to render them.
type Alert struct {
	Competitor Competitor
	Page       Page
	Changes    []Change
}
