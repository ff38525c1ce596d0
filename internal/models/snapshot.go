package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Confidence - reliability tier of a price extraction strategy.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Content - normalized form of a fetched page.
type Content struct {
	RawHTML        string
	NormalizedText string
	Fingerprint    string
}

// Extraction - price found on a page, if any.
type Extraction struct {
	Value      decimal.NullDecimal
	Raw        string
	Currency   string
	Confidence Confidence
	Source     string
}

// Snapshot - immutable record of one fetch of one page.
type Snapshot struct {
	ID             string
	PageID         string
	RawHTML        string
	NormalizedText string
	Fingerprint    string
	Price          decimal.NullDecimal
	PriceRaw       string
	Currency       string
	Confidence     Confidence
	PriceSource    string
	CapturedAt     time.Time
}
