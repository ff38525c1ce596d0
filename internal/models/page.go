package models

import "time"

// Competitor groups the pages watched for one rival business.
type Competitor struct {
	ID          string
	Name        string
	AlertChatID int64 // 0 means no dedicated recipient
	CreatedAt   time.Time
}

// Page is a single monitored URL.
type Page struct {
	ID           string
	CompetitorID string
	Label        string
	URL          string
	CreatedAt    time.Time
}
