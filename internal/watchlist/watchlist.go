// Package watchlist loads the competitors and pages to monitor from a YAML file.
package watchlist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid watchlist")

type file struct {
	Competitors []Entry `yaml:"competitors"`
}

// Entry is one competitor with its pages.
type Entry struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	AlertChatID int64       `yaml:"alert_chat_id"`
	Pages       []PageEntry `yaml:"pages"`
}

// PageEntry is one monitored URL. An empty ID is derived from the URL.
type PageEntry struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Store receives the synced records.
type Store interface {
	UpsertCompetitor(ctx context.Context, c models.Competitor) error
	UpsertPage(ctx context.Context, p models.Page) error
}

// Load reads and validates the watchlist at path.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a watchlist document. Unknown keys are rejected.
func Parse(data []byte) ([]Entry, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: parse yaml: %w", ErrInvalid, err)
	}

	if err := normalize(f.Competitors); err != nil {
		return nil, err
	}

	return f.Competitors, nil
}

func normalize(entries []Entry) error {
	competitorIDs := make(map[string]bool, len(entries))
	pageIDs := make(map[string]bool)

	for i := range entries {
		e := &entries[i]
		e.ID = strings.TrimSpace(e.ID)
		if e.ID == "" {
			return fmt.Errorf("%w: competitor #%d has no id", ErrInvalid, i+1)
		}
		if competitorIDs[e.ID] {
			return fmt.Errorf("%w: duplicate competitor id %q", ErrInvalid, e.ID)
		}
		competitorIDs[e.ID] = true
		if strings.TrimSpace(e.Name) == "" {
			e.Name = e.ID
		}

		for j := range e.Pages {
			p := &e.Pages[j]
			if err := validateURL(p.URL); err != nil {
				return fmt.Errorf("%w: competitor %q page #%d: %w", ErrInvalid, e.ID, j+1, err)
			}
			p.ID = strings.TrimSpace(p.ID)
			if p.ID == "" {
				p.ID = uuid.NewSHA1(uuid.NameSpaceURL, []byte(p.URL)).String()
			}
			if pageIDs[p.ID] {
				return fmt.Errorf("%w: duplicate page id %q", ErrInvalid, p.ID)
			}
			pageIDs[p.ID] = true
			if strings.TrimSpace(p.Label) == "" {
				p.Label = p.URL
			}
		}
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("bad url %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url %q must be absolute http(s)", raw)
	}

	return nil
}

// Sync upserts every competitor and page of the watchlist into the store.
func Sync(ctx context.Context, store Store, entries []Entry) error {
	const opn = "watchlist.Sync"
	now := time.Now().UTC()

	for _, e := range entries {
		err := store.UpsertCompetitor(ctx, models.Competitor{
			ID:          e.ID,
			Name:        e.Name,
			AlertChatID: e.AlertChatID,
			CreatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("%s: %w", opn, err)
		}

		for _, p := range e.Pages {
			err = store.UpsertPage(ctx, models.Page{
				ID:           p.ID,
				CompetitorID: e.ID,
				Label:        p.Label,
				URL:          strings.TrimSpace(p.URL),
				CreatedAt:    now,
			})
			if err != nil {
				return fmt.Errorf("%s: %w", opn, err)
			}
		}
	}

	return nil
}
