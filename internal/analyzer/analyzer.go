// Package analyzer asks an OpenAI-compatible chat completion API for a
// qualitative reading of a detected change.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Houeta/rival-watch/internal/models"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
	DefaultTimeout = 20 * time.Second

	completionsPath = "/chat/completions"
	maxDiffChars    = 4000
)

var (
	ErrMissingCredentials = errors.New("analyzer credentials are not configured")
	ErrUnavailable        = errors.New("analyzer unavailable")
)

const systemPrompt = `You are a competitive intelligence analyst. You receive a summary of what changed ` +
	`on a competitor's web page. Explain in two or three sentences what the change likely means for ` +
	`their business and rate its strategic significance. Reply with a JSON object of the form ` +
	`{"analysis": "<text>", "significance": "high" | "medium" | "low"}.`

// Request describes one change to analyze.
type Request struct {
	PageLabel    string
	URL          string
	DiffSummary  string
	PriceContext string
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type verdict struct {
	Analysis     string `json:"analysis"`
	Significance string `json:"significance"`
}

// Client talks to the completion endpoint.
type Client struct {
	log    *slog.Logger
	http   *resty.Client
	apiKey string
	model  string
}

// NewClient creates an analyzer client. Empty values fall back to the defaults,
// except apiKey: without it every call fails with ErrMissingCredentials.
func NewClient(log *slog.Logger, baseURL, apiKey, model string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		client.SetAuthToken(apiKey)
	}

	return &Client{log: log, http: client, apiKey: apiKey, model: model}
}

// Analyze returns the analyzer's verdict on req. Significance is unknown when the
// model answers with anything other than high, medium or low.
func (c *Client) Analyze(ctx context.Context, req Request) (models.Analysis, error) {
	const opn = "analyzer.Analyze"
	log := c.log.With(slog.String("op", opn), slog.String("url", req.URL))

	if c.apiKey == "" {
		return models.Analysis{}, fmt.Errorf("%s: %w", opn, ErrMissingCredentials)
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature:    0.2,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	resp, err := c.http.R().SetContext(ctx).SetBody(body).Post(completionsPath)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("%s: %w: %w", opn, ErrUnavailable, err)
	}
	if resp.IsError() {
		return models.Analysis{}, fmt.Errorf("%s: %w: [%d] %s", opn, ErrUnavailable, resp.StatusCode(), resp.Status())
	}

	var out chatResponse
	if err = json.Unmarshal(resp.Body(), &out); err != nil {
		return models.Analysis{}, fmt.Errorf("%s: %w: failed to decode response: %w", opn, ErrUnavailable, err)
	}
	if len(out.Choices) == 0 {
		return models.Analysis{}, fmt.Errorf("%s: %w: empty completion", opn, ErrUnavailable)
	}

	v, err := parseVerdict(out.Choices[0].Message.Content)
	if err != nil {
		return models.Analysis{}, fmt.Errorf("%s: %w: %w", opn, ErrUnavailable, err)
	}

	analysis := models.Analysis{
		Text:         v.Analysis,
		Significance: models.ParseSignificance(strings.ToLower(strings.TrimSpace(v.Significance))),
	}
	log.DebugContext(ctx, "analysis received", slog.String("significance", string(analysis.Significance)))

	return analysis, nil
}

func buildPrompt(req Request) string {
	diff := truncate(req.DiffSummary, maxDiffChars)

	var b strings.Builder
	fmt.Fprintf(&b, "Page: %s\nURL: %s\n\nChanges:\n%s\n", req.PageLabel, req.URL, diff)
	if req.PriceContext != "" {
		fmt.Fprintf(&b, "\nPrice: %s\n", req.PriceContext)
	}

	return b.String()
}

// truncate cuts s to at most limit bytes without splitting a rune.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}

	return s[:cut] + "\n[truncated]"
}

// parseVerdict accepts the JSON object either bare or wrapped in a markdown code fence.
func parseVerdict(content string) (verdict, error) {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}

	var v verdict
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return verdict{}, fmt.Errorf("failed to decode verdict: %w", err)
	}
	if strings.TrimSpace(v.Analysis) == "" {
		return verdict{}, errors.New("verdict has no analysis text")
	}

	return v, nil
}
