package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/124.0 Safari/537.36"

	maxBodyBytes = 5 << 20
)

var (
	ErrNetwork   = errors.New("network error")
	ErrTimeout   = errors.New("fetch timed out")
	ErrBadStatus = errors.New("unexpected status code")
)

// Response is the raw page as returned by the server.
type Response struct {
	URL    string
	Status int
	HTML   string
}

// Fetcher retrieves raw HTML for monitored pages.
type Fetcher struct {
	log       *slog.Logger
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func NewFetcher(log *slog.Logger, timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Fetcher{log: log, client: http.DefaultClient, timeout: timeout, userAgent: userAgent}
}

// Fetch downloads the page at rawURL. The request is bound to the fetcher timeout,
// so an expired deadline aborts the underlying connection.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	const opn = "fetcher.Fetch"

	reqURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse URL %s: %w", opn, rawURL, err)
	}
	if reqURL.Scheme != "http" && reqURL.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported URL scheme %q: %w", opn, reqURL.Scheme, ErrNetwork)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create new request %s: %w", opn, reqURL.String(), err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	f.log.DebugContext(ctx, "Send request", "op", opn, "method", req.Method, "URL", req.URL)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, classify(ctx, opn, rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: [%d] %s", opn, ErrBadStatus, res.StatusCode, res.Status)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(ctx, opn, rawURL, err)
	}

	f.log.InfoContext(ctx, "Successfully received http response",
		"op", opn, "status code", res.StatusCode, "bytes", len(body))

	return &Response{URL: rawURL, Status: res.StatusCode, HTML: string(body)}, nil
}

// classify maps transport failures onto ErrTimeout or ErrNetwork.
func classify(ctx context.Context, opn, rawURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s: request %s: %w: %w", opn, rawURL, ErrTimeout, err)
	}

	return fmt.Errorf("%s: request %s: %w: %w", opn, rawURL, ErrNetwork, err)
}
