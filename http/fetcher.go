// Package http provides HTTP implementations of diffscraper.Fetcher and
// diffscraper.SitemapService for loading documents from websites.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/diffscraper"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements diffscraper.Fetcher at compile time.
var _ diffscraper.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw page content over HTTP. Requests to one host are
// rate limited when a limiter is configured, and failed requests are
// retried after each of the configured delays.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter diffscraper.DomainLimiter
	delays  []time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithLimiter rate limits requests per host.
func WithLimiter(l diffscraper.DomainLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithRetryDelays sets the delays between retries. Defaults to
// DefaultRetryDelays; an empty slice disables retries.
func WithRetryDelays(delays []time.Duration) Option {
	return func(f *Fetcher) {
		f.delays = delays
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		delays:  DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL. Responses other than 200 OK
// are errors; 404 returns ENOTFOUND and is not retried.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", diffscraper.Errorf(diffscraper.EINVALID, "invalid URL %q", rawURL)
	}
	return FetchWithRetryDelays(ctx, rawURL, func(ctx context.Context, rawURL string) (string, error) {
		if f.limiter != nil {
			if err := f.limiter.Wait(ctx, u.Host); err != nil {
				return "", err
			}
		}
		return f.fetch(ctx, rawURL)
	}, f.delays)
}

func (f *Fetcher) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", Permanent(diffscraper.Errorf(diffscraper.ENOTFOUND, "HTTP 404 for %s", rawURL))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
