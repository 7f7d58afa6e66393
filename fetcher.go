package diffscraper

import "context"

// Fetcher retrieves raw document content from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
	Close() error
}

// DomainLimiter rate limits requests per host.
type DomainLimiter interface {
	Wait(ctx context.Context, host string) error
}
