package mock

import (
	"context"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of diffscraper.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ diffscraper.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of diffscraper.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, host string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitFn(ctx, host)
}

var _ diffscraper.SitemapService = (*SitemapService)(nil)

type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string, filter *diffscraper.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *diffscraper.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL, filter)
}
