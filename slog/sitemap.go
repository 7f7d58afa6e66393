// Package slog wraps the diffscraper services with log/slog so commands can
// report fetches, template inference and batch work without the services
// knowing about logging.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each sitemap crawl together with the URL
// filter applied to it.
type LoggingSitemapService struct {
	next   diffscraper.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next diffscraper.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service. A filter that leaves no
// URLs is also logged as a warning.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *diffscraper.URLFilter) (urls []string, err error) {
	var include, exclude int
	if filter != nil {
		include, exclude = len(filter.Include), len(filter.Exclude)
	}
	defer func(begin time.Time) {
		s.logger.Info("discover urls",
			"sitemap", baseURL,
			"include", include,
			"exclude", exclude,
			"urls", len(urls),
			"duration", time.Since(begin),
			"err", err,
		)
		if err == nil && len(urls) == 0 && include+exclude > 0 {
			s.logger.Warn("no sitemap urls matched filter", "sitemap", baseURL)
		}
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
