package main

import (
	"fmt"
	"slices"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/goquery"
)

// Expand returns docs followed by the URLs discovered through the sitemap
// and link flags. Discovered URLs are deduplicated against everything
// before them and capped by Limit.
func (f *SourceFlags) Expand(deps *Dependencies, docs []string) ([]string, error) {
	if f.Sitemap == "" && f.LinksFrom == "" {
		return docs, nil
	}

	filter, err := diffscraper.NewURLFilter(f.Match, f.Exclude)
	if err != nil {
		return nil, err
	}

	var discovered []string
	if f.Sitemap != "" {
		urls, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, f.Sitemap, filter)
		if err != nil {
			return nil, fmt.Errorf("sitemap %s: %w", f.Sitemap, err)
		}
		discovered = append(discovered, urls...)
	}
	if f.LinksFrom != "" {
		page, err := deps.Fetcher.Fetch(deps.Ctx, f.LinksFrom)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", f.LinksFrom, err)
		}
		links, err := goquery.ExtractLinks(page, f.LinksFrom, filter)
		if err != nil {
			return nil, err
		}
		discovered = append(discovered, links...)
	}

	sources := slices.Clone(docs)
	added := 0
	for _, u := range discovered {
		if f.Limit > 0 && added >= f.Limit {
			break
		}
		if slices.Contains(sources, u) {
			continue
		}
		sources = append(sources, u)
		added++
	}
	deps.Logger.Info("discovered sources", "sitemap", f.Sitemap, "links_from", f.LinksFrom, "added", added)
	return sources, nil
}
