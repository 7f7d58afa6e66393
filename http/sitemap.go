package http

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/bloom"
)

// Sitemap URL deduplication is approximate: a false positive drops a page,
// which only shrinks the sample of documents a template is inferred from.
const (
	sitemapExpectedURLs  = 100_000
	sitemapFalsePositive = 0.0001
)

var _ diffscraper.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from website sitemaps via HTTP.
type SitemapService struct {
	client  *http.Client
	limiter diffscraper.DomainLimiter
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used. A non-nil limiter throttles
// sitemap requests per host.
func NewSitemapService(client *http.Client, limiter diffscraper.DomainLimiter) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client, limiter: limiter}
}

// sitemapWalk holds the state of one DiscoverURLs call.
type sitemapWalk struct {
	svc      *SitemapService
	sitemaps map[string]bool
	seen     *bloom.Set
	filter   *diffscraper.URLFilter
	prefix   string
	urls     []string
}

// DiscoverURLs finds the page URLs listed in a site's sitemaps, in sitemap
// order and without duplicates. Returns an empty slice (not nil) if no
// sitemaps are found.
//
// When baseURL has a non-root path (e.g. https://example.com/pubs/), only
// URLs whose path lies under that prefix are returned.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *diffscraper.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, diffscraper.Errorf(diffscraper.EINVALID, "invalid base URL %q", baseURL)
	}

	w := &sitemapWalk{
		svc:      s,
		sitemaps: make(map[string]bool),
		seen:     bloom.NewSet(sitemapExpectedURLs, sitemapFalsePositive),
		filter:   filter,
		prefix:   normalizePrefix(base.Path),
		urls:     []string{},
	}

	root := *base
	root.Path = ""
	root.RawQuery = ""
	sitemapURLs, err := s.findSitemapURLs(ctx, &root)
	if err != nil {
		return nil, err
	}

	for _, u := range sitemapURLs {
		if err := w.visit(ctx, u); err != nil {
			return nil, err
		}
	}
	return w.urls, nil
}

// normalizePrefix returns the path prefix that page URLs must start with,
// ending in a slash so /pubs matches /pubs/x but not /pubsearch.
func normalizePrefix(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}

func (w *sitemapWalk) accept(rawURL string) {
	if w.prefix != "" {
		u, err := url.Parse(rawURL)
		if err != nil || !strings.HasPrefix(u.Path, w.prefix) {
			return
		}
	}
	if !w.filter.Match(rawURL) {
		return
	}
	if w.seen.Insert(rawURL) {
		return
	}
	w.urls = append(w.urls, rawURL)
}

// visit fetches a sitemap and handles both urlset and sitemapindex roots.
func (w *sitemapWalk) visit(ctx context.Context, sitemapURL string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if w.sitemaps[sitemapURL] {
		return nil
	}
	w.sitemaps[sitemapURL] = true

	body, err := w.svc.get(ctx, sitemapURL)
	if err != nil {
		return err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return diffscraper.Errorf(diffscraper.EINVALID, "parsing sitemap %s: %s", sitemapURL, err)
	}
	root := doc.Root()
	if root == nil {
		return diffscraper.Errorf(diffscraper.EINVALID, "empty sitemap %s", sitemapURL)
	}

	if root.Tag == "sitemapindex" {
		for _, loc := range locs(root, "sitemap") {
			if err := w.visit(ctx, loc); err != nil {
				return err
			}
		}
		return nil
	}

	for _, loc := range locs(root, "url") {
		w.accept(loc)
	}
	return nil
}

// locs returns the trimmed non-empty <loc> texts of root's tag children.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if s := strings.TrimSpace(loc.Text()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// findSitemapURLs reads Sitemap: directives from robots.txt and falls back
// to /sitemap.xml when there are none.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.robotsSitemaps(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
	ok, err := s.exists(ctx, sitemapURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if ok {
		return []string{sitemapURL}, nil
	}
	return nil, nil
}

func (s *SitemapService) robotsSitemaps(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.get(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	const directive = "sitemap:"
	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if len(line) < len(directive) || !strings.EqualFold(line[:len(directive)], directive) {
			continue
		}
		if u := strings.TrimSpace(line[len(directive):]); u != "" {
			sitemaps = append(sitemaps, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}
	return sitemaps, nil
}

func (s *SitemapService) wait(ctx context.Context, target string) error {
	if s.limiter == nil {
		return nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return diffscraper.Errorf(diffscraper.EINVALID, "invalid URL %q", target)
	}
	return s.limiter.Wait(ctx, u.Host)
}

// get fetches a URL and returns the response body.
func (s *SitemapService) get(ctx context.Context, target string) (io.ReadCloser, error) {
	if err := s.wait(ctx, target); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}
	return resp.Body, nil
}

// exists checks if a URL answers HEAD with 200 OK.
func (s *SitemapService) exists(ctx context.Context, target string) (bool, error) {
	if err := s.wait(ctx, target); err != nil {
		return false, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK, nil
}
