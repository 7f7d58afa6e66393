package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/diffscraper"
)

// ExtractLinks returns the same-host links of an index page in document
// order, such as the entries of a listing whose targets share a template.
// Fragments are stripped, duplicates and links back to the page itself are
// dropped, and filter (which may be nil) is applied to the resolved URL.
func ExtractLinks(page string, baseURL string, filter *diffscraper.URLFilter) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, diffscraper.Errorf(diffscraper.EINVALID, "invalid base URL %q", baseURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return nil, diffscraper.Errorf(diffscraper.EINVALID, "failed to parse HTML: %v", err)
	}

	// A <base href> changes how relative links resolve.
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if ref, err := url.Parse(href); err == nil {
			base = base.ResolveReference(ref)
		}
	}

	seen := make(map[string]bool)
	links := []string{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" || !isSameHost(base, resolved) {
			return
		}
		if seen[resolved] || !filter.Match(resolved) {
			return
		}
		seen[resolved] = true
		links = append(links, resolved)
	})

	return links, nil
}

// resolveURL resolves href against base and strips the fragment. Returns an
// empty string if href cannot be parsed or resolves to base itself.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	self := *base
	self.Fragment = ""
	if resolved.String() == self.String() {
		return ""
	}
	return resolved.String()
}

// isSameHost uses exact host matching; subdomains are different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return u.Host == base.Host
}

func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	for _, scheme := range []string{"javascript:", "mailto:", "tel:", "data:"} {
		if strings.HasPrefix(href, scheme) {
			return true
		}
	}
	return false
}
