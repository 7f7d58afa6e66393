package goquery_test

import (
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listing = `<!DOCTYPE html>
<html>
<body>
<nav><a href="/">Home</a><a href="/pubs/">Publications</a></nav>
<ul>
	<li><a href="/pubs/pub1">Alpha</a></li>
	<li><a href="pub2#abstract">Beta</a></li>
	<li><a href="https://research.example.com/pubs/pub1">Alpha again</a></li>
	<li><a href="https://other.example.com/pubs/pub3">Elsewhere</a></li>
	<li><a href="mailto:team@example.com">Mail</a></li>
	<li><a href="javascript:void(0)">Menu</a></li>
	<li><a href="#top">Top</a></li>
</ul>
</body>
</html>`

func TestExtractLinks(t *testing.T) {
	t.Parallel()

	const base = "https://research.example.com/pubs/"

	t.Run("returns same-host links in document order", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ExtractLinks(listing, base, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://research.example.com/",
			"https://research.example.com/pubs/pub1",
			"https://research.example.com/pubs/pub2",
		}, links)
	})

	t.Run("applies URL filter", func(t *testing.T) {
		t.Parallel()

		filter, err := diffscraper.NewURLFilter([]string{`/pubs/pub\d+$`}, nil)
		require.NoError(t, err)

		links, err := goquery.ExtractLinks(listing, base, filter)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://research.example.com/pubs/pub1",
			"https://research.example.com/pubs/pub2",
		}, links)
	})

	t.Run("resolves against base element", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><base href="/archive/"></head><body><a href="pub9">Old</a></body></html>`

		links, err := goquery.ExtractLinks(page, base, nil)

		require.NoError(t, err)
		assert.Equal(t, []string{"https://research.example.com/archive/pub9"}, links)
	})

	t.Run("returns empty slice without links", func(t *testing.T) {
		t.Parallel()

		links, err := goquery.ExtractLinks("<p>nothing</p>", base, nil)

		require.NoError(t, err)
		assert.NotNil(t, links)
		assert.Empty(t, links)
	})

	t.Run("returns EINVALID for base without host", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.ExtractLinks(listing, "/pubs/", nil)

		assert.Equal(t, diffscraper.EINVALID, diffscraper.ErrorCode(err))
	})
}
