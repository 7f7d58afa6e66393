package diffscraper_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/html"
	"github.com/stretchr/testify/require"
)

// pageSegments is the template inferred from pages.
var pageSegments = []string{
	"<html>\n<head><title>",
	"</title></head>\n<body>\n<div id=\"main\"><h1>",
	"</h1>\n<p class=\"abstract summary\">",
	"</p>\n<span>Year</span><b>",
	"</b>\n</div>\n</body>\n</html>",
}

func page(title, abstract string, year int) string {
	return fmt.Sprintf("<html>\n<head><title>%s</title></head>\n<body>\n<div id=\"main\"><h1>%s</h1>\n"+
		"<p class=\"abstract summary\">%s</p>\n<span>Year</span><b>%d</b>\n</div>\n</body>\n</html>",
		title, title, abstract, year)
}

func pageFeatures(t *testing.T) [][]diffscraper.Token {
	t.Helper()
	features, err := diffscraper.Features(html.NewTokenizer(), pageSegments)
	require.NoError(t, err)
	return features
}
