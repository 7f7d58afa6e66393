// Package goquery converts HTML fragments to text and extracts links using
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/diffscraper"
	"golang.org/x/net/html"
)

var _ diffscraper.TextConverter = (*TextConverter)(nil)

// blockElements start a new line in converted text.
var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"figcaption": true, "footer": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "header": true, "hr": true,
	"li": true, "main": true, "nav": true, "ol": true, "p": true,
	"pre": true, "section": true, "table": true, "td": true, "th": true,
	"tr": true, "ul": true,
}

// TextConverter renders HTML fragments as plain text. Data segments are
// usually unbalanced fragments, which the HTML parser repairs.
type TextConverter struct{}

// NewTextConverter creates a new TextConverter.
func NewTextConverter() *TextConverter {
	return &TextConverter{}
}

// Text returns the visible text of fragment. Block elements become line
// breaks, whitespace within a line is collapsed and blank lines are dropped.
func (c *TextConverter) Text(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", diffscraper.Errorf(diffscraper.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("script, style, noscript, template").Remove()

	var b strings.Builder
	for _, n := range doc.Nodes {
		render(&b, n)
	}
	return normalize(b.String()), nil
}

func render(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		writeText(b, n.Data)
		return
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && blockElements[n.Data]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		render(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}

// writeText writes s with runs of whitespace collapsed to a single space, so
// line breaks in the source never split a line.
func writeText(b *strings.Builder, s string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		if s != "" {
			b.WriteByte(' ')
		}
		return
	}
	if strings.TrimLeftFunc(s, unicode.IsSpace) != s {
		b.WriteByte(' ')
	}
	b.WriteString(strings.Join(fields, " "))
	if strings.TrimRightFunc(s, unicode.IsSpace) != s {
		b.WriteByte(' ')
	}
}

func normalize(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
