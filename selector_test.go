package diffscraper_test

import (
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	features := pageFeatures(t)

	tests := []struct {
		name   string
		preds  []diffscraper.Predicate
		offset int
		want   int
	}{
		{"start tag", []diffscraper.Predicate{diffscraper.StartTag("title")}, 1, 1},
		{"tag attribute", []diffscraper.Predicate{diffscraper.TagAttr("div", "id", "main")}, 0, 1},
		{"class substring", []diffscraper.Predicate{diffscraper.Class("abstract")}, 1, 3},
		{"inner text word", []diffscraper.Predicate{diffscraper.InnerText("Year")}, 1, 4},
		{"start tag ignores end tags", []diffscraper.Predicate{diffscraper.StartTag("b")}, 0, 3},
		{"and of predicates", []diffscraper.Predicate{diffscraper.StartTag("p"), diffscraper.Class("summary")}, 0, 2},
		{"negative offset", []diffscraper.Predicate{diffscraper.StartTag("span")}, -1, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := diffscraper.Select(features, tt.preds, tt.offset)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("returns not found when nothing matches", func(t *testing.T) {
		t.Parallel()

		for _, p := range []diffscraper.Predicate{
			diffscraper.StartTag("section"),
			diffscraper.InnerText("Yea"),
			diffscraper.InnerText("year"),
			diffscraper.TagAttr("p", "class", "abstract summary"),
		} {
			_, err := diffscraper.Select(features, []diffscraper.Predicate{p}, 0)
			assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err), p.String())
		}
	})

	t.Run("returns ambiguous across segments", func(t *testing.T) {
		t.Parallel()

		p := diffscraper.Token{Kind: diffscraper.StartTagToken, Tag: "p"}
		features := [][]diffscraper.Token{{p}, {p}}

		_, err := diffscraper.Select(features, []diffscraper.Predicate{diffscraper.StartTag("p")}, 0)

		assert.Equal(t, diffscraper.EAMBIGUOUS, diffscraper.ErrorCode(err))
	})

	t.Run("returns ambiguous within one segment", func(t *testing.T) {
		t.Parallel()

		p := diffscraper.Token{Kind: diffscraper.StartTagToken, Tag: "p"}
		features := [][]diffscraper.Token{{p, p}}

		_, err := diffscraper.Select(features, []diffscraper.Predicate{diffscraper.StartTag("p")}, 0)

		assert.Equal(t, diffscraper.EAMBIGUOUS, diffscraper.ErrorCode(err))
	})
}

func TestPredicate_Match(t *testing.T) {
	t.Parallel()

	div := diffscraper.Token{
		Kind:  diffscraper.StartTagToken,
		Tag:   "div",
		Attrs: []diffscraper.Attr{{Name: "id", Value: "main"}, {Name: "class", Value: "col wide"}},
	}
	text := diffscraper.Token{Kind: diffscraper.TextToken, Data: "Published: (2019)"}
	br := diffscraper.Token{Kind: diffscraper.SelfClosingTagToken, Tag: "br"}

	assert.True(t, diffscraper.StartTag("div").Match(div))
	assert.False(t, diffscraper.StartTag("br").Match(br))
	assert.True(t, diffscraper.TagAttr("div", "id", "main").Match(div))
	assert.False(t, diffscraper.TagAttr("div", "class", "col wide").Match(div))
	assert.True(t, diffscraper.Class("wid").Match(div))
	assert.True(t, diffscraper.InnerText("Published").Match(text))
	assert.True(t, diffscraper.InnerText("2019").Match(text))
	assert.False(t, diffscraper.InnerText("Publish").Match(text))
	assert.False(t, diffscraper.InnerText("div").Match(div))
}

func TestParsePredicate(t *testing.T) {
	t.Parallel()

	t.Run("parses every predicate kind", func(t *testing.T) {
		t.Parallel()

		for _, p := range []diffscraper.Predicate{
			diffscraper.StartTag("title"),
			diffscraper.TagAttr("div", "id", "main"),
			diffscraper.Class("abstract"),
			diffscraper.InnerText("a \"quoted\", word"),
		} {
			got, err := diffscraper.ParsePredicate(p.String())
			require.NoError(t, err)
			assert.Equal(t, p, got)
		}
	})

	t.Run("renders call form", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, `starttag("title")`, diffscraper.StartTag("title").String())
		assert.Equal(t, `tagattr("div", "id", "main")`, diffscraper.TagAttr("div", "id", "main").String())
		assert.Equal(t, `class("abstract")`, diffscraper.Class("abstract").String())
		assert.Equal(t, `inner_text("Year")`, diffscraper.InnerText("Year").String())
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		got, err := diffscraper.ParsePredicate(`  tagattr( "a" ,"id",  "x" ) `)

		require.NoError(t, err)
		assert.Equal(t, diffscraper.TagAttr("a", "id", "x"), got)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{
			`starttag(title)`,
			`starttag("title"`,
			`unknown("x")`,
			`tagattr("a")`,
			`class("a",)`,
			`class("a" "b")`,
			``,
		} {
			_, err := diffscraper.ParsePredicate(s)
			assert.Equal(t, diffscraper.EINVALID, diffscraper.ErrorCode(err), s)
		}
	})
}

func TestWords(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"Hello", "world", "it's"}, diffscraper.Words("  Hello, world! -- it's\n"))
	assert.Empty(t, diffscraper.Words(" \n "))
}
