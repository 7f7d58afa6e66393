// Package html provides an implementation of diffscraper.Tokenizer for HTML
// documents built on the golang.org/x/net/html tokenizer.
package html

import (
	"errors"
	"io"
	"strings"

	"github.com/fwojciec/diffscraper"
	"golang.org/x/net/html"
)

// Ensure Tokenizer implements diffscraper.Tokenizer at compile time.
var _ diffscraper.Tokenizer = (*Tokenizer)(nil)

// Tokenizer splits HTML into one token per tag, text run, comment and
// doctype. Malformed markup is tokenized leniently, the way browsers do.
type Tokenizer struct{}

// NewTokenizer creates a new HTML Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns the tokens of doc. The Raw fields of the result
// concatenate to doc exactly.
func (t *Tokenizer) Tokenize(doc string) ([]diffscraper.Token, error) {
	z := html.NewTokenizer(strings.NewReader(doc))

	var tokens []diffscraper.Token
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				break
			}
			return nil, diffscraper.Errorf(diffscraper.ETOKENIZE, "tokenize html at offset %d: %s", offset, z.Err())
		}

		// Raw must be copied before Token is called, which may reuse the buffer.
		raw := string(z.Raw())
		if !strings.HasPrefix(doc[offset:], raw) {
			return nil, diffscraper.Errorf(diffscraper.ETOKENIZE, "tokenize html: token does not match source at offset %d", offset)
		}
		offset += len(raw)

		tok := z.Token()
		tokens = append(tokens, convert(tt, tok, raw))
	}

	if offset != len(doc) {
		return nil, diffscraper.Errorf(diffscraper.ETOKENIZE, "tokenize html: consumed %d of %d bytes", offset, len(doc))
	}
	return tokens, nil
}

func convert(tt html.TokenType, tok html.Token, raw string) diffscraper.Token {
	t := diffscraper.Token{Raw: raw}
	switch tt {
	case html.StartTagToken:
		t.Kind = diffscraper.StartTagToken
	case html.EndTagToken:
		t.Kind = diffscraper.EndTagToken
	case html.SelfClosingTagToken:
		t.Kind = diffscraper.SelfClosingTagToken
	case html.CommentToken:
		t.Kind = diffscraper.CommentToken
		t.Data = strings.TrimSpace(tok.Data)
		return t
	case html.DoctypeToken:
		t.Kind = diffscraper.DoctypeToken
		t.Data = strings.TrimSpace(tok.Data)
		return t
	default:
		t.Kind = diffscraper.TextToken
		t.Data = strings.TrimSpace(tok.Data)
		return t
	}

	t.Tag = tok.Data
	if len(tok.Attr) > 0 {
		t.Attrs = make([]diffscraper.Attr, len(tok.Attr))
		for i, a := range tok.Attr {
			t.Attrs[i] = diffscraper.Attr{Name: a.Key, Value: a.Val}
		}
	}
	return t
}
