// Package text provides a line-oriented implementation of
// diffscraper.Tokenizer for plain-text documents.
package text

import (
	"strings"

	"github.com/fwojciec/diffscraper"
)

// Ensure Tokenizer implements diffscraper.Tokenizer at compile time.
var _ diffscraper.Tokenizer = (*Tokenizer)(nil)

// Tokenizer splits a document into lines. Each token keeps its trailing
// newline so the tokens concatenate back to the document.
type Tokenizer struct{}

// NewTokenizer creates a new line Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize returns one text token per line of doc.
func (t *Tokenizer) Tokenize(doc string) ([]diffscraper.Token, error) {
	if doc == "" {
		return nil, nil
	}
	lines := strings.SplitAfter(doc, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	tokens := make([]diffscraper.Token, len(lines))
	for i, line := range lines {
		tokens[i] = diffscraper.Token{
			Kind: diffscraper.TextToken,
			Raw:  line,
			Data: strings.TrimSpace(line),
		}
	}
	return tokens, nil
}
