package mock

import "github.com/fwojciec/diffscraper"

var _ diffscraper.Tokenizer = (*Tokenizer)(nil)

// Tokenizer is a mock implementation of diffscraper.Tokenizer.
type Tokenizer struct {
	TokenizeFn func(doc string) ([]diffscraper.Token, error)
}

func (t *Tokenizer) Tokenize(doc string) ([]diffscraper.Token, error) {
	return t.TokenizeFn(doc)
}
