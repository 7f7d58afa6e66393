package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.Tokenizer = (*LoggingTokenizer)(nil)

// LoggingTokenizer wraps a Tokenizer with debug logging.
type LoggingTokenizer struct {
	next   diffscraper.Tokenizer
	logger *slog.Logger
}

// NewLoggingTokenizer creates a new LoggingTokenizer.
func NewLoggingTokenizer(next diffscraper.Tokenizer, logger *slog.Logger) *LoggingTokenizer {
	return &LoggingTokenizer{next: next, logger: logger}
}

// Tokenize delegates to the wrapped tokenizer and logs the token count.
func (t *LoggingTokenizer) Tokenize(doc string) (tokens []diffscraper.Token, err error) {
	defer func(begin time.Time) {
		t.logger.Debug("tokenize",
			"bytes", len(doc),
			"tokens", len(tokens),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return t.next.Tokenize(doc)
}
