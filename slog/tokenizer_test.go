package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/mock"
	dsslog "github.com/fwojciec/diffscraper/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("logs token count at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Tokenizer{
			TokenizeFn: func(doc string) ([]diffscraper.Token, error) {
				return []diffscraper.Token{{Kind: diffscraper.StartTagToken, Raw: "<p>", Tag: "p"}, {Kind: diffscraper.TextToken, Raw: "hi", Data: "hi"}}, nil
			},
		}

		tokens, err := dsslog.NewLoggingTokenizer(inner, newLogger(&buf)).Tokenize("<p>hi")

		require.NoError(t, err)
		assert.Len(t, tokens, 2)
		assert.Contains(t, buf.String(), "tokenize")
		assert.Contains(t, buf.String(), "bytes=5")
		assert.Contains(t, buf.String(), "tokens=2")
	})

	t.Run("stays silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
		inner := &mock.Tokenizer{
			TokenizeFn: func(doc string) ([]diffscraper.Token, error) {
				return nil, errors.New("bad input")
			},
		}

		_, err := dsslog.NewLoggingTokenizer(inner, logger).Tokenize("x")

		require.Error(t, err)
		assert.Empty(t, buf.String())
	})
}
