package diffscraper_test

import (
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		segments []string
		doc      string
		want     []string
	}{
		{"adjacent segments", []string{"a", "b"}, "ab", []string{"", "", ""}},
		{"data after", []string{"a"}, "aDATA", []string{"", "DATA"}},
		{"data before", []string{"a"}, "DATAa", []string{"DATA", ""}},
		{"no segments", nil, "whole", []string{"whole"}},
		{"repeated segment text", []string{"<a/>", "<a/>"}, "x<a/>y<a/>z", []string{"x", "y", "z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := diffscraper.Extract(tt.segments, tt.doc)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.segments)+1)
		})
	}

	t.Run("splits documents of a generated template", func(t *testing.T) {
		t.Parallel()

		segments := []string{"<c/>", "<a/>"}
		docs := []string{"<a/><b/><c/><d/><a/>", "<c/><b/><a/>", "<d/><b/><c/><a/>"}
		want := [][]string{
			{"<a/><b/>", "<d/>", ""},
			{"", "<b/>", ""},
			{"<d/><b/>", "", ""},
		}
		for i, doc := range docs {
			got, err := diffscraper.Extract(segments, doc)
			require.NoError(t, err)
			assert.Equal(t, want[i], got)
		}
	})

	t.Run("returns segment error without partial result", func(t *testing.T) {
		t.Parallel()

		got, err := diffscraper.Extract([]string{"a", "b"}, "ba")

		assert.Nil(t, got)
		assert.Equal(t, diffscraper.ESEGMENT, diffscraper.ErrorCode(err))
	})
}

func TestReconstruct(t *testing.T) {
	t.Parallel()

	t.Run("interleaves spans and segments", func(t *testing.T) {
		t.Parallel()

		got, err := diffscraper.Reconstruct([]string{"<c/>", "<a/>"}, []string{"<a/><b/>", "<d/>", ""})

		require.NoError(t, err)
		assert.Equal(t, "<a/><b/><c/><d/><a/>", got)
	})

	t.Run("inverts extract", func(t *testing.T) {
		t.Parallel()

		segments := []string{"<title>", "</title>", "<b>"}
		doc := "<html><title>Hi</title><p>x</p><b>y"

		spans, err := diffscraper.Extract(segments, doc)
		require.NoError(t, err)

		got, err := diffscraper.Reconstruct(segments, spans)
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("returns length error on mismatch", func(t *testing.T) {
		t.Parallel()

		_, err := diffscraper.Reconstruct([]string{"a"}, []string{"x"})

		assert.Equal(t, diffscraper.ELENGTH, diffscraper.ErrorCode(err))
	})
}
