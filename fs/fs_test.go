package fs_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/fs"
	"github.com/fwojciec/diffscraper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Object Storage
// Outputs are written atomically and never overwritten unless forced.

func TestStore_WriteFileCreatesParentDirectories(t *testing.T) {
	t.Parallel()

	// Given a store and a path in a missing directory
	path := filepath.Join(t.TempDir(), "out", "page.html.data")
	store := fs.NewStore()

	// When I write to it
	err := store.WriteFile(path, []byte("payload"), false)

	// Then the file holds the content
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(b))
}

func TestStore_WriteFileRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	// Given an existing output file
	path := filepath.Join(t.TempDir(), "template.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	store := fs.NewStore()

	// When I write without force
	err := store.WriteFile(path, []byte("new"), false)

	// Then a conflict is reported and the file is untouched
	assert.Equal(t, diffscraper.ECONFLICT, diffscraper.ErrorCode(err))
	b, _ := os.ReadFile(path)
	assert.Equal(t, "old", string(b))
}

func TestStore_WriteFileOverwritesWhenForced(t *testing.T) {
	t.Parallel()

	// Given an existing output file
	dir := t.TempDir()
	path := filepath.Join(dir, "template.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	store := fs.NewStore()

	// When I write with force
	err := store.WriteFile(path, []byte("new"), true)

	// Then the content is replaced and no temp files remain
	require.NoError(t, err)
	b, _ := os.ReadFile(path)
	assert.Equal(t, "new", string(b))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestStore_ReadFile(t *testing.T) {
	t.Parallel()

	store := fs.NewStore()

	t.Run("returns content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a.data")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

		b, err := store.ReadFile(path)

		require.NoError(t, err)
		assert.Equal(t, []byte("x"), b)
		assert.True(t, store.Exists(path))
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "missing.data")

		_, err := store.ReadFile(path)

		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))
		assert.False(t, store.Exists(path))
	})
}

func TestLoader_LoadDocuments(t *testing.T) {
	t.Parallel()

	t.Run("loads files in order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		a := filepath.Join(dir, "a.html")
		b := filepath.Join(dir, "b.html")
		require.NoError(t, os.WriteFile(a, []byte("<a/>"), 0644))
		require.NoError(t, os.WriteFile(b, []byte("<b/><b/>"), 0644))

		docs, err := fs.NewLoader(nil).LoadDocuments(context.Background(), []string{b, a})

		require.NoError(t, err)
		require.Len(t, docs, 2)
		assert.Equal(t, &diffscraper.Document{Path: b, Content: "<b/><b/>", Size: 8}, docs[0])
		assert.Equal(t, "<a/>", docs[1].Content)
	})

	t.Run("returns not found for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewLoader(nil).LoadDocuments(context.Background(), []string{filepath.Join(t.TempDir(), "nope")})

		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))
	})

	t.Run("fetches URL sources", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "<html>" + url + "</html>", nil
			},
		}

		docs, err := fs.NewLoader(fetcher).LoadDocuments(context.Background(), []string{"https://example.com/p/1"})

		require.NoError(t, err)
		assert.Equal(t, "<html>https://example.com/p/1</html>", docs[0].Content)
	})

	t.Run("returns fetch error", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("HTTP 500")
			},
		}

		_, err := fs.NewLoader(fetcher).LoadDocuments(context.Background(), []string{"https://example.com/"})

		assert.ErrorContains(t, err, "HTTP 500")
	})

	t.Run("rejects URLs without fetcher", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewLoader(nil).LoadDocuments(context.Background(), []string{"http://example.com/"})

		assert.Equal(t, diffscraper.EINVALID, diffscraper.ErrorCode(err))
	})
}

func TestBaseName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source string
		want   string
	}{
		{"docs/page1.html", "page1.html"},
		{"https://example.com", "example.com_index"},
		{"https://example.com/", "example.com_index"},
		{"https://example.com/docs/", "example.com_docs_index"},
		{"https://example.com/pubs/42", "example.com_pubs_42"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			t.Parallel()

			got, err := fs.BaseName(tt.source)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDataPath(t *testing.T) {
	t.Parallel()

	got, err := fs.DataPath("out", "in/page1.html")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("out", "page1.html.data"), got)
	assert.Equal(t, filepath.Join("restored", "page1.html"), fs.DocumentPath("restored", got))
}
