package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectStore_WriteFile(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteFileFn", func(t *testing.T) {
		t.Parallel()

		var gotPath string
		var gotForce bool
		s := &mock.ObjectStore{
			WriteFileFn: func(path string, _ []byte, force bool) error {
				gotPath, gotForce = path, force
				return nil
			},
		}

		err := s.WriteFile("out/page.html.data", []byte("x"), true)

		require.NoError(t, err)
		assert.Equal(t, "out/page.html.data", gotPath)
		assert.True(t, gotForce)
	})

	t.Run("returns error from WriteFileFn", func(t *testing.T) {
		t.Parallel()

		s := &mock.ObjectStore{
			WriteFileFn: func(string, []byte, bool) error {
				return diffscraper.Errorf(diffscraper.ECONFLICT, "exists")
			},
		}

		err := s.WriteFile("a", nil, false)

		assert.Equal(t, diffscraper.ECONFLICT, diffscraper.ErrorCode(err))
	})
}

func TestGenerator_Generate(t *testing.T) {
	t.Parallel()

	g := &mock.Generator{
		GenerateFn: func(_ context.Context, docs []string) ([]string, error) {
			return docs[:1], nil
		},
	}

	segments, err := g.Generate(context.Background(), []string{"a", "b"})

	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, segments)
}
