package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/merkle"
	"github.com/fwojciec/diffscraper/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(name string, segments ...string) *diffscraper.TemplateRecord {
	return &diffscraper.TemplateRecord{
		Name:      name,
		Template:  merkle.NewTemplate(segments),
		Documents: 3,
	}
}

func TestTemplateService_CreateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and timestamp", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))
		rec := newRecord("pubs", "<h1>", "</h1><p>")

		require.NoError(t, svc.CreateTemplate(context.Background(), rec))

		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.CreatedAt.IsZero())
	})

	t.Run("returns ECONFLICT for duplicate root", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.CreateTemplate(ctx, newRecord("pubs", "<h1>", "</h1>")))

		err := svc.CreateTemplate(ctx, newRecord("again", "<h1>", "</h1>"))

		assert.Equal(t, diffscraper.ECONFLICT, diffscraper.ErrorCode(err))
	})

	t.Run("returns EINVALID for record without name", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))

		err := svc.CreateTemplate(context.Background(), newRecord("", "<h1>"))

		assert.Equal(t, diffscraper.EINVALID, diffscraper.ErrorCode(err))
	})
}

func TestTemplateService_FindTemplateByID(t *testing.T) {
	t.Parallel()

	t.Run("returns template with segments in order", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))
		ctx := context.Background()
		rec := newRecord("pubs", "<h1>", "</h1><p>", "</p>")
		require.NoError(t, svc.CreateTemplate(ctx, rec))

		found, err := svc.FindTemplateByID(ctx, rec.ID)

		require.NoError(t, err)
		assert.Equal(t, rec.Name, found.Name)
		assert.Equal(t, 3, found.Documents)
		assert.Equal(t, rec.Template, found.Template)
		assert.True(t, rec.CreatedAt.Equal(found.CreatedAt))
	})

	t.Run("returns template with no segments", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))
		ctx := context.Background()
		rec := newRecord("empty")
		require.NoError(t, svc.CreateTemplate(ctx, rec))

		found, err := svc.FindTemplateByID(ctx, rec.ID)

		require.NoError(t, err)
		assert.Equal(t, []string{}, found.Template.Segments)
		assert.Equal(t, rec.Template.Root, found.Template.Root)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))

		_, err := svc.FindTemplateByID(context.Background(), "nonexistent-id")

		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))
	})
}

func TestTemplateService_FindTemplateByRoot(t *testing.T) {
	t.Parallel()

	t.Run("returns template registered under root", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))
		ctx := context.Background()
		rec := newRecord("pubs", "<h1>", "</h1>")
		require.NoError(t, svc.CreateTemplate(ctx, rec))

		found, err := svc.FindTemplateByRoot(ctx, rec.Template.Root)

		require.NoError(t, err)
		assert.Equal(t, rec.ID, found.ID)
	})

	t.Run("returns ENOTFOUND for unknown root", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))

		_, err := svc.FindTemplateByRoot(context.Background(), merkle.NewTemplate([]string{"x"}).Root)

		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))
	})
}

func TestTemplateService_FindTemplates(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) *sqlite.TemplateService {
		t.Helper()
		svc := sqlite.NewTemplateService(setupTestDB(t))
		for _, rec := range []*diffscraper.TemplateRecord{
			newRecord("pubs", "a"),
			newRecord("blog", "b"),
			newRecord("pubs", "c"),
		} {
			require.NoError(t, svc.CreateTemplate(context.Background(), rec))
		}
		return svc
	}

	t.Run("returns newest first", func(t *testing.T) {
		t.Parallel()

		recs, err := setup(t).FindTemplates(context.Background(), diffscraper.TemplateFilter{})

		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, []string{"c"}, recs[0].Template.Segments)
		assert.Equal(t, []string{"a"}, recs[2].Template.Segments)
	})

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		name := "pubs"
		recs, err := setup(t).FindTemplates(context.Background(), diffscraper.TemplateFilter{Name: &name})

		require.NoError(t, err)
		require.Len(t, recs, 2)
		for _, rec := range recs {
			assert.Equal(t, "pubs", rec.Name)
		}
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		recs, err := setup(t).FindTemplates(context.Background(), diffscraper.TemplateFilter{Limit: 1, Offset: 1})

		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, []string{"b"}, recs[0].Template.Segments)
	})

	t.Run("returns empty slice for empty registry", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))
		recs, err := svc.FindTemplates(context.Background(), diffscraper.TemplateFilter{})

		require.NoError(t, err)
		assert.NotNil(t, recs)
		assert.Empty(t, recs)
	})
}

func TestTemplateService_DeleteTemplate(t *testing.T) {
	t.Parallel()

	t.Run("removes template and its segments", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewTemplateService(db)
		ctx := context.Background()
		rec := newRecord("pubs", "<h1>", "</h1>")
		require.NoError(t, svc.CreateTemplate(ctx, rec))

		require.NoError(t, svc.DeleteTemplate(ctx, rec.ID))

		_, err := svc.FindTemplateByID(ctx, rec.ID)
		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))

		var n int
		require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM template_segments").Scan(&n))
		assert.Equal(t, 0, n)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewTemplateService(setupTestDB(t))

		err := svc.DeleteTemplate(context.Background(), "nonexistent-id")

		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))
	})
}
