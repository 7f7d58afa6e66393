package slog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/merkle"
	"github.com/fwojciec/diffscraper/mock"
	dsslog "github.com/fwojciec/diffscraper/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTemplateService(t *testing.T) {
	t.Parallel()

	t.Run("logs created template with assigned ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.TemplateService{
			CreateTemplateFn: func(ctx context.Context, rec *diffscraper.TemplateRecord) error {
				rec.ID = "tmpl-1"
				return nil
			},
		}
		svc := dsslog.NewLoggingTemplateService(inner, newLogger(&buf))

		err := svc.CreateTemplate(context.Background(), &diffscraper.TemplateRecord{Name: "pubs"})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "create template")
		assert.Contains(t, buf.String(), "id=tmpl-1")
		assert.Contains(t, buf.String(), "name=pubs")
	})

	t.Run("logs lookups by root", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.TemplateService{
			FindTemplateByRootFn: func(ctx context.Context, root diffscraper.Digest) (*diffscraper.TemplateRecord, error) {
				return nil, diffscraper.Errorf(diffscraper.ENOTFOUND, "template not found")
			},
		}
		svc := dsslog.NewLoggingTemplateService(inner, newLogger(&buf))
		root := merkle.NewTemplate([]string{"x"}).Root

		_, err := svc.FindTemplateByRoot(context.Background(), root)

		assert.Equal(t, diffscraper.ENOTFOUND, diffscraper.ErrorCode(err))
		assert.Contains(t, buf.String(), "root="+root.String())
	})

	t.Run("logs delete failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.TemplateService{
			DeleteTemplateFn: func(ctx context.Context, id string) error {
				return errors.New("locked")
			},
		}
		svc := dsslog.NewLoggingTemplateService(inner, newLogger(&buf))

		err := svc.DeleteTemplate(context.Background(), "tmpl-1")

		require.Error(t, err)
		assert.Contains(t, buf.String(), "delete template")
		assert.Contains(t, buf.String(), "err=locked")
	})
}
