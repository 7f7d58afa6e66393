package mock

import (
	"context"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.TemplateService = (*TemplateService)(nil)

// TemplateService is a mock implementation of diffscraper.TemplateService.
type TemplateService struct {
	CreateTemplateFn     func(ctx context.Context, rec *diffscraper.TemplateRecord) error
	FindTemplateByIDFn   func(ctx context.Context, id string) (*diffscraper.TemplateRecord, error)
	FindTemplateByRootFn func(ctx context.Context, root diffscraper.Digest) (*diffscraper.TemplateRecord, error)
	FindTemplatesFn      func(ctx context.Context, filter diffscraper.TemplateFilter) ([]*diffscraper.TemplateRecord, error)
	DeleteTemplateFn     func(ctx context.Context, id string) error
}

func (s *TemplateService) CreateTemplate(ctx context.Context, rec *diffscraper.TemplateRecord) error {
	return s.CreateTemplateFn(ctx, rec)
}

func (s *TemplateService) FindTemplateByID(ctx context.Context, id string) (*diffscraper.TemplateRecord, error) {
	return s.FindTemplateByIDFn(ctx, id)
}

func (s *TemplateService) FindTemplateByRoot(ctx context.Context, root diffscraper.Digest) (*diffscraper.TemplateRecord, error) {
	return s.FindTemplateByRootFn(ctx, root)
}

func (s *TemplateService) FindTemplates(ctx context.Context, filter diffscraper.TemplateFilter) ([]*diffscraper.TemplateRecord, error) {
	return s.FindTemplatesFn(ctx, filter)
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id string) error {
	return s.DeleteTemplateFn(ctx, id)
}
