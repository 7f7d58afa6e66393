package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.TemplateService = (*LoggingTemplateService)(nil)

// LoggingTemplateService wraps a TemplateService with logging of writes.
// Reads are logged at debug level.
type LoggingTemplateService struct {
	next   diffscraper.TemplateService
	logger *slog.Logger
}

// NewLoggingTemplateService creates a new LoggingTemplateService.
func NewLoggingTemplateService(next diffscraper.TemplateService, logger *slog.Logger) *LoggingTemplateService {
	return &LoggingTemplateService{next: next, logger: logger}
}

func (s *LoggingTemplateService) CreateTemplate(ctx context.Context, rec *diffscraper.TemplateRecord) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create template",
			"id", rec.ID,
			"name", rec.Name,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateTemplate(ctx, rec)
}

func (s *LoggingTemplateService) FindTemplateByID(ctx context.Context, id string) (rec *diffscraper.TemplateRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find template", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindTemplateByID(ctx, id)
}

func (s *LoggingTemplateService) FindTemplateByRoot(ctx context.Context, root diffscraper.Digest) (rec *diffscraper.TemplateRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find template", "root", root, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindTemplateByRoot(ctx, root)
}

func (s *LoggingTemplateService) FindTemplates(ctx context.Context, filter diffscraper.TemplateFilter) (recs []*diffscraper.TemplateRecord, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find templates", "count", len(recs), "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.FindTemplates(ctx, filter)
}

func (s *LoggingTemplateService) DeleteTemplate(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete template", "id", id, "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.DeleteTemplate(ctx, id)
}
