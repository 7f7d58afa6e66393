package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.Generator = (*LoggingGenerator)(nil)

// LoggingGenerator wraps a Generator with logging.
type LoggingGenerator struct {
	next   diffscraper.Generator
	logger *slog.Logger
}

// NewLoggingGenerator creates a new LoggingGenerator.
func NewLoggingGenerator(next diffscraper.Generator, logger *slog.Logger) *LoggingGenerator {
	return &LoggingGenerator{next: next, logger: logger}
}

// Generate delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Generate(ctx context.Context, docs []string) (segments []string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("generate template",
			"documents", len(docs),
			"segments", len(segments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Generate(ctx, docs)
}

// Update delegates to the wrapped generator and logs the operation.
func (g *LoggingGenerator) Update(ctx context.Context, tmpl *diffscraper.Template, docs []string) (segments []string, err error) {
	defer func(begin time.Time) {
		g.logger.Info("update template",
			"root", tmpl.Root,
			"documents", len(docs),
			"segments", len(segments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return g.next.Update(ctx, tmpl, docs)
}
