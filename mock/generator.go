package mock

import (
	"context"

	"github.com/fwojciec/diffscraper"
)

var _ diffscraper.Generator = (*Generator)(nil)

// Generator is a mock implementation of diffscraper.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, docs []string) ([]string, error)
	UpdateFn   func(ctx context.Context, tmpl *diffscraper.Template, docs []string) ([]string, error)
}

func (g *Generator) Generate(ctx context.Context, docs []string) ([]string, error) {
	return g.GenerateFn(ctx, docs)
}

func (g *Generator) Update(ctx context.Context, tmpl *diffscraper.Template, docs []string) ([]string, error) {
	return g.UpdateFn(ctx, tmpl, docs)
}
