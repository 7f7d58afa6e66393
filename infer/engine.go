// Package infer implements template inference: it finds the invariant
// segments shared by a set of documents.
package infer

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/diffscraper"
	"golang.org/x/sync/errgroup"
)

// Ensure Engine implements diffscraper.Generator at compile time.
var _ diffscraper.Generator = (*Engine)(nil)

// Engine infers templates from documents tokenized with Tokenizer.
type Engine struct {
	Tokenizer diffscraper.Tokenizer

	// Concurrency bounds how many sibling gaps are refined at once by
	// Generate. Values below 2 refine gaps sequentially.
	Concurrency int
}

// Result holds the outcome of one level of inference.
type Result struct {
	Segments []string
	Tokens   [][]string
	Labels   [][]Label
}

// Match runs one level of inference over docs without refining the gaps
// between the segments it finds.
func (e *Engine) Match(docs []string) (*Result, error) {
	tokens := make([][]string, len(docs))
	for i, doc := range docs {
		toks, err := e.Tokenizer.Tokenize(doc)
		if err != nil {
			if diffscraper.ErrorCode(err) == diffscraper.ETOKENIZE {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			return nil, diffscraper.Errorf(diffscraper.ETOKENIZE, "document %d: %s", i, err)
		}
		tokens[i] = diffscraper.Texts(toks)
	}

	var chain [][]int
	if !slices.ContainsFunc(tokens, func(t []string) bool { return len(t) == 0 }) {
		chain = NewIndex(tokens).Anchors()
	}
	labels := Promote(tokens, chain)

	var segments []string
	if len(chain) > 0 {
		segments = Segment(tokens, labels)
	}
	return &Result{
		Segments: segments,
		Tokens:   tokens,
		Labels:   labels,
	}, nil
}

// Generate infers the invariant segments of docs. After each level the gaps
// between segments are refined recursively while every document has data in
// the gap and the level found something its parent did not.
func (e *Engine) Generate(ctx context.Context, docs []string) ([]string, error) {
	return e.generate(ctx, docs, nil)
}

// Update regenerates the segments of tmpl using docs together with the
// concatenation of the existing segments.
func (e *Engine) Update(ctx context.Context, tmpl *diffscraper.Template, docs []string) ([]string, error) {
	all := append(slices.Clone(docs), strings.Join(tmpl.Segments, ""))
	return e.Generate(ctx, all)
}

func (e *Engine) generate(ctx context.Context, docs []string, parent []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := e.Match(docs)
	if err != nil {
		return nil, err
	}
	segments := res.Segments

	// gaps[i][d] is document d's data before segments[i], or after the last
	// segment when i == len(segments).
	gaps := make([][]string, len(segments)+1)
	for d, doc := range docs {
		spans, err := diffscraper.Extract(segments, doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", d, err)
		}
		for i, s := range spans {
			gaps[i] = append(gaps[i], s)
		}
	}

	progressed := parent == nil || !slices.Equal(parent, segments)
	nested := make([][]string, len(gaps))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, e.Concurrency))
	for i, gap := range gaps {
		if !progressed || slices.Contains(gap, "") {
			continue
		}
		g.Go(func() error {
			sub, err := e.generate(gctx, gap, nonNil(segments))
			if err != nil {
				return err
			}
			nested[i] = sub
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []string
	for i := range gaps {
		out = append(out, nested[i]...)
		if i < len(segments) {
			out = append(out, segments[i])
		}
	}
	return out, nil
}

// nonNil distinguishes "no parent" from a parent level with no segments.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
