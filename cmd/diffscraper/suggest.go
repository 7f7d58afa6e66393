package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/fwojciec/diffscraper"
)

// segmentView controls what showSegments prints around each data segment.
type segmentView struct {
	invariants bool
	selectors  bool
}

// Run executes the suggest command.
func (c *SuggestCmd) Run(deps *Dependencies) error {
	return showSegments(deps, &c.SourceFlags, &c.SegmentFlags, c.Docs, segmentView{selectors: true})
}

// Run executes the print-unified command.
func (c *PrintUnifiedCmd) Run(deps *Dependencies) error {
	return showSegments(deps, &c.SourceFlags, &c.SegmentFlags, c.Docs, segmentView{invariants: true})
}

// Run executes the print-data-segments command.
func (c *PrintDataSegmentsCmd) Run(deps *Dependencies) error {
	return showSegments(deps, &c.SourceFlags, &c.SegmentFlags, c.Docs, segmentView{})
}

// showSegments prints data segment i of every document for each i selected
// by the flags. With invariants set, invariant segment i follows data
// segment i; with an index N the invariant segment preceding it (N-1) is
// shown instead.
func showSegments(deps *Dependencies, src *SourceFlags, flags *SegmentFlags, args []string, view segmentView) error {
	sources, err := src.Expand(deps, args)
	if err != nil {
		return fail(deps, err)
	}
	// Inferring a template needs two documents; extracting with a given
	// one needs only one.
	need := 2
	if flags.Template != "" {
		need = 1
	}
	if len(sources) < need {
		return fail(deps, diffscraper.Errorf(diffscraper.EINVALID, "at least %d document(s) required, got %d", need, len(sources)))
	}

	docs, err := deps.Loader.LoadDocuments(deps.Ctx, sources)
	if err != nil {
		return fail(deps, err)
	}

	var segments []string
	if flags.Template != "" {
		tmpl, err := loadTemplate(deps, flags.Template)
		if err != nil {
			return fail(deps, err)
		}
		segments = tmpl.Segments
	} else if segments, err = deps.Generator.Generate(deps.Ctx, diffscraper.Contents(docs)); err != nil {
		return fail(deps, err)
	}

	spans := make([][]string, len(docs))
	for d, doc := range docs {
		if spans[d], err = diffscraper.Extract(segments, doc.Content); err != nil {
			return fail(deps, fmt.Errorf("%s: %w", doc.Path, err))
		}
	}

	var proper []diffscraper.ProperSelector
	if view.selectors {
		features, err := diffscraper.Features(deps.Tokenizer, segments)
		if err != nil {
			return fail(deps, err)
		}
		proper = diffscraper.ProperSelectors(features, diffscraper.Candidates(features))
	}

	all := flags.Index < 0
	for i := range len(segments) + 1 {
		if (all || i == flags.Index) && containsSearch(spans, i, flags.Search) {
			fmt.Fprintf(deps.Stdout, "========== Data Segment %d ==========\n", i)
			for _, s := range spans {
				fmt.Fprintln(deps.Stdout, strings.TrimSpace(s[i]))
			}
			if view.selectors {
				fmt.Fprintln(deps.Stdout, "---------- Proper Selectors ----------")
				for _, s := range diffscraper.Suggest(proper, i) {
					fmt.Fprintln(deps.Stdout, s)
				}
				fmt.Fprintln(deps.Stdout)
			}
		}
		if view.invariants && (all || i == flags.Index-1) && i < len(segments) {
			fmt.Fprintf(deps.Stdout, "========== Invariant Segment %d ==========\n", i)
			fmt.Fprintln(deps.Stdout, segments[i])
		}
	}
	return nil
}

// containsSearch reports whether any document's data segment i contains
// search. An empty search matches everything.
func containsSearch(spans [][]string, i int, search string) bool {
	if search == "" {
		return true
	}
	return slices.ContainsFunc(spans, func(s []string) bool {
		return strings.Contains(s[i], search)
	})
}
