package diffscraper

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// MaxSuggestDistance bounds how far a suggested selector's segment may be
// from the data segment it is suggested for.
const MaxSuggestDistance = 5

// maxInnerTextLen excludes long text runs such as inline scripts from
// inner_text candidates.
const maxInnerTextLen = 80

// Features tokenizes every invariant segment of a template. The result is
// the per-segment metadata consumed by Select.
func Features(tokenizer Tokenizer, segments []string) ([][]Token, error) {
	features := make([][]Token, len(segments))
	for i, seg := range segments {
		tokens, err := tokenizer.Tokenize(seg)
		if err != nil {
			return nil, fmt.Errorf("tokenize invariant segment %d: %w", i, err)
		}
		features[i] = tokens
	}
	return features, nil
}

// Candidates returns every predicate worth trying against features: each
// tag name, each id attribute, each class and each short inner word. The
// result is sorted by its string form.
func Candidates(features [][]Token) []Predicate {
	seen := make(map[string]Predicate)
	add := func(p Predicate) {
		seen[p.String()] = p
	}

	for _, tokens := range features {
		for _, t := range tokens {
			if t.IsTag() {
				add(StartTag(t.Tag))
			}
			for _, a := range t.Attrs {
				switch a.Name {
				case "id":
					add(TagAttr(t.Tag, a.Name, a.Value))
				case "class":
					for _, c := range strings.Fields(a.Value) {
						add(Class(c))
					}
				}
			}
			if t.Kind == TextToken {
				if n := utf8.RuneCountInString(t.Data); n >= 1 && n < maxInnerTextLen {
					for _, w := range Words(t.Data) {
						add(InnerText(w))
					}
				}
			}
		}
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	preds := make([]Predicate, len(keys))
	for i, k := range keys {
		preds[i] = seen[k]
	}
	return preds
}

// ProperSelector is a predicate that selects exactly one invariant segment.
type ProperSelector struct {
	Predicate Predicate
	Segment   int
}

// ProperSelectors returns the candidates that uniquely select a segment.
func ProperSelectors(features [][]Token, candidates []Predicate) []ProperSelector {
	var proper []ProperSelector
	for _, p := range candidates {
		idx, err := Select(features, []Predicate{p}, 0)
		if err != nil {
			continue
		}
		proper = append(proper, ProperSelector{Predicate: p, Segment: idx})
	}
	return proper
}

// Suggestion is a proper selector ranked for one data segment.
type Suggestion struct {
	Predicate Predicate
	Segment   int

	// Distance is the data segment index minus Segment. Passing Distance as
	// the offset to Select yields the data segment index.
	Distance int
}

// Recommended reports whether the data segment immediately follows the
// selected invariant segment.
func (s Suggestion) Recommended() bool {
	return s.Distance == 1
}

// String renders the suggestion as a selector and offset.
func (s Suggestion) String() string {
	str := fmt.Sprintf("%s offset %d", s.Predicate, s.Distance)
	if s.Recommended() {
		str += " # recommended"
	}
	return str
}

// Suggest ranks proper selectors for the data segment at index. Suggestions
// closest to a distance of 1 come first; suggestions further than
// MaxSuggestDistance are dropped.
func Suggest(proper []ProperSelector, index int) []Suggestion {
	var suggestions []Suggestion
	for _, ps := range proper {
		d := index - ps.Segment
		if abs(d) >= MaxSuggestDistance {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			Predicate: ps.Predicate,
			Segment:   ps.Segment,
			Distance:  d,
		})
	}
	slices.SortStableFunc(suggestions, func(a, b Suggestion) int {
		return cmp.Or(
			cmp.Compare(abs(a.Distance-1), abs(b.Distance-1)),
			cmp.Compare(a.Distance, b.Distance),
			strings.Compare(a.Predicate.String(), b.Predicate.String()),
		)
	})
	return suggestions
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
