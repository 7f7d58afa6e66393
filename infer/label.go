package infer

import "strings"

// Label classifies one token of one document.
type Label int

// Label constants.
const (
	Variant Label = iota
	NotUniqueInvariant
	UniqueInvariant
)

// String returns the name of the label.
func (l Label) String() string {
	switch l {
	case Variant:
		return "variant"
	case NotUniqueInvariant:
		return "not-unique-invariant"
	case UniqueInvariant:
		return "unique-invariant"
	default:
		return "unknown"
	}
}

// Promote labels the anchors of chain and every identical token reachable
// from them. Each anchor grows rightward and then leftward one position at a
// time across all documents until a document runs out of tokens, the tokens
// differ, or a token is already claimed. Anchors end up UniqueInvariant and
// the tokens absorbed around them NotUniqueInvariant.
func Promote(tokens [][]string, chain [][]int) [][]Label {
	labels := make([][]Label, len(tokens))
	for d := range tokens {
		labels[d] = make([]Label, len(tokens[d]))
	}

	for _, anchor := range chain {
		for d, p := range anchor {
			labels[d][p] = NotUniqueInvariant
		}
		expand(tokens, labels, anchor, 1)
		expand(tokens, labels, anchor, -1)
	}
	for _, anchor := range chain {
		for d, p := range anchor {
			labels[d][p] = UniqueInvariant
		}
	}
	return labels
}

func expand(tokens [][]string, labels [][]Label, anchor []int, step int) {
	cur := anchor
	for {
		cur = next(cur, step)
		for d, p := range cur {
			if p < 0 || p >= len(tokens[d]) {
				return
			}
		}
		for d, p := range cur {
			if tokens[d][p] != tokens[0][cur[0]] || labels[d][p] != Variant {
				return
			}
		}
		for d, p := range cur {
			labels[d][p] = NotUniqueInvariant
		}
	}
}

// Segment walks the label arrays of all documents in lockstep and joins
// each run of positions that are invariant in every document into one
// segment. Segments consisting only of whitespace are dropped.
func Segment(tokens [][]string, labels [][]Label) []string {
	n := len(tokens)
	if n == 0 {
		return nil
	}
	for _, doc := range tokens {
		if len(doc) == 0 {
			return nil
		}
	}

	var segments []string
	var buf strings.Builder
	flush := func() {
		if strings.TrimSpace(buf.String()) != "" {
			segments = append(segments, buf.String())
		}
		buf.Reset()
	}

	cur := make([]int, n)
	searching := true
	for searching {
		for d := 0; d < n && searching; d++ {
			for labels[d][cur[d]] == Variant {
				if cur[d] >= len(tokens[d])-1 {
					searching = false
					break
				}
				cur[d]++
			}
		}

		for searching {
			if !allInvariant(labels, cur) {
				flush()
				break
			}
			buf.WriteString(tokens[0][cur[0]])
			for d := range cur {
				cur[d]++
				if cur[d] >= len(tokens[d]) {
					searching = false
				}
			}
		}
		flush()
	}
	return segments
}

func allInvariant(labels [][]Label, cur []int) bool {
	for d, p := range cur {
		if labels[d][p] == Variant {
			return false
		}
	}
	return true
}
