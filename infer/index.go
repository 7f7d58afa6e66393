package infer

import (
	"encoding/binary"
	"slices"
	"sort"
)

// Frequency returns how many locations are at or after cur. locs must be
// sorted in ascending order.
func Frequency(locs []int, cur int) int {
	return len(locs) - sort.SearchInts(locs, cur)
}

// Index holds the tokens of N documents and, for every distinct token text,
// the ascending positions at which it occurs in each document.
type Index struct {
	tokens    [][]string
	locations map[string][][]int
}

// NewIndex builds the location index over the token texts of each document.
func NewIndex(tokens [][]string) *Index {
	ix := &Index{
		tokens:    tokens,
		locations: make(map[string][][]int),
	}
	for d, doc := range tokens {
		for i, t := range doc {
			locs, ok := ix.locations[t]
			if !ok {
				locs = make([][]int, len(tokens))
				ix.locations[t] = locs
			}
			locs[d] = append(locs[d], i)
		}
	}
	return ix
}

// Locations returns the positions of token in document d.
func (ix *Index) Locations(token string, d int) []int {
	locs, ok := ix.locations[token]
	if !ok {
		return nil
	}
	return locs[d]
}

func (ix *Index) inRange(pos []int) bool {
	for d, p := range pos {
		if p < 0 || p >= len(ix.tokens[d]) {
			return false
		}
	}
	return true
}

// Candidates returns the positions reachable from cursor cur. For each
// document in order, the token at its cursor yields a candidate when the
// same text occurs at or after every document's cursor; the candidate is the
// first such occurrence in each document. Duplicates keep first-seen order.
func (ix *Index) Candidates(cur []int) [][]int {
	var out [][]int
	for d := range ix.tokens {
		if cur[d] >= len(ix.tokens[d]) {
			continue
		}
		locs := ix.locations[ix.tokens[d][cur[d]]]

		cand := make([]int, len(ix.tokens))
		ok := true
		for e := range ix.tokens {
			i := sort.SearchInts(locs[e], cur[e])
			if i == len(locs[e]) {
				ok = false
				break
			}
			cand[e] = locs[e][i]
		}
		if !ok {
			continue
		}
		if !slices.ContainsFunc(out, func(c []int) bool { return slices.Equal(c, cand) }) {
			out = append(out, cand)
		}
	}
	return out
}

// unique reports whether the token at pos occurs exactly once from pos
// onward in every document.
func (ix *Index) unique(pos []int) bool {
	for d, p := range pos {
		if Frequency(ix.Locations(ix.tokens[d][p], d), p) != 1 {
			return false
		}
	}
	return true
}

// graph is an arena of anchor nodes. Node 0 is the virtual root.
type graph struct {
	positions [][]int
	children  [][]int
	byKey     map[string]int
}

func newGraph() *graph {
	return &graph{
		positions: [][]int{nil},
		children:  [][]int{nil},
		byKey:     make(map[string]int),
	}
}

func (g *graph) link(from, to int) {
	if !slices.Contains(g.children[from], to) {
		g.children[from] = append(g.children[from], to)
	}
}

type workItem struct {
	cursor []int
	origin int
}

func key(pos []int, extra ...int) string {
	b := make([]byte, 0, 8*(len(pos)+len(extra)))
	for _, p := range pos {
		b = binary.AppendVarint(b, int64(p))
	}
	for _, p := range extra {
		b = binary.AppendVarint(b, int64(p))
	}
	return string(b)
}

func next(pos []int, step int) []int {
	out := make([]int, len(pos))
	for i, p := range pos {
		out[i] = p + step
	}
	return out
}

// Anchors searches for unique invariant anchors and returns the longest
// chain of them in document order. Ties between equally long chains go to
// the chain found first.
func (ix *Index) Anchors() [][]int {
	n := len(ix.tokens)
	if n == 0 {
		return nil
	}

	g := newGraph()
	queue := []workItem{{cursor: make([]int, n), origin: 0}}
	visited := make(map[string]bool)

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		k := key(item.cursor, item.origin)
		if visited[k] {
			continue
		}
		visited[k] = true

		if !ix.inRange(item.cursor) {
			continue
		}

		detected := false
		for _, cand := range ix.Candidates(item.cursor) {
			if !ix.unique(cand) {
				continue
			}
			ck := key(cand)
			id, ok := g.byKey[ck]
			if !ok {
				id = len(g.positions)
				g.byKey[ck] = id
				g.positions = append(g.positions, cand)
				g.children = append(g.children, nil)
				detected = true
				queue = append(queue, workItem{cursor: next(cand, 1), origin: id})
			}
			g.link(item.origin, id)
		}
		if !detected {
			queue = append(queue, workItem{cursor: next(item.cursor, 1), origin: item.origin})
		}
	}

	return g.longestPath()
}

// longestPath returns the positions along the longest root-to-leaf path.
// Every edge leads to a position strictly greater in each coordinate, so
// visiting nodes by descending coordinate sum computes heights children
// first without recursion.
func (g *graph) longestPath() [][]int {
	order := make([]int, 0, len(g.positions)-1)
	sums := make([]int, len(g.positions))
	for id := 1; id < len(g.positions); id++ {
		order = append(order, id)
		for _, p := range g.positions[id] {
			sums[id] += p
		}
	}
	slices.SortFunc(order, func(a, b int) int { return sums[b] - sums[a] })
	order = append(order, 0)

	height := make([]int, len(g.positions))
	for _, id := range order {
		for _, c := range g.children[id] {
			height[id] = max(height[id], height[c]+1)
		}
	}

	var path [][]int
	for id := 0; len(g.children[id]) > 0; {
		for _, c := range g.children[id] {
			if height[c] == height[id]-1 {
				id = c
				break
			}
		}
		path = append(path, g.positions[id])
	}
	return path
}
