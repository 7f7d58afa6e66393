// Package merkle computes content digests and Merkle roots with xxhash and
// implements the template and data integrity protocol.
//
// Digests are 64-bit xxhash values. They detect accidental corruption and
// template mismatches quickly but are not collision resistant against an
// adversary.
package merkle

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/diffscraper"
)

const (
	leafPrefix = 0x00
	nodePrefix = 0x01
)

// Sum returns the digest of b.
func Sum(b []byte) diffscraper.Digest {
	var d diffscraper.Digest
	binary.BigEndian.PutUint64(d[:], xxhash.Sum64(b))
	return d
}

// SumString returns the digest of s.
func SumString(s string) diffscraper.Digest {
	var d diffscraper.Digest
	binary.BigEndian.PutUint64(d[:], xxhash.Sum64String(s))
	return d
}

// Leaf returns the leaf digest of one item. Leaves and inner nodes are
// hashed with distinct prefixes so a leaf can never collide with a node.
func Leaf(item string) diffscraper.Digest {
	h := xxhash.New()
	_, _ = h.Write([]byte{leafPrefix})
	_, _ = h.WriteString(item)
	return fromUint64(h.Sum64())
}

func node(left, right diffscraper.Digest) diffscraper.Digest {
	h := xxhash.New()
	_, _ = h.Write([]byte{nodePrefix})
	_, _ = h.Write(left[:])
	_, _ = h.Write(right[:])
	return fromUint64(h.Sum64())
}

func fromUint64(v uint64) diffscraper.Digest {
	var d diffscraper.Digest
	binary.BigEndian.PutUint64(d[:], v)
	return d
}

// Tree is a binary Merkle tree stored level by level. Levels[0] holds the
// leaves and the last level holds the root.
type Tree struct {
	Levels [][]diffscraper.Digest
}

// NewTree builds a tree over items in order. A node without a sibling is
// promoted to the next level unchanged.
func NewTree(items []string) *Tree {
	leaves := make([]diffscraper.Digest, len(items))
	for i, item := range items {
		leaves[i] = Leaf(item)
	}
	t := &Tree{Levels: [][]diffscraper.Digest{leaves}}
	for level := leaves; len(level) > 1; {
		next := make([]diffscraper.Digest, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, node(level[i], level[i+1]))
		}
		t.Levels = append(t.Levels, next)
		level = next
	}
	return t
}

// Root returns the root digest. The root of an empty tree is the digest of
// empty input.
func (t *Tree) Root() diffscraper.Digest {
	top := t.Levels[len(t.Levels)-1]
	if len(top) == 0 {
		return Sum(nil)
	}
	return top[0]
}

// Root returns the Merkle root over items.
func Root(items []string) diffscraper.Digest {
	return NewTree(items).Root()
}
