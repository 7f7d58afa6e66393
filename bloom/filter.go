// Package bloom provides approximate string sets backed by Bloom filters.
// It keeps memory bounded when deduplicating large URL lists such as
// site-wide sitemaps.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set is an approximate set of strings. Contains never reports a false
// negative and reports a false positive with roughly the configured rate.
type Set struct {
	f *bloom.BloomFilter
}

// NewSet creates a set sized for n expected items with the given false
// positive rate.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Insert adds key and reports whether it was probably present already.
func (s *Set) Insert(key string) bool {
	return s.f.TestOrAddString(key)
}

// Contains returns true if key might be in the set.
func (s *Set) Contains(key string) bool {
	return s.f.TestString(key)
}

// Len returns the approximate number of distinct keys inserted.
func (s *Set) Len() uint {
	return uint(s.f.ApproximatedSize())
}
