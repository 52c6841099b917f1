// Package bloom provides probabilistic visited-URL tracking for crawl
// runs. Listing pages shift while new announcements land, so the same
// announcement URL can reappear on a later page; the filter keeps that
// cheap to detect without holding every URL in a map.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for visited-URL tracking.
type Filter struct {
	f *bloom.BloomFilter
}

// New creates a filter sized for n expected URLs with the given false
// positive rate. A false positive means an announcement is skipped as
// already visited; keep the rate low enough that this stays rare.
func New(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as visited.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test returns true if the URL might have been visited.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of URLs added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
