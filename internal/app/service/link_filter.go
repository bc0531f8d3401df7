package service

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// Sized for the links a single process plausibly issues between
	// restarts; false positives just fall through to the store lookup.
	filterCapacity = 1_000_000
	filterFPRate   = 0.001
)

// LinkFilter is a concurrency-safe bloom filter over issued link ids. It
// answers "definitely never issued" without touching the link store, so
// garbage ids never contend on the store mutex.
type LinkFilter struct {
	mu     sync.RWMutex
	filter *bloom.BloomFilter
}

// NewLinkFilter returns an empty filter.
func NewLinkFilter() *LinkFilter {
	return &LinkFilter{
		filter: bloom.NewWithEstimates(filterCapacity, filterFPRate),
	}
}

// Add records an issued link id.
func (f *LinkFilter) Add(linkID string) {
	f.mu.Lock()
	f.filter.AddString(linkID)
	f.mu.Unlock()
}

// MayContain reports whether linkID could have been issued. False means
// certainly not; true means the store must be consulted.
func (f *LinkFilter) MayContain(linkID string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.filter.TestString(linkID)
}
