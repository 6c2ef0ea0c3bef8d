package index

import "sync/atomic"

// Provider hands out the current index to readers. Rebuilds construct
// a fresh Index off to the side and install it with Swap, so readers
// never observe a half-built index.
type Provider struct {
	current atomic.Pointer[Index]
}

// NewProvider creates a provider holding the given index.
func NewProvider(idx *Index) *Provider {
	p := &Provider{}
	p.current.Store(idx)
	return p
}

// Current returns the index visible to readers.
func (p *Provider) Current() *Index {
	return p.current.Load()
}

// Swap atomically replaces the visible index.
func (p *Provider) Swap(idx *Index) {
	p.current.Store(idx)
}
