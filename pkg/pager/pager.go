// Package pager models page residency for tree cursors. A cursor routes
// every node touch through Acquire; a false return means the page is not
// resident yet, the fetch has been scheduled, and the operation must
// surface IO to its caller and be retried.
package pager

import "sync"

// PageID identifies one tree node page.
type PageID uint32

// Pager reports and drives page residency.
type Pager interface {
	// Acquire reports whether page id is resident. Returning false
	// schedules the fetch; the caller retries until true.
	Acquire(id PageID) bool

	// Wait blocks until every fetch scheduled so far has completed.
	Wait() error

	// Close releases the pager's resources.
	Close() error
}

// MemPager keeps every page resident. It backs purely in-memory trees,
// where no operation ever needs to surface IO.
type MemPager struct{}

// NewMemPager returns a pager whose pages are always resident.
func NewMemPager() *MemPager { return &MemPager{} }

// Acquire always succeeds.
func (*MemPager) Acquire(id PageID) bool {
	recordAcquire(outcomeHit)
	return true
}

// Wait returns immediately; nothing is ever pending.
func (*MemPager) Wait() error { return nil }

// Close is a no-op.
func (*MemPager) Close() error { return nil }

// StallPager wraps another pager and makes the first touches of each page
// miss a fixed number of times before the inner fetch completes. It
// models a cold cache with deterministic fetch latency, which is what the
// retry protocol needs in tests and benchmarks.
type StallPager struct {
	inner  Pager
	misses int

	mu   sync.Mutex
	left map[PageID]int
}

// NewStallPager returns a pager where each page's first misses touches
// report non-resident before deferring to inner.
func NewStallPager(inner Pager, misses int) *StallPager {
	return &StallPager{
		inner:  inner,
		misses: misses,
		left:   make(map[PageID]int),
	}
}

// Acquire counts down the page's remaining misses, then defers to the
// inner pager.
func (p *StallPager) Acquire(id PageID) bool {
	p.mu.Lock()
	left, seen := p.left[id]
	if !seen {
		left = p.misses
	}
	if left > 0 {
		p.left[id] = left - 1
		p.mu.Unlock()
		recordAcquire(outcomeMiss)
		return false
	}
	p.left[id] = 0
	p.mu.Unlock()
	return p.inner.Acquire(id)
}

// Wait completes every scheduled fetch: pages already touched become
// resident immediately.
func (p *StallPager) Wait() error {
	p.mu.Lock()
	for id := range p.left {
		p.left[id] = 0
	}
	p.mu.Unlock()
	return p.inner.Wait()
}

// Close closes the inner pager.
func (p *StallPager) Close() error { return p.inner.Close() }
