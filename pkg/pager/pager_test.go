package pager

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemPagerAlwaysResident(t *testing.T) {
	p := NewMemPager()
	defer p.Close()

	for id := PageID(0); id < 100; id++ {
		assert.True(t, p.Acquire(id))
	}
	assert.NoError(t, p.Wait())
}

func TestStallPagerMissesThenHits(t *testing.T) {
	p := NewStallPager(NewMemPager(), 2)
	defer p.Close()

	assert.False(t, p.Acquire(1))
	assert.False(t, p.Acquire(1))
	assert.True(t, p.Acquire(1))
	// Once resident, a page stays resident.
	assert.True(t, p.Acquire(1))

	// Other pages start cold independently.
	assert.False(t, p.Acquire(2))
}

func TestStallPagerWaitCompletesScheduledFetches(t *testing.T) {
	p := NewStallPager(NewMemPager(), 5)
	defer p.Close()

	require.False(t, p.Acquire(1))
	require.NoError(t, p.Wait())
	assert.True(t, p.Acquire(1))

	// Wait only settles fetches that were scheduled; an untouched page
	// still starts cold.
	assert.False(t, p.Acquire(9))
}

func TestStallPagerZeroMisses(t *testing.T) {
	p := NewStallPager(NewMemPager(), 0)
	defer p.Close()
	assert.True(t, p.Acquire(1))
}
