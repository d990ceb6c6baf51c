// Package btree provides an in-memory ordered tree of records and a
// cursor over it implementing the cursor contract. Entries live on
// fixed-capacity pages whose residency is governed by a pager: with a
// cold cache, cursor operations surface IO and complete on retry, which
// makes this the reference implementation of the retry protocol.
//
// Trees are grouped into a Forest, which allocates root identifiers; this
// is where BtreeCreate provisions ephemeral index trees.
package btree

import (
	"sync"

	"github.com/kestreldb/kestrel/pkg/pager"
	"github.com/kestreldb/kestrel/pkg/types"
)

// DefaultOrder is the fallback page capacity if a user-supplied order is
// too small.
const DefaultOrder = 64

// entry is one keyed row.
type entry struct {
	key types.OwnedValue
	rec *types.OwnedRecord
}

// page is a fixed-capacity run of ordered entries. The page boundary keys
// stay available as in-memory metadata even when the page body is not
// resident, the way a cached interior node would be.
type page struct {
	id      pager.PageID
	entries []entry
}

func (p *page) minKey() types.OwnedValue { return p.entries[0].key }

// compareKeys orders tree keys. Table keys are scalar values; index keys
// are records compared column by column. The two never share a tree.
func compareKeys(a, b types.OwnedValue) int {
	if a.Kind() == types.KindRecord && b.Kind() == types.KindRecord {
		return a.Record().Compare(b.Record())
	}
	return a.Compare(b)
}

// Tree is one ordered tree: a table keyed by row id or an index keyed by
// a record.
type Tree struct {
	forest *Forest
	root   uint32
	order  int
	pages  []*page
	count  int
}

// Root returns the tree's root identifier within its forest.
func (t *Tree) Root() uint32 { return t.root }

// Len returns the number of entries.
func (t *Tree) Len() int { return t.count }

// pageFor returns the index of the page whose key range covers key,
// using only boundary metadata (no page touch).
func (t *Tree) pageFor(key types.OwnedValue) int {
	if len(t.pages) == 0 {
		return -1
	}
	// First page whose minimum exceeds the key is one past the target.
	lo, hi := 0, len(t.pages)
	for lo < hi {
		mid := (lo + hi) / 2
		if compareKeys(t.pages[mid].minKey(), key) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == 0 {
		return 0
	}
	return lo - 1
}

// insert places an entry in key order, replacing an existing entry with
// an equal key. The caller has already acquired the target page.
func (t *Tree) insert(pageIdx int, key types.OwnedValue, rec *types.OwnedRecord) (int, int) {
	if len(t.pages) == 0 {
		p := &page{id: t.forest.allocPage(), entries: []entry{{key: key, rec: rec}}}
		t.pages = append(t.pages, p)
		t.count = 1
		return 0, 0
	}

	p := t.pages[pageIdx]
	slot := searchPage(p, key)
	if slot < len(p.entries) && compareKeys(p.entries[slot].key, key) == 0 {
		p.entries[slot].rec = rec
		return pageIdx, slot
	}

	p.entries = append(p.entries, entry{})
	copy(p.entries[slot+1:], p.entries[slot:])
	p.entries[slot] = entry{key: key, rec: rec}
	t.count++

	if len(p.entries) > t.order {
		t.splitPage(pageIdx)
		if slot >= (t.order+1)/2 {
			return pageIdx + 1, slot - (t.order+1)/2
		}
	}
	return pageIdx, slot
}

// splitPage moves the upper half of an overflowing page onto a fresh one.
// The fresh page is a buffer we just wrote, so the split itself needs no
// further acquisition; readers acquire it like any other page.
func (t *Tree) splitPage(pageIdx int) {
	p := t.pages[pageIdx]
	mid := (t.order + 1) / 2

	right := &page{
		id:      t.forest.allocPage(),
		entries: append([]entry{}, p.entries[mid:]...),
	}
	p.entries = p.entries[:mid]

	t.pages = append(t.pages, nil)
	copy(t.pages[pageIdx+2:], t.pages[pageIdx+1:])
	t.pages[pageIdx+1] = right
}

// searchPage returns the slot of the first entry >= key.
func searchPage(p *page, key types.OwnedValue) int {
	lo, hi := 0, len(p.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		if compareKeys(p.entries[mid].key, key) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// Forest owns a set of trees sharing one pager. Root identifiers are
// allocated sequentially, page identifiers are unique across the forest.
type Forest struct {
	pager pager.Pager
	order int

	mu       sync.Mutex
	trees    map[uint32]*Tree
	nextRoot uint32
	nextPage pager.PageID
}

// NewForest returns an empty forest backed by p. Orders below 3 fall back
// to DefaultOrder.
func NewForest(p pager.Pager, order int) *Forest {
	if order < 3 {
		order = DefaultOrder
	}
	return &Forest{
		pager:    p,
		order:    order,
		trees:    make(map[uint32]*Tree),
		nextRoot: 1,
		nextPage: 1,
	}
}

// Create provisions a fresh tree and returns it.
func (f *Forest) Create() *Tree {
	f.mu.Lock()
	defer f.mu.Unlock()

	t := &Tree{forest: f, root: f.nextRoot, order: f.order}
	f.trees[t.root] = t
	f.nextRoot++
	return t
}

// Tree returns the tree with the given root, or nil.
func (f *Forest) Tree(root uint32) *Tree {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trees[root]
}

func (f *Forest) allocPage() pager.PageID {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := f.nextPage
	f.nextPage++
	return id
}
