package btree

import (
	"fmt"

	"github.com/kestreldb/kestrel/pkg/cursor"
	"github.com/kestreldb/kestrel/pkg/types"
)

// position describes where a cursor stands relative to the tree's
// entries.
type position uint8

const (
	posUnset position = iota
	posOn
	posBeforeFirst
	posAfterLast
)

// TreeCursor traverses one tree. Operations acquire every page they move
// onto and surface IO without committing any state change when a page is
// not resident, so an identical retry re-evaluates from the same spot and
// converges on the same result.
type TreeCursor struct {
	forest   *Forest
	tree     *Tree
	pos      position
	pageIdx  int
	slot     int
	nullFlag bool
}

var _ cursor.Cursor = (*TreeCursor)(nil)

// NewCursor opens a cursor over the tree with the given root.
func NewCursor(f *Forest, root uint32) (*TreeCursor, error) {
	t := f.Tree(root)
	if t == nil {
		return nil, fmt.Errorf("btree: no tree with root %d", root)
	}
	return &TreeCursor{forest: f, tree: t}, nil
}

// IsEmpty reports whether the tree has no entries.
func (c *TreeCursor) IsEmpty() bool { return c.tree.count == 0 }

// Rewind positions the cursor at the first entry in key order.
func (c *TreeCursor) Rewind() (cursor.Result[struct{}], error) {
	if c.tree.count == 0 {
		c.pos = posAfterLast
		return cursor.Complete(), nil
	}
	return c.moveTo(0, 0)
}

// Last positions the cursor at the final entry in key order.
func (c *TreeCursor) Last() (cursor.Result[struct{}], error) {
	if c.tree.count == 0 {
		c.pos = posBeforeFirst
		return cursor.Complete(), nil
	}
	last := len(c.tree.pages) - 1
	return c.moveTo(last, len(c.tree.pages[last].entries)-1)
}

// SeekToLast positions at the final entry so a following Insert appends.
func (c *TreeCursor) SeekToLast() (cursor.Result[struct{}], error) {
	return c.Last()
}

// Next advances to the entry after the current position.
func (c *TreeCursor) Next() (cursor.Result[struct{}], error) {
	switch c.pos {
	case posUnset, posBeforeFirst:
		return c.Rewind()
	case posAfterLast:
		return cursor.Complete(), nil
	}

	pageIdx, slot := c.pageIdx, c.slot+1
	if slot >= len(c.tree.pages[pageIdx].entries) {
		pageIdx, slot = pageIdx+1, 0
		if pageIdx >= len(c.tree.pages) {
			c.pos = posAfterLast
			return cursor.Complete(), nil
		}
	}
	return c.moveTo(pageIdx, slot)
}

// Prev moves to the entry before the current position.
func (c *TreeCursor) Prev() (cursor.Result[struct{}], error) {
	switch c.pos {
	case posUnset, posAfterLast:
		return c.Last()
	case posBeforeFirst:
		return cursor.Complete(), nil
	}

	pageIdx, slot := c.pageIdx, c.slot-1
	if slot < 0 {
		pageIdx--
		if pageIdx < 0 {
			c.pos = posBeforeFirst
			return cursor.Complete(), nil
		}
		slot = len(c.tree.pages[pageIdx].entries) - 1
	}
	return c.moveTo(pageIdx, slot)
}

// Seek positions the cursor at the first entry satisfying op relative to
// key and reports whether one exists. On an EQ miss the cursor is left at
// the GE position so a following Insert need not re-descend.
func (c *TreeCursor) Seek(key cursor.SeekKey, op cursor.SeekOp) (cursor.Result[bool], error) {
	target := seekKeyValue(key)

	if c.tree.count == 0 {
		c.pos = posAfterLast
		return cursor.Ok(false), nil
	}

	pageIdx := c.tree.pageFor(target)
	if !c.forest.pager.Acquire(c.tree.pages[pageIdx].id) {
		return cursor.IO[bool](), nil
	}
	slot := searchPage(c.tree.pages[pageIdx], target)

	exact := slot < len(c.tree.pages[pageIdx].entries) &&
		compareKeys(c.tree.pages[pageIdx].entries[slot].key, target) == 0
	if op == cursor.SeekGT && exact {
		slot++
	}

	// A slot one past the page end belongs to the next page.
	if slot >= len(c.tree.pages[pageIdx].entries) {
		pageIdx++
		if pageIdx >= len(c.tree.pages) {
			c.pos = posAfterLast
			return cursor.Ok(false), nil
		}
		slot = 0
	}

	if res, err := c.moveTo(pageIdx, slot); err != nil || res.IsIO() {
		return cursor.IO[bool](), err
	}

	found := op != cursor.SeekEQ || exact
	return cursor.Ok(found), nil
}

// Record returns the row at the current position, or nil when the cursor
// is not on an entry. The row is shared cursor state, valid until the
// next call that may move the cursor.
func (c *TreeCursor) Record() (*types.OwnedRecord, error) {
	if c.pos != posOn {
		return nil, nil
	}
	return c.tree.pages[c.pageIdx].entries[c.slot].rec, nil
}

// RowID returns the row id at the current position. Index trees carry
// record keys, which have no row id.
func (c *TreeCursor) RowID() (uint64, bool, error) {
	if c.pos != posOn {
		return 0, false, nil
	}
	key := c.tree.pages[c.pageIdx].entries[c.slot].key
	if key.Kind() != types.KindInteger {
		return 0, false, nil
	}
	return uint64(key.Int()), true, nil
}

// Insert writes record under key, replacing an existing entry with an
// equal key, and leaves the cursor on the written entry. With movedBefore
// set, the caller has just sought to this key and the cursor's current
// page is used directly instead of re-locating it.
func (c *TreeCursor) Insert(key types.OwnedValue, record *types.OwnedRecord, movedBefore bool) (cursor.Result[struct{}], error) {
	if c.tree.count == 0 {
		c.pageIdx, c.slot = c.tree.insert(0, key, record)
		c.pos = posOn
		return cursor.Complete(), nil
	}

	pageIdx := -1
	if movedBefore && c.pos == posOn && c.pageCovers(c.pageIdx, key) {
		pageIdx = c.pageIdx
	}
	if pageIdx < 0 {
		pageIdx = c.tree.pageFor(key)
	}

	if !c.forest.pager.Acquire(c.tree.pages[pageIdx].id) {
		return cursor.IO[struct{}](), nil
	}

	c.pageIdx, c.slot = c.tree.insert(pageIdx, key, record)
	c.pos = posOn
	return cursor.Complete(), nil
}

// Exists reports whether an entry with key is present, leaving the cursor
// at the GE position for a following Insert.
func (c *TreeCursor) Exists(key types.OwnedValue) (cursor.Result[bool], error) {
	if c.tree.count == 0 {
		c.pos = posAfterLast
		return cursor.Ok(false), nil
	}

	pageIdx := c.tree.pageFor(key)
	if !c.forest.pager.Acquire(c.tree.pages[pageIdx].id) {
		return cursor.IO[bool](), nil
	}

	p := c.tree.pages[pageIdx]
	slot := searchPage(p, key)
	found := slot < len(p.entries) && compareKeys(p.entries[slot].key, key) == 0

	if slot >= len(p.entries) {
		slot = len(p.entries) - 1
	}
	c.pos, c.pageIdx, c.slot = posOn, pageIdx, slot
	return cursor.Ok(found), nil
}

// SetNullFlag marks the cursor's pseudo-null state for NULL-sensitive
// comparisons.
func (c *TreeCursor) SetNullFlag(flag bool) { c.nullFlag = flag }

// NullFlag returns the marker set by SetNullFlag.
func (c *TreeCursor) NullFlag() bool { return c.nullFlag }

// BtreeCreate provisions a fresh tree in the cursor's forest and returns
// its root identifier.
func (c *TreeCursor) BtreeCreate(flags int) uint32 {
	_ = flags // table/index layout hints; one in-memory layout serves both
	return c.forest.Create().Root()
}

// WaitForCompletion blocks until every page fetch scheduled by this
// cursor's operations has finished.
func (c *TreeCursor) WaitForCompletion() error {
	return c.forest.pager.Wait()
}

// moveTo commits the cursor onto an entry once its page is resident.
func (c *TreeCursor) moveTo(pageIdx, slot int) (cursor.Result[struct{}], error) {
	if !c.forest.pager.Acquire(c.tree.pages[pageIdx].id) {
		return cursor.IO[struct{}](), nil
	}
	c.pos, c.pageIdx, c.slot = posOn, pageIdx, slot
	return cursor.Complete(), nil
}

// pageCovers reports whether the page's key range could hold key.
func (c *TreeCursor) pageCovers(pageIdx int, key types.OwnedValue) bool {
	p := c.tree.pages[pageIdx]
	if compareKeys(key, p.minKey()) < 0 && pageIdx > 0 {
		return false
	}
	if pageIdx+1 < len(c.tree.pages) &&
		compareKeys(key, c.tree.pages[pageIdx+1].minKey()) >= 0 {
		return false
	}
	return true
}

// seekKeyValue converts a contract seek key into the tree's key form.
func seekKeyValue(k cursor.SeekKey) types.OwnedValue {
	if k.IsIndex() {
		return types.RecordValue(k.Index())
	}
	return types.Integer(int64(k.RowID()))
}
