package store

import (
	"fmt"

	"github.com/cockroachdb/pebble"

	"github.com/kestreldb/kestrel/pkg/codec"
	"github.com/kestreldb/kestrel/pkg/cursor"
	"github.com/kestreldb/kestrel/pkg/types"
)

// tablePos describes where a cursor stands relative to its tree's rows.
type tablePos uint8

const (
	tableUnset tablePos = iota
	tableOn
	tableBeforeFirst
	tableAfterLast
)

// TableCursor traverses one tree's rows in row id order. Pebble reads are
// synchronous, so every operation completes in one call; the IO arm of
// the contract is never taken. Iterators are snapshots, so the cursor
// reopens its iterator after each of its own writes.
type TableCursor struct {
	store *RecordStore
	tree  uint32
	lower []byte
	upper []byte

	iter  *pebble.Iterator
	stale bool

	pos      tablePos
	rowid    uint64
	rec      *types.OwnedRecord
	nullFlag bool
}

var _ cursor.Cursor = (*TableCursor)(nil)

func newTableCursor(s *RecordStore, tree uint32) *TableCursor {
	return &TableCursor{
		store: s,
		tree:  tree,
		lower: treePrefix(tree),
		upper: treeUpperBound(tree),
	}
}

// handle returns the open database, failing once the store is closed.
func (s *RecordStore) handle() (*pebble.DB, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if !s.isOpen {
		return nil, ErrNotOpen
	}
	return s.db, nil
}

// refresh (re)opens the iterator if it is missing or predates one of the
// cursor's own writes, restoring the current position.
func (c *TableCursor) refresh() error {
	if c.iter != nil && !c.stale {
		return nil
	}
	if c.iter != nil {
		if err := c.iter.Close(); err != nil {
			return err
		}
		c.iter = nil
	}

	db, err := c.store.handle()
	if err != nil {
		return err
	}
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: c.lower,
		UpperBound: c.upper,
	})
	if err != nil {
		return fmt.Errorf("tree %d iterator: %w", c.tree, err)
	}
	c.iter = iter
	c.stale = false

	if c.pos == tableOn {
		c.iter.SeekGE(rowKey(c.tree, c.rowid))
	}
	return nil
}

// commit records the iterator's landing spot after a move. exhausted is
// the position to take when the iterator ran off the end.
func (c *TableCursor) commit(exhausted tablePos) (cursor.Result[struct{}], error) {
	if err := c.iter.Error(); err != nil {
		return cursor.Complete(), err
	}
	if c.iter.Valid() {
		c.pos = tableOn
		c.rowid = rowIDFromKey(c.iter.Key())
		c.rec = nil
	} else {
		c.pos = exhausted
	}
	return cursor.Complete(), nil
}

// Close releases the cursor's iterator. The cursor is not usable after.
func (c *TableCursor) Close() error {
	if c.iter == nil {
		return nil
	}
	err := c.iter.Close()
	c.iter = nil
	return err
}

// IsEmpty reports whether the tree has no rows, including rows written
// since the cursor last moved.
func (c *TableCursor) IsEmpty() bool {
	db, err := c.store.handle()
	if err != nil {
		return true
	}
	iter, err := db.NewIter(&pebble.IterOptions{
		LowerBound: c.lower,
		UpperBound: c.upper,
	})
	if err != nil {
		return true
	}
	defer iter.Close()
	return !iter.First()
}

// Rewind positions the cursor at the first row.
func (c *TableCursor) Rewind() (cursor.Result[struct{}], error) {
	if err := c.refresh(); err != nil {
		return cursor.Complete(), err
	}
	c.iter.First()
	return c.commit(tableAfterLast)
}

// Last positions the cursor at the final row.
func (c *TableCursor) Last() (cursor.Result[struct{}], error) {
	if err := c.refresh(); err != nil {
		return cursor.Complete(), err
	}
	c.iter.Last()
	return c.commit(tableBeforeFirst)
}

// SeekToLast positions at the final row so a following Insert appends.
func (c *TableCursor) SeekToLast() (cursor.Result[struct{}], error) {
	return c.Last()
}

// Next advances to the row after the current position.
func (c *TableCursor) Next() (cursor.Result[struct{}], error) {
	switch c.pos {
	case tableUnset, tableBeforeFirst:
		return c.Rewind()
	case tableAfterLast:
		return cursor.Complete(), nil
	}
	if err := c.refresh(); err != nil {
		return cursor.Complete(), err
	}
	c.iter.Next()
	return c.commit(tableAfterLast)
}

// Prev moves to the row before the current position.
func (c *TableCursor) Prev() (cursor.Result[struct{}], error) {
	switch c.pos {
	case tableUnset, tableAfterLast:
		return c.Last()
	case tableBeforeFirst:
		return cursor.Complete(), nil
	}
	if err := c.refresh(); err != nil {
		return cursor.Complete(), err
	}
	c.iter.Prev()
	return c.commit(tableBeforeFirst)
}

// Seek positions the cursor at the first row satisfying op relative to
// key and reports whether one exists. On an EQ miss the cursor is left at
// the first row past the key.
func (c *TableCursor) Seek(key cursor.SeekKey, op cursor.SeekOp) (cursor.Result[bool], error) {
	if key.IsIndex() {
		return cursor.Ok(false), ErrIndexKey
	}
	if err := c.refresh(); err != nil {
		return cursor.Ok(false), err
	}

	target := key.RowID()
	c.iter.SeekGE(rowKey(c.tree, target))
	exact := c.iter.Valid() && rowIDFromKey(c.iter.Key()) == target
	if op == cursor.SeekGT && exact {
		c.iter.Next()
	}
	if _, err := c.commit(tableAfterLast); err != nil {
		return cursor.Ok(false), err
	}

	if op == cursor.SeekEQ {
		return cursor.Ok(exact), nil
	}
	return cursor.Ok(c.pos == tableOn), nil
}

// Record returns the row at the current position, or nil when the cursor
// is not on a row. The row is cached until the next move.
func (c *TableCursor) Record() (*types.OwnedRecord, error) {
	if c.pos != tableOn {
		return nil, nil
	}
	if c.rec == nil {
		rec, err := codec.Decode(c.iter.Value())
		if err != nil {
			return nil, fmt.Errorf("decode row %d: %w", c.rowid, err)
		}
		c.rec = rec
	}
	return c.rec, nil
}

// RowID returns the row id at the current position.
func (c *TableCursor) RowID() (uint64, bool, error) {
	if c.pos != tableOn {
		return 0, false, nil
	}
	return c.rowid, true, nil
}

// Insert writes record under key and leaves the cursor on the written
// row. Pebble locates the write position itself, so the movedBefore hint
// is not needed here.
func (c *TableCursor) Insert(key types.OwnedValue, record *types.OwnedRecord, movedBefore bool) (cursor.Result[struct{}], error) {
	if key.Kind() != types.KindInteger {
		return cursor.Complete(), ErrIndexKey
	}

	rowid := uint64(key.Int())
	if err := c.store.Put(c.tree, rowid, record); err != nil {
		return cursor.Complete(), err
	}

	c.pos = tableOn
	c.rowid = rowid
	c.rec = record
	c.stale = true
	return cursor.Complete(), nil
}

// Exists reports whether a row with key is present, leaving the cursor
// positioned for a following Insert.
func (c *TableCursor) Exists(key types.OwnedValue) (cursor.Result[bool], error) {
	if key.Kind() != types.KindInteger {
		return cursor.Ok(false), ErrIndexKey
	}
	return c.Seek(cursor.RowIDKey(uint64(key.Int())), cursor.SeekEQ)
}

// SetNullFlag marks the cursor's pseudo-null state for NULL-sensitive
// comparisons.
func (c *TableCursor) SetNullFlag(flag bool) { c.nullFlag = flag }

// NullFlag returns the marker set by SetNullFlag.
func (c *TableCursor) NullFlag() bool { return c.nullFlag }

// BtreeCreate provisions a fresh tree in the cursor's store and returns
// its identifier. Provisioning failure here means the metadata write
// failed, which the store cannot continue past.
func (c *TableCursor) BtreeCreate(flags int) uint32 {
	_ = flags
	tree, err := c.store.CreateTree()
	if err != nil {
		panic(fmt.Sprintf("store: create tree: %v", err))
	}
	return tree
}

// WaitForCompletion is a no-op; pebble reads and writes complete before
// returning.
func (c *TableCursor) WaitForCompletion() error { return nil }
