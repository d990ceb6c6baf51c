// Package cursor defines the traversal contract over an ordered,
// key-addressable tree of records (a table keyed by row id or an index
// keyed by a record), together with the non-blocking completion protocol
// every implementation follows.
//
// Any operation that may touch pages not yet in memory returns a Result
// that is either Ok or IO. IO means the operation is waiting on a page
// fetch: the caller re-invokes the identical operation until it observes
// Ok. Retries are idempotent with respect to the pending operation, so a
// caller may simply abandon one. The caller's own control flow is the
// scheduler; nothing blocks inside a call except the explicit
// WaitForCompletion barrier.
package cursor

import (
	"github.com/kestreldb/kestrel/pkg/types"
)

// Result is the outcome of a potentially I/O-bound cursor operation:
// either a completed value or a pending page fetch.
type Result[T any] struct {
	value   T
	pending bool
}

// Ok returns a completed result carrying v.
func Ok[T any](v T) Result[T] { return Result[T]{value: v} }

// IO returns a pending result; the caller must retry the operation.
func IO[T any]() Result[T] { return Result[T]{pending: true} }

// Complete is the Ok result of an operation that yields no value.
func Complete() Result[struct{}] { return Ok(struct{}{}) }

// IsIO reports whether the operation is still waiting on a page fetch.
func (r Result[T]) IsIO() bool { return r.pending }

// Value returns the completed value. Reading the value of a pending
// result is a caller defect.
func (r Result[T]) Value() T {
	if r.pending {
		panic("cursor: Value read from a pending result")
	}
	return r.value
}

// SeekOp selects how Seek positions the cursor relative to the key.
type SeekOp uint8

const (
	// SeekEQ positions at the exact key, if present.
	SeekEQ SeekOp = iota
	// SeekGE positions at the first key >= the target.
	SeekGE
	// SeekGT positions at the first key > the target.
	SeekGT
)

// String returns the operator's display form.
func (op SeekOp) String() string {
	switch op {
	case SeekEQ:
		return "EQ"
	case SeekGE:
		return "GE"
	case SeekGT:
		return "GT"
	}
	return "SeekOp(?)"
}

// SeekKey addresses a position in a tree: a table row id or an index key
// record.
type SeekKey struct {
	rowid uint64
	index *types.OwnedRecord
}

// RowIDKey addresses a table row.
func RowIDKey(id uint64) SeekKey { return SeekKey{rowid: id} }

// IndexKey addresses an index entry.
func IndexKey(rec *types.OwnedRecord) SeekKey { return SeekKey{index: rec} }

// IsIndex reports whether the key addresses an index entry.
func (k SeekKey) IsIndex() bool { return k.index != nil }

// RowID returns the table row id. Valid only when !IsIndex.
func (k SeekKey) RowID() uint64 { return k.rowid }

// Index returns the index key record. Valid only when IsIndex.
func (k SeekKey) Index() *types.OwnedRecord { return k.index }

// Cursor is a stateful traversal handle over one ordered tree. At most
// one mutating cursor may be active against a tree at a time unless the
// surrounding storage layer guarantees otherwise.
type Cursor interface {
	// IsEmpty reports whether the tree has no entries, based on the
	// cursor's current knowledge.
	IsEmpty() bool

	// Rewind positions the cursor at the first entry in key order.
	Rewind() (Result[struct{}], error)

	// Last positions the cursor at the final entry in key order.
	Last() (Result[struct{}], error)

	// Next advances to the entry after the current position.
	Next() (Result[struct{}], error)

	// Prev moves to the entry before the current position.
	Prev() (Result[struct{}], error)

	// SeekToLast positions at the final entry, tracking its row id so a
	// subsequent Insert can append.
	SeekToLast() (Result[struct{}], error)

	// Seek positions the cursor at the first entry satisfying op
	// relative to key and reports whether such an entry exists.
	Seek(key SeekKey, op SeekOp) (Result[bool], error)

	// Record returns the row at the current position, or nil when the
	// cursor is not positioned on an entry. The returned record is
	// shared cursor cache state: it is valid only until the next call
	// that may move the cursor.
	Record() (*types.OwnedRecord, error)

	// RowID returns the row id at the current position. ok is false
	// when the cursor is not positioned on an entry.
	RowID() (id uint64, ok bool, err error)

	// Insert writes record under key. movedBefore tells the cursor the
	// caller has just sought to the same key, so it need not re-descend
	// to find the insertion point.
	Insert(key types.OwnedValue, record *types.OwnedRecord, movedBefore bool) (Result[struct{}], error)

	// Exists reports whether an entry with key is present, leaving the
	// cursor positioned for a following Insert.
	Exists(key types.OwnedValue) (Result[bool], error)

	// SetNullFlag marks the cursor's pseudo-null state. Callers use it
	// to carry NULL-sensitive comparison semantics (e.g. UNIQUE index
	// checks) across operations.
	SetNullFlag(flag bool)

	// NullFlag returns the marker set by SetNullFlag.
	NullFlag() bool

	// BtreeCreate provisions a fresh tree (e.g. an ephemeral index) and
	// returns its root identifier.
	BtreeCreate(flags int) uint32

	// WaitForCompletion blocks until every pending page fetch for this
	// cursor has finished. It is the only blocking call in the
	// contract.
	WaitForCompletion() error
}
