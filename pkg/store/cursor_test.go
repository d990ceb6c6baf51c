package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestreldb/kestrel/pkg/cursor"
	"github.com/kestreldb/kestrel/pkg/types"
)

// newSeededCursor creates a tree holding the given row ids and opens a
// cursor over it.
func newSeededCursor(t *testing.T, s *RecordStore, ids ...uint64) *TableCursor {
	t.Helper()

	tree, err := s.CreateTree()
	require.NoError(t, err)
	for _, id := range ids {
		require.NoError(t, s.Put(tree, id, testRow(int64(id))))
	}

	c, err := s.OpenCursor(tree)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func stepOk(t *testing.T, move func() (cursor.Result[struct{}], error)) {
	t.Helper()
	res, err := move()
	require.NoError(t, err)
	require.False(t, res.IsIO())
}

func collectForward(t *testing.T, c *TableCursor) []uint64 {
	t.Helper()

	var got []uint64
	stepOk(t, c.Rewind)
	for {
		rec, err := c.Record()
		require.NoError(t, err)
		if rec == nil {
			return got
		}
		id, ok, err := c.RowID()
		require.NoError(t, err)
		require.True(t, ok)
		got = append(got, id)
		stepOk(t, c.Next)
	}
}

func TestTableCursorForwardTraversal(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 8, 3, 5, 1, 13, 2)

	assert.Equal(t, []uint64{1, 2, 3, 5, 8, 13}, collectForward(t, c))

	// Advancing past the end stays past the end.
	stepOk(t, c.Next)
	rec, err := c.Record()
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestTableCursorBackwardTraversal(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 2, 4, 6)

	var got []uint64
	stepOk(t, c.Last)
	for {
		rec, err := c.Record()
		require.NoError(t, err)
		if rec == nil {
			break
		}
		id, _, err := c.RowID()
		require.NoError(t, err)
		got = append(got, id)
		stepOk(t, c.Prev)
	}
	assert.Equal(t, []uint64{6, 4, 2}, got)
}

func TestTableCursorEmptyTree(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s)

	assert.True(t, c.IsEmpty())
	stepOk(t, c.Rewind)
	rec, err := c.Record()
	require.NoError(t, err)
	assert.Nil(t, rec)

	_, ok, err := c.RowID()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTableCursorSeek(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 10, 20, 30, 40)

	tests := []struct {
		name    string
		rowid   uint64
		op      cursor.SeekOp
		found   bool
		landsOn uint64
		onRow   bool
	}{
		{"eq hit", 20, cursor.SeekEQ, true, 20, true},
		{"eq miss lands past key", 25, cursor.SeekEQ, false, 30, true},
		{"ge exact", 30, cursor.SeekGE, true, 30, true},
		{"ge between", 15, cursor.SeekGE, true, 20, true},
		{"gt skips equal", 30, cursor.SeekGT, true, 40, true},
		{"gt past last", 40, cursor.SeekGT, false, 0, false},
		{"eq past last", 99, cursor.SeekEQ, false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Seek(cursor.RowIDKey(tt.rowid), tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.found, res.Value())

			id, ok, err := c.RowID()
			require.NoError(t, err)
			require.Equal(t, tt.onRow, ok)
			if tt.onRow {
				assert.Equal(t, tt.landsOn, id)
			}
		})
	}
}

func TestTableCursorInsertVisibleToTraversal(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 10, 30)

	res, err := c.Insert(types.Integer(20), testRow(20), false)
	require.NoError(t, err)
	require.False(t, res.IsIO())

	// Insert leaves the cursor on the written row.
	id, ok, err := c.RowID()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(20), id)
	rec, err := c.Record()
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, int64(20), rec.Values[0].Int())

	assert.Equal(t, []uint64{10, 20, 30}, collectForward(t, c))
}

func TestTableCursorInsertThenNext(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 1, 5)

	res, err := c.Insert(types.Integer(3), testRow(3), false)
	require.NoError(t, err)
	require.False(t, res.IsIO())

	// The reopened iterator resumes from the inserted row.
	stepOk(t, c.Next)
	id, ok, err := c.RowID()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(5), id)
}

func TestTableCursorExists(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 1, 3)

	res, err := c.Exists(types.Integer(3))
	require.NoError(t, err)
	assert.True(t, res.Value())

	res, err = c.Exists(types.Integer(2))
	require.NoError(t, err)
	assert.False(t, res.Value())
}

func TestTableCursorRejectsIndexKeys(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 1)

	probe := types.NewOwnedRecord([]types.OwnedValue{types.Text("k")})
	_, err := c.Seek(cursor.IndexKey(probe), cursor.SeekGE)
	assert.ErrorIs(t, err, ErrIndexKey)

	_, err = c.Insert(types.Text("k"), testRow(1), false)
	assert.ErrorIs(t, err, ErrIndexKey)
}

func TestTableCursorBtreeCreate(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 1)

	r1 := c.BtreeCreate(0)
	r2 := c.BtreeCreate(0)
	assert.NotEqual(t, r1, r2)

	fresh, err := s.OpenCursor(r1)
	require.NoError(t, err)
	defer fresh.Close()
	assert.True(t, fresh.IsEmpty())
}

func TestTableCursorNullFlag(t *testing.T) {
	s := openTestStore(t)
	c := newSeededCursor(t, s, 1)

	assert.False(t, c.NullFlag())
	c.SetNullFlag(true)
	assert.True(t, c.NullFlag())
	assert.NoError(t, c.WaitForCompletion())
}

func TestTableCursorTreeIsolation(t *testing.T) {
	s := openTestStore(t)
	c1 := newSeededCursor(t, s, 1, 2, 3)
	c2 := newSeededCursor(t, s, 7)

	assert.Equal(t, []uint64{1, 2, 3}, collectForward(t, c1))
	assert.Equal(t, []uint64{7}, collectForward(t, c2))
}
