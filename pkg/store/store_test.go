package store

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestreldb/kestrel/pkg/types"
)

func openTestStore(t *testing.T) *RecordStore {
	t.Helper()

	dir, err := os.MkdirTemp("", "kestrel-store-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := DefaultConfig(dir)
	cfg.Sync = false
	s, err := NewRecordStore(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Open())
	t.Cleanup(func() { s.Close() })
	return s
}

func testRow(id int64) *types.OwnedRecord {
	return types.NewOwnedRecord([]types.OwnedValue{
		types.Integer(id),
		types.Text("name"),
		types.Float(float64(id) / 2),
		types.Null(),
		types.Blob([]byte{0xde, 0xad}),
	})
}

func TestPutGetRoundTrip(t *testing.T) {
	s := openTestStore(t)

	tree, err := s.CreateTree()
	require.NoError(t, err)

	want := testRow(7)
	require.NoError(t, s.Put(tree, 7, want))

	got, err := s.Get(tree, 7)
	require.NoError(t, err)
	require.Len(t, got.Values, 5)
	assert.Equal(t, int64(7), got.Values[0].Int())
	assert.Equal(t, "name", got.Values[1].Str())
	assert.Equal(t, 3.5, got.Values[2].Float64())
	assert.True(t, got.Values[3].IsNull())
	assert.Equal(t, []byte{0xde, 0xad}, got.Values[4].Bytes())
}

func TestPutReplacesExistingRow(t *testing.T) {
	s := openTestStore(t)

	tree, err := s.CreateTree()
	require.NoError(t, err)

	require.NoError(t, s.Put(tree, 1, testRow(1)))
	replacement := types.NewOwnedRecord([]types.OwnedValue{types.Text("replaced")})
	require.NoError(t, s.Put(tree, 1, replacement))

	got, err := s.Get(tree, 1)
	require.NoError(t, err)
	require.Len(t, got.Values, 1)
	assert.Equal(t, "replaced", got.Values[0].Str())
}

func TestGetMissingRow(t *testing.T) {
	s := openTestStore(t)

	tree, err := s.CreateTree()
	require.NoError(t, err)

	_, err = s.Get(tree, 99)
	assert.ErrorIs(t, err, ErrRowNotFound)
}

func TestDeleteRow(t *testing.T) {
	s := openTestStore(t)

	tree, err := s.CreateTree()
	require.NoError(t, err)

	require.NoError(t, s.Put(tree, 5, testRow(5)))
	require.NoError(t, s.Delete(tree, 5))

	_, err = s.Get(tree, 5)
	assert.ErrorIs(t, err, ErrRowNotFound)

	// Deleting an absent row is not an error.
	assert.NoError(t, s.Delete(tree, 5))
}

func TestUnknownTreeRejected(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(42, 1)
	assert.ErrorIs(t, err, ErrTreeUnknown)
	assert.ErrorIs(t, s.Put(42, 1, testRow(1)), ErrTreeUnknown)
	_, err = s.OpenCursor(42)
	assert.ErrorIs(t, err, ErrTreeUnknown)

	// Tree ids start at 1; 0 is never valid.
	_, err = s.Get(0, 1)
	assert.ErrorIs(t, err, ErrTreeUnknown)
}

func TestOperationsRequireOpen(t *testing.T) {
	dir, err := os.MkdirTemp("", "kestrel-store-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := NewRecordStore(DefaultConfig(dir))
	require.NoError(t, err)

	_, err = s.CreateTree()
	assert.ErrorIs(t, err, ErrNotOpen)
	_, err = s.Stats()
	assert.ErrorIs(t, err, ErrNotOpen)
	assert.ErrorIs(t, s.Put(1, 1, testRow(1)), ErrNotOpen)
}

func TestCreateTreeSequentialIDs(t *testing.T) {
	s := openTestStore(t)

	t1, err := s.CreateTree()
	require.NoError(t, err)
	t2, err := s.CreateTree()
	require.NoError(t, err)

	assert.Equal(t, uint32(1), t1)
	assert.Equal(t, uint32(2), t2)
}

func TestReopenKeepsIdentityAndTrees(t *testing.T) {
	dir, err := os.MkdirTemp("", "kestrel-store-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	cfg := DefaultConfig(dir)
	cfg.Sync = false
	s, err := NewRecordStore(cfg)
	require.NoError(t, err)
	require.NoError(t, s.Open())

	tree, err := s.CreateTree()
	require.NoError(t, err)
	require.NoError(t, s.Put(tree, 3, testRow(3)))

	before, err := s.Stats()
	require.NoError(t, err)
	require.NoError(t, s.Close())

	reopened, err := NewRecordStore(cfg)
	require.NoError(t, err)
	require.NoError(t, reopened.Open())
	defer reopened.Close()

	after, err := reopened.Stats()
	require.NoError(t, err)
	assert.Equal(t, before.InstanceID, after.InstanceID)
	assert.Equal(t, uint32(1), after.Trees)
	assert.Equal(t, int64(1), after.Rows)

	got, err := reopened.Get(tree, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Values[0].Int())

	// New trees continue from the persisted counter.
	next, err := reopened.CreateTree()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), next)
}

func TestStatsCountsRowsAcrossTrees(t *testing.T) {
	s := openTestStore(t)

	t1, err := s.CreateTree()
	require.NoError(t, err)
	t2, err := s.CreateTree()
	require.NoError(t, err)

	for id := uint64(1); id <= 3; id++ {
		require.NoError(t, s.Put(t1, id, testRow(int64(id))))
	}
	require.NoError(t, s.Put(t2, 1, testRow(1)))

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), stats.Trees)
	assert.Equal(t, int64(4), stats.Rows)
	assert.NotEmpty(t, stats.InstanceID)
}
