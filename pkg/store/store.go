// Package store persists rows in a pebble database. Each tree is a
// contiguous key range keyed by big-endian row id, so pebble's ordered
// iteration gives table cursors their key order for free. Rows are stored
// in the record wire format.
package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/kestreldb/kestrel/pkg/codec"
	"github.com/kestreldb/kestrel/pkg/types"
)

var (
	metaInstanceKey = []byte("m/id")
	metaNextTreeKey = []byte("m/nexttree")
)

// treePrefix returns the key prefix shared by every row of a tree.
func treePrefix(tree uint32) []byte {
	key := make([]byte, 0, 15)
	key = append(key, 't', '/')
	key = binary.BigEndian.AppendUint32(key, tree)
	return append(key, '/')
}

// treeUpperBound returns the first key past a tree's range.
func treeUpperBound(tree uint32) []byte {
	key := treePrefix(tree)
	key[len(key)-1]++
	return key
}

// rowKey returns the full key of one row.
func rowKey(tree uint32, rowid uint64) []byte {
	return binary.BigEndian.AppendUint64(treePrefix(tree), rowid)
}

// rowIDFromKey extracts the row id from a full row key.
func rowIDFromKey(key []byte) uint64 {
	return binary.BigEndian.Uint64(key[len(key)-8:])
}

// RecordStore is a durable collection of trees of rows.
type RecordStore struct {
	config     Config
	db         *pebble.DB
	instanceID ksuid.KSUID
	nextTree   uint32
	mutex      sync.Mutex
	isOpen     bool
}

// NewRecordStore creates a store instance for the configured directory.
// The database is not touched until Open.
func NewRecordStore(config Config) (*RecordStore, error) {
	if config.DataDir == "" {
		return nil, &StoreError{"data directory is required"}
	}
	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return nil, err
	}
	return &RecordStore{config: config}, nil
}

// Open opens the pebble database and loads or mints the store's metadata.
func (s *RecordStore) Open() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.isOpen {
		return nil
	}

	db, err := pebble.Open(s.config.DataDir, &pebble.Options{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	s.db = db

	if err := s.loadMeta(); err != nil {
		db.Close()
		s.db = nil
		return err
	}

	s.isOpen = true
	return nil
}

// loadMeta reads the instance identity and tree counter, minting them on
// first open.
func (s *RecordStore) loadMeta() error {
	raw, closer, err := s.db.Get(metaInstanceKey)
	switch {
	case err == nil:
		id, err := ksuid.FromBytes(append([]byte(nil), raw...))
		closer.Close()
		if err != nil {
			return fmt.Errorf("instance id: %w", err)
		}
		s.instanceID = id
	case errors.Is(err, pebble.ErrNotFound):
		s.instanceID = ksuid.New()
		if err := s.db.Set(metaInstanceKey, s.instanceID.Bytes(), pebble.Sync); err != nil {
			return fmt.Errorf("write instance id: %w", err)
		}
	default:
		return fmt.Errorf("read instance id: %w", err)
	}

	raw, closer, err = s.db.Get(metaNextTreeKey)
	switch {
	case err == nil:
		s.nextTree = binary.BigEndian.Uint32(raw)
		closer.Close()
	case errors.Is(err, pebble.ErrNotFound):
		s.nextTree = 1
	default:
		return fmt.Errorf("read tree counter: %w", err)
	}
	return nil
}

// Close closes the database. A closed store can be reopened.
func (s *RecordStore) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return nil
	}
	s.isOpen = false
	err := s.db.Close()
	s.db = nil
	return err
}

// writeOpt returns the durability option for data writes.
func (s *RecordStore) writeOpt() *pebble.WriteOptions {
	if s.config.Sync {
		return pebble.Sync
	}
	return pebble.NoSync
}

// CreateTree provisions a fresh tree and returns its identifier.
func (s *RecordStore) CreateTree() (uint32, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return 0, ErrNotOpen
	}

	tree := s.nextTree
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], tree+1)
	if err := s.db.Set(metaNextTreeKey, buf[:], pebble.Sync); err != nil {
		recordOp("create_tree", statusError)
		return 0, fmt.Errorf("advance tree counter: %w", err)
	}
	s.nextTree = tree + 1
	recordOp("create_tree", statusOK)
	return tree, nil
}

// checkTree validates a tree id against the provisioned range. Caller
// holds the mutex.
func (s *RecordStore) checkTree(tree uint32) error {
	if !s.isOpen {
		return ErrNotOpen
	}
	if tree == 0 || tree >= s.nextTree {
		return ErrTreeUnknown
	}
	return nil
}

// Put writes a row under (tree, rowid), replacing any existing row.
func (s *RecordStore) Put(tree uint32, rowid uint64, rec *types.OwnedRecord) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.checkTree(tree); err != nil {
		return err
	}

	if err := s.db.Set(rowKey(tree, rowid), codec.Encode(rec), s.writeOpt()); err != nil {
		recordOp("put", statusError)
		return fmt.Errorf("put row %d: %w", rowid, err)
	}
	recordOp("put", statusOK)
	return nil
}

// Get reads the row stored under (tree, rowid).
func (s *RecordStore) Get(tree uint32, rowid uint64) (*types.OwnedRecord, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.checkTree(tree); err != nil {
		return nil, err
	}

	raw, closer, err := s.db.Get(rowKey(tree, rowid))
	if errors.Is(err, pebble.ErrNotFound) {
		recordOp("get", statusMiss)
		return nil, ErrRowNotFound
	}
	if err != nil {
		recordOp("get", statusError)
		return nil, fmt.Errorf("get row %d: %w", rowid, err)
	}
	defer closer.Close()

	rec, err := codec.Decode(raw)
	if err != nil {
		recordOp("get", statusError)
		return nil, fmt.Errorf("decode row %d: %w", rowid, err)
	}
	recordOp("get", statusOK)
	return rec, nil
}

// Delete removes the row stored under (tree, rowid), if present.
func (s *RecordStore) Delete(tree uint32, rowid uint64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.checkTree(tree); err != nil {
		return err
	}

	if err := s.db.Delete(rowKey(tree, rowid), s.writeOpt()); err != nil {
		recordOp("delete", statusError)
		return fmt.Errorf("delete row %d: %w", rowid, err)
	}
	recordOp("delete", statusOK)
	return nil
}

// OpenCursor returns a cursor over one tree's rows in row id order.
func (s *RecordStore) OpenCursor(tree uint32) (*TableCursor, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if err := s.checkTree(tree); err != nil {
		return nil, err
	}
	return newTableCursor(s, tree), nil
}

// Stats reports the store's identity and row counts.
func (s *RecordStore) Stats() (Stats, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.isOpen {
		return Stats{}, ErrNotOpen
	}

	stats := Stats{
		InstanceID: s.instanceID.String(),
		Trees:      s.nextTree - 1,
	}

	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte("t/"),
		UpperBound: []byte("t0"),
	})
	if err != nil {
		return Stats{}, fmt.Errorf("stats iterator: %w", err)
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		stats.Rows++
	}
	if err := iter.Error(); err != nil {
		return Stats{}, fmt.Errorf("stats scan: %w", err)
	}
	return stats, nil
}
