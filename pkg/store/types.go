package store

// Config holds configuration for the record store.
type Config struct {
	DataDir string // Directory for the pebble database
	Sync    bool   // Fsync each write for durability
}

// DefaultConfig returns a durable configuration rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir: dataDir,
		Sync:    true,
	}
}

// Stats describes an open store.
type Stats struct {
	InstanceID string // Identity minted when the store was first created
	Trees      uint32 // Number of trees provisioned so far
	Rows       int64  // Total rows across all trees
}

// Errors
var (
	ErrNotOpen     = &StoreError{"store is not open"}
	ErrTreeUnknown = &StoreError{"unknown tree"}
	ErrRowNotFound = &StoreError{"row not found"}
	ErrIndexKey    = &StoreError{"table cursors address rows by row id, not index key"}
)

// StoreError represents a record store error
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return e.Message
}
