package quorum

// The store interfaces below are implemented by the store package: a
// persistent iavl tree for the daemon and in-memory stores for tests.
// Handlers only ever see a KVStore.

// ReadOnlyKVStore reads state. Keys must not be nil.
type ReadOnlyKVStore interface {
	// Get returns nil for a missing key.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks [start, end) in ascending key order. A nil bound is
	// open. The range must not be written while the iterator is open.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator walks [start, end) in descending key order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter writes state. Stores keep the given slices, so callers must
// not modify them afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the state a handler reads and writes.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator walks a key range. A store error ends the walk with Next
// returning it.
//
//	it, err := db.Iterator(start, end)
//	...
//	defer it.Close()
//	for ; it.Valid(); err = it.Next() {
//		use(it.Key(), it.Value())
//	}
type Iterator interface {
	// Valid reports whether the iterator points at an entry. An
	// exhausted iterator stays invalid.
	Valid() bool
	// Next moves to the following entry.
	Next() error
	// Key and Value panic on an invalid iterator. The returned slices are
	// read only.
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can open a cache layer on top of itself. Savepoints
// and the rollback of failed wallet executions are built on it.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap buffers writes over a parent store. Reads see the buffered
// writes. Write applies them to the parent, Discard drops them.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the persistent, versioned root store. Blocks write
// through a cache layer and Commit persists the next version.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap
	Commit() (CommitID, error)
	// LoadLatestVersion loads the newest complete version, which is an
	// older one after a crash during commit.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its height and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}

// Model is a stored key and value, as returned by queries.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
