package store

import "github.com/iov-one/quorum"

// The storage interfaces are declared in the root package. They are
// repeated here so the implementations read without the prefix.
type (
	ReadOnlyKVStore  = quorum.ReadOnlyKVStore
	SetDeleter       = quorum.SetDeleter
	KVStore          = quorum.KVStore
	Batch            = quorum.Batch
	Iterator         = quorum.Iterator
	CacheableKVStore = quorum.CacheableKVStore
	KVCacheWrap      = quorum.KVCacheWrap
	CommitKVStore    = quorum.CommitKVStore
	CommitID         = quorum.CommitID
	Model            = quorum.Model
)

// Pair returns the model holding given key and value.
func Pair(key, value []byte) Model {
	return quorum.Pair(key, value)
}
