package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/quorum/errors"
)

// treeDegree is the branching factor of the cache tree. Caches are short
// lived and small, a low degree keeps inserts cheap.
const treeDegree = 2

// entry is a write held by a cache. A deleted entry hides the value stored
// under the same key below the cache.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

// Cacheable gives a KVStore without caching of its own, like the iavl
// adapter, a btree backed CacheWrap.
type Cacheable struct {
	KVStore
}

var _ CacheableKVStore = Cacheable{}

// CacheWrap returns a cache whose writes reach the wrapped store only when
// written.
func (c Cacheable) CacheWrap() KVCacheWrap {
	return newCache(c.KVStore, c.NewBatch(), nil)
}

// MemStore returns an empty store kept in memory. Wallet tests and the
// genesis validation use it as a throwaway state.
func MemStore() CacheableKVStore {
	var base EmptyKVStore
	return newCache(base, base.NewBatch(), nil)
}

// Cache keeps pending writes in a btree on top of a read only view of its
// parent. Every write is also queued in a batch that Write flushes to the
// parent.
type Cache struct {
	tree    *btree.BTree
	free    *btree.FreeList
	parent  ReadOnlyKVStore
	pending Batch
}

var _ KVCacheWrap = (*Cache)(nil)

func newCache(parent ReadOnlyKVStore, pending Batch, free *btree.FreeList) *Cache {
	if free == nil {
		free = btree.NewFreeList(btree.DefaultFreeListSize)
	}
	return &Cache{
		tree:    btree.NewWithFreeList(treeDegree, free),
		free:    free,
		parent:  parent,
		pending: pending,
	}
}

// CacheWrap stacks another cache on this one. Layers share the free list
// of tree nodes, as a dispatched wallet call creates and drops one.
func (c *Cache) CacheWrap() KVCacheWrap {
	return newCache(c, c.NewBatch(), c.free)
}

// NewBatch returns a batch writing into this cache.
func (c *Cache) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes all pending writes to the parent and empties the cache.
func (c *Cache) Write() error {
	err := c.pending.Write()
	c.Discard()
	return errors.Wrap(err, "cache write")
}

// Discard drops all pending writes.
func (c *Cache) Discard() {
	c.tree.Clear(true)
	if r, ok := c.pending.(resetter); ok {
		r.Reset()
	}
}

type resetter interface {
	Reset()
}

// Set records the value in the cache.
func (c *Cache) Set(key, value []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, value: value})
	return c.pending.Set(key, value)
}

// Delete hides the key until the cache is written or discarded.
func (c *Cache) Delete(key []byte) error {
	c.tree.ReplaceOrInsert(&entry{key: key, deleted: true})
	return c.pending.Delete(key)
}

// lookup returns the entry written to this cache under key, or nil.
func (c *Cache) lookup(key []byte) *entry {
	if it := c.tree.Get(&entry{key: key}); it != nil {
		return it.(*entry)
	}
	return nil
}

// Get returns the cached value, or the parent one if the key was not
// written in this cache.
func (c *Cache) Get(key []byte) ([]byte, error) {
	if e := c.lookup(key); e != nil {
		if e.deleted {
			return nil, nil
		}
		return e.value, nil
	}
	return c.parent.Get(key)
}

// Has reports if Get would return a value.
func (c *Cache) Has(key []byte) (bool, error) {
	if e := c.lookup(key); e != nil {
		return !e.deleted, nil
	}
	return c.parent.Has(key)
}

// Iterator walks [start, end) in ascending order, merging the cache with
// the parent.
func (c *Cache) Iterator(start, end []byte) (Iterator, error) {
	below, err := c.parent.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return mergeIterators(c.entries(start, end, true), below, true)
}

// ReverseIterator walks [start, end) in descending order, merging the
// cache with the parent.
func (c *Cache) ReverseIterator(start, end []byte) (Iterator, error) {
	below, err := c.parent.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return mergeIterators(c.entries(start, end, false), below, false)
}

// entries returns a snapshot of the cached entries within [start, end) in
// iteration order. A nil bound is open. Writes made after the snapshot are
// not visible to the iterator using it.
func (c *Cache) entries(start, end []byte, ascending bool) []*entry {
	var out []*entry
	if ascending {
		collect := func(it btree.Item) bool {
			e := it.(*entry)
			if end != nil && bytes.Compare(e.key, end) >= 0 {
				return false
			}
			out = append(out, e)
			return true
		}
		if start == nil {
			c.tree.Ascend(collect)
		} else {
			c.tree.AscendGreaterOrEqual(&entry{key: start}, collect)
		}
		return out
	}

	collect := func(it btree.Item) bool {
		e := it.(*entry)
		if start != nil && bytes.Compare(e.key, start) < 0 {
			return false
		}
		// The pivot itself is included by the tree, but end is exclusive.
		if end == nil || bytes.Compare(e.key, end) < 0 {
			out = append(out, e)
		}
		return true
	}
	if end == nil {
		c.tree.Descend(collect)
	} else {
		c.tree.DescendLessOrEqual(&entry{key: end}, collect)
	}
	return out
}
