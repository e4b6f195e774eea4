package store

import (
	"bytes"
	"fmt"
	"sort"
	"testing"

	"github.com/iov-one/quorum/quorumtest/assert"
)

// Opener returns an empty store together with a function releasing it.
type Opener func() (CacheableKVStore, func())

// RunSuite checks the behaviour every CacheableKVStore of this module must
// share against stores returned by open.
func RunSuite(t *testing.T, open Opener) {
	t.Run("read write", func(t *testing.T) { suiteReadWrite(t, open) })
	t.Run("cache layers", func(t *testing.T) { suiteCacheLayers(t, open) })
	t.Run("iteration", func(t *testing.T) { suiteIteration(t, open) })
}

// AssertValue fails the test unless kv holds want under key. A nil want
// means the key must be absent.
func AssertValue(t testing.TB, kv ReadOnlyKVStore, key, want []byte) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, want, got)
	has, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, want != nil, has)
}

func suiteReadWrite(t *testing.T, open Opener) {
	db, release := open()
	defer release()

	key := []byte("wallet:required")
	AssertValue(t, db, key, nil)
	assert.Nil(t, db.Set(key, []byte{2}))
	AssertValue(t, db, key, []byte{2})
	assert.Nil(t, db.Set(key, []byte{3}))
	AssertValue(t, db, key, []byte{3})
	assert.Nil(t, db.Delete(key))
	AssertValue(t, db, key, nil)

	// Removing a missing key is not an error.
	assert.Nil(t, db.Delete([]byte("wallet:missing")))
}

func suiteCacheLayers(t *testing.T, open Opener) {
	base, release := open()
	defer release()

	a, b, c := []byte("owner:a"), []byte("owner:b"), []byte("owner:c")
	assert.Nil(t, base.Set(a, []byte("1")))
	assert.Nil(t, base.Set(b, []byte("2")))

	tx := base.CacheWrap()
	assert.Nil(t, tx.Set(a, []byte("10")))
	assert.Nil(t, tx.Delete(b))
	assert.Nil(t, tx.Set(c, []byte("3")))

	// A sibling layer only sees the parent.
	side := base.CacheWrap()
	AssertValue(t, side, a, []byte("1"))
	AssertValue(t, side, b, []byte("2"))
	AssertValue(t, side, c, nil)

	AssertValue(t, tx, a, []byte("10"))
	AssertValue(t, tx, b, nil)
	AssertValue(t, tx, c, []byte("3"))

	// A dropped inner layer leaves the outer one untouched, even when
	// written afterwards.
	call := tx.CacheWrap()
	assert.Nil(t, call.Delete(a))
	assert.Nil(t, call.Set(c, []byte("30")))
	AssertValue(t, call, a, nil)
	AssertValue(t, call, c, []byte("30"))
	call.Discard()
	assert.Nil(t, call.Write())
	AssertValue(t, tx, a, []byte("10"))
	AssertValue(t, tx, c, []byte("3"))

	assert.Nil(t, tx.Write())
	AssertValue(t, base, a, []byte("10"))
	AssertValue(t, base, b, nil)
	AssertValue(t, base, c, []byte("3"))
}

func suiteIteration(t *testing.T, open Opener) {
	base, release := open()
	defer release()

	key := func(i int) []byte { return []byte(fmt.Sprintf("owner:%02d", i)) }

	state := make(map[string][]byte)
	set := func(kv KVStore, k, v []byte) {
		assert.Nil(t, kv.Set(k, v))
		state[string(k)] = v
	}
	del := func(kv KVStore, k []byte) {
		assert.Nil(t, kv.Delete(k))
		delete(state, string(k))
	}

	for i := 0; i < 20; i++ {
		set(base, key(i), []byte(fmt.Sprintf("v%d", i)))
	}
	set(base, []byte("a"), []byte("before"))
	set(base, []byte("z"), []byte("after"))
	baseState := copyState(state)

	cache := base.CacheWrap()
	for i := 0; i < 20; i += 3 {
		del(cache, key(i))
	}
	for i := 1; i < 20; i += 4 {
		set(cache, key(i), []byte(fmt.Sprintf("new%d", i)))
	}
	for i := 20; i < 25; i++ {
		set(cache, key(i), []byte(fmt.Sprintf("v%d", i)))
	}
	set(cache, key(30), []byte("gone"))
	del(cache, key(30))

	ranges := map[string]struct {
		start, end []byte
	}{
		"everything":     {nil, nil},
		"bounded":        {key(5), key(15)},
		"open start":     {nil, key(10)},
		"open end":       {key(10), nil},
		"nothing inside": {key(50), key(60)},
	}
	for name, r := range ranges {
		t.Run(name, func(t *testing.T) {
			assertRange(t, base, baseState, r.start, r.end)
			assertRange(t, cache, state, r.start, r.end)
		})
	}
}

func assertRange(t testing.TB, kv ReadOnlyKVStore, state map[string][]byte, start, end []byte) {
	t.Helper()
	want := expectedRange(state, start, end)

	it, err := kv.Iterator(start, end)
	assert.Nil(t, err)
	assert.Equal(t, want, drain(t, it))

	it, err = kv.ReverseIterator(start, end)
	assert.Nil(t, err)
	assert.Equal(t, reversed(want), drain(t, it))
}

func drain(t testing.TB, it Iterator) []Model {
	t.Helper()
	defer it.Close()
	var out []Model
	for it.Valid() {
		out = append(out, Pair(it.Key(), it.Value()))
		assert.Nil(t, it.Next())
	}
	return out
}

func expectedRange(state map[string][]byte, start, end []byte) []Model {
	var out []Model
	for k, v := range state {
		key := []byte(k)
		if start != nil && bytes.Compare(key, start) < 0 {
			continue
		}
		if end != nil && bytes.Compare(key, end) >= 0 {
			continue
		}
		out = append(out, Pair(key, v))
	}
	sort.Slice(out, func(i, j int) bool { return bytes.Compare(out[i].Key, out[j].Key) < 0 })
	return out
}

func reversed(models []Model) []Model {
	if models == nil {
		return nil
	}
	out := make([]Model, len(models))
	for i, m := range models {
		out[len(models)-1-i] = m
	}
	return out
}

func copyState(state map[string][]byte) map[string][]byte {
	out := make(map[string][]byte, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}
