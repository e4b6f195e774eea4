package store

import (
	"bytes"

	"github.com/iov-one/quorum/errors"
)

// merged walks the entries of a cache together with an iterator over the
// parent store. A cached entry shadows the parent value under the same key
// and a deleted entry hides the key.
type merged struct {
	cached    []*entry
	parent    Iterator
	ascending bool

	key   []byte
	value []byte
	valid bool
}

var _ Iterator = (*merged)(nil)

func mergeIterators(cached []*entry, parent Iterator, ascending bool) (*merged, error) {
	m := &merged{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
	if err := m.advance(); err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

// advance loads the next visible key, skipping deleted entries.
func (m *merged) advance() error {
	for {
		fromCache := len(m.cached) > 0
		fromParent := m.parent.Valid()
		if !fromCache && !fromParent {
			m.key, m.value, m.valid = nil, nil, false
			return nil
		}

		// Negative order means the parent key comes first.
		var order int
		switch {
		case !fromParent:
			order = 1
		case !fromCache:
			order = -1
		default:
			order = bytes.Compare(m.parent.Key(), m.cached[0].key)
			if !m.ascending {
				order = -order
			}
		}

		if order < 0 {
			m.key, m.value, m.valid = m.parent.Key(), m.parent.Value(), true
			return m.parent.Next()
		}

		e := m.cached[0]
		m.cached = m.cached[1:]
		if order == 0 {
			if err := m.parent.Next(); err != nil {
				return err
			}
		}
		if !e.deleted {
			m.key, m.value, m.valid = e.key, e.value, true
			return nil
		}
	}
}

// Valid returns true while Key and Value can be read.
func (m *merged) Valid() bool {
	return m.valid
}

// Next moves to the following key. Calling it on an exhausted iterator is
// an error.
func (m *merged) Next() error {
	if !m.valid {
		return errors.Wrap(errors.ErrState, "iterator done")
	}
	return m.advance()
}

// Key returns the current key. It panics if the iterator is not valid.
func (m *merged) Key() []byte {
	if !m.valid {
		panic("read from an exhausted iterator")
	}
	return m.key
}

// Value returns the current value. It panics if the iterator is not valid.
func (m *merged) Value() []byte {
	if !m.valid {
		panic("read from an exhausted iterator")
	}
	return m.value
}

// Close releases the parent iterator.
func (m *merged) Close() {
	m.parent.Close()
	m.cached = nil
	m.key, m.value, m.valid = nil, nil, false
}
