package store

import "github.com/iov-one/quorum/errors"

// SliceIterator iterates over models already loaded in memory, in the
// order they are given.
type SliceIterator struct {
	models []Model
	pos    int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator returns an iterator over models.
func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

// Valid returns true while Key and Value can be read.
func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.models)
}

// Next moves to the following model. Calling it on an exhausted iterator
// is an error.
func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrState, "iterator done")
	}
	s.pos++
	return nil
}

// Key returns the current key. It panics if the iterator is not valid.
func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

// Value returns the current value. It panics if the iterator is not valid.
func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("read from an exhausted iterator")
	}
	return s.models[s.pos]
}

// Close releases the models. The iterator is no longer valid.
func (s *SliceIterator) Close() {
	s.models = nil
}

// EmptyKVStore holds nothing and drops every write. It is the bottom layer
// of a MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

func (EmptyKVStore) Set(key, value []byte) error { return nil }

func (EmptyKVStore) Delete(key []byte) error { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

// NewBatch returns a batch that drops its writes.
func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}
