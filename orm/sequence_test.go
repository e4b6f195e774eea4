package orm

import (
	"bytes"
	"math"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestSequence(t *testing.T) {
	cases := map[string]struct {
		bucket     string
		name       string
		increments uint64
	}{
		"short run":  {"wallet", "txcount", 22},
		"other name": {"wallet", "other", 11},
		"long run":   {"cash", "id", 248},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			s := NewSequence(tc.bucket, tc.name)
			_, orig, err := s.Latest(db)
			assert.Nil(t, err)

			var val uint64
			for i := uint64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.increments, val)

			// make sure final value is bigger than original value
			// if we use the raw bytes to index stuff
			_, last, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, 1, bytes.Compare(last, orig))
		})
	}
}

func TestSequenceAllocate(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("wallet", "txcount")

	for want := uint64(0); want < 3; want++ {
		got, err := s.Allocate(db)
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}
	count, _, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestSequenceOverflow(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("wallet", "txcount")
	assert.Nil(t, db.Set(s.id, EncodeSequence(math.MaxUint64)))

	_, err := s.NextInt(db)
	assert.IsErr(t, errors.ErrOverflow, err)

	// state is unchanged after a failure
	val, _, err := s.Latest(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(math.MaxUint64), val)
}

func TestDecodeSequence(t *testing.T) {
	val, err := DecodeSequence(nil)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), val)

	_, err = DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)

	val, err = DecodeSequence(EncodeSequence(123123))
	assert.Nil(t, err)
	assert.Equal(t, uint64(123123), val)
}
