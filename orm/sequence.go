package orm

import (
	"encoding/binary"
	"math"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const sequenceLength = 8

// Sequence is a persistent counter stored under "_s.<bucket>:<name>".
// Its encoded values compare with bytes.Compare in the same order as
// the numbers, so they can serve as ordered keys.
type Sequence struct {
	id []byte
}

func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal advances the counter and returns the new value encoded. The
// first value is 1.
func (s *Sequence) NextVal(db quorum.KVStore) ([]byte, error) {
	val, err := s.advance(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt advances the counter and returns the new value. The first
// value is 1.
func (s *Sequence) NextInt(db quorum.KVStore) (uint64, error) {
	return s.advance(db)
}

// Allocate advances the counter and returns the value before the
// increment. Allocated values start at 0 and the counter always holds
// how many were handed out.
func (s *Sequence) Allocate(db quorum.KVStore) (uint64, error) {
	val, err := s.advance(db)
	return val - 1, err
}

// Latest returns the current value, as a number and encoded, without
// changing it.
func (s *Sequence) Latest(db quorum.ReadOnlyKVStore) (uint64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	val, err := DecodeSequence(raw)
	return val, raw, err
}

func (s *Sequence) advance(db quorum.KVStore) (uint64, error) {
	val, _, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	if val == math.MaxUint64 {
		return 0, errors.Wrapf(errors.ErrOverflow, "sequence %s", s.id)
	}
	val++
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// ValidateSequence checks that id is an encoded sequence value.
func ValidateSequence(id []byte) error {
	switch len(id) {
	case 0:
		return errors.Wrap(errors.ErrEmpty, "sequence")
	case sequenceLength:
		return nil
	}
	return errors.Wrapf(errors.ErrInput, "sequence of %d bytes", len(id))
}

// DecodeSequence reads an encoded value. A nil value is zero.
func DecodeSequence(bz []byte) (uint64, error) {
	if bz == nil {
		return 0, nil
	}
	if err := ValidateSequence(bz); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(bz), nil
}

// EncodeSequence encodes val as 8 big endian bytes.
func EncodeSequence(val uint64) []byte {
	bz := make([]byte, sequenceLength)
	binary.BigEndian.PutUint64(bz, val)
	return bz
}
