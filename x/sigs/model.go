package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// BucketName prefixes the signer records in the store.
const BucketName = "sigs"

// maxSequenceValue keeps sequences within what javascript clients can
// represent exactly, 2^53 - 1.
const maxSequenceValue = (1 << 53) - 1

// UserData is the record of a signer: its public key and the sequence
// its next signature must carry.
type UserData struct {
	Pubkey   *crypto.PublicKey `json:"pubkey"`
	Sequence int64             `json:"sequence"`
}

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Field("Sequence", ErrInvalidSequence, "negative")
	case u.Sequence > 0 && u.Pubkey == nil:
		return errors.Field("Sequence", ErrInvalidSequence, "needs Pubkey")
	}
	return nil
}

// CheckAndIncrementSequence advances the sequence if it equals expected.
// The sequence never leaves (0, maxSequenceValue].
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "mismatch expected %d, got %d", expected, u.Sequence)
	}
	if u.Sequence >= maxSequenceValue || u.Sequence < 0 {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence++
	return nil
}

var users = orm.NewBucket(BucketName)

// RegisterQuery serves the signer records under "/auth", keyed by
// address.
func RegisterQuery(qr quorum.QueryRouter) {
	users.Register("auth", qr)
}

// loadUser returns nil, without an error, for an unknown address.
func loadUser(db quorum.ReadOnlyKVStore, addr quorum.Address) (*UserData, error) {
	var u UserData
	err := users.One(db, addr, &u)
	if errors.ErrNotFound.Is(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// getOrCreate returns the stored record of pubkey, or a fresh one at
// sequence zero.
func getOrCreate(db quorum.ReadOnlyKVStore, pubkey *crypto.PublicKey) (*UserData, error) {
	u, err := loadUser(db, pubkey.Address())
	if err != nil || u != nil {
		return u, err
	}
	return &UserData{Pubkey: pubkey}, nil
}

func saveUser(db quorum.KVStore, u *UserData) error {
	return users.Save(db, u.Pubkey.Address(), u)
}

// NextNonce returns the sequence the next signature of signer must
// carry. Unknown signers start at zero.
func NextNonce(db quorum.ReadOnlyKVStore, signer quorum.Address) (int64, error) {
	u, err := loadUser(db, signer)
	if err != nil {
		return 0, errors.Wrap(err, "load user")
	}
	if u == nil {
		return 0, nil
	}
	return u.Sequence, nil
}
