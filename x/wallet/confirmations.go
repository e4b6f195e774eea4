package wallet

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

var confirmed = []byte{1}

// Confirmations records which owners approved which transaction.
//
// Entries are never interpreted on their own: counting walks the current
// owner list, so an owner removed after confirming stops counting toward
// the quorum, and counts again if it is added back.
type Confirmations struct {
	keys    keyspace
	members Membership
}

func NewConfirmations(addr quorum.Address) Confirmations {
	return Confirmations{
		keys:    newKeyspace(addr),
		members: NewMembership(addr),
	}
}

func (c Confirmations) IsConfirmed(db quorum.ReadOnlyKVStore, id uint64, owner quorum.Address) (bool, error) {
	ok, err := db.Has(c.keys.confirmation(id, owner))
	if err != nil {
		return false, errors.Wrap(err, "confirmation")
	}
	return ok, nil
}

// Confirm records the approval of an owner.
func (c Confirmations) Confirm(db quorum.KVStore, id uint64, owner quorum.Address) error {
	if ok, err := c.IsConfirmed(db, id, owner); err != nil {
		return err
	} else if ok {
		return errors.Wrapf(ErrAlreadyConfirmed, "%s of %d", owner, id)
	}
	if err := db.Set(c.keys.confirmation(id, owner), confirmed); err != nil {
		return errors.Wrap(err, "confirmation")
	}
	return nil
}

// Revoke withdraws the approval of an owner.
func (c Confirmations) Revoke(db quorum.KVStore, id uint64, owner quorum.Address) error {
	if ok, err := c.IsConfirmed(db, id, owner); err != nil {
		return err
	} else if !ok {
		return errors.Wrapf(ErrNotConfirmed, "%s of %d", owner, id)
	}
	if err := db.Delete(c.keys.confirmation(id, owner)); err != nil {
		return errors.Wrap(err, "confirmation")
	}
	return nil
}

// Count returns the number of current owners that confirmed.
func (c Confirmations) Count(db quorum.ReadOnlyKVStore, id uint64) (uint64, error) {
	owners, err := c.members.AllOwners(db)
	if err != nil {
		return 0, err
	}
	var n uint64
	for _, owner := range owners {
		ok, err := c.IsConfirmed(db, id, owner)
		if err != nil {
			return 0, err
		}
		if ok {
			n++
		}
	}
	return n, nil
}

// IsQuorumMet compares the confirmation count with the current threshold.
func (c Confirmations) IsQuorumMet(db quorum.ReadOnlyKVStore, id uint64) (bool, error) {
	required, err := c.members.Required(db)
	if err != nil {
		return false, err
	}
	n, err := c.Count(db, id)
	if err != nil {
		return false, err
	}
	return required > 0 && n >= required, nil
}

// Confirmed returns the owners that confirmed, looking at count owners
// starting at position offset. The page may hold fewer than count
// addresses.
func (c Confirmations) Confirmed(db quorum.ReadOnlyKVStore, id, offset, count uint64) ([]quorum.Address, error) {
	owners, err := c.members.Owners(db, offset, count)
	if err != nil {
		return nil, err
	}
	var res []quorum.Address
	for _, owner := range owners {
		ok, err := c.IsConfirmed(db, id, owner)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, owner)
		}
	}
	return res, nil
}

// Clear deletes every entry of a transaction, including the ones left by
// former owners.
func (c Confirmations) Clear(db quorum.KVStore, id uint64) error {
	start := c.keys.confirmations(id)
	end := c.keys.confirmations(id + 1)
	if id == ^uint64(0) {
		end = c.keys.key([]byte("conf;"))
	}
	it, err := db.Iterator(start, end)
	if err != nil {
		return errors.Wrap(err, "confirmations")
	}
	var keys [][]byte
	for ; it.Valid(); err = it.Next() {
		if err != nil {
			it.Close()
			return errors.Wrap(err, "confirmations")
		}
		keys = append(keys, clone(it.Key()))
	}
	it.Close()
	if err != nil {
		return errors.Wrap(err, "confirmations")
	}
	for _, k := range keys {
		if err := db.Delete(k); err != nil {
			return errors.Wrap(err, "confirmation")
		}
	}
	return nil
}
