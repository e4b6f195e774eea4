package wallet

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Membership keeps the ordered owner list of a wallet together with the
// number of confirmations required to execute a transaction.
//
// Owners are stored by position and indexed by address, so both the
// membership test and a page of owners cost one read per element. The
// registry enforces the owner and threshold invariants but does not
// authorize the caller, that is the job of the wallet.
type Membership struct {
	keys keyspace
}

func NewMembership(addr quorum.Address) Membership {
	return Membership{keys: newKeyspace(addr)}
}

func (m Membership) IsOwner(db quorum.ReadOnlyKVStore, owner quorum.Address) (bool, error) {
	ok, err := db.Has(m.keys.ownerIndex(owner))
	if err != nil {
		return false, errors.Wrap(err, "owner index")
	}
	return ok, nil
}

func (m Membership) OwnerCount(db quorum.ReadOnlyKVStore) (uint64, error) {
	return readUint(db, m.keys.ownerCount())
}

// Required returns the confirmation threshold.
func (m Membership) Required(db quorum.ReadOnlyKVStore) (uint64, error) {
	return readUint(db, m.keys.required())
}

// Owners returns at most count owners, starting at position offset. An
// offset past the end gives an empty page.
func (m Membership) Owners(db quorum.ReadOnlyKVStore, offset, count uint64) ([]quorum.Address, error) {
	n, err := m.OwnerCount(db)
	if err != nil {
		return nil, err
	}
	end := n
	if offset < n && n-offset > count {
		end = offset + count
	}
	var owners []quorum.Address
	for i := offset; i < end; i++ {
		owner, err := m.ownerAt(db, i)
		if err != nil {
			return nil, err
		}
		owners = append(owners, owner)
	}
	return owners, nil
}

// AllOwners returns every owner, in order.
func (m Membership) AllOwners(db quorum.ReadOnlyKVStore) ([]quorum.Address, error) {
	n, err := m.OwnerCount(db)
	if err != nil {
		return nil, err
	}
	return m.Owners(db, 0, n)
}

func (m Membership) ownerAt(db quorum.ReadOnlyKVStore, i uint64) (quorum.Address, error) {
	raw, err := db.Get(m.keys.ownerAt(i))
	if err != nil {
		return nil, errors.Wrapf(err, "owner %d", i)
	}
	if raw == nil {
		return nil, errors.Wrapf(errors.ErrState, "owner %d missing", i)
	}
	return quorum.Address(raw), nil
}

func (m Membership) indexOf(db quorum.ReadOnlyKVStore, owner quorum.Address) (uint64, bool, error) {
	key := m.keys.ownerIndex(owner)
	ok, err := db.Has(key)
	if err != nil || !ok {
		return 0, false, errors.Wrap(err, "owner index")
	}
	i, err := readUint(db, key)
	return i, true, err
}

// AddOwner appends an owner. The owner count cannot exceed maxOwners.
func (m Membership) AddOwner(db quorum.KVStore, owner quorum.Address, maxOwners uint64) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if ok, err := m.IsOwner(db, owner); err != nil {
		return err
	} else if ok {
		return errors.Wrapf(ErrAlreadyOwner, "%s", owner)
	}
	n, err := m.OwnerCount(db)
	if err != nil {
		return err
	}
	if n+1 > maxOwners {
		return errors.Wrapf(ErrInvalidQuorum, "more than %d owners", maxOwners)
	}
	if err := db.Set(m.keys.ownerAt(n), owner); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := db.Set(m.keys.ownerIndex(owner), encodeUint(n)); err != nil {
		return errors.Wrap(err, "owner index")
	}
	return m.setCount(db, n+1)
}

// RemoveOwner deletes an owner. The last owner takes the position of the
// removed one, so the order of the remaining owners is not stable. The
// removal fails if the remaining owners could not reach the threshold.
func (m Membership) RemoveOwner(db quorum.KVStore, owner quorum.Address) error {
	idx, ok, err := m.indexOf(db, owner)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNotOwner, "%s", owner)
	}
	n, err := m.OwnerCount(db)
	if err != nil {
		return err
	}
	required, err := m.Required(db)
	if err != nil {
		return err
	}
	if n-1 == 0 || required > n-1 {
		return errors.Wrapf(ErrInvalidQuorum, "%d owners left, %d required", n-1, required)
	}

	last := n - 1
	if idx != last {
		moved, err := m.ownerAt(db, last)
		if err != nil {
			return err
		}
		if err := db.Set(m.keys.ownerAt(idx), moved); err != nil {
			return errors.Wrap(err, "owner")
		}
		if err := db.Set(m.keys.ownerIndex(moved), encodeUint(idx)); err != nil {
			return errors.Wrap(err, "owner index")
		}
	}
	if err := db.Delete(m.keys.ownerAt(last)); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := db.Delete(m.keys.ownerIndex(owner)); err != nil {
		return errors.Wrap(err, "owner index")
	}
	return m.setCount(db, last)
}

// ReplaceOwner puts a new owner in the position of an old one.
func (m Membership) ReplaceOwner(db quorum.KVStore, old, owner quorum.Address) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "new owner")
	}
	idx, ok, err := m.indexOf(db, old)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(ErrNotOwner, "%s", old)
	}
	if ok, err := m.IsOwner(db, owner); err != nil {
		return err
	} else if ok {
		return errors.Wrapf(ErrAlreadyOwner, "%s", owner)
	}

	if err := db.Set(m.keys.ownerAt(idx), owner); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := db.Delete(m.keys.ownerIndex(old)); err != nil {
		return errors.Wrap(err, "owner index")
	}
	if err := db.Set(m.keys.ownerIndex(owner), encodeUint(idx)); err != nil {
		return errors.Wrap(err, "owner index")
	}
	return nil
}

// SetThreshold changes the number of required confirmations. It must be
// positive and not greater than the owner count.
func (m Membership) SetThreshold(db quorum.KVStore, required uint64) error {
	n, err := m.OwnerCount(db)
	if err != nil {
		return err
	}
	if required == 0 || required > n {
		return errors.Wrapf(ErrInvalidQuorum, "%d required of %d owners", required, n)
	}
	if err := db.Set(m.keys.required(), encodeUint(required)); err != nil {
		return errors.Wrap(err, "required")
	}
	return nil
}

func (m Membership) setCount(db quorum.KVStore, n uint64) error {
	if err := db.Set(m.keys.ownerCount(), encodeUint(n)); err != nil {
		return errors.Wrap(err, "owner count")
	}
	return nil
}
