package wallet

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// TransactionInfo is a transaction together with its id.
type TransactionInfo struct {
	ID uint64 `json:"id"`
	*Transaction
}

// Owners returns a page of owners. The page size cannot exceed the
// configured maximum.
func (w *Wallet) Owners(db quorum.ReadOnlyKVStore, offset, count uint64) ([]quorum.Address, error) {
	if err := checkPage(db, count); err != nil {
		return nil, err
	}
	return w.registry.Owners(db, offset, count)
}

func (w *Wallet) OwnerCount(db quorum.ReadOnlyKVStore) (uint64, error) {
	return w.registry.OwnerCount(db)
}

// Requirement returns the number of confirmations a transaction needs.
func (w *Wallet) Requirement(db quorum.ReadOnlyKVStore) (uint64, error) {
	return w.registry.Required(db)
}

func (w *Wallet) IsOwner(db quorum.ReadOnlyKVStore, addr quorum.Address) (bool, error) {
	return w.registry.IsOwner(db, addr)
}

// IsConfirmedBy returns true if owner confirmed the transaction. It does
// not check that the transaction exists.
func (w *Wallet) IsConfirmedBy(db quorum.ReadOnlyKVStore, id uint64, owner quorum.Address) (bool, error) {
	return w.approvals.IsConfirmed(db, id, owner)
}

// Transaction returns the transaction with given id, or nil if there is no
// such transaction.
func (w *Wallet) Transaction(db quorum.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	raw, err := w.loadRaw(db, id)
	if err != nil || raw == nil {
		return nil, err
	}
	tx, err := Decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %d", id)
	}
	return tx, nil
}

// IsExecuted returns false for a transaction that does not exist. Only the
// first byte of the record is looked at.
func (w *Wallet) IsExecuted(db quorum.ReadOnlyKVStore, id uint64) (bool, error) {
	raw, err := w.loadRaw(db, id)
	if err != nil {
		return false, err
	}
	return IsExecutedEncoding(raw), nil
}

// ConfirmationCount returns the number of current owners that confirmed
// the transaction.
func (w *Wallet) ConfirmationCount(db quorum.ReadOnlyKVStore, id uint64) (uint64, error) {
	if err := w.requireTransaction(db, id); err != nil {
		return 0, err
	}
	return w.approvals.Count(db, id)
}

// Confirmations returns the owners that confirmed the transaction, looking
// at count owners starting from position offset.
func (w *Wallet) Confirmations(db quorum.ReadOnlyKVStore, id, offset, count uint64) ([]quorum.Address, error) {
	if err := w.requireTransaction(db, id); err != nil {
		return nil, err
	}
	if err := checkPage(db, count); err != nil {
		return nil, err
	}
	return w.approvals.Confirmed(db, id, offset, count)
}

// TransactionCount returns the number of existing transactions that are
// pending, executed or both.
func (w *Wallet) TransactionCount(db quorum.ReadOnlyKVStore, pending, executed bool) (uint64, error) {
	start := w.keys.key([]byte("tx:"))
	end := w.keys.key([]byte("tx;"))
	it, err := db.Iterator(start, end)
	if err != nil {
		return 0, errors.Wrap(err, "transactions")
	}
	defer it.Close()

	var n uint64
	for ; it.Valid(); err = it.Next() {
		if err != nil {
			return 0, errors.Wrap(err, "transactions")
		}
		if matchStatus(it.Value(), pending, executed) {
			n++
		}
	}
	return n, errors.Wrap(err, "transactions")
}

// Transactions returns the transactions with an id in [offset,
// offset+count) that are pending, executed or both. Cancelled ids are
// skipped, so the page may hold fewer than count transactions.
func (w *Wallet) Transactions(db quorum.ReadOnlyKVStore, offset, count uint64, pending, executed bool) ([]TransactionInfo, error) {
	if err := checkPage(db, count); err != nil {
		return nil, err
	}
	total, _, err := w.counter.Latest(db)
	if err != nil {
		return nil, errors.Wrap(err, "transaction count")
	}
	end := total
	if offset < total && total-offset > count {
		end = offset + count
	}
	var res []TransactionInfo
	for id := offset; id < end; id++ {
		raw, err := db.Get(w.keys.transaction(id))
		if err != nil {
			return nil, errors.Wrap(err, "transaction")
		}
		if raw == nil || !matchStatus(raw, pending, executed) {
			continue
		}
		tx, err := Decode(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "transaction %d", id)
		}
		res = append(res, TransactionInfo{ID: id, Transaction: tx})
	}
	return res, nil
}

func matchStatus(raw []byte, pending, executed bool) bool {
	if IsExecutedEncoding(raw) {
		return executed
	}
	return pending
}

func (w *Wallet) requireTransaction(db quorum.ReadOnlyKVStore, id uint64) error {
	raw, err := w.loadRaw(db, id)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(ErrNoSuchTransaction, "transaction %d", id)
	}
	return nil
}

func checkPage(db quorum.ReadOnlyKVStore, count uint64) error {
	conf, err := loadConfiguration(db)
	if err != nil {
		return err
	}
	return conf.checkPage(count)
}
