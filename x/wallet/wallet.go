package wallet

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Wallet is a multi-party wallet. Owners submit transactions, and a
// transaction is executed as soon as the number of confirming owners
// reaches the required threshold.
//
// A Wallet holds no state itself, everything is read from and written to
// the store passed to each call. Every state changing call must be run as
// a single unit of work: the caller is expected to discard all writes done
// to the store when an error is returned.
type Wallet struct {
	address    quorum.Address
	keys       keyspace
	registry   Membership
	approvals  Confirmations
	counter    orm.Sequence
	dispatcher Dispatcher
}

// New returns the wallet with given address. Calls and transfers of
// executed transactions are made through host.
func New(addr quorum.Address, host Host) *Wallet {
	w := &Wallet{
		address:   addr,
		keys:      newKeyspace(addr),
		registry:  NewMembership(addr),
		approvals: NewConfirmations(addr),
		counter:   orm.NewSequence("wlt", string(addr)+":txcount"),
	}
	w.dispatcher = NewDispatcher(host, w)
	return w
}

// Address returns the identity of the wallet.
func (w *Wallet) Address() quorum.Address {
	return w.address
}

// Submit stores a new transaction and confirms it on behalf of the
// submitter, which executes it right away when one confirmation is
// enough. Invalid submissions do not consume a transaction id.
func (w *Wallet) Submit(
	ctx quorum.Context,
	db quorum.KVStore,
	caller quorum.Address,
	destination quorum.Address,
	method string,
	params Params,
	value *big.Int,
	description string,
) (uint64, error) {
	if err := w.requireOwner(db, caller); err != nil {
		return 0, err
	}
	if value == nil || value.Sign() < 0 {
		return 0, errors.Wrapf(ErrInvalidValue, "value %s", formatAmount(value))
	}
	if err := params.Validate(); err != nil {
		return 0, err
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return 0, err
	}
	tx := &Transaction{
		Destination: destination,
		Method:      method,
		Params:      params,
		Value:       new(big.Int).Set(value),
		Description: description,
	}
	raw, err := Encode(tx, conf.Limits())
	if err != nil {
		return 0, err
	}

	id, err := w.counter.Allocate(db)
	if err != nil {
		return 0, errors.Wrap(err, "transaction id")
	}
	if err := db.Set(w.keys.transaction(id), raw); err != nil {
		return 0, errors.Wrap(err, "transaction")
	}
	w.emit(ctx, EventSubmission, "tx", formatUint(id))

	if err := w.confirm(ctx, db, caller, id, tx); err != nil {
		return 0, err
	}
	return id, nil
}

// Confirm approves a pending transaction and executes it if the quorum is
// reached. A failed execution is not an error: the confirmation is kept,
// an ExecutionFailure event is emitted and the transaction stays pending.
// Confirming an executed transaction changes nothing and returns
// ErrAlreadyExecuted.
func (w *Wallet) Confirm(ctx quorum.Context, db quorum.KVStore, caller quorum.Address, id uint64) error {
	if err := w.requireOwner(db, caller); err != nil {
		return err
	}
	tx, err := w.pending(ctx, db, id)
	if err != nil {
		return err
	}
	return w.confirm(ctx, db, caller, id, tx)
}

func (w *Wallet) confirm(ctx quorum.Context, db quorum.KVStore, owner quorum.Address, id uint64, tx *Transaction) error {
	if err := w.approvals.Confirm(db, id, owner); err != nil {
		return err
	}
	w.emit(ctx, EventConfirmation, "owner", owner.String(), "tx", formatUint(id))
	return w.executeIfQuorum(ctx, db, id, tx)
}

func (w *Wallet) executeIfQuorum(ctx quorum.Context, db quorum.KVStore, id uint64, tx *Transaction) error {
	met, err := w.approvals.IsQuorumMet(db, id)
	if err != nil || !met {
		return err
	}

	out := w.dispatcher.Execute(ctx, db, w.address, id, tx)
	if !out.Success() {
		quorum.GetLogger(ctx).Info("wallet transaction execution failed",
			"wallet", w.address.String(), "tx", id, "cause", out.Cause)
		w.emit(ctx, EventExecutionFailure, "tx", formatUint(id))
		return nil
	}

	key := w.keys.transaction(id)
	raw, err := db.Get(key)
	if err != nil {
		return errors.Wrap(err, "transaction")
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrState, "transaction %d deleted during execution", id)
	}
	raw = clone(raw)
	raw[0] = 1
	if err := db.Set(key, raw); err != nil {
		return errors.Wrap(err, "transaction")
	}
	w.emit(ctx, EventExecution, "tx", formatUint(id))
	return nil
}

// Revoke withdraws the confirmation of the caller. It never executes the
// transaction.
func (w *Wallet) Revoke(ctx quorum.Context, db quorum.KVStore, caller quorum.Address, id uint64) error {
	if err := w.requireOwner(db, caller); err != nil {
		return err
	}
	if _, err := w.pending(ctx, db, id); err != nil {
		return err
	}
	if err := w.approvals.Revoke(db, id, caller); err != nil {
		return err
	}
	w.emit(ctx, EventRevocation, "owner", caller.String(), "tx", formatUint(id))
	return nil
}

// Cancel deletes a transaction that nobody confirms. The id is not reused.
func (w *Wallet) Cancel(ctx quorum.Context, db quorum.KVStore, caller quorum.Address, id uint64) error {
	if err := w.requireOwner(db, caller); err != nil {
		return err
	}
	if _, err := w.pending(ctx, db, id); err != nil {
		return err
	}
	n, err := w.approvals.Count(db, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.Wrapf(ErrHasConfirmations, "%d confirmations", n)
	}
	if err := db.Delete(w.keys.transaction(id)); err != nil {
		return errors.Wrap(err, "transaction")
	}
	if err := w.approvals.Clear(db, id); err != nil {
		return err
	}
	w.emit(ctx, EventCancellation, "owner", caller.String(), "tx", formatUint(id))
	return nil
}

func (w *Wallet) requireOwner(db quorum.ReadOnlyKVStore, caller quorum.Address) error {
	ok, err := w.registry.IsOwner(db, caller)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not an owner", caller)
	}
	return nil
}

// pending returns a transaction that can still change state.
func (w *Wallet) pending(ctx quorum.Context, db quorum.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	tx, err := w.load(db, id)
	if err != nil {
		return nil, err
	}
	if isInFlight(ctx, w.address, id) {
		return nil, errors.Wrapf(ErrReentrant, "transaction %d", id)
	}
	if tx.Executed {
		return nil, errors.Wrapf(ErrAlreadyExecuted, "transaction %d", id)
	}
	return tx, nil
}

func (w *Wallet) load(db quorum.ReadOnlyKVStore, id uint64) (*Transaction, error) {
	raw, err := w.loadRaw(db, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.Wrapf(ErrNoSuchTransaction, "transaction %d", id)
	}
	tx, err := Decode(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "transaction %d", id)
	}
	return tx, nil
}

// loadRaw returns the encoded transaction, or nil if it was never
// submitted or was cancelled.
func (w *Wallet) loadRaw(db quorum.ReadOnlyKVStore, id uint64) ([]byte, error) {
	count, _, err := w.counter.Latest(db)
	if err != nil {
		return nil, errors.Wrap(err, "transaction count")
	}
	if id >= count {
		return nil, nil
	}
	raw, err := db.Get(w.keys.transaction(id))
	if err != nil {
		return nil, errors.Wrap(err, "transaction")
	}
	return raw, nil
}
