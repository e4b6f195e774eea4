//go:generate mockgen -destination=mocks/host.go -package=mocks github.com/iov-one/quorum/x/wallet Host

package wallet

import (
	"context"
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
)

// Host is the ledger a wallet moves value through. It knows the balance of
// every account and routes calls to contracts.
type Host interface {
	// IsContract returns true if calls to given address are handled by a
	// contract.
	IsContract(db quorum.ReadOnlyKVStore, addr quorum.Address) bool
	Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (*big.Int, error)
	// Transfer moves amount from one account to another.
	Transfer(ctx quorum.Context, db quorum.KVStore, from, to quorum.Address, amount *big.Int) error
	// Call moves amount to the contract and invokes method with given
	// arguments. An empty method invokes the contract fallback.
	Call(ctx quorum.Context, db quorum.KVStore, from, to quorum.Address, method string, args Params, amount *big.Int) error
}

// Invoker is a contract that can receive calls.
type Invoker interface {
	Invoke(ctx quorum.Context, db quorum.KVStore, sender quorum.Address, method string, args Params, amount *big.Int) error
}

// Outcome is the result of executing a transaction. Cause is nil on
// success.
type Outcome struct {
	Cause error
}

func (o Outcome) Success() bool {
	return o.Cause == nil
}

// Dispatcher executes approved transactions.
//
// A transaction with the wallet as destination is a self-call and is
// passed to the wallet contract directly. Other transactions are a call
// when the destination is a contract and a plain transfer otherwise.
type Dispatcher struct {
	host Host
	self Invoker
}

func NewDispatcher(host Host, self Invoker) Dispatcher {
	return Dispatcher{host: host, self: self}
}

// Execute runs a transaction on behalf of wallet.
//
// All writes and events of the execution are isolated and kept only when
// it succeeds. Any error or panic of the callee is returned as the outcome
// cause, never as an error. While it runs, the transaction is marked as in
// flight in the context so that a reentrant call cannot change it.
func (d Dispatcher) Execute(ctx quorum.Context, db quorum.KVStore, wallet quorum.Address, id uint64, tx *Transaction) Outcome {
	cache := cacheWrap(db)
	callCtx, events := quorum.WithEventBuffer(withInFlight(ctx, wallet, id))

	if err := d.call(callCtx, cache, wallet, tx); err != nil {
		cache.Discard()
		return Outcome{Cause: err}
	}
	if err := cache.Write(); err != nil {
		return Outcome{Cause: err}
	}
	if parent, ok := quorum.GetEventBuffer(ctx); ok {
		parent.Append(events)
	}
	return Outcome{}
}

func (d Dispatcher) call(ctx quorum.Context, db quorum.KVStore, wallet quorum.Address, tx *Transaction) (err error) {
	defer errors.Recover(&err)

	switch {
	case tx.Destination.Equals(wallet):
		if d.self == nil {
			return errors.Wrap(errors.ErrHuman, "no wallet contract")
		}
		return d.self.Invoke(ctx, db, wallet, tx.Method, tx.Params, tx.Value)
	case d.host == nil:
		return errors.Wrap(errors.ErrHuman, "no host")
	case d.host.IsContract(db, tx.Destination):
		return d.host.Call(ctx, db, wallet, tx.Destination, tx.Method, tx.Params, tx.Value)
	case tx.Method != "":
		return errors.Wrapf(errors.ErrInput, "%s is not a contract", tx.Destination)
	default:
		return d.host.Transfer(ctx, db, wallet, tx.Destination, tx.Value)
	}
}

func cacheWrap(db quorum.KVStore) quorum.KVCacheWrap {
	if c, ok := db.(quorum.CacheableKVStore); ok {
		return c.CacheWrap()
	}
	return store.Cacheable{KVStore: db}.CacheWrap()
}

type contextKey int

const contextKeyInFlight contextKey = iota

// inFlight is a linked list of the transactions being executed by the
// current call chain.
type inFlight struct {
	wallet quorum.Address
	id     uint64
	parent *inFlight
}

func withInFlight(ctx quorum.Context, wallet quorum.Address, id uint64) quorum.Context {
	parent, _ := ctx.Value(contextKeyInFlight).(*inFlight)
	return context.WithValue(ctx, contextKeyInFlight, &inFlight{wallet: wallet, id: id, parent: parent})
}

func isInFlight(ctx quorum.Context, wallet quorum.Address, id uint64) bool {
	f, _ := ctx.Value(contextKeyInFlight).(*inFlight)
	for ; f != nil; f = f.parent {
		if f.id == id && f.wallet.Equals(wallet) {
			return true
		}
	}
	return false
}
