package cash

import (
	"fmt"
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/wallet"
)

// Factory creates the contract handling calls to given address. The
// contract moves value and calls other contracts through host.
type Factory func(addr quorum.Address, host wallet.Host) wallet.Invoker

// Ledger moves value between accounts and routes calls to the deployed
// contracts. Balances and deployments live in the store, the ledger
// itself only knows how to build a contract of each kind.
type Ledger struct {
	kinds map[string]Factory
}

var (
	_ wallet.Host     = (*Ledger)(nil)
	_ wallet.Deployer = (*Ledger)(nil)
)

// NewLedger returns a ledger that runs wallets. Any other kind of contract
// must be registered before it can be deployed.
func NewLedger() *Ledger {
	l := &Ledger{kinds: make(map[string]Factory)}
	l.Register(wallet.ContractKind, func(addr quorum.Address, host wallet.Host) wallet.Invoker {
		return wallet.New(addr, host)
	})
	return l
}

// Register declares a contract kind. Registering the same kind twice
// panics.
func (l *Ledger) Register(kind string, f Factory) {
	if _, ok := l.kinds[kind]; ok {
		panic(fmt.Sprintf("contract kind %q already registered", kind))
	}
	l.kinds[kind] = f
}

// Balance returns the balance of given address. An unknown address has
// a zero balance.
func (l *Ledger) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (*big.Int, error) {
	var acc Account
	switch err := accounts.One(db, addr, &acc); {
	case errors.ErrNotFound.Is(err):
		return new(big.Int), nil
	case err != nil:
		return nil, errors.Wrap(err, "account")
	}
	return acc.amount(), nil
}

// Transfer moves the given amount from src to dest. It fails if src
// doesn't have sufficient funds. Moving zero is a no-op.
func (l *Ledger) Transfer(ctx quorum.Context, db quorum.KVStore, src, dest quorum.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return errors.Wrap(errors.ErrAmount, "must be zero or more")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if amount.Sign() == 0 {
		return nil
	}

	have, err := l.Balance(db, src)
	if err != nil {
		return err
	}
	if have.Cmp(amount) < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %s, want %s", have, amount)
	}
	if err := l.save(db, src, have.Sub(have, amount)); err != nil {
		return err
	}

	got, err := l.Balance(db, dest)
	if err != nil {
		return err
	}
	if err := l.save(db, dest, got.Add(got, amount)); err != nil {
		return err
	}
	quorum.GetLogger(ctx).Debug("transfer",
		"src", src.String(), "dest", dest.String(), "amount", amount.String())
	return nil
}

// Issue adds the given amount to the balance of dest. The amount may
// also be negative, but no balance goes below zero.
func (l *Ledger) Issue(db quorum.KVStore, dest quorum.Address, amount *big.Int) error {
	if amount == nil {
		return errors.Wrap(errors.ErrAmount, "missing")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	have, err := l.Balance(db, dest)
	if err != nil {
		return err
	}
	have.Add(have, amount)
	if have.Sign() < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "short by %s", new(big.Int).Neg(have))
	}
	return l.save(db, dest, have)
}

func (l *Ledger) save(db quorum.KVStore, addr quorum.Address, balance *big.Int) error {
	if balance.Sign() == 0 {
		err := accounts.Delete(db, addr)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return accounts.Save(db, addr, &Account{Balance: balance.Bytes()})
}

// Deploy records that calls to addr are handled by a contract of given
// kind.
func (l *Ledger) Deploy(db quorum.KVStore, addr quorum.Address, kind string) error {
	if _, ok := l.kinds[kind]; !ok {
		return errors.Wrapf(ErrUnknownKind, "%q", kind)
	}
	if err := addr.Validate(); err != nil {
		return errors.Wrap(err, "contract address")
	}
	switch ok, err := contracts.Has(db, addr); {
	case err != nil:
		return err
	case ok:
		return errors.Wrapf(errors.ErrDuplicate, "contract %s", addr)
	}
	return contracts.Save(db, addr, &Deployment{Kind: kind})
}

// IsContract returns true if a contract is deployed at given address.
func (l *Ledger) IsContract(db quorum.ReadOnlyKVStore, addr quorum.Address) bool {
	ok, err := contracts.Has(db, addr)
	return err == nil && ok
}

// Contract returns the contract deployed at given address.
func (l *Ledger) Contract(db quorum.ReadOnlyKVStore, addr quorum.Address) (wallet.Invoker, error) {
	var d Deployment
	if err := contracts.One(db, addr, &d); err != nil {
		return nil, errors.Wrapf(err, "contract %s", addr)
	}
	f, ok := l.kinds[d.Kind]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownKind, "%q at %s", d.Kind, addr)
	}
	return f(addr, l), nil
}

// Call moves the amount to the contract and invokes the method. An empty
// method invokes the contract fallback.
func (l *Ledger) Call(ctx quorum.Context, db quorum.KVStore, src, dest quorum.Address, method string, args wallet.Params, amount *big.Int) error {
	c, err := l.Contract(db, dest)
	if err != nil {
		return err
	}
	if amount == nil {
		amount = new(big.Int)
	}
	if err := l.Transfer(ctx, db, src, dest, amount); err != nil {
		return err
	}
	return c.Invoke(ctx, db, src, method, args, amount)
}
