package token

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/wallet"
)

// ContractKind is the kind under which tokens are deployed.
const ContractKind = "token"

// Methods a token can be invoked with.
const (
	MethodTransfer    = "transfer"
	MethodRevertCheck = "revert_check"

	// MethodTokenFallback is called on a contract receiving tokens.
	MethodTokenFallback = wallet.MethodTokenFallback
)

// EventTransfer is emitted on every successful transfer.
const EventTransfer = "Transfer"

// defaultData is sent to the recipient when the transfer carries none.
var defaultData = []byte("None")

// Token is the contract of a fungible token living at an address.
type Token struct {
	address quorum.Address
	host    wallet.Host
}

var _ wallet.Invoker = (*Token)(nil)

// New returns the token living at addr. Recipients that are contracts are
// notified through host.
func New(addr quorum.Address, host wallet.Host) *Token {
	return &Token{address: addr, host: host}
}

// Factory builds tokens for a ledger routing calls by contract kind.
func Factory(addr quorum.Address, host wallet.Host) wallet.Invoker {
	return New(addr, host)
}

func (t *Token) Address() quorum.Address {
	return t.address
}

// Invoke runs a token method on behalf of sender. The fallback accepts any
// value sent to the token.
func (t *Token) Invoke(ctx quorum.Context, db quorum.KVStore, sender quorum.Address, method string, args wallet.Params, amount *big.Int) error {
	switch method {
	case "":
		return nil
	case MethodTransfer:
		to, value, data, err := transferArgs(args)
		if err != nil {
			return err
		}
		return t.Transfer(ctx, db, sender, to, value, data)
	case MethodRevertCheck:
		to, value, _, err := transferArgs(args)
		if err != nil {
			return err
		}
		if err := t.credit(db, to, value); err != nil {
			return err
		}
		return errors.Wrap(errors.ErrState, "revert test")
	}
	return errors.Wrapf(ErrUnknownMethod, "%q", method)
}

func transferArgs(args wallet.Params) (quorum.Address, *big.Int, []byte, error) {
	to, err := args.Address("_to")
	if err != nil {
		return nil, nil, nil, err
	}
	value, err := args.Int("_value")
	if err != nil {
		return nil, nil, nil, err
	}
	data := defaultData
	if _, ok := args.Get("_data"); ok {
		if data, err = args.Bytes("_data"); err != nil {
			return nil, nil, nil, err
		}
	}
	return to, value, data, nil
}

// Transfer moves value tokens from one holder to another. A recipient with
// a contract deployed is notified through its tokenFallback method, and
// the transfer fails if the contract does.
func (t *Token) Transfer(ctx quorum.Context, db quorum.KVStore, from, to quorum.Address, value *big.Int, data []byte) error {
	if value == nil || value.Sign() < 0 {
		return errors.Wrap(errors.ErrAmount, "must be zero or more")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "recipient")
	}
	if _, err := t.Info(db); err != nil {
		return err
	}
	have, err := t.BalanceOf(db, from)
	if err != nil {
		return err
	}
	if have.Cmp(value) < 0 {
		return errors.Wrapf(ErrOutOfBalance, "balance %s, want %s", have, value)
	}
	if err := t.setBalance(db, from, have.Sub(have, value)); err != nil {
		return err
	}
	if err := t.credit(db, to, value); err != nil {
		return err
	}

	if t.host != nil && t.host.IsContract(db, to) {
		args := wallet.Params{
			wallet.AddressParam("_from", from),
			wallet.IntParam("_value", value),
			wallet.BytesParam("_data", data),
		}
		if err := t.host.Call(ctx, db, t.address, to, MethodTokenFallback, args, new(big.Int)); err != nil {
			return errors.Wrap(err, "token fallback")
		}
	}

	quorum.EmitEvent(ctx, quorum.NewEvent(EventTransfer,
		"token", t.address.String(),
		"from", from.String(),
		"to", to.String(),
		"value", value.String(),
		"data", string(data)))
	quorum.GetLogger(ctx).Debug("token transfer",
		"token", t.address.String(), "from", from.String(), "to", to.String(), "value", value.String())
	return nil
}

// Info returns the description of the token.
func (t *Token) Info(db quorum.ReadOnlyKVStore) (*Info, error) {
	var info Info
	if err := infos.One(db, t.address, &info); err != nil {
		return nil, errors.Wrapf(err, "token %s", t.address)
	}
	return &info, nil
}

func (t *Token) TotalSupply(db quorum.ReadOnlyKVStore) (*big.Int, error) {
	info, err := t.Info(db)
	if err != nil {
		return nil, err
	}
	return amountOf(info.TotalSupply), nil
}

// BalanceOf returns the amount of tokens owned by holder.
func (t *Token) BalanceOf(db quorum.ReadOnlyKVStore, holder quorum.Address) (*big.Int, error) {
	var h Holding
	switch err := holdings.One(db, holdingKey(t.address, holder), &h); {
	case errors.ErrNotFound.Is(err):
		return new(big.Int), nil
	case err != nil:
		return nil, err
	}
	return amountOf(h.Balance), nil
}

func (t *Token) credit(db quorum.KVStore, holder quorum.Address, value *big.Int) error {
	have, err := t.BalanceOf(db, holder)
	if err != nil {
		return err
	}
	return t.setBalance(db, holder, have.Add(have, value))
}

func (t *Token) setBalance(db quorum.KVStore, holder quorum.Address, balance *big.Int) error {
	key := holdingKey(t.address, holder)
	if balance.Sign() == 0 {
		err := holdings.Delete(db, key)
		if errors.ErrNotFound.Is(err) {
			return nil
		}
		return err
	}
	return holdings.Save(db, key, &Holding{Balance: balance.Bytes()})
}
