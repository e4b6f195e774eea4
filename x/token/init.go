package token

import (
	"context"
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/wallet"
)

// Condition returns the condition owning the native value sent to the
// token with given sequence id.
func Condition(id []byte) quorum.Condition {
	return quorum.NewCondition(ContractKind, "seq", id)
}

// Install creates a token with a new address. The whole supply of
// initialSupply * 10^decimals is given to owner.
func Install(ctx quorum.Context, db quorum.KVStore, host wallet.Host, owner quorum.Address, name, symbol string, decimals uint32, initialSupply *big.Int) (*Token, error) {
	id, err := tokenID.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "token id")
	}
	return InstallAt(ctx, db, host, Condition(id).Address(), owner, name, symbol, decimals, initialSupply)
}

// InstallAt creates a token living at given address. It fails with
// ErrDuplicate if a token with that address already exists.
func InstallAt(ctx quorum.Context, db quorum.KVStore, host wallet.Host, addr, owner quorum.Address, name, symbol string, decimals uint32, initialSupply *big.Int) (*Token, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "token address")
	}
	if err := owner.Validate(); err != nil {
		return nil, errors.Wrap(err, "owner")
	}
	if decimals > maxDecimals {
		return nil, errors.Wrapf(ErrInvalidDecimals, "%d > %d", decimals, maxDecimals)
	}
	if initialSupply == nil || initialSupply.Sign() < 0 {
		return nil, errors.Wrap(errors.ErrAmount, "initial supply must be zero or more")
	}
	switch ok, err := infos.Has(db, addr); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %s", addr)
	}

	total := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	total.Mul(total, initialSupply)
	info := Info{
		Name:        name,
		Symbol:      symbol,
		Decimals:    decimals,
		TotalSupply: total.Bytes(),
	}
	if err := infos.Save(db, addr, &info); err != nil {
		return nil, err
	}

	t := New(addr, host)
	if err := t.setBalance(db, owner, total); err != nil {
		return nil, err
	}
	if d, ok := host.(wallet.Deployer); ok {
		if err := d.Deploy(db, addr, ContractKind); err != nil {
			return nil, errors.Wrap(err, "deploy")
		}
	}
	quorum.GetLogger(ctx).Info("token installed",
		"token", addr.String(), "symbol", symbol, "total_supply", total.String())
	return t, nil
}

// GenesisToken is used to parse the json from genesis file. A token
// without an address gets a new one.
type GenesisToken struct {
	Address       quorum.Address `json:"address"`
	Owner         quorum.Address `json:"owner"`
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Decimals      uint32         `json:"decimals"`
	InitialSupply *big.Int       `json:"initial_supply"`
}

// Initializer fulfils the Initializer interface to install the tokens
// declared in the genesis file.
type Initializer struct {
	Host wallet.Host
}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis reads the "tokens" list.
func (i *Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var tokens []GenesisToken
	if err := opts.ReadOptions("tokens", &tokens); err != nil {
		return err
	}
	ctx := context.Background()
	for n, g := range tokens {
		var err error
		if len(g.Address) == 0 {
			_, err = Install(ctx, db, i.Host, g.Owner, g.Name, g.Symbol, g.Decimals, g.InitialSupply)
		} else {
			_, err = InstallAt(ctx, db, i.Host, g.Address, g.Owner, g.Name, g.Symbol, g.Decimals, g.InitialSupply)
		}
		if err != nil {
			return errors.Wrapf(err, "token #%d", n)
		}
	}
	return nil
}
