package cash

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const optKey = "cash"

// GenesisAccount is used to parse the json from genesis file. The balance
// is a JSON number.
type GenesisAccount struct {
	Address quorum.Address `json:"address"`
	Balance *big.Int       `json:"balance"`
}

// Initializer fulfils the Initializer interface to load balances from
// the genesis file
type Initializer struct {
	Ledger *Ledger
}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i *Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return err
	}
	for n, acct := range accts {
		if acct.Balance == nil || acct.Balance.Sign() < 0 {
			return errors.Wrapf(errors.ErrAmount, "account #%d", n)
		}
		if err := i.Ledger.Issue(db, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account #%d", n)
		}
	}
	return nil
}
