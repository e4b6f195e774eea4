package cash

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// Account holds the balance of an address as a big endian unsigned
// integer. An account that was never credited has no entry.
type Account struct {
	Balance []byte `json:"balance"`
}

var _ orm.Model = (*Account)(nil)

func (a *Account) Validate() error {
	if len(a.Balance) > 32 {
		return errors.Field("Balance", errors.ErrOverflow, "more than 256 bits")
	}
	return nil
}

func (a *Account) amount() *big.Int {
	return new(big.Int).SetBytes(a.Balance)
}

// Deployment records the kind of the contract living at an address.
type Deployment struct {
	Kind string `json:"kind"`
}

var _ orm.Model = (*Deployment)(nil)

func (d *Deployment) Validate() error {
	if d.Kind == "" {
		return errors.Field("Kind", errors.ErrEmpty, "required")
	}
	return nil
}

var (
	accounts  = orm.NewBucket("cash")
	contracts = orm.NewBucket("contract")
)

// RegisterQuery will register the balances as "/accounts" and the
// deployed contracts as "/contracts".
func RegisterQuery(qr quorum.QueryRouter) {
	accounts.Register("accounts", qr)
	contracts.Register("contracts", qr)
}
