/*
Package sigs authenticates transactions by their ed25519 signatures and
keeps a sequence per signer to reject replays.
*/
package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// verifyCost is the gas charged in CheckTx for every accepted signature.
const verifyCost = 500

// Decorator verifies the signatures of a transaction and exposes the
// signers to the rest of the stack through Authenticate.
type Decorator struct {
	optional bool
}

var _ quorum.Decorator = Decorator{}

// NewDecorator returns a decorator rejecting transactions that carry no
// signature at all.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that lets unsigned
// transactions through with an empty signer set.
func (d Decorator) AllowMissingSigs() Decorator {
	d.optional = true
	return d
}

// authenticate returns ctx extended with the signers of tx. Transactions
// that do not carry signatures are returned untouched.
func (d Decorator) authenticate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (quorum.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, quorum.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.optional {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), len(signers), nil
}

func (d Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * verifyCost)
	return res, nil
}

func (d Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}
