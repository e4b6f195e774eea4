package x

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Authenticator tells a handler who signed the transaction being
// processed. Handlers take one in their constructor, so the way signers
// are established never leaks into the extensions.
type Authenticator interface {
	// GetConditions lists the signers in the order they signed.
	GetConditions(quorum.Context) []quorum.Condition
	// HasAddress reports whether addr is one of the signers.
	HasAddress(quorum.Context, quorum.Address) bool
}

// MultiAuth merges the signers seen by several authenticators.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth{}

// ChainAuth returns an authenticator seeing the signers of all given ones.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

func (m MultiAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	var all []quorum.Condition
	for _, a := range m {
		all = append(all, a.GetConditions(ctx)...)
	}
	return all
}

func (m MultiAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, a := range m {
		if a.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first signer, or nil for an unsigned
// transaction.
func MainSigner(ctx quorum.Context, auth Authenticator) quorum.Condition {
	if signers := auth.GetConditions(ctx); len(signers) > 0 {
		return signers[0]
	}
	return nil
}

// Caller returns the address acting in the current transaction: the main
// signer. Wallet operations use it as msg.sender.
func Caller(ctx quorum.Context, auth Authenticator) (quorum.Address, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}
