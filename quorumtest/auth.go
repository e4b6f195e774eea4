package quorumtest

import (
	"context"
	"fmt"

	"github.com/iov-one/quorum"
)

// Auth authenticates a fixed set of signers: Signer first, when set,
// followed by Signers.
type Auth struct {
	Signer  quorum.Condition
	Signers []quorum.Condition
}

func (a *Auth) GetConditions(quorum.Context) []quorum.Condition {
	if a.Signer == nil {
		return a.Signers
	}
	return append([]quorum.Condition{a.Signer}, a.Signers...)
}

func (a *Auth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

// CtxAuth authenticates the signers stored in the context under Key, the
// way the signature decorator does for real transactions.
type CtxAuth struct {
	Key string
}

// SetConditions returns a context in which signers are authenticated.
func (a *CtxAuth) SetConditions(ctx quorum.Context, signers ...quorum.Condition) quorum.Context {
	return context.WithValue(ctx, a.Key, signers)
}

func (a *CtxAuth) GetConditions(ctx quorum.Context) []quorum.Condition {
	switch v := ctx.Value(a.Key).(type) {
	case nil:
		return nil
	case []quorum.Condition:
		return v
	default:
		panic(fmt.Sprintf("context key %q holds %T", a.Key, v))
	}
}

func (a *CtxAuth) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	return hasAddress(a.GetConditions(ctx), addr)
}

func hasAddress(signers []quorum.Condition, addr quorum.Address) bool {
	for _, s := range signers {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
