package sigs

import (
	"context"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/x"
)

type contextKey int

const contextKeySigners contextKey = iota

// withSigners is only called by the Decorator, so nothing else can claim
// a signature.
func withSigners(ctx quorum.Context, signers []quorum.Condition) quorum.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate exposes the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the verified signers, possibly none.
func (Authenticate) GetConditions(ctx quorum.Context) []quorum.Condition {
	signers, _ := ctx.Value(contextKeySigners).([]quorum.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx quorum.Context, addr quorum.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
