package app

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x/utils"
	"github.com/stretchr/testify/assert"
)

// panicOver panics once the block height goes over its value.
type panicOver int64

func (p panicOver) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	p.maybePanic(ctx)
	return next.Check(ctx, db, tx)
}

func (p panicOver) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	p.maybePanic(ctx)
	return next.Deliver(ctx, db, tx)
}

func (p panicOver) maybePanic(ctx quorum.Context) {
	if h, _ := quorum.GetHeight(ctx); h > int64(p) {
		panic("block too high")
	}
}

func TestChainRunsDecoratorsInOrder(t *testing.T) {
	outer := &quorumtest.Decorator{}
	inner := &quorumtest.Decorator{}
	last := &quorumtest.Decorator{}
	h := &quorumtest.Handler{}
	var missing *quorumtest.Decorator

	stack := ChainDecorators(
		outer,
		utils.NewLogging(),
		missing,
		utils.NewRecovery(),
		inner,
		panicOver(5),
		last,
	).WithHandler(h)

	db := store.MemStore()
	tx := &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "wallet/submit"}}
	low := quorum.WithHeight(context.Background(), 5)
	high := quorum.WithHeight(context.Background(), 6)

	_, err := stack.Check(low, db, tx)
	assert.NoError(t, err)
	_, err = stack.Deliver(low, db, tx)
	assert.NoError(t, err)
	for _, d := range []*quorumtest.Decorator{outer, inner, last} {
		assert.Equal(t, 1, d.CheckCallCount())
		assert.Equal(t, 1, d.DeliverCallCount())
	}
	assert.Equal(t, 2, h.CallCount())

	// Recovery turns the panic below it into an error, and nothing past
	// the panic runs.
	_, err = stack.Check(high, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	_, err = stack.Deliver(high, db, tx)
	assert.True(t, errors.ErrPanic.Is(err))
	assert.Equal(t, 4, outer.CallCount())
	assert.Equal(t, 4, inner.CallCount())
	assert.Equal(t, 2, last.CallCount())
	assert.Equal(t, 2, h.CallCount())
}

func TestChainStopsAtFailingDecorator(t *testing.T) {
	guard := &quorumtest.Decorator{DeliverErr: errors.ErrUnauthorized}
	h := &quorumtest.Handler{}
	stack := ChainDecorators(guard).WithHandler(h)

	ctx := context.Background()
	tx := &quorumtest.Tx{Msg: &quorumtest.Msg{RoutePath: "wallet/confirm"}}
	_, err := stack.Deliver(ctx, store.MemStore(), tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))
	assert.Equal(t, 0, h.CallCount())

	_, err = stack.Check(ctx, store.MemStore(), tx)
	assert.NoError(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
}

func TestChainDoesNotShareDecorators(t *testing.T) {
	base := ChainDecorators(&quorumtest.Decorator{})
	a := base.Chain(&quorumtest.Decorator{})
	b := base.Chain(&quorumtest.Decorator{}, nil)

	assert.Len(t, base, 1)
	assert.Len(t, a, 2)
	assert.Len(t, b, 2)
	assert.True(t, a[1] != b[1])
}
