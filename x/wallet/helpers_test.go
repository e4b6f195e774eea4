package wallet

import (
	"context"
	"math/big"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

// testHost keeps balances in the database and routes calls to the
// contracts registered in memory. Deployed wallets are registered as
// contracts.
type testHost struct {
	contracts map[string]Invoker
}

var _ Host = (*testHost)(nil)
var _ Deployer = (*testHost)(nil)

func newTestHost() *testHost {
	return &testHost{contracts: make(map[string]Invoker)}
}

func balanceKey(addr quorum.Address) []byte {
	return append([]byte("bal:"), addr...)
}

func (h *testHost) IsContract(db quorum.ReadOnlyKVStore, addr quorum.Address) bool {
	_, ok := h.contracts[string(addr)]
	return ok
}

func (h *testHost) Balance(db quorum.ReadOnlyKVStore, addr quorum.Address) (*big.Int, error) {
	raw, err := db.Get(balanceKey(addr))
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(raw), nil
}

func (h *testHost) setBalance(db quorum.KVStore, addr quorum.Address, n *big.Int) error {
	return db.Set(balanceKey(addr), n.Bytes())
}

func (h *testHost) Transfer(ctx quorum.Context, db quorum.KVStore, from, to quorum.Address, amount *big.Int) error {
	if amount.Sign() == 0 {
		return nil
	}
	have, err := h.Balance(db, from)
	if err != nil {
		return err
	}
	if have.Cmp(amount) < 0 {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s < %s", have, amount)
	}
	if err := h.setBalance(db, from, have.Sub(have, amount)); err != nil {
		return err
	}
	got, err := h.Balance(db, to)
	if err != nil {
		return err
	}
	return h.setBalance(db, to, got.Add(got, amount))
}

func (h *testHost) Call(ctx quorum.Context, db quorum.KVStore, from, to quorum.Address, method string, args Params, amount *big.Int) error {
	c, ok := h.contracts[string(to)]
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "contract %s", to)
	}
	if err := h.Transfer(ctx, db, from, to, amount); err != nil {
		return err
	}
	return c.Invoke(ctx, db, from, method, args, amount)
}

func (h *testHost) Deploy(db quorum.KVStore, addr quorum.Address, kind string) error {
	h.contracts[string(addr)] = New(addr, h)
	return nil
}

// recordingContract stores and announces every call it receives.
type recordingContract struct {
	calls []recordedCall
}

type recordedCall struct {
	sender quorum.Address
	method string
	args   Params
	amount *big.Int
}

func (c *recordingContract) Invoke(ctx quorum.Context, db quorum.KVStore, sender quorum.Address, method string, args Params, amount *big.Int) error {
	c.calls = append(c.calls, recordedCall{sender: sender, method: method, args: args, amount: amount})
	if err := db.Set([]byte("called:"+method), sender); err != nil {
		return err
	}
	quorum.EmitEvent(ctx, quorum.NewEvent("Called", "method", method))
	return nil
}

// failingContract writes to the database and emits an event before failing
// or panicking, so that tests can check nothing of it is kept.
type failingContract struct {
	fail  bool
	panic bool
}

var dirtyKey = []byte("dirty")

func (c *failingContract) Invoke(ctx quorum.Context, db quorum.KVStore, sender quorum.Address, method string, args Params, amount *big.Int) error {
	if err := db.Set(dirtyKey, []byte(method)); err != nil {
		return err
	}
	quorum.EmitEvent(ctx, quorum.NewEvent("Dirty"))
	if c.panic {
		panic("contract panic")
	}
	if c.fail {
		return errors.Wrap(errors.ErrState, "contract failure")
	}
	return nil
}

// reentrantContract confirms again the transaction that called it.
type reentrantContract struct {
	wallet *Wallet
	self   quorum.Address
	id     uint64
	err    error
}

func (c *reentrantContract) Invoke(ctx quorum.Context, db quorum.KVStore, sender quorum.Address, method string, args Params, amount *big.Int) error {
	c.err = c.wallet.Confirm(ctx, db, c.self, c.id)
	return c.err
}

type fixture struct {
	ctx    quorum.Context
	events *quorum.EventBuffer
	db     quorum.CacheableKVStore
	host   *testHost
	wallet *Wallet
	owners []quorum.Address
}

// newFixture installs a wallet with n random owners.
func newFixture(t testing.TB, n int, required uint64) *fixture {
	t.Helper()
	owners := make([]quorum.Address, n)
	for i := range owners {
		owners[i] = quorumtest.RandomAddr(t)
	}
	return newFixtureWithOwners(t, required, owners...)
}

func newFixtureWithOwners(t testing.TB, required uint64, owners ...quorum.Address) *fixture {
	t.Helper()
	f := &fixture{
		db:     store.MemStore(),
		host:   newTestHost(),
		owners: owners,
	}
	f.ctx, f.events = quorum.WithEventBuffer(context.Background())
	w, err := Install(f.ctx, f.db, f.host, joinOwners(owners), required)
	assert.Nil(t, err)
	f.wallet = w
	f.drain()
	return f
}

// drain returns the events collected so far and starts a new buffer.
func (f *fixture) drain() []quorum.Event {
	events := f.events.Events()
	f.ctx, f.events = quorum.WithEventBuffer(context.Background())
	return events
}

func (f *fixture) fund(t testing.TB, addr quorum.Address, amount int64) {
	t.Helper()
	assert.Nil(t, f.host.setBalance(f.db, addr, big.NewInt(amount)))
}

func (f *fixture) balance(t testing.TB, addr quorum.Address) int64 {
	t.Helper()
	n, err := f.host.Balance(f.db, addr)
	assert.Nil(t, err)
	return n.Int64()
}

// submit proposes a transaction that is expected to be accepted.
func (f *fixture) submit(t testing.TB, caller, dest quorum.Address, method string, params Params, value int64) uint64 {
	t.Helper()
	id, err := f.wallet.Submit(f.ctx, f.db, caller, dest, method, params, big.NewInt(value), "")
	assert.Nil(t, err)
	return id
}

func (f *fixture) executed(t testing.TB, id uint64) bool {
	t.Helper()
	ok, err := f.wallet.IsExecuted(f.db, id)
	assert.Nil(t, err)
	return ok
}

func (f *fixture) confirmations(t testing.TB, id uint64) uint64 {
	t.Helper()
	n, err := f.wallet.ConfirmationCount(f.db, id)
	assert.Nil(t, err)
	return n
}

func joinOwners(owners []quorum.Address) string {
	strs := make([]string, len(owners))
	for i, o := range owners {
		strs[i] = o.String()
	}
	return strings.Join(strs, ",")
}

func eventTypes(events []quorum.Event) []string {
	types := make([]string, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func assertEventTypes(t testing.TB, events []quorum.Event, want ...string) {
	t.Helper()
	got := eventTypes(events)
	if len(want) == 0 {
		want = []string{}
	}
	assert.Equal(t, want, got)
}
