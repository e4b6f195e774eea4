package cash_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/wallet"
	"github.com/stretchr/testify/require"
)

type routes map[string]quorum.Handler

func (r routes) Handle(path string, h quorum.Handler) {
	r[path] = h
}

var auth = &quorumtest.CtxAuth{Key: "auth"}

func deliver(t *testing.T, r routes, db quorum.KVStore, signer quorum.Condition, msg quorum.Msg) (*quorum.DeliverResult, error) {
	t.Helper()
	h := r[msg.Path()]
	require.NotNil(t, h, "no handler for %s", msg.Path())

	ctx := auth.SetConditions(context.Background(), signer)
	tx := &quorumtest.Tx{Msg: msg}
	if _, err := h.Check(ctx, db, tx); err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

func TestSendHandler(t *testing.T) {
	alice := quorumtest.NewCondition()
	bob := quorumtest.NewCondition()

	ledger := cash.NewLedger()
	r := make(routes)
	cash.RegisterRoutes(r, auth, ledger)
	db := store.MemStore()
	require.NoError(t, ledger.Issue(db, alice.Address(), big.NewInt(100)))

	send := &cash.SendMsg{
		Source:      alice.Address(),
		Destination: bob.Address(),
		Amount:      big.NewInt(40),
	}
	_, err := deliver(t, r, db, bob, send)
	require.True(t, errors.ErrUnauthorized.Is(err), "want unauthorized, got %+v", err)

	res, err := deliver(t, r, db, alice, send)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	require.Equal(t, cash.EventTransfer, res.Events[0].Type)
	require.Equal(t, "40", res.Events[0].Attr("amount"))

	got, err := ledger.Balance(db, bob.Address())
	require.NoError(t, err)
	require.Equal(t, int64(40), got.Int64())

	send.Amount = big.NewInt(61)
	_, err = deliver(t, r, db, alice, send)
	require.True(t, errors.ErrInsufficientAmount.Is(err), "want insufficient amount, got %+v", err)
}

func TestSendToWalletIsDeposit(t *testing.T) {
	alice := quorumtest.NewCondition()

	ledger := cash.NewLedger()
	r := make(routes)
	cash.RegisterRoutes(r, auth, ledger)
	db := store.MemStore()
	require.NoError(t, ledger.Issue(db, alice.Address(), big.NewInt(10)))

	w, err := wallet.Install(context.Background(), db, ledger, alice.Address().String(), 1)
	require.NoError(t, err)

	res, err := deliver(t, r, db, alice, &cash.SendMsg{
		Source:      alice.Address(),
		Destination: w.Address(),
		Amount:      big.NewInt(3),
	})
	require.NoError(t, err)
	require.Len(t, res.Events, 2)
	require.Equal(t, wallet.EventDeposit, res.Events[0].Type)
	require.Equal(t, cash.EventTransfer, res.Events[1].Type)
}

func TestCallHandler(t *testing.T) {
	alice := quorumtest.NewCondition()
	contract := quorumtest.RandomAddr(t)

	ledger := cash.NewLedger()
	ledger.Register("echo", newEcho)
	r := make(routes)
	cash.RegisterRoutes(r, auth, ledger)
	db := store.MemStore()

	call := &cash.CallMsg{
		Source:   alice.Address(),
		Contract: contract,
		Method:   "ping",
	}
	_, err := deliver(t, r, db, alice, call)
	require.True(t, errors.ErrNotFound.Is(err), "want not found, got %+v", err)

	require.NoError(t, ledger.Deploy(db, contract, "echo"))
	res, err := deliver(t, r, db, alice, call)
	require.NoError(t, err)
	require.Len(t, res.Events, 1)
	require.Equal(t, cash.EventCall, res.Events[0].Type)
	require.Equal(t, "ping", res.Events[0].Attr("method"))
	require.Equal(t, "0", res.Events[0].Attr("amount"))

	stored, err := db.Get(append([]byte("echo:"), contract...))
	require.NoError(t, err)
	require.Equal(t, "ping", string(stored))

	call.Method = "fail"
	_, err = deliver(t, r, db, alice, call)
	require.True(t, errors.ErrState.Is(err), "want state error, got %+v", err)
}
