package token_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/token"
	"github.com/iov-one/quorum/x/wallet"
)

func newLedger() *cash.Ledger {
	l := cash.NewLedger()
	l.Register(token.ContractKind, token.Factory)
	return l
}

func balanceOf(t testing.TB, tok *token.Token, db quorum.ReadOnlyKVStore, holder quorum.Address) string {
	t.Helper()
	b, err := tok.BalanceOf(db, holder)
	assert.Nil(t, err)
	return b.String()
}

func TestInstall(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	l := newLedger()
	owner := quorumtest.RandomAddr(t)

	tok, err := token.Install(ctx, db, l, owner, "SampleToken", "MST", 18, big.NewInt(1000))
	assert.Nil(t, err)
	assert.Equal(t, true, l.IsContract(db, tok.Address()))

	supply, err := tok.TotalSupply(db)
	assert.Nil(t, err)
	assert.Equal(t, "1000000000000000000000", supply.String())
	assert.Equal(t, supply.String(), balanceOf(t, tok, db, owner))

	info, err := tok.Info(db)
	assert.Nil(t, err)
	assert.Equal(t, "SampleToken", info.Name)
	assert.Equal(t, "MST", info.Symbol)
	assert.Equal(t, uint32(18), info.Decimals)

	other, err := token.Install(ctx, db, l, owner, "Other Token", "OTH", 0, big.NewInt(7))
	assert.Nil(t, err)
	if other.Address().Equals(tok.Address()) {
		t.Fatal("two tokens installed at the same address")
	}
	assert.Equal(t, "7", balanceOf(t, other, db, owner))

	_, err = token.InstallAt(ctx, db, l, tok.Address(), owner, "SampleToken", "MST", 18, big.NewInt(1))
	assert.IsErr(t, errors.ErrDuplicate, err)
}

func TestInstallErrors(t *testing.T) {
	owner := quorumtest.RandomAddr(t)

	cases := map[string]struct {
		name     string
		symbol   string
		decimals uint32
		supply   *big.Int
		wantErr  *errors.Error
	}{
		"too many decimals": {
			name: "SampleToken", symbol: "MST", decimals: 19, supply: big.NewInt(1),
			wantErr: token.ErrInvalidDecimals,
		},
		"lowercase symbol": {
			name: "SampleToken", symbol: "mst", supply: big.NewInt(1),
			wantErr: token.ErrInvalidSymbol,
		},
		"short name": {
			name: "ST", symbol: "MST", supply: big.NewInt(1),
			wantErr: token.ErrInvalidTokenName,
		},
		"negative supply": {
			name: "SampleToken", symbol: "MST", supply: big.NewInt(-1),
			wantErr: errors.ErrAmount,
		},
		"no supply": {
			name: "SampleToken", symbol: "MST",
			wantErr: errors.ErrAmount,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			_, err := token.Install(context.Background(), db, newLedger(), owner, tc.name, tc.symbol, tc.decimals, tc.supply)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestTransfer(t *testing.T) {
	ctx, events := quorum.WithEventBuffer(context.Background())
	db := store.MemStore()
	l := newLedger()
	alice, bob := quorumtest.RandomAddr(t), quorumtest.RandomAddr(t)

	tok, err := token.Install(ctx, db, l, alice, "SampleToken", "MST", 0, big.NewInt(100))
	assert.Nil(t, err)

	args := wallet.Params{
		wallet.AddressParam("_to", bob),
		wallet.IntParam("_value", big.NewInt(30)),
	}
	assert.Nil(t, tok.Invoke(ctx, db, alice, token.MethodTransfer, args, new(big.Int)))
	assert.Equal(t, "70", balanceOf(t, tok, db, alice))
	assert.Equal(t, "30", balanceOf(t, tok, db, bob))

	evs := events.Events()
	assert.Equal(t, 1, len(evs))
	assert.Equal(t, token.EventTransfer, evs[0].Type)
	assert.Equal(t, tok.Address().String(), evs[0].Attr("token"))
	assert.Equal(t, alice.String(), evs[0].Attr("from"))
	assert.Equal(t, bob.String(), evs[0].Attr("to"))
	assert.Equal(t, "30", evs[0].Attr("value"))
	assert.Equal(t, "None", evs[0].Attr("data"))

	// Bob owns less than he tries to send.
	args = wallet.Params{
		wallet.AddressParam("_to", alice),
		wallet.IntParam("_value", big.NewInt(31)),
		wallet.BytesParam("_data", []byte("x")),
	}
	err = tok.Invoke(ctx, db, bob, token.MethodTransfer, args, new(big.Int))
	assert.IsErr(t, token.ErrOutOfBalance, err)
	assert.Equal(t, "30", balanceOf(t, tok, db, bob))

	err = tok.Transfer(ctx, db, alice, bob, big.NewInt(-1), nil)
	assert.IsErr(t, errors.ErrAmount, err)

	err = tok.Invoke(ctx, db, alice, token.MethodTransfer, wallet.Params{wallet.IntParam("_value", big.NewInt(1))}, new(big.Int))
	assert.IsErr(t, wallet.ErrMalformedParams, err)

	err = tok.Invoke(ctx, db, alice, "burn", nil, new(big.Int))
	assert.IsErr(t, token.ErrUnknownMethod, err)

	// The fallback accepts anything.
	assert.Nil(t, tok.Invoke(ctx, db, alice, "", nil, big.NewInt(5)))

	// Transferring on behalf of a token that was never installed fails.
	ghost := token.New(quorumtest.RandomAddr(t), l)
	err = ghost.Transfer(ctx, db, alice, bob, big.NewInt(1), nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRevertCheck(t *testing.T) {
	ctx := context.Background()
	db := store.MemStore()
	alice, bob := quorumtest.RandomAddr(t), quorumtest.RandomAddr(t)

	tok, err := token.Install(ctx, db, newLedger(), alice, "SampleToken", "MST", 0, big.NewInt(10))
	assert.Nil(t, err)

	cache := db.CacheWrap()
	args := wallet.Params{
		wallet.AddressParam("_to", bob),
		wallet.IntParam("_value", big.NewInt(3)),
	}
	err = tok.Invoke(ctx, cache, alice, token.MethodRevertCheck, args, new(big.Int))
	assert.IsErr(t, errors.ErrState, err)
	cache.Discard()

	assert.Equal(t, "0", balanceOf(t, tok, db, bob))
	assert.Equal(t, "10", balanceOf(t, tok, db, alice))
}

// refusing rejects every token it is sent.
type refusing struct{}

func (refusing) Invoke(ctx quorum.Context, db quorum.KVStore, sender quorum.Address, method string, args wallet.Params, amount *big.Int) error {
	return errors.Wrapf(errors.ErrUnauthorized, "refusing %q", method)
}

func TestTransferToContract(t *testing.T) {
	ctx, events := quorum.WithEventBuffer(context.Background())
	db := store.MemStore()
	l := newLedger()
	l.Register("refusing", func(quorum.Address, wallet.Host) wallet.Invoker { return refusing{} })

	alice := quorumtest.RandomAddr(t)
	w, err := wallet.Install(ctx, db, l, alice.String(), 1)
	assert.Nil(t, err)
	tok, err := token.Install(ctx, db, l, alice, "SampleToken", "MST", 0, big.NewInt(10))
	assert.Nil(t, err)

	assert.Nil(t, tok.Transfer(ctx, db, alice, w.Address(), big.NewInt(4), []byte("hi")))
	assert.Equal(t, "4", balanceOf(t, tok, db, w.Address()))

	evs := events.Events()
	assert.Equal(t, 2, len(evs))
	assert.Equal(t, wallet.EventDepositToken, evs[0].Type)
	assert.Equal(t, tok.Address().String(), evs[0].Attr("token"))
	assert.Equal(t, alice.String(), evs[0].Attr("sender"))
	assert.Equal(t, "4", evs[0].Attr("amount"))
	assert.Equal(t, "0x6869", evs[0].Attr("data"))
	assert.Equal(t, token.EventTransfer, evs[1].Type)

	wall := quorumtest.RandomAddr(t)
	assert.Nil(t, l.Deploy(db, wall, "refusing"))
	cache := db.CacheWrap()
	err = tok.Transfer(ctx, cache, alice, wall, big.NewInt(1), nil)
	assert.IsErr(t, errors.ErrUnauthorized, err)
	cache.Discard()
	assert.Equal(t, "0", balanceOf(t, tok, db, wall))
	assert.Equal(t, "6", balanceOf(t, tok, db, alice))
}

func TestWalletSpendsTokens(t *testing.T) {
	ctx, events := quorum.WithEventBuffer(context.Background())
	db := store.MemStore()
	l := newLedger()

	alice, bob, payee := quorumtest.RandomAddr(t), quorumtest.RandomAddr(t), quorumtest.RandomAddr(t)
	w, err := wallet.Install(ctx, db, l, alice.String()+","+bob.String(), 2)
	assert.Nil(t, err)
	tok, err := token.Install(ctx, db, l, w.Address(), "SampleToken", "MST", 0, big.NewInt(50))
	assert.Nil(t, err)

	args := wallet.Params{
		wallet.AddressParam("_to", payee),
		wallet.IntParam("_value", big.NewInt(20)),
	}
	id, err := w.Submit(ctx, db, alice, tok.Address(), token.MethodTransfer, args, new(big.Int), "pay in tokens")
	assert.Nil(t, err)
	assert.Equal(t, "0", balanceOf(t, tok, db, payee))

	assert.Nil(t, w.Confirm(ctx, db, bob, id))
	assert.Equal(t, "20", balanceOf(t, tok, db, payee))
	assert.Equal(t, "30", balanceOf(t, tok, db, w.Address()))
	executed, err := w.IsExecuted(db, id)
	assert.Nil(t, err)
	assert.Equal(t, true, executed)

	// A reverted call leaves no trace but the failure.
	id, err = w.Submit(ctx, db, alice, tok.Address(), token.MethodRevertCheck, args, new(big.Int), "")
	assert.Nil(t, err)
	assert.Nil(t, w.Confirm(ctx, db, bob, id))
	assert.Equal(t, "20", balanceOf(t, tok, db, payee))
	executed, err = w.IsExecuted(db, id)
	assert.Nil(t, err)
	assert.Equal(t, false, executed)

	evs := events.Events()
	assert.Equal(t, wallet.EventExecutionFailure, evs[len(evs)-1].Type)
}
