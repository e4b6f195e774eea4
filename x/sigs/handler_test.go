package sigs

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/store"
	"github.com/stretchr/testify/require"
)

type routes map[string]quorum.Handler

func (r routes) Handle(path string, h quorum.Handler) {
	r[path] = h
}

func TestBumpSequence(t *testing.T) {
	cases := map[string]struct {
		initSeq   int64
		increment uint32
		wantSeq   int64
		noUser    bool
		wantErr   *errors.Error
	}{
		"increment by one": {
			initSeq: 4, increment: 1, wantSeq: 5,
		},
		"increment by many": {
			initSeq: 4, increment: 500, wantSeq: 504,
		},
		"unknown signer": {
			noUser: true, increment: 1, wantErr: errors.ErrNotFound,
		},
		"overflow": {
			initSeq: maxSequenceValue - 10, increment: 20, wantErr: errors.ErrOverflow,
		},
		"zero increment": {
			initSeq: 1, increment: 0, wantErr: errors.ErrMsg,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			priv := crypto.GenPrivKeyEd25519()
			pub := priv.PublicKey()
			if !tc.noUser {
				require.NoError(t, saveUser(db, &UserData{Pubkey: pub, Sequence: tc.initSeq}))
			}

			auth := &quorumtest.CtxAuth{Key: "auth"}
			r := make(routes)
			RegisterRoutes(r, auth)
			h := r[pathBumpSequenceMsg]

			ctx := auth.SetConditions(context.Background(), pub.Condition())
			tx := &quorumtest.Tx{Msg: &BumpSequenceMsg{Increment: tc.increment}}

			_, err := h.Check(ctx, db, tx)
			if tc.wantErr != nil {
				require.True(t, tc.wantErr.Is(err), "want %s, got %+v", tc.wantErr, err)
				return
			}
			require.NoError(t, err)
			_, err = h.Deliver(ctx, db, tx)
			require.NoError(t, err)

			// The sequence of the signature of this transaction is
			// incremented by the decorator, not the handler.
			seq, err := NextNonce(db, pub.Address())
			require.NoError(t, err)
			require.Equal(t, tc.wantSeq-1, seq)
		})
	}
}

func TestBumpSequenceRequiresSigner(t *testing.T) {
	auth := &quorumtest.CtxAuth{Key: "auth"}
	r := make(routes)
	RegisterRoutes(r, auth)

	tx := &quorumtest.Tx{Msg: &BumpSequenceMsg{Increment: 1}}
	_, err := r[pathBumpSequenceMsg].Deliver(context.Background(), store.MemStore(), tx)
	require.True(t, errors.ErrUnauthorized.Is(err))
}
