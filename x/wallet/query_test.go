package wallet

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestTransactionQueries(t *testing.T) {
	f := newFixture(t, 2, 2)
	a, b := f.owners[0], f.owners[1]
	dest := quorumtest.RandomAddr(t)

	// 0 executed, 1 cancelled, 2 and 3 pending, 4 executed
	for i := 0; i < 5; i++ {
		f.submit(t, a, dest, "", nil, 0)
	}
	assert.Nil(t, f.wallet.Confirm(f.ctx, f.db, b, 0))
	assert.Nil(t, f.wallet.Revoke(f.ctx, f.db, a, 1))
	assert.Nil(t, f.wallet.Cancel(f.ctx, f.db, a, 1))
	assert.Nil(t, f.wallet.Confirm(f.ctx, f.db, b, 4))

	counts := map[string]struct {
		pending, executed bool
		want              uint64
	}{
		"all":      {pending: true, executed: true, want: 4},
		"pending":  {pending: true, want: 2},
		"executed": {executed: true, want: 2},
		"nothing":  {want: 0},
	}
	for testName, tc := range counts {
		t.Run("count "+testName, func(t *testing.T) {
			n, err := f.wallet.TransactionCount(f.db, tc.pending, tc.executed)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, n)
		})
	}

	pages := map[string]struct {
		offset, count     uint64
		pending, executed bool
		wantIDs           []uint64
		wantErr           *errors.Error
	}{
		"all of them":           {offset: 0, count: 10, pending: true, executed: true, wantIDs: []uint64{0, 2, 3, 4}},
		"window over cancelled": {offset: 1, count: 2, pending: true, executed: true, wantIDs: []uint64{2}},
		"pending window":        {offset: 0, count: 3, pending: true, wantIDs: []uint64{2}},
		"executed only":         {offset: 0, count: 10, executed: true, wantIDs: []uint64{0, 4}},
		"past the end":          {offset: 5, count: 10, pending: true, executed: true},
		"page too large":        {offset: 0, count: 51, pending: true, executed: true, wantErr: ErrPageTooLarge},
	}
	for testName, tc := range pages {
		t.Run("page "+testName, func(t *testing.T) {
			res, err := f.wallet.Transactions(f.db, tc.offset, tc.count, tc.pending, tc.executed)
			assert.IsErr(t, tc.wantErr, err)
			var ids []uint64
			for _, info := range res {
				ids = append(ids, info.ID)
			}
			assert.Equal(t, tc.wantIDs, ids)
		})
	}

	executed, err := f.wallet.IsExecuted(f.db, 0)
	assert.Nil(t, err)
	assert.Equal(t, true, executed)
	for _, id := range []uint64{1, 2, 99} {
		executed, err := f.wallet.IsExecuted(f.db, id)
		assert.Nil(t, err)
		assert.Equal(t, false, executed)
	}

	_, err = f.wallet.ConfirmationCount(f.db, 1)
	assert.IsErr(t, ErrNoSuchTransaction, err)
	_, err = f.wallet.Confirmations(f.db, 99, 0, 10)
	assert.IsErr(t, ErrNoSuchTransaction, err)

	// The default configuration allows pages of up to 50 entries.
	owners, err := f.wallet.Owners(f.db, 0, 50)
	assert.Nil(t, err)
	assert.Equal(t, []quorum.Address{a, b}, owners)
	_, err = f.wallet.Owners(f.db, 0, 51)
	assert.IsErr(t, ErrPageTooLarge, err)
	_, err = f.wallet.Confirmations(f.db, 0, 0, 51)
	assert.IsErr(t, ErrPageTooLarge, err)

	confirmed, err := f.wallet.Confirmations(f.db, 0, 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, []quorum.Address{a, b}, confirmed)
	confirmed, err = f.wallet.Confirmations(f.db, 2, 1, 1)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(confirmed))
}

func TestPageLimitFromConfiguration(t *testing.T) {
	f := newFixture(t, 3, 1)
	conf := DefaultConfiguration()
	conf.MaxPageSize = 2
	assert.Nil(t, gconf.Save(f.db, PackageName, &conf))

	_, err := f.wallet.Owners(f.db, 0, 3)
	assert.IsErr(t, ErrPageTooLarge, err)
	owners, err := f.wallet.Owners(f.db, 1, 2)
	assert.Nil(t, err)
	assert.Equal(t, f.owners[1:], owners)
}

func TestQueryHandlers(t *testing.T) {
	f := newFixture(t, 2, 2)
	a := f.owners[0]
	dest := quorumtest.RandomAddr(t)
	id := f.submit(t, a, dest, "transfer", Params{IntParam("_value", big.NewInt(9))}, 0)

	cases := map[string]struct {
		request QueryRequest
		want    interface{}
		wantErr *errors.Error
	}{
		"owner_count": {
			request: QueryRequest{Wallet: f.wallet.Address()},
			want:    uint64(2),
		},
		"requirement": {
			request: QueryRequest{Wallet: f.wallet.Address()},
			want:    uint64(2),
		},
		"is_owner": {
			request: QueryRequest{Wallet: f.wallet.Address(), Owner: dest},
			want:    false,
		},
		"confirmed_by": {
			request: QueryRequest{Wallet: f.wallet.Address(), ID: id, Owner: a},
			want:    true,
		},
		"confirmation_count": {
			request: QueryRequest{Wallet: f.wallet.Address(), ID: id},
			want:    uint64(1),
		},
		"executed": {
			request: QueryRequest{Wallet: f.wallet.Address(), ID: id},
			want:    false,
		},
		"transaction_count": {
			request: QueryRequest{Wallet: f.wallet.Address()},
			want:    uint64(1),
		},
		"confirmations": {
			request: QueryRequest{Wallet: f.wallet.Address(), ID: 7, Count: 5},
			wantErr: ErrNoSuchTransaction,
		},
		"owners": {
			request: QueryRequest{Wallet: dest, Count: 5},
			wantErr: errors.ErrNotFound,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			raw, err := json.Marshal(tc.request)
			assert.Nil(t, err)
			models, err := queries[name].Query(f.db, quorum.KeyQueryMod, raw)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			assert.Equal(t, 1, len(models))
			assert.Equal(t, []byte(f.wallet.Address()), models[0].Key)

			want, err := json.Marshal(tc.want)
			assert.Nil(t, err)
			assert.Equal(t, string(want), string(models[0].Value))
		})
	}
}

func TestQueryTransaction(t *testing.T) {
	f := newFixture(t, 1, 1)
	dest := quorumtest.RandomAddr(t)
	contract := &recordingContract{}
	f.host.contracts[string(dest)] = contract
	params := Params{AddressParam("_to", dest), BytesParam("_data", []byte{1})}
	f.submit(t, f.owners[0], dest, "transfer", params, 0)
	assertEventTypes(t, f.drain(), EventSubmission, EventConfirmation, "Called", EventExecution)
	assert.Equal(t, 1, len(contract.calls))

	raw, err := json.Marshal(QueryRequest{Wallet: f.wallet.Address(), Count: 10})
	assert.Nil(t, err)
	models, err := queries["transactions"].Query(f.db, quorum.KeyQueryMod, raw)
	assert.Nil(t, err)

	var infos []TransactionInfo
	assert.Nil(t, json.Unmarshal(models[0].Value, &infos))
	assert.Equal(t, 1, len(infos))
	assert.Equal(t, uint64(0), infos[0].ID)
	assert.Equal(t, "transfer", infos[0].Method)
	assert.Equal(t, true, infos[0].Executed)
	assert.Equal(t, true, params.Equals(infos[0].Params))

	// A call to an address that is not a contract cannot execute.
	other := quorumtest.RandomAddr(t)
	f.submit(t, f.owners[0], other, "transfer", params, 0)
	assertEventTypes(t, f.drain(), EventSubmission, EventConfirmation, EventExecutionFailure)
	models, err = queries["transactions"].Query(f.db, quorum.KeyQueryMod, raw)
	assert.Nil(t, err)
	infos = nil
	assert.Nil(t, json.Unmarshal(models[0].Value, &infos))
	assert.Equal(t, 2, len(infos))
	assert.Equal(t, uint64(1), infos[1].ID)
	assert.Equal(t, false, infos[1].Executed)

	_, err = queries["transaction"].Query(f.db, "prefix", raw)
	assert.IsErr(t, errors.ErrInput, err)
}
