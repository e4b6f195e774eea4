package wallet

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

func TestInstall(t *testing.T) {
	a, b, c := quorumtest.RandomAddr(t), quorumtest.RandomAddr(t), quorumtest.RandomAddr(t)
	many := make([]quorum.Address, 51)
	for i := range many {
		many[i] = quorumtest.RandomAddr(t)
	}

	cases := map[string]struct {
		owners   string
		required uint64
		want     []quorum.Address
		wantErr  *errors.Error
	}{
		"single owner": {
			owners:   a.String(),
			required: 1,
			want:     []quorum.Address{a},
		},
		"spaces and empty entries": {
			owners:   " " + a.String() + " ,, 0x" + b.String() + ",",
			required: 2,
			want:     []quorum.Address{a, b},
		},
		"no owners": {
			owners:   "",
			required: 1,
			wantErr:  ErrInvalidQuorum,
		},
		"nothing required": {
			owners:   joinOwners([]quorum.Address{a, b}),
			required: 0,
			wantErr:  ErrInvalidQuorum,
		},
		"more required than owners": {
			owners:   joinOwners([]quorum.Address{a, b, c}),
			required: 4,
			wantErr:  ErrInvalidQuorum,
		},
		"duplicated owner": {
			owners:   joinOwners([]quorum.Address{a, b, a}),
			required: 1,
			wantErr:  ErrInvalidQuorum,
		},
		"too many owners": {
			owners:   joinOwners(many),
			required: 1,
			wantErr:  ErrInvalidQuorum,
		},
		"broken address": {
			owners:   a.String() + ",zz",
			required: 1,
			wantErr:  errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			host := newTestHost()
			w, err := Install(context.Background(), db, host, tc.owners, tc.required)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}

			owners, err := w.Owners(db, 0, 50)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, owners)
			required, err := w.Requirement(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.required, required)
			assert.Equal(t, true, host.IsContract(db, w.Address()))

			loaded, err := Load(db, w.Address(), host)
			assert.Nil(t, err)
			assert.Equal(t, w.Address(), loaded.Address())
		})
	}
}

func TestInstallCreatesDistinctWallets(t *testing.T) {
	db := store.MemStore()
	ctx := context.Background()
	owner := quorumtest.RandomAddr(t)

	first, err := Install(ctx, db, nil, owner.String(), 1)
	assert.Nil(t, err)
	second, err := Install(ctx, db, nil, owner.String(), 1)
	assert.Nil(t, err)
	if first.Address().Equals(second.Address()) {
		t.Fatal("two wallets share an address")
	}

	_, err = InstallAt(ctx, db, nil, first.Address(), owner.String(), 1)
	assert.IsErr(t, errors.ErrDuplicate, err)

	all, err := Wallets(db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(all))

	_, err = Load(db, quorumtest.RandomAddr(t), nil)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestGenesisInitializer(t *testing.T) {
	a, b := quorumtest.RandomAddr(t), quorumtest.RandomAddr(t)
	fixed := quorumtest.RandomAddr(t)

	genesis := `{"wallets": [
		{"address": "` + fixed.String() + `", "owners": "` + a.String() + `,` + b.String() + `", "required": 2},
		{"owners": "` + b.String() + `", "required": 1}
	]}`
	var opts quorum.Options
	assert.Nil(t, json.Unmarshal([]byte(genesis), &opts))

	db := store.MemStore()
	var ini Initializer
	assert.Nil(t, ini.FromGenesis(opts, db))

	w, err := Load(db, fixed, nil)
	assert.Nil(t, err)
	owners, err := w.Owners(db, 0, 10)
	assert.Nil(t, err)
	assert.Equal(t, []quorum.Address{a, b}, owners)

	all, err := Wallets(db)
	assert.Nil(t, err)
	assert.Equal(t, 2, len(all))

	broken := strings.Replace(genesis, `"required": 1`, `"required": 2`, 1)
	assert.Nil(t, json.Unmarshal([]byte(broken), &opts))
	err = ini.FromGenesis(opts, store.MemStore())
	assert.IsErr(t, ErrInvalidQuorum, err)
}
