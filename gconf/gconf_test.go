package gconf

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
	"github.com/iov-one/quorum/store"
)

type limits struct {
	MaxOwners int64
	Label     string
	Admin     quorum.Address
}

func (l *limits) Validate() error {
	if l.MaxOwners < 0 {
		return errors.Field("MaxOwners", errors.ErrInput, "negative")
	}
	if l.Admin != nil {
		return l.Admin.Validate()
	}
	return nil
}

func genesisOptions(t *testing.T, raw string) quorum.Options {
	t.Helper()
	var opts quorum.Options
	assert.Nil(t, json.Unmarshal([]byte(raw), &opts))
	return opts
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		conf    *limits
		wantErr *errors.Error
	}{
		"every field":     {conf: &limits{MaxOwners: 50, Label: "treasury", Admin: quorumtest.RandomAddr(t)}},
		"zero value":      {conf: &limits{}},
		"invalid admin":   {conf: &limits{Admin: quorum.Address("short")}, wantErr: errors.ErrInput},
		"negative limits": {conf: &limits{MaxOwners: -1}, wantErr: errors.ErrInput},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			db := store.MemStore()
			err := Save(db, "wallet", tc.conf)

			var got limits
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				assert.IsErr(t, errors.ErrNotFound, Load(db, "wallet", &got))
				return
			}
			assert.Nil(t, err)
			assert.Nil(t, Load(db, "wallet", &got))
			assert.Equal(t, tc.conf, &got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	opts := genesisOptions(t, `{"conf": {"wallet": {"MaxOwners": 7, "Label": "genesis"}}}`)
	db := store.MemStore()

	var conf limits
	assert.Nil(t, InitConfig(db, opts, "wallet", &conf))
	var got limits
	assert.Nil(t, Load(db, "wallet", &got))
	assert.Equal(t, limits{MaxOwners: 7, Label: "genesis"}, got)

	assert.IsErr(t, errors.ErrNotFound, InitConfig(db, opts, "token", &conf))

	bad := genesisOptions(t, `{"conf": {"wallet": {"MaxOwners": -2}}}`)
	assert.IsErr(t, errors.ErrInput, InitConfig(db, bad, "wallet", &conf))
}

func TestInitializer(t *testing.T) {
	opts := genesisOptions(t, `{"conf": {"wallet": {"MaxOwners": 3}}}`)
	init := Initializer{
		Defaults: map[string]func() Configuration{
			"wallet": func() Configuration { return &limits{MaxOwners: 50} },
			"token":  func() Configuration { return &limits{Label: "default"} },
		},
	}
	db := store.MemStore()
	assert.Nil(t, init.FromGenesis(opts, db))

	var wallet, token limits
	assert.Nil(t, Load(db, "wallet", &wallet))
	assert.Equal(t, int64(3), wallet.MaxOwners)
	assert.Nil(t, Load(db, "token", &token))
	assert.Equal(t, "default", token.Label)
}
