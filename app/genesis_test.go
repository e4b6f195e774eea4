package app

import (
	"context"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// secretKey is the app_state entry dummyInit copies into the store.
const secretKey = "dummy"

type dummyInit struct{}

func (dummyInit) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	var value string
	if err := opts.ReadOptions(secretKey, &value); err != nil {
		return err
	}
	return kv.Set([]byte(secretKey), []byte(value))
}

type countInit struct {
	called int
}

func (c *countInit) FromGenesis(quorum.Options, quorum.KVStore) error {
	c.called++
	return nil
}

func newTestStore() *StoreApp {
	return NewStoreApp("quorum-test", iavl.NewMemCommitStore(), quorum.NewQueryRouter(), context.Background())
}

func TestLoadGenesis(t *testing.T) {
	cases := map[string]struct {
		file        string
		wantReadErr bool
		wantInitErr bool
		wantChain   string
		wantCalls   int
		wantSecret  []byte
	}{
		"missing file": {
			file:        "testdata/missing.json",
			wantReadErr: true,
			wantInitErr: true,
		},
		"valid genesis": {
			file:       "testdata/genesis.json",
			wantChain:  "test-chain-67",
			wantCalls:  1,
			wantSecret: []byte("secret"),
		},
		// dummy holds a number, so the first initializer fails and the
		// second one never runs.
		"initializer fails": {
			file:        "testdata/bad_genesis.json",
			wantInitErr: true,
			wantChain:   "super-chain-22",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			gen, err := loadGenesis(tc.file)
			if tc.wantReadErr {
				assert.True(t, errors.ErrInput.Is(err))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.wantChain, gen.ChainID)

			counter := &countInit{}
			s := newTestStore()
			err = s.LoadGenesis(tc.file, ChainInitializers(dummyInit{}, counter))
			assert.Equal(t, tc.wantInitErr, err != nil, "%+v", err)
			assert.Equal(t, tc.wantChain, s.GetChainID())
			assert.Equal(t, tc.wantCalls, counter.called)

			secret, err := s.DeliverStore().Get([]byte(secretKey))
			require.NoError(t, err)
			assert.Equal(t, tc.wantSecret, secret)
		})
	}
}

func TestGenesisOnlyOnce(t *testing.T) {
	s := newTestStore()
	require.NoError(t, s.LoadGenesis("testdata/genesis.json", dummyInit{}))
	err := s.LoadGenesis("testdata/genesis.json", dummyInit{})
	assert.True(t, errors.ErrState.Is(err))

	// the stored chain id cannot be replaced either
	assert.Equal(t, "test-chain-67", mustLoadChainID(s.DeliverStore()))
	assert.Error(t, saveChainID(s.DeliverStore(), "other-chain"))
	assert.Error(t, saveChainID(s.CheckStore(), "bad"))
}
