package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Genesis holds the fields of a tendermint genesis file the application
// reads. Everything else in the file is ignored.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

func loadGenesis(path string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "decode genesis %s: %s", path, err)
	}
	return gen, nil
}

// ChainInitializers returns an initializer running inits in order. The
// first error stops the chain.
func ChainInitializers(inits ...quorum.Initializer) quorum.Initializer {
	return initializers(inits)
}

type initializers []quorum.Initializer

func (all initializers) FromGenesis(opts quorum.Options, kv quorum.KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, kv); err != nil {
			return err
		}
	}
	return nil
}
