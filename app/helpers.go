package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/store"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore is a read only view of the committed state of an application,
// read through ABCI queries as a client would. The application must
// serve the raw store query under "/".
type ABCIStore struct {
	app abci.Application
}

var _ quorum.ReadOnlyKVStore = (*ABCIStore)(nil)

func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// models runs a raw store query and pairs the returned keys and values.
func (a *ABCIStore) models(path string, data []byte) ([]quorum.Model, error) {
	res := a.app.Query(abci.RequestQuery{Path: path, Data: data})
	if res.Code != errors.SuccessABCICode {
		return nil, errors.Wrapf(errors.ErrDatabase, "query %s: code %d: %s", path, res.Code, res.Log)
	}
	var keys, values ResultSet
	if err := keys.Unmarshal(res.Key); err != nil {
		return nil, errors.Wrap(err, "query keys")
	}
	if err := values.Unmarshal(res.Value); err != nil {
		return nil, errors.Wrap(err, "query values")
	}
	return JoinResults(&keys, &values)
}

func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	found, err := a.models("/", key)
	if err != nil {
		return nil, err
	}
	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0].Value, nil
	}
	return nil, errors.Wrapf(errors.ErrState, "%d values under one key", len(found))
}

func (a *ABCIStore) Has(key []byte) (bool, error) {
	v, err := a.Get(key)
	return v != nil, err
}

// Iterator only supports the whole store, start and end must be nil.
func (a *ABCIStore) Iterator(start, end []byte) (quorum.Iterator, error) {
	if start != nil || end != nil {
		return nil, errors.Wrap(errors.ErrInput, "only the full range can be iterated")
	}
	all, err := a.models("/?prefix", nil)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(all), nil
}

func (a *ABCIStore) ReverseIterator(start, end []byte) (quorum.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iteration is not supported")
}
