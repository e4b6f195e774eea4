package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// CommitStore keeps two cache layers over the committed state: one the
// block is delivered into and one for CheckTx. Commit writes the first
// and drops the second.
type CommitStore struct {
	committed quorum.CommitKVStore
	deliver   quorum.KVCacheWrap
	check     quorum.KVCacheWrap
}

// NewCommitStore loads the latest version of db and panics if it cannot.
func NewCommitStore(db quorum.CommitKVStore) *CommitStore {
	if err := db.LoadLatestVersion(); err != nil {
		panic(err)
	}
	cs := &CommitStore{committed: db}
	cs.reset()
	return cs
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the last committed version.
func (cs *CommitStore) CommitInfo() (quorum.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists what was delivered since the last commit and opens
// fresh layers on the new version.
func (cs *CommitStore) Commit() (quorum.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return quorum.CommitID{}, errors.Wrap(err, "write deliver cache")
	}
	cs.check.Discard()
	id, err := cs.committed.Commit()
	if err != nil {
		return id, err
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() quorum.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() quorum.CacheableKVStore {
	return cs.deliver
}

// chainIDKey lives under _q:, the prefix of application internal data.
var chainIDKey = []byte("_q:chainID")

func mustLoadChainID(db quorum.ReadOnlyKVStore) string {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// saveChainID stores the chain id once. It cannot be changed later.
func saveChainID(db quorum.KVStore, chainID string) error {
	if !quorum.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch exists, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id is set at genesis only")
	}
	return errors.Wrap(db.Set(chainIDKey, []byte(chainID)), "save chain id")
}
