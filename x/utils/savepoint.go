package utils

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Savepoint runs the rest of the stack on a cache of the store and only
// writes the cache back if no error is returned. It is off for both
// phases until enabled with OnCheck or OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ quorum.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy that isolates CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a copy that isolates DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (res *quorum.CheckResult, err error) {
	err = s.run(s.onCheck, db, func(db quorum.KVStore) error {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (res *quorum.DeliverResult, err error) {
	err = s.run(s.onDeliver, db, func(db quorum.KVStore) error {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// run calls fn on a cache of db when enabled is set and db can be
// cached, and on db itself otherwise.
func (Savepoint) run(enabled bool, db quorum.KVStore, fn func(quorum.KVStore) error) error {
	cacheable, ok := db.(quorum.CacheableKVStore)
	if !enabled || !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
