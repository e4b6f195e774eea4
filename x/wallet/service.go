package wallet

import (
	"math/big"
	"sync"

	"github.com/iov-one/quorum"
)

// Service runs wallet operations against a store from many goroutines.
//
// Operations are serialized. Each one works on a cache of the store that
// is written back only when the operation succeeds, so a failed operation
// leaves no trace. Successful operations return the events they emitted.
type Service struct {
	mu   sync.Mutex
	db   quorum.CacheableKVStore
	host Host
}

func NewService(db quorum.CacheableKVStore, host Host) *Service {
	return &Service{db: db, host: host}
}

// Update runs fn as a single unit of work.
func (s *Service) Update(ctx quorum.Context, fn func(ctx quorum.Context, db quorum.KVStore) error) ([]quorum.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cache := s.db.CacheWrap()
	ctx, events := quorum.WithEventBuffer(ctx)
	if err := fn(ctx, cache); err != nil {
		cache.Discard()
		return nil, err
	}
	if err := cache.Write(); err != nil {
		return nil, err
	}
	return events.Events(), nil
}

// View runs fn with read access to the store.
func (s *Service) View(fn func(db quorum.ReadOnlyKVStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.db)
}

func (s *Service) Install(ctx quorum.Context, owners string, required uint64) (quorum.Address, []quorum.Event, error) {
	var addr quorum.Address
	events, err := s.Update(ctx, func(ctx quorum.Context, db quorum.KVStore) error {
		w, err := Install(ctx, db, s.host, owners, required)
		if err == nil {
			addr = w.Address()
		}
		return err
	})
	return addr, events, err
}

func (s *Service) Submit(
	ctx quorum.Context,
	wallet, caller, destination quorum.Address,
	method string,
	params Params,
	value *big.Int,
	description string,
) (uint64, []quorum.Event, error) {
	var id uint64
	events, err := s.Update(ctx, func(ctx quorum.Context, db quorum.KVStore) error {
		w, err := Load(db, wallet, s.host)
		if err != nil {
			return err
		}
		id, err = w.Submit(ctx, db, caller, destination, method, params, value, description)
		return err
	})
	return id, events, err
}

func (s *Service) Confirm(ctx quorum.Context, wallet, caller quorum.Address, id uint64) ([]quorum.Event, error) {
	return s.Update(ctx, func(ctx quorum.Context, db quorum.KVStore) error {
		w, err := Load(db, wallet, s.host)
		if err != nil {
			return err
		}
		return w.Confirm(ctx, db, caller, id)
	})
}

func (s *Service) Revoke(ctx quorum.Context, wallet, caller quorum.Address, id uint64) ([]quorum.Event, error) {
	return s.Update(ctx, func(ctx quorum.Context, db quorum.KVStore) error {
		w, err := Load(db, wallet, s.host)
		if err != nil {
			return err
		}
		return w.Revoke(ctx, db, caller, id)
	})
}

func (s *Service) Cancel(ctx quorum.Context, wallet, caller quorum.Address, id uint64) ([]quorum.Event, error) {
	return s.Update(ctx, func(ctx quorum.Context, db quorum.KVStore) error {
		w, err := Load(db, wallet, s.host)
		if err != nil {
			return err
		}
		return w.Cancel(ctx, db, caller, id)
	})
}
