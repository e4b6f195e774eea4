package orm

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// RegisterQuery serves the whole store under "/". Keys are read as they
// are stored, bucket prefix included.
func RegisterQuery(qr quorum.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

func (rawQuery) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	return query(db, mod, data)
}

// query answers a key or a prefix lookup. The key is already fully
// qualified.
func query(db quorum.ReadOnlyKVStore, mod string, key []byte) ([]quorum.Model, error) {
	switch mod {
	case quorum.KeyQueryMod:
		value, err := db.Get(key)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		if value == nil {
			return nil, nil
		}
		return []quorum.Model{{Key: key, Value: value}}, nil
	case quorum.PrefixQueryMod:
		return queryPrefix(db, key)
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
}

// ConsumeIterator drains itr into a slice and closes it.
func ConsumeIterator(itr quorum.Iterator) ([]quorum.Model, error) {
	defer itr.Close()

	var models []quorum.Model
	for itr.Valid() {
		models = append(models, quorum.Model{Key: itr.Key(), Value: itr.Value()})
		if err := itr.Next(); err != nil {
			return nil, errors.Wrap(err, "iterator")
		}
	}
	return models, nil
}

func queryPrefix(db quorum.ReadOnlyKVStore, prefix []byte) ([]quorum.Model, error) {
	itr, err := db.Iterator(prefixRange(prefix))
	if err != nil {
		return nil, errors.Wrap(err, "iterator")
	}
	return ConsumeIterator(itr)
}

// prefixRange returns the [start, end) range holding every key that
// starts with prefix. A nil end is unbounded, which is the case for an
// empty prefix and for a prefix made only of 0xff bytes.
func prefixRange(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	end = append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return prefix, end
		}
	}
	return prefix, nil
}
