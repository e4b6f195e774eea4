package wallet

import (
	"encoding/binary"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// keyspace builds the database keys of a single wallet. All keys share the
// prefix wlt:<address>: so that many wallets can live in one store.
type keyspace []byte

func newKeyspace(addr quorum.Address) keyspace {
	k := make([]byte, 0, 4+len(addr)+1)
	k = append(k, "wlt:"...)
	k = append(k, addr...)
	return append(k, ':')
}

func (k keyspace) key(parts ...[]byte) []byte {
	n := len(k)
	for _, p := range parts {
		n += len(p)
	}
	out := make([]byte, 0, n)
	out = append(out, k...)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func (k keyspace) required() []byte {
	return k.key([]byte("required"))
}

func (k keyspace) ownerCount() []byte {
	return k.key([]byte("owners:n"))
}

func (k keyspace) ownerAt(i uint64) []byte {
	return k.key([]byte("owners:i:"), encodeUint(i))
}

func (k keyspace) ownerIndex(owner quorum.Address) []byte {
	return k.key([]byte("owners:a:"), owner)
}

func (k keyspace) transaction(id uint64) []byte {
	return k.key([]byte("tx:"), encodeUint(id))
}

func (k keyspace) confirmations(id uint64) []byte {
	return k.key([]byte("conf:"), encodeUint(id))
}

func (k keyspace) confirmation(id uint64, owner quorum.Address) []byte {
	return k.key([]byte("conf:"), encodeUint(id), owner)
}

func encodeUint(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// readUint returns the 8 byte big endian number stored under key. A
// missing value is zero.
func readUint(db quorum.ReadOnlyKVStore, key []byte) (uint64, error) {
	raw, err := db.Get(key)
	if err != nil {
		return 0, errors.Wrap(err, "cannot read")
	}
	if raw == nil {
		return 0, nil
	}
	if len(raw) != 8 {
		return 0, errors.Wrapf(errors.ErrModel, "want 8 bytes, got %d", len(raw))
	}
	return binary.BigEndian.Uint64(raw), nil
}
