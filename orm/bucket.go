/*
Package orm stores typed models in prefixed sections of the key value
store called buckets.

A bucket holds a single kind of model under the "<name>:" prefix, and
its sequences live next to it under "_s.<name>:". Models are encoded
with go-amino, so any plain struct of scalars, strings, byte slices and
nested structs can be stored without code generation.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	amino "github.com/tendermint/go-amino"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

	cdc = amino.NewCodec()
)

// Model is anything a bucket can store.
type Model interface {
	// Validate returns an error if the model must not be persisted.
	Validate() error
}

// Bucket reads and writes the models under one prefix. Modules wrap it
// in a type safe bucket of their own.
type Bucket struct {
	name   string
	prefix []byte
}

var _ quorum.QueryHandler = Bucket{}

// NewBucket panics if name is not 3 to 10 lower case letters or
// underscores.
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name %q", name))
	}
	return Bucket{name: name, prefix: []byte(name + ":")}
}

func (b Bucket) Name() string {
	return b.name
}

// Register serves the bucket under "/<path>", or "/<bucket name>" when
// path is empty.
func (b Bucket) Register(path string, r quorum.QueryRouter) {
	if path == "" {
		path = b.name
	}
	r.Register("/"+path, b)
}

// Query reads models by key or by key prefix. Keys are given without the
// bucket prefix while returned models carry the full store key.
func (b Bucket) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	return query(db, mod, b.DBKey(data))
}

// DBKey returns the store key of key. The result never aliases the
// bucket prefix.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	return append(append(out, b.prefix...), key...)
}

func (b Bucket) Has(db quorum.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// One decodes the model stored under key into dest, or fails with
// ErrNotFound.
func (b Bucket) One(db quorum.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(b.DBKey(key))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return Unmarshal(raw, dest)
}

// Save validates m and writes it under key.
func (b Bucket) Save(db quorum.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.Wrapf(err, "invalid %s", b.name)
	}
	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	return errors.Wrap(b.write(db, key, raw), "save")
}

func (b Bucket) write(db quorum.KVStore, key, raw []byte) error {
	var err error
	if raw == nil {
		err = db.Delete(b.DBKey(key))
	} else {
		err = db.Set(b.DBKey(key), raw)
	}
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes the model under key, or fails with ErrNotFound.
func (b Bucket) Delete(db quorum.KVStore, key []byte) error {
	switch ok, err := b.Has(db, key); {
	case err != nil:
		return err
	case !ok:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return errors.Wrap(b.write(db, key, nil), "delete")
}

// Keys lists the keys of every model in the bucket in ascending order,
// without the bucket prefix.
func (b Bucket) Keys(db quorum.ReadOnlyKVStore) ([][]byte, error) {
	models, err := queryPrefix(db, b.prefix)
	if err != nil {
		return nil, err
	}
	keys := make([][]byte, 0, len(models))
	for _, m := range models {
		keys = append(keys, m.Key[len(b.prefix):])
	}
	return keys, nil
}

// Sequence returns the named counter that belongs to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// Marshal encodes m with the package codec.
func Marshal(m Model) ([]byte, error) {
	raw, err := cdc.MarshalBinaryBare(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	return raw, nil
}

// Unmarshal decodes raw into dest with the package codec.
func Unmarshal(raw []byte, dest Model) error {
	if err := cdc.UnmarshalBinaryBare(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}
