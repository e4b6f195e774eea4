/*
Package gconf keeps the on chain configuration of each extension.

A package configuration is a single JSON object stored under
"_c:<package>". It is read from the "conf" section of the genesis
app_state and validated before every write. An extension that cannot
read its configuration falls back to its defaults or rejects the
message.
*/
package gconf

import (
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Configuration is a package configuration. Only exported fields are
// stored.
type Configuration interface {
	Validate() error
}

// Key returns the store key of the configuration of pkg.
func Key(pkg string) []byte {
	return []byte("_c:" + pkg)
}

// Save validates conf and replaces the configuration of pkg.
func Save(db quorum.KVStore, pkg string, conf Configuration) error {
	if err := conf.Validate(); err != nil {
		return errors.Wrapf(err, "%s configuration", pkg)
	}
	raw, err := json.Marshal(conf)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "encode %s configuration: %s", pkg, err)
	}
	if err := db.Set(Key(pkg), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Load decodes the configuration of pkg into dst. It fails with
// ErrNotFound if none was saved.
func Load(db quorum.ReadOnlyKVStore, pkg string, dst Configuration) error {
	raw, err := db.Get(Key(pkg))
	switch {
	case err != nil:
		return errors.Wrap(errors.ErrDatabase, err.Error())
	case raw == nil:
		return errors.Wrapf(errors.ErrNotFound, "%s configuration", pkg)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrModel, "decode %s configuration: %s", pkg, err)
	}
	return nil
}

// InitConfig reads opts["conf"][pkg] into conf and saves it. It fails
// with ErrNotFound if the genesis has no entry for pkg.
func InitConfig(db quorum.KVStore, opts quorum.Options, pkg string, conf Configuration) error {
	var section quorum.Options
	if err := opts.ReadOptions("conf", &section); err != nil {
		return errors.Wrap(err, "genesis conf")
	}
	if _, ok := section[pkg]; !ok {
		return errors.Wrapf(errors.ErrNotFound, "no %s configuration in genesis", pkg)
	}
	if err := section.ReadOptions(pkg, conf); err != nil {
		return errors.Wrapf(err, "genesis %s configuration", pkg)
	}
	return Save(db, pkg, conf)
}

// Initializer saves the configuration of every package in Defaults at
// genesis. A package without a genesis entry gets its default saved, so
// queries always see the configuration in effect.
type Initializer struct {
	Defaults map[string]func() Configuration
}

var _ quorum.Initializer = Initializer{}

func (i Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	for pkg, newConf := range i.Defaults {
		conf := newConf()
		err := InitConfig(db, opts, pkg, conf)
		if errors.ErrNotFound.Is(err) {
			err = Save(db, pkg, conf)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
