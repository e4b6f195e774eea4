package token

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// PackageName is the name the configuration is stored under.
const PackageName = "token"

// Configuration names the only address allowed to issue new tokens. No
// issuer means tokens can only be created at genesis.
type Configuration struct {
	Issuer quorum.Address `json:"issuer"`
}

var _ gconf.Configuration = (*Configuration)(nil)

func (c *Configuration) Validate() error {
	if len(c.Issuer) == 0 {
		return nil
	}
	return errors.Field("Issuer", c.Issuer.Validate(), "invalid issuer")
}

func loadConfiguration(db quorum.ReadOnlyKVStore) (*Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, PackageName, &conf); {
	case err == nil:
		return &conf, nil
	case errors.ErrNotFound.Is(err):
		return &conf, nil
	default:
		return nil, errors.Wrap(err, "token configuration")
	}
}
