package wallet

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
)

// PackageName is the name the configuration is stored under.
const PackageName = "wallet"

// Configuration holds the limits shared by all wallets of a chain.
type Configuration struct {
	// MaxOwners is the upper bound of owners a single wallet can have.
	MaxOwners uint64 `json:"max_owners"`
	// MaxPageSize is the largest count accepted by paginated queries.
	MaxPageSize uint64 `json:"max_page_size"`
	// Encoding limits of a transaction record, in bytes.
	MaxMethodLength      int `json:"max_method_length"`
	MaxParamsLength      int `json:"max_params_length"`
	MaxDescriptionLength int `json:"max_description_length"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration returns the configuration used when the genesis
// did not declare one.
func DefaultConfiguration() Configuration {
	return Configuration{
		MaxOwners:            50,
		MaxPageSize:          50,
		MaxMethodLength:      128,
		MaxParamsLength:      4096,
		MaxDescriptionLength: 1024,
	}
}

func (c Configuration) Validate() error {
	var errs error
	if c.MaxOwners == 0 {
		errs = errors.AppendField(errs, "MaxOwners", errors.ErrEmpty)
	}
	if c.MaxPageSize == 0 {
		errs = errors.AppendField(errs, "MaxPageSize", errors.ErrEmpty)
	}
	if c.MaxMethodLength <= 0 {
		errs = errors.AppendField(errs, "MaxMethodLength", errors.ErrEmpty)
	}
	if c.MaxParamsLength <= 0 {
		errs = errors.AppendField(errs, "MaxParamsLength", errors.ErrEmpty)
	}
	if c.MaxDescriptionLength <= 0 {
		errs = errors.AppendField(errs, "MaxDescriptionLength", errors.ErrEmpty)
	}
	return errs
}

// Limits returns the record encoding limits.
func (c Configuration) Limits() Limits {
	return Limits{
		Method:      c.MaxMethodLength,
		Params:      c.MaxParamsLength,
		Description: c.MaxDescriptionLength,
	}
}

// checkPage rejects page sizes above the configured maximum.
func (c Configuration) checkPage(count uint64) error {
	if count > c.MaxPageSize {
		return errors.Wrapf(ErrPageTooLarge, "%d > %d", count, c.MaxPageSize)
	}
	return nil
}

// loadConfiguration returns the configuration stored in the database, or
// the default one if none was saved.
func loadConfiguration(db quorum.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, PackageName, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "wallet configuration")
	}
}
