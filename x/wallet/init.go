package wallet

import (
	"context"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

// ContractKind is the kind under which wallets are deployed on a host that
// routes calls to contracts.
const ContractKind = "wallet"

// Deployer is implemented by hosts that must learn about new contracts.
type Deployer interface {
	Deploy(db quorum.KVStore, addr quorum.Address, kind string) error
}

// Info is stored for every installed wallet.
type Info struct {
	Address quorum.Address `json:"address"`
}

var _ orm.Model = (*Info)(nil)

func (i *Info) Validate() error {
	return errors.Field("Address", i.Address.Validate(), "invalid wallet address")
}

var (
	infos    = orm.NewBucket("wallet")
	walletID = infos.Sequence("id")
)

// Condition returns the condition that owns the funds of the wallet with
// given sequence id.
func Condition(id []byte) quorum.Condition {
	return quorum.NewCondition(ContractKind, "seq", id)
}

// Install creates a wallet with a new address. Owners are given as a
// comma separated list of addresses.
func Install(ctx quorum.Context, db quorum.KVStore, host Host, owners string, required uint64) (*Wallet, error) {
	id, err := walletID.NextVal(db)
	if err != nil {
		return nil, errors.Wrap(err, "wallet id")
	}
	return InstallAt(ctx, db, host, Condition(id).Address(), owners, required)
}

// InstallAt creates a wallet with given address. It fails with
// ErrDuplicate if a wallet with that address already exists.
func InstallAt(ctx quorum.Context, db quorum.KVStore, host Host, addr quorum.Address, owners string, required uint64) (*Wallet, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "wallet address")
	}
	if ok, err := infos.Has(db, addr); err != nil {
		return nil, err
	} else if ok {
		return nil, errors.Wrapf(errors.ErrDuplicate, "wallet %s", addr)
	}

	addrs, err := ParseOwners(owners)
	if err != nil {
		return nil, err
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if err := checkRequirement(uint64(len(addrs)), required, conf.MaxOwners); err != nil {
		return nil, err
	}

	w := New(addr, host)
	for _, owner := range addrs {
		if err := w.registry.AddOwner(db, owner, conf.MaxOwners); err != nil {
			if ErrAlreadyOwner.Is(err) {
				return nil, errors.Wrap(ErrInvalidQuorum, err.Error())
			}
			return nil, err
		}
	}
	if err := w.registry.SetThreshold(db, required); err != nil {
		return nil, err
	}
	if err := infos.Save(db, addr, &Info{Address: addr}); err != nil {
		return nil, err
	}
	if d, ok := host.(Deployer); ok {
		if err := d.Deploy(db, addr, ContractKind); err != nil {
			return nil, errors.Wrap(err, "deploy")
		}
	}
	quorum.GetLogger(ctx).Info("wallet installed",
		"wallet", addr.String(), "owners", len(addrs), "required", required)
	return w, nil
}

func checkRequirement(owners, required, maxOwners uint64) error {
	if owners == 0 || owners > maxOwners || required == 0 || required > owners {
		return errors.Wrapf(ErrInvalidQuorum, "%d required of %d owners", required, owners)
	}
	return nil
}

// ParseOwners reads a comma separated list of addresses. Spaces around the
// addresses are ignored.
func ParseOwners(s string) ([]quorum.Address, error) {
	var owners []quorum.Address
	for i, chunk := range strings.Split(s, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		addr, err := quorum.ParseAddress(chunk)
		if err != nil {
			return nil, errors.Wrapf(err, "owner %d", i)
		}
		owners = append(owners, addr)
	}
	return owners, nil
}

// Load returns the installed wallet with given address.
func Load(db quorum.ReadOnlyKVStore, addr quorum.Address, host Host) (*Wallet, error) {
	var info Info
	if err := infos.One(db, addr, &info); err != nil {
		return nil, err
	}
	return New(info.Address, host), nil
}

// Wallets returns the addresses of all installed wallets.
func Wallets(db quorum.ReadOnlyKVStore) ([]quorum.Address, error) {
	keys, err := infos.Keys(db)
	if err != nil {
		return nil, err
	}
	addrs := make([]quorum.Address, len(keys))
	for i, k := range keys {
		addrs[i] = quorum.Address(k)
	}
	return addrs, nil
}

// Initializer fulfils the Initializer interface to install the wallets
// declared in the genesis file.
type Initializer struct {
	Host Host
}

var _ quorum.Initializer = (*Initializer)(nil)

// FromGenesis reads the "wallets" list. A wallet without an address gets a
// new one.
func (i *Initializer) FromGenesis(opts quorum.Options, db quorum.KVStore) error {
	var wallets []struct {
		Address  quorum.Address `json:"address"`
		Owners   string         `json:"owners"`
		Required uint64         `json:"required"`
	}
	if err := opts.ReadOptions("wallets", &wallets); err != nil {
		return err
	}
	ctx := context.Background()
	for n, g := range wallets {
		var err error
		if len(g.Address) == 0 {
			_, err = Install(ctx, db, i.Host, g.Owners, g.Required)
		} else {
			_, err = InstallAt(ctx, db, i.Host, g.Address, g.Owners, g.Required)
		}
		if err != nil {
			return errors.Wrapf(err, "wallet #%d", n)
		}
	}
	return nil
}
