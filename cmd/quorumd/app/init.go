package app

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/commands/server"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/gconf"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/token"
	"github.com/iov-one/quorum/x/wallet"
	abci "github.com/tendermint/tendermint/abci/types"
)

// KeyPath is the derivation path of the keys created by quorumd.
const KeyPath = "m/44'/234'/0'"

// initialBalance is given to the dev account created by GenInitOptions.
const initialBalance = 1000000000

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode. The account owns a single owner wallet
// and is allowed to issue tokens.
//
// The first argument is the account address. If missing, a new key is
// created and its seed printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var addr quorum.Address
	if len(args) > 0 {
		a, err := quorum.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "account address")
		}
		addr = a
	} else {
		a, seed, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(seed)
	}

	type (
		dict  map[string]interface{}
		array []interface{}
	)
	return json.Marshal(dict{
		"cash": array{
			dict{
				"address": addr,
				"balance": initialBalance,
			},
		},
		"wallets": array{
			dict{
				"owners":   addr.String(),
				"required": 1,
			},
		},
		"conf": dict{
			wallet.PackageName: wallet.DefaultConfiguration(),
			token.PackageName: token.Configuration{
				Issuer: addr,
			},
		},
	})
}

// GenerateKey returns the address of a new key, along with the hex
// encoded seed it was derived from.
func GenerateKey() (quorum.Address, string, error) {
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, "", errors.Wrapf(errors.ErrHuman, "no randomness: %s", err)
	}
	key, err := crypto.DerivePrivKeyEd25519(seed, KeyPath)
	if err != nil {
		return nil, "", err
	}
	return key.PublicKey().Address(), hex.EncodeToString(seed), nil
}

// Initializers returns the genesis initialization of every extension.
// Configuration is loaded first so that the limits apply to the wallets
// created at genesis.
func Initializers(ledger *cash.Ledger) quorum.Initializer {
	return app.ChainInitializers(
		gconf.Initializer{Defaults: map[string]func() gconf.Configuration{
			wallet.PackageName: func() gconf.Configuration {
				c := wallet.DefaultConfiguration()
				return &c
			},
			token.PackageName: func() gconf.Configuration {
				return &token.Configuration{}
			},
		}},
		&cash.Initializer{Ledger: ledger},
		&wallet.Initializer{Host: ledger},
		&token.Initializer{Host: ledger},
	)
}

// GenerateApp builds the application for the start command. State is
// kept under <home>/abci, or in memory when no home is set.
func GenerateApp(options *server.Options) (abci.Application, error) {
	var dbPath string
	if options.Home != "" {
		dbPath = filepath.Join(options.Home, "abci.db")
	}

	ledger := Ledger()
	application, err := Application(dbPath, ledger, options.Debug)
	if err != nil {
		return nil, err
	}
	application.WithInit(Initializers(ledger))
	if options.Logger != nil {
		application.WithLogger(options.Logger)
	}
	return application, nil
}
