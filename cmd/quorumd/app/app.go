/*
Package app wires the quorum extensions into an ABCI application.

Wallets, plain value and tokens all live on a single ledger, so that a
wallet can pay, call a token or govern itself through the same contract
calls.
*/
package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/store/iavl"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/iov-one/quorum/x/token"
	"github.com/iov-one/quorum/x/utils"
	"github.com/iov-one/quorum/x/wallet"
)

// appName is reported in the Info response.
const appName = "quorum"

// Ledger returns a ledger that can host token contracts.
func Ledger() *cash.Ledger {
	l := cash.NewLedger()
	l.Register(token.ContractKind, token.Factory)
	return l
}

// Stack returns the decorated router every transaction goes through.
//
// The first savepoint discards all changes of a failed CheckTx. The
// second one sits below the signature check, so a failed DeliverTx still
// bumps the signer sequences.
func Stack(ledger *cash.Ledger) quorum.Handler {
	auth := x.ChainAuth(sigs.Authenticate{})

	r := app.NewRouter()
	wallet.RegisterRoutes(r, auth, ledger)
	cash.RegisterRoutes(r, auth, ledger)
	token.RegisterRoutes(r, auth, ledger)
	sigs.RegisterRoutes(r, auth)

	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		utils.NewSavepoint().OnDeliver(),
	).WithHandler(r)
}

func queryRouter() quorum.QueryRouter {
	r := quorum.NewQueryRouter()
	r.RegisterAll(
		wallet.RegisterQuery,
		cash.RegisterQuery,
		token.RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Application opens the store at dbPath and builds the application on top
// of it. An empty dbPath keeps all state in memory.
func Application(dbPath string, ledger *cash.Ledger, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(appName, kv, queryRouter(), context.Background())
	return app.NewBaseApp(store, TxDecoder, Stack(ledger), debug), nil
}

// CommitKVStore opens the iavl store at dbPath, or an in memory one when
// dbPath is empty. A trailing extension such as ".db" is ignored.
func CommitKVStore(dbPath string) (quorum.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "database path %q: %s", dbPath, err)
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))
	return iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
}
