package app

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// StoreApp implements the block, state and query side of the ABCI
// application. BaseApp embeds it and adds transaction processing.
//
// Failures of InitChain, Info and Commit cannot be reported to tendermint
// and leave the node in an unknown state, so they panic.
type StoreApp struct {
	name   string
	logger log.Logger
	state  *CommitStore
	init   quorum.Initializer
	router quorum.QueryRouter

	// chainID is empty until the genesis was loaded once.
	chainID string
	// appCtx lives as long as the application, blockCtx is replaced on
	// every BeginBlock.
	appCtx   quorum.Context
	blockCtx quorum.Context
}

// NewStoreApp loads the latest version of db and restores the chain id
// saved at genesis. It panics if db cannot be loaded.
func NewStoreApp(name string, db quorum.CommitKVStore, router quorum.QueryRouter, ctx quorum.Context) *StoreApp {
	s := &StoreApp{
		name:   name,
		state:  NewCommitStore(db),
		router: router,
		appCtx: ctx,
	}
	s.WithLogger(log.NewNopLogger())

	if s.chainID = mustLoadChainID(s.DeliverStore()); s.chainID != "" {
		s.appCtx = quorum.WithChainID(s.appCtx, s.chainID)
	}
	info, err := s.state.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.blockCtx = quorum.WithHeight(s.appCtx, info.Version)
	return s
}

func (s *StoreApp) GetChainID() string {
	return s.chainID
}

// WithInit sets the initializer run by InitChain.
func (s *StoreApp) WithInit(init quorum.Initializer) *StoreApp {
	s.init = init
	return s
}

// WithLogger sets the logger of the application and of every context it
// hands out.
func (s *StoreApp) WithLogger(logger log.Logger) *StoreApp {
	s.logger = logger
	s.appCtx = quorum.WithLogger(s.appCtx, logger)
	return s
}

// BlockContext is the context of the block being processed.
func (s *StoreApp) BlockContext() quorum.Context {
	return s.blockCtx
}

func (s *StoreApp) DeliverStore() quorum.CacheableKVStore {
	return s.state.DeliverStore()
}

func (s *StoreApp) CheckStore() quorum.CacheableKVStore {
	return s.state.CheckStore()
}

// LoadGenesis initializes the state from a genesis file, as InitChain
// does from the genesis sent by tendermint.
func (s *StoreApp) LoadGenesis(path string, init quorum.Initializer) error {
	gen, err := loadGenesis(path)
	if err != nil {
		return err
	}
	return s.genesis(gen.ChainID, gen.AppState, init)
}

// genesis runs once in the life of a chain. Restarts find the chain id in
// the store and refuse a second genesis.
func (s *StoreApp) genesis(chainID string, appState []byte, init quorum.Initializer) error {
	switch {
	case s.chainID != "":
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", s.chainID)
	case init == nil:
		return errors.Wrap(errors.ErrHuman, "no initializer")
	case len(appState) == 0:
		return errors.Wrap(errors.ErrState, "app_state missing from the genesis, run init first")
	}
	var opts quorum.Options
	if err := json.Unmarshal(appState, &opts); err != nil {
		return errors.Wrapf(errors.ErrInput, "app_state: %s", err)
	}
	if err := saveChainID(s.DeliverStore(), chainID); err != nil {
		return err
	}
	s.chainID = chainID
	s.appCtx = quorum.WithChainID(s.appCtx, chainID)
	return init.FromGenesis(opts, s.DeliverStore())
}

// Info returns the name, the version and the last committed block.
func (s *StoreApp) Info(abci.RequestInfo) abci.ResponseInfo {
	info, err := s.state.CommitInfo()
	if err != nil {
		panic(err)
	}
	s.logger.Info("Info synced", "height", info.Version, "hash", fmt.Sprintf("%X", info.Hash))
	return abci.ResponseInfo{
		Data:             s.name,
		Version:          quorum.Version(),
		LastBlockHeight:  info.Version,
		LastBlockAppHash: info.Hash,
	}
}

func (s *StoreApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "Not Implemented"}
}

// InitChain loads the genesis state.
func (s *StoreApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := s.genesis(req.ChainId, req.AppStateBytes, s.init); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

// BeginBlock makes the header and the height of the block available to
// the handlers.
func (s *StoreApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := quorum.WithHeader(s.appCtx, req.Header)
	s.blockCtx = quorum.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

// EndBlock reports nothing: the validator set is fixed at genesis.
func (s *StoreApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

// Commit persists the delivered block and returns the new app hash.
func (s *StoreApp) Commit() abci.ResponseCommit {
	id, err := s.state.Commit()
	if err != nil {
		panic(err)
	}
	s.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

// Query answers a read of the committed state. The path selects the query
// handler, for example /wallets or /, and may end with ?prefix for a
// prefix query. Keys and values of the matches are returned as two
// ResultSets of the same length. Only the latest height can be queried.
func (s *StoreApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := req.Path, ""
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path, mod = path[:i], path[i+1:]
	}
	h := s.router.Handler(path)
	if h == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "unexpected query path: %v", req.Path))
	}

	info, err := s.state.CommitInfo()
	if err != nil {
		return queryError(err)
	}
	if req.Height != 0 && req.Height != info.Version {
		return queryError(errors.Wrapf(errors.ErrInput, "only the latest height %d can be queried", info.Version))
	}

	// A fresh layer over the committed state never sees the pending block.
	db := s.state.committed.CacheWrap()
	defer db.Discard()

	models, err := h.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	keys, err := ResultsFromKeys(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	values, err := ResultsFromValues(models).Marshal()
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{Height: info.Version, Key: keys, Value: values}
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
