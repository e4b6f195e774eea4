package app

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is the ABCI application: StoreApp handles blocks, state and
// queries, while transactions go through the decoder and the handler
// stack.
type BaseApp struct {
	*StoreApp
	decoder quorum.TxDecoder
	handler quorum.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an application running transactions decoded by
// decoder through handler. In debug mode error logs are not redacted.
func NewBaseApp(store *StoreApp, decoder quorum.TxDecoder, handler quorum.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx decodes the transaction and runs it through the handler
// against the deliver store.
func (b BaseApp) DeliverTx(txBytes []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return quorum.DeliverResponse(nil, err, b.debug)
	}
	ctx := b.txContext("deliver_tx", tx)
	res, err := b.handler.Deliver(ctx, b.DeliverStore(), tx)
	return quorum.DeliverResponse(res, err, b.debug)
}

// CheckTx decodes the transaction and runs it through the handler
// against the check store, which is reset on every commit.
func (b BaseApp) CheckTx(txBytes []byte) abci.ResponseCheckTx {
	tx, err := b.decode(txBytes)
	if err != nil {
		return quorum.CheckResponse(nil, err, b.debug)
	}
	ctx := b.txContext("check_tx", tx)
	res, err := b.handler.Check(ctx, b.CheckStore(), tx)
	return quorum.CheckResponse(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx quorum.Tx) quorum.Context {
	return quorum.WithLogInfo(b.BlockContext(), "call", call, "path", quorum.GetPath(tx))
}

// decode runs the decoder, turning a panic on malformed input into an
// error.
func (b BaseApp) decode(txBytes []byte) (tx quorum.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(txBytes)
}
