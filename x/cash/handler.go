package cash

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

const (
	sendTxCost int64 = 100
	callTxCost int64 = 200
)

// Event types emitted by the handlers of this package.
const (
	EventTransfer = "Transfer"
	EventCall     = "Call"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, ledger *Ledger) {
	r.Handle(pathSendMsg, SendHandler{auth: auth, ledger: ledger})
	r.Handle(pathCallMsg, CallHandler{auth: auth, ledger: ledger})
}

// SendHandler will handle sending value
type SendHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ quorum.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, ledger *Ledger) SendHandler {
	return SendHandler{auth: auth, ledger: ledger}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(sendTxCost, ""), nil
}

// Deliver moves the value from source to destination if all
// preconditions are met. Value sent to a contract goes through its
// fallback.
func (h SendHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	if h.ledger.IsContract(db, msg.Destination) {
		err = h.ledger.Call(ctx, db, msg.Source, msg.Destination, "", nil, msg.Amount)
	} else {
		err = h.ledger.Transfer(ctx, db, msg.Source, msg.Destination, msg.Amount)
	}
	if err != nil {
		return nil, err
	}
	events.Emit(quorum.NewEvent(EventTransfer,
		"source", msg.Source.String(),
		"destination", msg.Destination.String(),
		"amount", msg.Amount.String()))
	return &quorum.DeliverResult{Events: events.Events()}, nil
}

func (h SendHandler) validate(ctx quorum.Context, tx quorum.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// CallHandler invokes contracts on behalf of a signer.
type CallHandler struct {
	auth   x.Authenticator
	ledger *Ledger
}

var _ quorum.Handler = CallHandler{}

func (h CallHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if !h.ledger.IsContract(db, msg.Contract) {
		return nil, errors.Wrapf(errors.ErrNotFound, "contract %s", msg.Contract)
	}
	return quorum.NewCheck(callTxCost, ""), nil
}

// Deliver runs the contract method. A failing contract fails the whole
// transaction.
func (h CallHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	err = h.ledger.Call(ctx, db, msg.Source, msg.Contract, msg.Method, msg.Params, msg.amount())
	if err != nil {
		return nil, errors.Wrapf(err, "call %q", msg.Method)
	}
	events.Emit(quorum.NewEvent(EventCall,
		"source", msg.Source.String(),
		"contract", msg.Contract.String(),
		"method", msg.Method,
		"amount", msg.amount().String()))
	return &quorum.DeliverResult{Events: events.Events()}, nil
}

func (h CallHandler) validate(ctx quorum.Context, tx quorum.Tx) (*CallMsg, error) {
	var msg CallMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
