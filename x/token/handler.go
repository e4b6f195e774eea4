package token

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
	"github.com/iov-one/quorum/x/wallet"
)

const (
	issueCost    int64 = 100
	transferCost int64 = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Only the configured issuer can create new tokens.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, host wallet.Host) {
	r.Handle(pathIssueMsg, IssueHandler{auth: auth, host: host})
	r.Handle(pathTransferMsg, TransferHandler{auth: auth, host: host})
}

type IssueHandler struct {
	auth x.Authenticator
	host wallet.Host
}

var _ quorum.Handler = IssueHandler{}

func (h IssueHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(issueCost, ""), nil
}

// Deliver installs the token and returns its address as data.
func (h IssueHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	t, err := Install(ctx, db, h.host, msg.Owner, msg.Name, msg.Symbol, msg.Decimals, msg.InitialSupply)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: t.Address()}, nil
}

func (h IssueHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*IssueMsg, error) {
	var msg IssueMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return nil, err
	}
	if len(conf.Issuer) == 0 {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no token issuer configured")
	}
	if !h.auth.HasAddress(ctx, conf.Issuer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "issuer signature missing")
	}
	return &msg, nil
}

type TransferHandler struct {
	auth x.Authenticator
	host wallet.Host
}

var _ quorum.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if _, err := New(msg.Token, h.host).Info(db); err != nil {
		return nil, err
	}
	return quorum.NewCheck(transferCost, ""), nil
}

func (h TransferHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	t := New(msg.Token, h.host)
	if err := t.Transfer(ctx, db, msg.Source, msg.Destination, msg.Value, msg.data()); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Events: events.Events()}, nil
}

func (h TransferHandler) validate(ctx quorum.Context, tx quorum.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "holder signature missing")
	}
	return &msg, nil
}
