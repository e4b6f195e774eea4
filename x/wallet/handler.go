package wallet

import (
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

const (
	createCost  int64 = 100
	submitCost  int64 = 20
	confirmCost int64 = 10
	revokeCost  int64 = 5
	cancelCost  int64 = 5
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Executed transactions move value and call contracts through
// host.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator, host Host) {
	base := handler{auth: auth, host: host}
	r.Handle(pathCreateMsg, CreateHandler{base})
	r.Handle(pathSubmitMsg, SubmitHandler{base})
	r.Handle(pathConfirmMsg, ConfirmHandler{base})
	r.Handle(pathRevokeMsg, RevokeHandler{base})
	r.Handle(pathCancelMsg, CancelHandler{base})
}

// handler holds what all handlers of this package share.
type handler struct {
	auth x.Authenticator
	host Host
}

// owner returns the wallet and the caller, after making sure the caller
// is one of the wallet owners.
func (h handler) owner(ctx quorum.Context, db quorum.ReadOnlyKVStore, addr quorum.Address) (*Wallet, quorum.Address, error) {
	caller, err := x.Caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	w, err := Load(db, addr, h.host)
	if err != nil {
		return nil, nil, errors.Wrap(err, "wallet")
	}
	if err := w.requireOwner(db, caller); err != nil {
		return nil, nil, err
	}
	return w, caller, nil
}

type CreateHandler struct {
	handler
}

var _ quorum.Handler = CreateHandler{}

func (h CreateHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(createCost, ""), nil
}

func (h CreateHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	w, err := Install(ctx, db, h.host, msg.Owners, msg.Required)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: w.Address(), Events: events.Events()}, nil
}

func (h CreateHandler) validate(ctx quorum.Context, tx quorum.Tx) (*CreateMsg, error) {
	if _, err := x.Caller(ctx, h.auth); err != nil {
		return nil, err
	}
	var msg CreateMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &msg, nil
}

type SubmitHandler struct {
	handler
}

var _ quorum.Handler = SubmitHandler{}

func (h SubmitHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return quorum.NewCheck(submitCost, ""), nil
}

// Deliver submits the transaction. The result data is the 8 byte big
// endian transaction id.
func (h SubmitHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	msg, w, caller, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	id, err := w.Submit(ctx, db, caller, msg.Destination, msg.Method, msg.Params, msg.value(), msg.Description)
	if err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Data: encodeUint(id), Events: events.Events()}, nil
}

func (h SubmitHandler) validate(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*SubmitMsg, *Wallet, quorum.Address, error) {
	var msg SubmitMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	w, caller, err := h.owner(ctx, db, msg.Wallet)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, w, caller, nil
}

type ConfirmHandler struct {
	handler
}

var _ quorum.Handler = ConfirmHandler{}

func (h ConfirmHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg ConfirmMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.owner(ctx, db, msg.Wallet); err != nil {
		return nil, err
	}
	return quorum.NewCheck(confirmCost, ""), nil
}

func (h ConfirmHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg ConfirmMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, caller, err := h.owner(ctx, db, msg.Wallet)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	if err := w.Confirm(ctx, db, caller, msg.TransactionID); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Events: events.Events()}, nil
}

type RevokeHandler struct {
	handler
}

var _ quorum.Handler = RevokeHandler{}

func (h RevokeHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg RevokeMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.owner(ctx, db, msg.Wallet); err != nil {
		return nil, err
	}
	return quorum.NewCheck(revokeCost, ""), nil
}

func (h RevokeHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg RevokeMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, caller, err := h.owner(ctx, db, msg.Wallet)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	if err := w.Revoke(ctx, db, caller, msg.TransactionID); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Events: events.Events()}, nil
}

type CancelHandler struct {
	handler
}

var _ quorum.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	var msg CancelMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, _, err := h.owner(ctx, db, msg.Wallet); err != nil {
		return nil, err
	}
	return quorum.NewCheck(cancelCost, ""), nil
}

func (h CancelHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	var msg CancelMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	w, caller, err := h.owner(ctx, db, msg.Wallet)
	if err != nil {
		return nil, err
	}
	ctx, events := quorum.WithEventBuffer(ctx)
	if err := w.Cancel(ctx, db, caller, msg.TransactionID); err != nil {
		return nil, err
	}
	return &quorum.DeliverResult{Events: events.Events()}, nil
}

// QueryRequest is the JSON body of every wallet query. Only the fields
// used by a query are read. Pending and Executed default to true.
type QueryRequest struct {
	Wallet   quorum.Address `json:"wallet"`
	ID       uint64         `json:"id"`
	Owner    quorum.Address `json:"owner"`
	Offset   uint64         `json:"offset"`
	Count    uint64         `json:"count"`
	Pending  *bool          `json:"pending"`
	Executed *bool          `json:"executed"`
}

func (r QueryRequest) status() (pending, executed bool) {
	pending, executed = true, true
	if r.Pending != nil {
		pending = *r.Pending
	}
	if r.Executed != nil {
		executed = *r.Executed
	}
	return pending, executed
}

// RegisterQuery registers the read only wallet queries. Each query is
// served under /wallet/<name> and answers with a single model holding the
// JSON encoded result under the wallet address.
func RegisterQuery(qr quorum.QueryRouter) {
	infos.Register("wallets", qr)
	for name, q := range queries {
		qr.Register("/wallet/"+name, q)
	}
}

var queries = map[string]queryFunc{
	"owners": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.Owners(db, r.Offset, r.Count)
	},
	"owner_count": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.OwnerCount(db)
	},
	"requirement": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.Requirement(db)
	},
	"is_owner": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.IsOwner(db, r.Owner)
	},
	"confirmed_by": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.IsConfirmedBy(db, r.ID, r.Owner)
	},
	"transaction": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.Transaction(db, r.ID)
	},
	"executed": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.IsExecuted(db, r.ID)
	},
	"confirmation_count": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.ConfirmationCount(db, r.ID)
	},
	"confirmations": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		return w.Confirmations(db, r.ID, r.Offset, r.Count)
	},
	"transaction_count": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		pending, executed := r.status()
		return w.TransactionCount(db, pending, executed)
	},
	"transactions": func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error) {
		pending, executed := r.status()
		return w.Transactions(db, r.Offset, r.Count, pending, executed)
	},
}

type queryFunc func(w *Wallet, db quorum.ReadOnlyKVStore, r QueryRequest) (interface{}, error)

var _ quorum.QueryHandler = queryFunc(nil)

func (q queryFunc) Query(db quorum.ReadOnlyKVStore, mod string, data []byte) ([]quorum.Model, error) {
	if mod != quorum.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrInput, "unknown query mod %q", mod)
	}
	var req QueryRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "query request: %s", err)
	}
	w, err := Load(db, req.Wallet, nil)
	if err != nil {
		return nil, err
	}
	res, err := q(w, db, req)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrHuman, "query response: %s", err)
	}
	return []quorum.Model{quorum.Pair(w.Address(), raw)}, nil
}
