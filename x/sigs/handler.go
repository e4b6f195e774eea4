package sigs

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x"
)

// RegisterRoutes serves BumpSequenceMsg.
func RegisterRoutes(r quorum.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, bumpSequenceHandler{auth: auth})
}

// bumpSequenceHandler moves the sequence of the main signer forward.
// The decorator already added one, so only Increment - 1 is left.
type bumpSequenceHandler struct {
	auth x.Authenticator
}

func (h bumpSequenceHandler) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	_, _, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return &quorum.CheckResult{}, nil
}

func (h bumpSequenceHandler) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	user, msg, err := h.load(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if msg.Increment > 1 {
		user.Sequence += int64(msg.Increment) - 1
		if err := saveUser(db, user); err != nil {
			return nil, errors.Wrap(err, "save user")
		}
	}
	return &quorum.DeliverResult{}, nil
}

func (h bumpSequenceHandler) load(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*UserData, *BumpSequenceMsg, error) {
	var msg BumpSequenceMsg
	if err := quorum.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	user, err := loadUser(db, signer.Address())
	switch {
	case err != nil:
		return nil, nil, errors.Wrap(err, "load user")
	case user == nil:
		return nil, nil, errors.Wrap(errors.ErrNotFound, "no sequence")
	}
	next := user.Sequence + int64(msg.Increment)
	if next < user.Sequence || next > maxSequenceValue {
		return nil, nil, errors.Wrap(errors.ErrOverflow, "user sequence")
	}
	return user, &msg, nil
}
