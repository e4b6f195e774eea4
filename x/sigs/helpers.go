package sigs

import (
	"encoding/json"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// StdTx is the simplest signed transaction, holding a decoded message and
// its signatures. It is used by tests and tooling that never put the
// transaction on the wire.
type StdTx struct {
	Msg        quorum.Msg
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ quorum.Tx = (*StdTx)(nil)

func (tx *StdTx) GetMsg() (quorum.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.Msg, nil
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the payload encoding of the message, the same
// bytes a wire transaction carrying it would be signed over.
func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return EncodePayload(msg.Path(), raw)
}
