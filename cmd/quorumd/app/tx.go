package app

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/cash"
	"github.com/iov-one/quorum/x/sigs"
	"github.com/iov-one/quorum/x/token"
	"github.com/iov-one/quorum/x/wallet"
	amino "github.com/tendermint/go-amino"
)

var txCodec = amino.NewCodec()

// Tx is the transaction format of the quorum chain, encoded with
// go-amino. The message body is kept as the raw bytes that were signed
// and decoded by its path on arrival. Bodies are JSON because amounts are
// arbitrary precision integers, which amino cannot represent.
type Tx struct {
	Path       string
	Msg        []byte
	Signatures []*sigs.StdSignature

	msg quorum.Msg
}

// make sure tx fulfills all interfaces
var _ quorum.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// msgTypes maps a message path to the type decoding it.
var msgTypes = map[string]reflect.Type{}

func init() {
	for _, set := range [][]quorum.Msg{wallet.Msgs(), cash.Msgs(), token.Msgs(), sigs.Msgs()} {
		for _, m := range set {
			if _, ok := msgTypes[m.Path()]; ok {
				panic(fmt.Sprintf("message path %q registered twice", m.Path()))
			}
			msgTypes[m.Path()] = reflect.TypeOf(m).Elem()
		}
	}
}

// NewTx wraps the message into an unsigned transaction.
func NewTx(msg quorum.Msg) (*Tx, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "cannot serialize: %s", err)
	}
	return &Tx{Path: msg.Path(), Msg: raw, msg: msg}, nil
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (quorum.Tx, error) {
	tx := new(Tx)
	if err := tx.Unmarshal(bz); err != nil {
		return nil, err
	}
	return tx, nil
}

// Unmarshal decodes the transaction and the message it carries. Unknown
// message paths are rejected.
func (tx *Tx) Unmarshal(bz []byte) error {
	if err := txCodec.UnmarshalBinaryBare(bz, tx); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot decode transaction: %s", err)
	}
	typ, ok := msgTypes[tx.Path]
	if !ok {
		return errors.Wrapf(errors.ErrMsg, "unknown message path %q", tx.Path)
	}
	msg := reflect.New(typ).Interface().(quorum.Msg)
	if err := json.Unmarshal(tx.Msg, msg); err != nil {
		return errors.Wrapf(errors.ErrMsg, "cannot decode %s: %s", tx.Path, err)
	}
	tx.msg = msg
	return nil
}

// Marshal returns the transaction bytes as accepted by TxDecoder.
func (tx *Tx) Marshal() ([]byte, error) {
	bz, err := txCodec.MarshalBinaryBare(tx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot serialize transaction: %s", err)
	}
	return bz, nil
}

func (tx *Tx) GetMsg() (quorum.Msg, error) {
	if tx.msg == nil {
		return nil, errors.Wrap(errors.ErrMsg, "no message")
	}
	return tx.msg, nil
}

func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the path and the raw body, without the
// signatures.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	return sigs.EncodePayload(tx.Path, tx.Msg)
}
