package sigs

import (
	"github.com/iov-one/quorum/errors"
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

// payload is the part of a transaction covered by its signatures.
type payload struct {
	Path string
	Msg  []byte
}

// signDoc is what a signer actually signs, once hashed.
type signDoc struct {
	Version  []byte
	ChainID  string
	Sequence int64
	Payload  []byte
}

// EncodePayload returns the canonical bytes of a message of the given path
// whose body is raw. Transaction formats use it as their sign bytes so
// that every signer agrees on the same serialization.
func EncodePayload(path string, raw []byte) ([]byte, error) {
	if path == "" {
		return nil, errors.Wrap(errors.ErrMsg, "missing path")
	}
	bz, err := cdc.MarshalBinaryBare(payload{Path: path, Msg: raw})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot encode payload: %s", err)
	}
	return bz, nil
}
