package sigs

import (
	"crypto/sha512"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/errors"
)

// SignCodeV1 versions the layout of the signed document.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures checks every signature carried by tx and returns the
// signers in the order they signed. Each accepted signature consumes the
// sequence of its signer, so a transaction fails as a whole if any of its
// signatures is invalid or replayed.
func VerifyTxSignatures(db quorum.KVStore, tx SignedTx, chainID string) ([]quorum.Condition, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	list := tx.GetSignatures()
	signers := make([]quorum.Condition, 0, len(list))
	for i, sig := range list {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks a single signature over bz and, when it is
// valid, advances the sequence of the signer.
func VerifySignature(db quorum.KVStore, sig *StdSignature, bz []byte, chainID string) (quorum.Condition, error) {
	if sig == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "empty signature")
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(bz, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !sig.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	user, err := getOrCreate(db, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := saveUser(db, user); err != nil {
		return nil, err
	}
	return sig.Pubkey.Condition(), nil
}

// BuildSignBytes binds the transaction bytes to a chain and to the
// sequence of a signer. The result is the sha512 digest of the amino
// encoded document, which keeps the input of the signature scheme at a
// fixed length.
func BuildSignBytes(bz []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !quorum.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	doc := signDoc{
		Version:  SignCodeV1,
		ChainID:  chainID,
		Sequence: seq,
		Payload:  bz,
	}
	raw, err := cdc.MarshalBinaryBare(doc)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "cannot encode sign document: %s", err)
	}
	digest := sha512.Sum512(raw)
	return digest[:], nil
}

// SignTx signs tx for the given chain as the next action of the signer,
// whose current sequence is seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(bz, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{
		Sequence:  seq,
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}
