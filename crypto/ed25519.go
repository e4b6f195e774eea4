package crypto

import (
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/stellar/go/exp/crypto/derivation"
	"golang.org/x/crypto/ed25519"
)

var _ PubKey = (*PublicKey)(nil)
var _ Signer = (*PrivateKey)(nil)

func (p *PublicKey) valid() bool {
	return p != nil && len(p.Ed25519) == ed25519.PublicKeySize
}

func (p *PrivateKey) valid() bool {
	return p != nil && len(p.Ed25519) == ed25519.PrivateKeySize
}

// Verify reports whether sig signs message under this key. Malformed keys
// and signatures never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	if !p.valid() || sig == nil || len(sig.Ed25519) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(p.Ed25519), message, sig.Ed25519)
}

// Condition is sigs/ed25519/<key>, or nil for an empty key.
func (p *PublicKey) Condition() quorum.Condition {
	if p == nil || len(p.Ed25519) == 0 {
		return nil
	}
	return quorum.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if !p.valid() {
		return nil, errors.Wrap(errors.ErrState, "invalid private key")
	}
	return &Signature{Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)}, nil
}

// PublicKey returns the public half of the key, or an empty key when the
// private key is malformed.
func (p *PrivateKey) PublicKey() *PublicKey {
	if !p.valid() {
		return &PublicKey{}
	}
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 returns a new random key. It panics if the system
// random source fails.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives the key of a 32 byte seed and panics on
// any other size. Tests use it for deterministic keys.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}

// DerivePrivKeyEd25519 derives the key at a SLIP-0010 path, such as
// m/44'/234'/0', from a master seed.
func DerivePrivKeyEd25519(seed []byte, path string) (*PrivateKey, error) {
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "derive path %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
