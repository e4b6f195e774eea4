package crypto

import (
	"github.com/iov-one/quorum"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() quorum.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

// PublicKey is the serializable form of a public key. Only ed25519 keys
// are supported.
type PublicKey struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

// PrivateKey is the serializable form of a private key.
type PrivateKey struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

// Signature is the serializable form of a signature.
type Signature struct {
	Ed25519 []byte `json:"ed25519,omitempty"`
}

// GetEd25519 returns the raw private key bytes.
func (p *PrivateKey) GetEd25519() []byte {
	if p == nil {
		return nil
	}
	return p.Ed25519
}

// GetEd25519 returns the raw signature bytes.
func (s *Signature) GetEd25519() []byte {
	if s == nil {
		return nil
	}
	return s.Ed25519
}

// Address is a convenience method to get the address of the public
// key condition. It returns nil for an empty key.
func (p *PublicKey) Address() quorum.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}
