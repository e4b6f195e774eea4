package quorumtest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/crypto"
	"github.com/iov-one/quorum/orm"
)

// Tx carries Msg, or fails to decode with Err when it is set.
type Tx struct {
	Msg quorum.Msg
	Err error
}

var _ quorum.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (quorum.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg routes to RoutePath and fails validation with Err when it is set.
type Msg struct {
	RoutePath string
	Err       error
}

var _ quorum.Msg = (*Msg)(nil)

func (m *Msg) Path() string    { return m.RoutePath }
func (m *Msg) Validate() error { return m.Err }

// SequenceID returns n encoded the way an orm.Sequence stores it.
func SequenceID(n uint64) []byte {
	return orm.EncodeSequence(n)
}

// RandomAddr returns a new valid address.
func RandomAddr(t testing.TB) quorum.Address {
	t.Helper()
	raw := make([]byte, quorum.AddressLength)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("random address: %s", err)
	}
	return quorum.Address(raw)
}

// ParseAddress parses any address form quorum.ParseAddress accepts and
// fails the test on error.
func ParseAddress(t testing.TB, encoded string) quorum.Address {
	t.Helper()
	addr, err := quorum.ParseAddress(encoded)
	if err != nil {
		t.Fatalf("parse address %q: %s", encoded, err)
	}
	return addr
}

// NewCondition returns the signature condition of a new ed25519 key.
func NewCondition() quorum.Condition {
	return crypto.GenPrivKeyEd25519().PublicKey().Condition()
}
