package crypto

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestSignAndVerify(t *testing.T) {
	owner := GenPrivKeyEd25519()
	pub := owner.PublicKey()

	submit := []byte("wallet/submit")
	confirm := []byte("wallet/confirm")
	sigSubmit, err := owner.Sign(submit)
	assert.Nil(t, err)
	sigConfirm, err := owner.Sign(confirm)
	assert.Nil(t, err)

	cases := map[string]struct {
		key  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"valid":              {key: pub, msg: submit, sig: sigSubmit, want: true},
		"other valid":        {key: pub, msg: confirm, sig: sigConfirm, want: true},
		"signature of other": {key: pub, msg: submit, sig: sigConfirm},
		"other key":          {key: GenPrivKeyEd25519().PublicKey(), msg: submit, sig: sigSubmit},
		"empty signature":    {key: pub, msg: submit, sig: &Signature{}},
		"nil signature":      {key: pub, msg: submit},
		"short signature":    {key: pub, msg: submit, sig: &Signature{Ed25519: []byte("sig 5")}},
		"empty key":          {key: &PublicKey{}, msg: submit, sig: sigSubmit},
		"nil key":            {msg: submit, sig: sigSubmit},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.key.Verify(tc.msg, tc.sig))
		})
	}
}

func TestInvalidPrivateKey(t *testing.T) {
	_, err := (&PrivateKey{}).Sign([]byte("wallet/submit"))
	if err == nil {
		t.Fatal("want an error")
	}
	assert.Equal(t, 0, len((&PrivateKey{Ed25519: []byte{1, 2}}).PublicKey().Ed25519))
}

func TestCondition(t *testing.T) {
	a := GenPrivKeyEd25519().PublicKey()
	b := GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, a.Condition().Validate())
	if a.Condition().Equals(b.Condition()) {
		t.Fatal("two keys share a condition")
	}
	assert.Equal(t, a.Condition().Address(), a.Address())

	var empty PublicKey
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())

	raw, err := json.Marshal(a)
	assert.Nil(t, err)
	var decoded PublicKey
	assert.Nil(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, a.Address(), decoded.Address())
}

func TestPrivKeyEd25519FromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a := PrivKeyEd25519FromSeed(seed)
	b := PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.GetEd25519(), b.GetEd25519())
	assert.Equal(t, seed, a.GetEd25519()[:32])

	// A zero key signs deterministically.
	sig, err := (&PrivateKey{Ed25519: make([]byte, 64)}).Sign([]byte("foo bar"))
	assert.Nil(t, err)
	again, err := (&PrivateKey{Ed25519: make([]byte, 64)}).Sign([]byte("foo bar"))
	assert.Nil(t, err)
	assert.Equal(t, sig, again)

	for _, bad := range [][]byte{nil, {0}, make([]byte, 33)} {
		assert.Panics(t, func() { PrivKeyEd25519FromSeed(bad) })
	}
}

func TestDerivePrivKeyEd25519(t *testing.T) {
	seed, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	assert.Nil(t, err)

	first, err := DerivePrivKeyEd25519(seed, "m/44'/234'/0'")
	assert.Nil(t, err)
	again, err := DerivePrivKeyEd25519(seed, "m/44'/234'/0'")
	assert.Nil(t, err)
	assert.Equal(t, first.GetEd25519(), again.GetEd25519())

	second, err := DerivePrivKeyEd25519(seed, "m/44'/234'/1'")
	assert.Nil(t, err)
	if bytes.Equal(first.GetEd25519(), second.GetEd25519()) {
		t.Fatal("different paths give the same key")
	}

	_, err = DerivePrivKeyEd25519(seed, "not a path")
	if err == nil {
		t.Fatal("want an error for an invalid path")
	}
}
