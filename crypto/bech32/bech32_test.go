package bech32

import (
	"bytes"
	"testing"

	"github.com/iov-one/quorum/errors"
)

func TestEncodeKnownVector(t *testing.T) {
	// Produced with: bech32 -e -h tiov 746573742d7061796c6f6164
	const want = "tiov1w3jhxapdwpshjmr0v9jqymqq4y"

	got, err := Encode("tiov", []byte("test-payload"))
	if err != nil {
		t.Fatalf("encode: %+v", err)
	}
	if string(got) != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}

func TestRoundTrip(t *testing.T) {
	payloads := map[string][]byte{
		"empty":   {},
		"address": bytes.Repeat([]byte{0xab}, 20),
		"zeros":   make([]byte, 32),
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			enc, err := Encode("qrm", payload)
			if err != nil {
				t.Fatalf("encode: %+v", err)
			}
			got, err := DecodeWithPrefix(string(enc), "qrm")
			if err != nil {
				t.Fatalf("decode: %+v", err)
			}
			if !bytes.Equal(payload, got) {
				t.Fatalf("want %X, got %X", payload, got)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]struct {
		raw    string
		prefix string
	}{
		"other prefix": {raw: "tiov1w3jhxapdwpshjmr0v9jqymqq4y", prefix: "qrm"},
		"bad checksum": {raw: "tiov1w3jhxapdwpshjmr0v9jqymqq4z", prefix: "tiov"},
		"not bech32":   {raw: "not-bech32", prefix: "tiov"},
		"empty":        {raw: "", prefix: "tiov"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeWithPrefix(tc.raw, tc.prefix); !errors.ErrInput.Is(err) {
				t.Fatalf("want input error, got %+v", err)
			}
		})
	}
}
