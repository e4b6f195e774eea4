package wallet

import (
	"math/big"
	"strings"
	"testing"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/quorumtest"
	"github.com/iov-one/quorum/quorumtest/assert"
)

func TestCodecRoundTrip(t *testing.T) {
	dest := quorumtest.RandomAddr(t)
	maxValue := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

	cases := map[string]*Transaction{
		"plain transfer": {
			Destination: dest,
			Value:       big.NewInt(1000),
		},
		"executed call": {
			Destination: dest,
			Method:      "transfer",
			Params: Params{
				AddressParam("_to", quorumtest.RandomAddr(t)),
				IntParam("_value", big.NewInt(-3)),
				IntParam("_zero", big.NewInt(0)),
				StrParam("_memo", ""),
				BoolParam("_flag", true),
				BytesParam("_data", nil),
			},
			Value:       big.NewInt(0),
			Description: "send tokens",
			Executed:    true,
		},
		"largest value": {
			Destination: dest,
			Value:       maxValue,
			Description: "ünïcode",
		},
	}

	lim := DefaultConfiguration().Limits()
	for testName, tx := range cases {
		t.Run(testName, func(t *testing.T) {
			raw, err := Encode(tx, lim)
			assert.Nil(t, err)
			assert.Equal(t, tx.Executed, IsExecutedEncoding(raw))

			got, err := Decode(raw)
			assert.Nil(t, err)
			assertTxEqual(t, tx, got)
		})
	}
}

func TestEncodeLimits(t *testing.T) {
	dest := quorumtest.RandomAddr(t)
	lim := Limits{Method: 8, Params: 32, Description: 16}

	cases := map[string]struct {
		tx      Transaction
		wantErr *errors.Error
	}{
		"at the limits": {
			tx: Transaction{
				Destination: dest,
				Method:      strings.Repeat("m", 8),
				Value:       big.NewInt(1),
				Description: strings.Repeat("d", 16),
			},
		},
		"method too long": {
			tx: Transaction{
				Destination: dest,
				Method:      strings.Repeat("m", 9),
				Value:       big.NewInt(1),
			},
			wantErr: ErrEncodingTooLarge,
		},
		"description too long": {
			tx: Transaction{
				Destination: dest,
				Value:       big.NewInt(1),
				Description: strings.Repeat("d", 17),
			},
			wantErr: ErrEncodingTooLarge,
		},
		"params too long": {
			tx: Transaction{
				Destination: dest,
				Method:      "m",
				Params:      Params{StrParam("text", strings.Repeat("x", 32))},
				Value:       big.NewInt(1),
			},
			wantErr: ErrEncodingTooLarge,
		},
		"value above 256 bits": {
			tx: Transaction{
				Destination: dest,
				Value:       new(big.Int).Lsh(big.NewInt(1), 256),
			},
			wantErr: ErrEncodingTooLarge,
		},
		"negative value": {
			tx: Transaction{
				Destination: dest,
				Value:       big.NewInt(-1),
			},
			wantErr: ErrInvalidValue,
		},
		"missing destination": {
			tx: Transaction{
				Value: big.NewInt(1),
			},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := Encode(&tc.tx, lim)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tx := &Transaction{
		Destination: quorumtest.RandomAddr(t),
		Method:      "transfer",
		Params:      Params{BoolParam("_flag", true)},
		Value:       big.NewInt(7),
		Description: "memo",
	}
	raw, err := Encode(tx, DefaultConfiguration().Limits())
	assert.Nil(t, err)

	paramTag := headerLength + 1 + len(tx.Method) + 1 + 1 + len("_flag")

	cases := map[string][]byte{
		"empty":          nil,
		"header only":    raw[:headerLength],
		"truncated":      raw[:len(raw)-1],
		"trailing bytes": append(clone(raw), 0),
		"executed flag":  append([]byte{2}, raw[1:]...),
		"unknown tag": func() []byte {
			b := clone(raw)
			b[paramTag] = 99
			return b
		}(),
	}
	for testName, bad := range cases {
		t.Run(testName, func(t *testing.T) {
			_, err := Decode(bad)
			if !errors.ErrModel.Is(err) {
				t.Fatalf("want model error, got %+v", err)
			}
		})
	}
}

func TestIsExecutedEncoding(t *testing.T) {
	assert.Equal(t, false, IsExecutedEncoding(nil))
	assert.Equal(t, false, IsExecutedEncoding([]byte{0, 1, 1}))
	assert.Equal(t, true, IsExecutedEncoding([]byte{1, 0, 0}))
}

func assertTxEqual(t testing.TB, want, got *Transaction) {
	t.Helper()
	if want == nil || got == nil {
		if want != got {
			t.Fatalf("want %+v, got %+v", want, got)
		}
		return
	}
	if !want.Destination.Equals(got.Destination) {
		t.Fatalf("destination: want %s, got %s", want.Destination, got.Destination)
	}
	if want.Method != got.Method || want.Description != got.Description || want.Executed != got.Executed {
		t.Fatalf("want %+v, got %+v", want, got)
	}
	if want.Value.Cmp(got.Value) != 0 {
		t.Fatalf("value: want %s, got %s", want.Value, got.Value)
	}
	if !want.Params.Equals(got.Params) {
		t.Fatalf("params: want %+v, got %+v", want.Params, got.Params)
	}
}
