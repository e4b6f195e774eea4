package quorum

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/quorum/crypto/bech32"
	"github.com/iov-one/quorum/errors"
	"golang.org/x/crypto/blake2b"
)

var (
	// AddressLength is the size of every address. It may be changed in an
	// init function only, never once a store holds addresses.
	AddressLength = 20

	// Bech32Prefix is the human readable part of bech32 addresses.
	Bech32Prefix = "qrm"
)

// Address identifies an account, a wallet or a contract: the truncated
// blake2b digest of a Condition.
type Address []byte

// NewAddress derives the address of data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	sum := blake2b.Sum256(data)
	return sum[:AddressLength]
}

// ParseAddress reads an address in one of the textual forms:
//
//	0A1B...         hex, an optional 0x prefix is allowed
//	bech32:qrm1...  bech32 with the Bech32Prefix
//	cond:ext/typ/.. the address of a condition
func ParseAddress(s string) (Address, error) {
	a, err := decodeAddress(s)
	if err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeAddress(s string) (Address, error) {
	format, body := "hex", s
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, body = s[:i], s[i+1:]
	}
	switch format {
	case "hex":
		body = strings.TrimPrefix(strings.TrimPrefix(body, "0x"), "0X")
		raw, err := hex.DecodeString(body)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		return raw, nil
	case "bech32":
		return bech32.DecodeWithPrefix(body, Bech32Prefix)
	case "cond":
		if body == "" {
			return nil, nil
		}
		c, err := parseCondition(body)
		if err != nil {
			return nil, err
		}
		return c.Address(), nil
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
}

func (a Address) Equals(o Address) bool {
	return bytes.Equal(a, o)
}

// Clone returns a copy not sharing memory with a.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	return append(Address(nil), a...)
}

func (a Address) Validate() error {
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address: %v", a)
	}
	return nil
}

// String is the upper case hex form, the one ParseAddress reads by
// default.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 returns the address in bech32 form under Bech32Prefix.
func (a Address) Bech32() (string, error) {
	raw, err := bech32.Encode(Bech32Prefix, a)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// MarshalJSON writes the address as a hex string instead of base64.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

// UnmarshalJSON reads any form accepted by ParseAddress. An empty string
// is the nil address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	addr, err := decodeAddress(s)
	if err != nil {
		return err
	}
	if len(addr) == 0 {
		*a = nil
		return nil
	}
	*a = addr
	return addr.Validate()
}
