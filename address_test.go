package quorum_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAddressForms(t *testing.T) {
	wallet := quorum.NewCondition("wallet", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 3})
	addr := wallet.Address()

	Convey("Given the address of a wallet", t, func() {
		b32, err := addr.Bech32()
		So(err, ShouldBeNil)

		Convey("it prints as upper case hex", func() {
			So(addr.String(), ShouldEqual, fmt.Sprintf("%X", []byte(addr)))
		})

		Convey("every textual form parses back to it", func() {
			forms := []string{
				addr.String(),
				strings.ToLower(addr.String()),
				"0x" + addr.String(),
				"hex:" + addr.String(),
				"bech32:" + b32,
				"cond:" + wallet.String(),
			}
			for _, form := range forms {
				got, err := quorum.ParseAddress(form)
				So(err, ShouldBeNil)
				So(got.Equals(addr), ShouldBeTrue)
			}
		})

		Convey("JSON uses the hex form", func() {
			raw, err := json.Marshal(addr)
			So(err, ShouldBeNil)
			So(string(raw), ShouldEqual, `"`+addr.String()+`"`)

			var back quorum.Address
			So(json.Unmarshal(raw, &back), ShouldBeNil)
			So(back.Equals(addr), ShouldBeTrue)
		})

		Convey("a clone does not share memory", func() {
			c := addr.Clone()
			c[0]++
			So(c.Equals(addr), ShouldBeFalse)
		})
	})

	Convey("A condition prints as ext/type/hex", t, func() {
		So(wallet.String(), ShouldEqual, "wallet/seq/0000000000000003")
	})
}

func TestAddressUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr quorum.Address
	}{
		"condition": {
			json:     `"cond:sigs/ed25519/6f776e6572"`,
			wantAddr: quorum.NewCondition("sigs", "ed25519", []byte("owner")).Address(),
		},
		"condition without type": {
			json:    `"cond:sigs/6f776e6572"`,
			wantErr: errors.ErrInput,
		},
		"condition with bad data": {
			json:    `"cond:sigs/ed25519/xyz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"base64:AAAA"`,
			wantErr: errors.ErrType,
		},
		"wrong length": {
			json:    `"0102030405"`,
			wantErr: errors.ErrInput,
		},
		"bech32 with other prefix": {
			json:    `"bech32:tiov1w3jhxapdwpshjmr0v9jqymqq4y"`,
			wantErr: errors.ErrInput,
		},
		"empty":           {json: `""`},
		"empty hex":       {json: `"hex:"`},
		"empty condition": {json: `"cond:"`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var a quorum.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("want %v, got %+v", tc.wantErr, err)
			}
			if err == nil && !a.Equals(tc.wantAddr) {
				t.Fatalf("want %s, got %s", tc.wantAddr, a)
			}
		})
	}
}

func TestParseAddressRejectsEmpty(t *testing.T) {
	for _, s := range []string{"", "hex:", "zz"} {
		if _, err := quorum.ParseAddress(s); !errors.ErrInput.Is(err) {
			t.Fatalf("%q: want input error, got %+v", s, err)
		}
	}
}

func TestConditionParse(t *testing.T) {
	cond := quorum.NewCondition("sigs", "ed25519", []byte{0, 1, 2})
	ext, typ, data, err := cond.Parse()
	if err != nil {
		t.Fatalf("parse: %+v", err)
	}
	if ext != "sigs" || typ != "ed25519" || fmt.Sprintf("%X", data) != "000102" {
		t.Fatalf("got %s %s %X", ext, typ, data)
	}
	if err := quorum.Condition("bad").Validate(); !errors.ErrInput.Is(err) {
		t.Fatalf("want input error, got %+v", err)
	}
	if !cond.Address().Equals(quorum.NewAddress(cond)) {
		t.Fatal("condition address is not the address of its bytes")
	}
}
