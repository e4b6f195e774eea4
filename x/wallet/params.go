package wallet

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// ParamType is the tag of a typed parameter.
type ParamType byte

const (
	TypeInt ParamType = iota + 1
	TypeStr
	TypeBool
	TypeAddress
	TypeBytes
)

var paramTypeNames = map[ParamType]string{
	TypeInt:     "int",
	TypeStr:     "str",
	TypeBool:    "bool",
	TypeAddress: "Address",
	TypeBytes:   "bytes",
}

func (t ParamType) String() string {
	if name, ok := paramTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ParamType(%d)", byte(t))
}

// ParseParamType returns the tag for given type name. Names are case
// sensitive.
func ParseParamType(name string) (ParamType, error) {
	for t, n := range paramTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.Wrapf(ErrMalformedParams, "unknown type %q", name)
}

// Param is a named value of one of the supported types. Only the field
// matching Type is meaningful, use the constructors to build one.
type Param struct {
	Name string
	Type ParamType

	num   *big.Int
	str   string
	flag  bool
	addr  quorum.Address
	bytes []byte
}

func IntParam(name string, v *big.Int) Param {
	return Param{Name: name, Type: TypeInt, num: v}
}

func StrParam(name, v string) Param {
	return Param{Name: name, Type: TypeStr, str: v}
}

func BoolParam(name string, v bool) Param {
	return Param{Name: name, Type: TypeBool, flag: v}
}

func AddressParam(name string, v quorum.Address) Param {
	return Param{Name: name, Type: TypeAddress, addr: v}
}

func BytesParam(name string, v []byte) Param {
	return Param{Name: name, Type: TypeBytes, bytes: v}
}

// Int returns the value of an int parameter, nil for any other type.
func (p Param) Int() *big.Int {
	if p.Type != TypeInt {
		return nil
	}
	return p.num
}

func (p Param) Str() string {
	return p.str
}

func (p Param) Bool() bool {
	return p.flag
}

func (p Param) Bytes() []byte {
	return p.bytes
}

func (p Param) Address() quorum.Address {
	if p.Type != TypeAddress {
		return nil
	}
	return p.addr
}

// Validate checks that the parameter is named and that its value is
// consistent with its type.
func (p Param) Validate() error {
	if p.Name == "" {
		return errors.Wrap(ErrMalformedParams, "missing name")
	}
	switch p.Type {
	case TypeInt:
		if p.num == nil {
			return errors.Wrapf(ErrMalformedParams, "%s: missing int value", p.Name)
		}
	case TypeAddress:
		if err := p.addr.Validate(); err != nil {
			return errors.Wrapf(ErrMalformedParams, "%s: %s", p.Name, err)
		}
	case TypeStr, TypeBool, TypeBytes:
	default:
		return errors.Wrapf(ErrMalformedParams, "%s: unknown type %d", p.Name, p.Type)
	}
	return nil
}

// Equals returns true if both parameters have the same name, type and
// value.
func (p Param) Equals(o Param) bool {
	if p.Name != o.Name || p.Type != o.Type {
		return false
	}
	switch p.Type {
	case TypeInt:
		if p.num == nil || o.num == nil {
			return p.num == o.num
		}
		return p.num.Cmp(o.num) == 0
	case TypeStr:
		return p.str == o.str
	case TypeBool:
		return p.flag == o.flag
	case TypeAddress:
		return p.addr.Equals(o.addr)
	case TypeBytes:
		return bytes.Equal(p.bytes, o.bytes)
	}
	return false
}

type jsonParam struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON writes the parameter in the same form ParseParams reads.
// Integers are written as decimal strings so that no precision is lost.
func (p Param) MarshalJSON() ([]byte, error) {
	var value interface{}
	switch p.Type {
	case TypeInt:
		if p.num == nil {
			return nil, errors.Wrapf(ErrMalformedParams, "%s: missing int value", p.Name)
		}
		value = p.num.String()
	case TypeStr:
		value = p.str
	case TypeBool:
		value = p.flag
	case TypeAddress:
		value = p.addr
	case TypeBytes:
		value = "0x" + hex.EncodeToString(p.bytes)
	default:
		return nil, errors.Wrapf(ErrMalformedParams, "%s: unknown type %d", p.Name, p.Type)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonParam{Name: p.Name, Type: p.Type.String(), Value: raw})
}

func (p *Param) UnmarshalJSON(raw []byte) error {
	var jp jsonParam
	if err := json.Unmarshal(raw, &jp); err != nil {
		return errors.Wrapf(ErrMalformedParams, "cannot decode param: %s", err)
	}
	t, err := ParseParamType(jp.Type)
	if err != nil {
		return errors.Wrapf(err, "param %q", jp.Name)
	}
	val, err := decodeValue(t, jp.Value)
	if err != nil {
		return errors.Wrapf(err, "param %q", jp.Name)
	}
	val.Name = jp.Name
	*p = val
	return nil
}

// decodeValue converts a JSON literal into a value of given type. A
// literal that does not match the type is rejected, never coerced.
func decodeValue(t ParamType, raw json.RawMessage) (Param, error) {
	raw = bytes.TrimSpace(raw)
	str, isStr := jsonString(raw)

	switch t {
	case TypeInt:
		if isStr {
			n, err := parseInt(str)
			return IntParam("", n), err
		}
		if len(raw) == 0 || !isNumberStart(raw[0]) {
			return Param{}, errors.Wrapf(ErrMalformedParams, "not an int: %s", raw)
		}
		n, ok := new(big.Int).SetString(string(raw), 10)
		if !ok {
			return Param{}, errors.Wrapf(ErrMalformedParams, "not an int: %s", raw)
		}
		return IntParam("", n), nil
	case TypeStr:
		if !isStr {
			return Param{}, errors.Wrapf(ErrMalformedParams, "not a string: %s", raw)
		}
		return StrParam("", str), nil
	case TypeBool:
		if isStr {
			n, err := parseInt(str)
			if err != nil {
				return Param{}, err
			}
			return BoolParam("", n.Sign() != 0), nil
		}
		switch string(raw) {
		case "true":
			return BoolParam("", true), nil
		case "false":
			return BoolParam("", false), nil
		}
		return Param{}, errors.Wrapf(ErrMalformedParams, "not a bool: %s", raw)
	case TypeAddress:
		if !isStr {
			return Param{}, errors.Wrapf(ErrMalformedParams, "not an address: %s", raw)
		}
		addr, err := quorum.ParseAddress(str)
		if err != nil {
			return Param{}, errors.Wrapf(ErrMalformedParams, "not an address: %s", err)
		}
		return AddressParam("", addr), nil
	case TypeBytes:
		if !isStr {
			return Param{}, errors.Wrapf(ErrMalformedParams, "not bytes: %s", raw)
		}
		b, err := parseHex(str)
		if err != nil {
			return Param{}, err
		}
		return BytesParam("", b), nil
	}
	return Param{}, errors.Wrapf(ErrMalformedParams, "unknown type %d", t)
}

func jsonString(raw []byte) (string, bool) {
	if len(raw) == 0 || raw[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isNumberStart(c byte) bool {
	return c == '-' || (c >= '0' && c <= '9')
}

// parseInt accepts decimal numbers and hex numbers prefixed with 0x or
// -0x.
func parseInt(s string) (*big.Int, error) {
	neg := strings.HasPrefix(s, "-")
	digits := strings.TrimPrefix(s, "-")
	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		base = 16
		digits = digits[2:]
	}
	if digits == "" || strings.HasPrefix(digits, "-") || strings.HasPrefix(digits, "+") {
		return nil, errors.Wrapf(ErrMalformedParams, "not an int: %q", s)
	}
	n, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, errors.Wrapf(ErrMalformedParams, "not an int: %q", s)
	}
	if neg {
		n.Neg(n)
	}
	return n, nil
}

// parseHex decodes hex with an optional 0x prefix. Spaces between the
// bytes are ignored.
func parseHex(s string) ([]byte, error) {
	s = strings.Replace(s, " ", "", -1)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedParams, "not hex: %s", err)
	}
	return b, nil
}

// Params is an ordered list of parameters with unique names.
type Params []Param

// ParseParams decodes a JSON list of {"name", "type", "value"} objects.
// Empty input gives no parameters.
func ParseParams(text string) (Params, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var ps Params
	if err := json.Unmarshal([]byte(text), &ps); err != nil {
		if ErrMalformedParams.Is(err) {
			return nil, err
		}
		return nil, errors.Wrapf(ErrMalformedParams, "JSON format error: %s", err)
	}
	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// Validate checks every parameter and rejects duplicated names.
func (ps Params) Validate() error {
	seen := make(map[string]struct{}, len(ps))
	for i, p := range ps {
		if err := p.Validate(); err != nil {
			return errors.Wrapf(err, "param %d", i)
		}
		if _, ok := seen[p.Name]; ok {
			return errors.Wrapf(ErrMalformedParams, "duplicated name %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}

// Get returns the parameter with given name.
func (ps Params) Get(name string) (Param, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}

func (ps Params) lookup(name string, t ParamType) (Param, error) {
	p, ok := ps.Get(name)
	if !ok {
		return p, errors.Wrapf(ErrMalformedParams, "missing %q", name)
	}
	if p.Type != t {
		return p, errors.Wrapf(ErrMalformedParams, "%q: want %s, got %s", name, t, p.Type)
	}
	return p, nil
}

// Int returns the value of the named int parameter. A missing parameter or
// one of a different type is an error.
func (ps Params) Int(name string) (*big.Int, error) {
	p, err := ps.lookup(name, TypeInt)
	return p.num, err
}

func (ps Params) Str(name string) (string, error) {
	p, err := ps.lookup(name, TypeStr)
	return p.str, err
}

func (ps Params) Bool(name string) (bool, error) {
	p, err := ps.lookup(name, TypeBool)
	return p.flag, err
}

func (ps Params) Address(name string) (quorum.Address, error) {
	p, err := ps.lookup(name, TypeAddress)
	return p.addr, err
}

func (ps Params) Bytes(name string) ([]byte, error) {
	p, err := ps.lookup(name, TypeBytes)
	return p.bytes, err
}

// Equals compares two lists element by element.
func (ps Params) Equals(o Params) bool {
	if len(ps) != len(o) {
		return false
	}
	for i := range ps {
		if !ps[i].Equals(o[i]) {
			return false
		}
	}
	return true
}
