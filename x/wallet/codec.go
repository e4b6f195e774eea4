package wallet

import (
	"math/big"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Transaction is an action waiting for the approval of the wallet owners.
type Transaction struct {
	Destination quorum.Address `json:"destination"`
	// Method is the name of the contract method to call. Empty for a
	// plain value transfer.
	Method      string   `json:"method"`
	Params      Params   `json:"params"`
	Value       *big.Int `json:"value"`
	Description string   `json:"description"`
	Executed    bool     `json:"executed"`
}

// Validate checks the transaction content. Encoding limits are checked by
// Encode.
func (t *Transaction) Validate() error {
	if err := t.Destination.Validate(); err != nil {
		return errors.Field("Destination", err, "invalid destination")
	}
	if t.Value == nil || t.Value.Sign() < 0 {
		return errors.Field("Value", ErrInvalidValue, "must be zero or more")
	}
	if err := t.Params.Validate(); err != nil {
		return errors.Field("Params", err, "invalid params")
	}
	return nil
}

// Limits bounds the size of the variable length fields of an encoded
// transaction. Params limits the size of the whole encoded params section.
type Limits struct {
	Method      int
	Params      int
	Description int
}

const valueLength = 32

// headerLength is the size of the fixed part of an encoded transaction.
// AddressLength is configurable, so this is not a constant.
var headerLength = 1 + quorum.AddressLength + valueLength

// Encode serializes a transaction. The first byte is always the executed
// flag, followed by the destination and the value as 32 bytes big endian.
// Method, params and description are length prefixed. A field longer than
// its limit fails the encoding with ErrEncodingTooLarge.
func Encode(t *Transaction, lim Limits) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(t.Method) > lim.Method {
		return nil, errors.Wrapf(ErrEncodingTooLarge, "method: %d > %d", len(t.Method), lim.Method)
	}
	if len(t.Description) > lim.Description {
		return nil, errors.Wrapf(ErrEncodingTooLarge, "description: %d > %d", len(t.Description), lim.Description)
	}
	if t.Value.BitLen() > valueLength*8 {
		return nil, errors.Wrap(ErrEncodingTooLarge, "value does not fit 256 bits")
	}

	params, err := encodeParams(t.Params)
	if err != nil {
		return nil, err
	}
	if len(params) > lim.Params {
		return nil, errors.Wrapf(ErrEncodingTooLarge, "params: %d > %d", len(params), lim.Params)
	}

	buf := make([]byte, headerLength, headerLength+len(t.Method)+len(params)+len(t.Description)+16)
	if t.Executed {
		buf[0] = 1
	}
	copy(buf[1:], t.Destination)
	t.Value.FillBytes(buf[1+quorum.AddressLength : headerLength])

	b := proto.NewBuffer(buf)
	if err := b.EncodeStringBytes(t.Method); err != nil {
		return nil, errors.Wrap(err, "method")
	}
	// params are already framed
	b.SetBuf(append(b.Bytes(), params...))
	if err := b.EncodeStringBytes(t.Description); err != nil {
		return nil, errors.Wrap(err, "description")
	}
	return b.Bytes(), nil
}

func encodeParams(ps Params) ([]byte, error) {
	b := proto.NewBuffer(nil)
	if err := b.EncodeVarint(uint64(len(ps))); err != nil {
		return nil, err
	}
	for _, p := range ps {
		if err := b.EncodeStringBytes(p.Name); err != nil {
			return nil, err
		}
		val, err := encodeValue(p)
		if err != nil {
			return nil, err
		}
		b.SetBuf(append(b.Bytes(), byte(p.Type)))
		if err := b.EncodeRawBytes(val); err != nil {
			return nil, err
		}
	}
	return b.Bytes(), nil
}

// encodeValue returns the value bytes of a parameter. Integers are stored
// as a sign byte followed by the big endian magnitude.
func encodeValue(p Param) ([]byte, error) {
	switch p.Type {
	case TypeInt:
		sign := byte(0)
		if p.num.Sign() < 0 {
			sign = 1
		}
		return append([]byte{sign}, p.num.Bytes()...), nil
	case TypeStr:
		return []byte(p.str), nil
	case TypeBool:
		if p.flag {
			return []byte{1}, nil
		}
		return []byte{0}, nil
	case TypeAddress:
		return p.addr, nil
	case TypeBytes:
		return p.bytes, nil
	}
	return nil, errors.Wrapf(ErrMalformedParams, "unknown type %d", p.Type)
}

// Decode deserializes a transaction written by Encode. Truncated input,
// unknown tags and trailing bytes are rejected.
func Decode(raw []byte) (*Transaction, error) {
	if len(raw) < headerLength {
		return nil, errors.Wrap(errors.ErrModel, "transaction too short")
	}
	if raw[0] > 1 {
		return nil, errors.Wrapf(errors.ErrModel, "executed flag %d", raw[0])
	}
	t := Transaction{
		Executed:    raw[0] == 1,
		Destination: quorum.Address(clone(raw[1 : 1+quorum.AddressLength])),
		Value:       new(big.Int).SetBytes(raw[1+quorum.AddressLength : headerLength]),
	}

	d := decoder{buf: raw[headerLength:]}
	t.Method = string(d.bytes())
	if n := d.varint(); n > 0 && d.err == nil {
		if n > uint64(len(d.buf)) {
			return nil, errors.Wrapf(errors.ErrModel, "%d params declared", n)
		}
		t.Params = make(Params, 0, n)
		for i := uint64(0); i < n && d.err == nil; i++ {
			t.Params = append(t.Params, d.param())
		}
	}
	t.Description = string(d.bytes())
	if d.err != nil {
		return nil, d.err
	}
	if len(d.buf) != 0 {
		return nil, errors.Wrapf(errors.ErrModel, "%d trailing bytes", len(d.buf))
	}
	return &t, nil
}

// IsExecutedEncoding reads the executed flag of an encoded transaction
// without decoding the rest of it.
func IsExecutedEncoding(raw []byte) bool {
	return len(raw) > 0 && raw[0] == 1
}

// decoder reads the length prefixed section of an encoded transaction.
// The first error stops all further reads.
type decoder struct {
	buf []byte
	err error
}

func (d *decoder) varint() uint64 {
	if d.err != nil {
		return 0
	}
	v, n := proto.DecodeVarint(d.buf)
	if n == 0 {
		d.err = errors.Wrap(errors.ErrModel, "truncated varint")
		return 0
	}
	d.buf = d.buf[n:]
	return v
}

func (d *decoder) bytes() []byte {
	n := d.varint()
	if d.err != nil {
		return nil
	}
	if n > uint64(len(d.buf)) {
		d.err = errors.Wrapf(errors.ErrModel, "want %d bytes, %d left", n, len(d.buf))
		return nil
	}
	b := clone(d.buf[:n])
	d.buf = d.buf[n:]
	return b
}

func (d *decoder) tag() ParamType {
	if d.err != nil {
		return 0
	}
	if len(d.buf) == 0 {
		d.err = errors.Wrap(errors.ErrModel, "missing param type")
		return 0
	}
	t := ParamType(d.buf[0])
	d.buf = d.buf[1:]
	if _, ok := paramTypeNames[t]; !ok {
		d.err = errors.Wrapf(errors.ErrModel, "unknown param type %d", t)
	}
	return t
}

func (d *decoder) param() Param {
	name := string(d.bytes())
	t := d.tag()
	val := d.bytes()
	if d.err != nil {
		return Param{}
	}

	switch t {
	case TypeInt:
		if len(val) == 0 || val[0] > 1 {
			d.err = errors.Wrapf(errors.ErrModel, "param %q: invalid int", name)
			return Param{}
		}
		n := new(big.Int).SetBytes(val[1:])
		if val[0] == 1 {
			n.Neg(n)
		}
		return IntParam(name, n)
	case TypeStr:
		return StrParam(name, string(val))
	case TypeBool:
		if len(val) != 1 || val[0] > 1 {
			d.err = errors.Wrapf(errors.ErrModel, "param %q: invalid bool", name)
			return Param{}
		}
		return BoolParam(name, val[0] == 1)
	case TypeAddress:
		if len(val) != quorum.AddressLength {
			d.err = errors.Wrapf(errors.ErrModel, "param %q: invalid address", name)
			return Param{}
		}
		return AddressParam(name, val)
	default:
		if len(val) == 0 {
			val = nil
		}
		return BytesParam(name, val)
	}
}

func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
