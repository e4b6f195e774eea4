package token

import (
	"math/big"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
)

const (
	maxDecimals = 18
)

var (
	isTokenName = regexp.MustCompile(`^[A-Za-z0-9 \-_:]{3,32}$`).MatchString
	isSymbol    = regexp.MustCompile(`^[A-Z]{2,8}$`).MatchString
)

// Info describes a token. The total supply is a big endian unsigned
// integer.
type Info struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Decimals    uint32 `json:"decimals"`
	TotalSupply []byte `json:"total_supply"`
}

var _ orm.Model = (*Info)(nil)

func (i *Info) Validate() error {
	var errs error
	if !isTokenName(i.Name) {
		errs = errors.AppendField(errs, "Name", errors.Wrapf(ErrInvalidTokenName, "%q", i.Name))
	}
	if !isSymbol(i.Symbol) {
		errs = errors.AppendField(errs, "Symbol", errors.Wrapf(ErrInvalidSymbol, "%q", i.Symbol))
	}
	if i.Decimals > maxDecimals {
		errs = errors.AppendField(errs, "Decimals", errors.Wrapf(ErrInvalidDecimals, "%d > %d", i.Decimals, maxDecimals))
	}
	return errs
}

// Holding is the balance of one holder of one token.
type Holding struct {
	Balance []byte `json:"balance"`
}

var _ orm.Model = (*Holding)(nil)

func (h *Holding) Validate() error {
	return nil
}

var (
	infos    = orm.NewBucket("token")
	holdings = orm.NewBucket("token_bal")
	tokenID  = infos.Sequence("id")
)

// holdingKey groups the balances of a token together, so that all of
// them can be listed with a prefix query on the token address.
func holdingKey(token, holder quorum.Address) []byte {
	key := make([]byte, 0, len(token)+len(holder))
	return append(append(key, token...), holder...)
}

// RegisterQuery will register the token descriptions as "/tokens" and the
// balances as "/tokens/balances". Balances are keyed by the token address
// followed by the holder address.
func RegisterQuery(qr quorum.QueryRouter) {
	infos.Register("tokens", qr)
	holdings.Register("tokens/balances", qr)
}

func amountOf(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
