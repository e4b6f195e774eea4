package token

import (
	"github.com/iov-one/quorum/errors"
)

// Reserved codes 1320~1339
var (
	ErrInvalidTokenName = errors.Register(1320, "invalid token name")
	ErrInvalidSymbol    = errors.Register(1321, "invalid token symbol")
	ErrInvalidDecimals  = errors.Register(1322, "invalid decimals")
	ErrOutOfBalance     = errors.Register(1323, "out of balance")
	ErrUnknownMethod    = errors.Register(1324, "unknown method")
)
