package wallet

import (
	"github.com/iov-one/quorum/errors"
)

// Reserved codes 1200~1219
var (
	ErrInvalidQuorum    = errors.Register(1200, "invalid quorum")
	ErrInvalidValue     = errors.Register(1201, "invalid value")
	ErrMalformedParams  = errors.Register(1202, "malformed params")
	ErrEncodingTooLarge = errors.Register(1203, "encoding too large")
	ErrPageTooLarge     = errors.Register(1204, "page too large")

	ErrNoSuchTransaction = errors.Register(1205, "no such transaction")
	ErrAlreadyConfirmed  = errors.Register(1206, "already confirmed")
	ErrNotConfirmed      = errors.Register(1207, "not confirmed")
	ErrAlreadyExecuted   = errors.Register(1208, "already executed")
	ErrHasConfirmations  = errors.Register(1209, "has confirmations")
	ErrAlreadyOwner      = errors.Register(1210, "already an owner")
	ErrNotOwner          = errors.Register(1211, "not an owner")
	ErrReentrant         = errors.Register(1212, "transaction is being executed")
)
