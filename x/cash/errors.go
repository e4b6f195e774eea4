package cash

import (
	"github.com/iov-one/quorum/errors"
)

// Reserved codes 1300~1319
var (
	ErrUnknownKind = errors.Register(1300, "unknown contract kind")
)
