package sigs

import (
	"github.com/iov-one/quorum/errors"
)

// Reserved codes 120~129
var (
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)
