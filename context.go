package quorum

import (
	"context"
	"fmt"
	"regexp"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block information and the logger from the
// application down to the handlers. Block values are set once per block;
// setting one again panics so that no handler can rewrite them.
type Context = context.Context

type contextKey int

const (
	contextKeyHeader contextKey = iota
	contextKeyHeight
	contextKeyChainID
	contextKeyLogger
)

var (
	// DefaultLogger is returned by GetLogger when no logger was set.
	DefaultLogger = log.NewNopLogger()

	// IsValidChainID accepts 6 to 20 letters, digits, dashes and
	// underscores.
	IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString
)

func (k contextKey) String() string {
	switch k {
	case contextKeyHeader:
		return "header"
	case contextKeyHeight:
		return "height"
	case contextKeyChainID:
		return "chain id"
	}
	return "logger"
}

// setOnce panics if ctx already holds a value for key.
func setOnce(ctx Context, key contextKey, value interface{}) Context {
	if ctx.Value(key) != nil {
		panic(fmt.Sprintf("%s already set", key))
	}
	return context.WithValue(ctx, key, value)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return setOnce(ctx, contextKeyHeader, header)
}

// GetHeader returns the header of the current block, if set.
func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(contextKeyHeader).(abci.Header)
	return h, ok
}

func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, contextKeyHeight, height)
}

// GetHeight returns the height of the current block, if set.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(contextKeyHeight).(int64)
	return h, ok
}

// WithChainID panics on an invalid chain id as well.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return setOnce(ctx, contextKeyChainID, chainID)
}

// GetChainID panics when no chain id was set. The application sets it
// before any handler runs.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(contextKeyChainID).(string)
	if !ok {
		panic("chain id not set")
	}
	return id
}

// WithLogger may be called any number of times.
func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// WithLogInfo returns ctx with a logger that adds keyvals to every line.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(contextKeyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
