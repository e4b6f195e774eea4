package utils

import (
	"time"

	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes one line per transaction with its path and duration.
// Failures are errors. A delivered transaction is logged at info level
// and a checked one at debug level, so mempool traffic stays quiet.
type Logging struct{}

var _ quorum.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("", "err", err)
		return nil, err
	}
	logger.Debug(res.Log)
	return res, nil
}

func (Logging) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, start)
	if err != nil {
		logger.Error("", "err", err)
		return nil, err
	}
	logger.Info(res.Log, "events", len(res.Events))
	return res, nil
}

// txLogger returns the context logger tagged with the path of tx and the
// time spent since start, in microseconds.
func txLogger(ctx quorum.Context, tx quorum.Tx, start time.Time) log.Logger {
	return quorum.GetLogger(ctx).With(
		"path", quorum.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
}
