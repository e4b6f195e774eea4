package quorum

import (
	"github.com/iov-one/quorum/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successful delivery. Failures are
// reported as errors, never as a result.
type DeliverResult struct {
	// Data is returned to the client, for example the id of a submitted
	// wallet transaction.
	Data []byte
	Log  string
	// Events are emitted in order and indexed as tags.
	Events []Event
	// Tags are indexed as they are, ahead of the event tags.
	Tags    []common.KVPair
	GasUsed int64
}

// ToABCI flattens the result, events included, into a DeliverTx response.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	tags := d.Tags
	for _, e := range d.Events {
		tags = append(tags, e.Tags()...)
	}
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is the outcome of a successful check.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the gas the transaction may use once delivered.
	GasAllocated int64
}

// NewCheck returns a check result allocating gas.
func NewCheck(gas int64, log string) *CheckResult {
	return &CheckResult{GasAllocated: gas, Log: log}
}

func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverResponse builds the DeliverTx response for the outcome of a
// handler. Errors without a registered code are redacted unless debug is
// set.
func DeliverResponse(res *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		code, log := failure("deliver", err, debug)
		return abci.ResponseDeliverTx{Code: code, Log: log}
	}
	return res.ToABCI()
}

// CheckResponse builds the CheckTx response for the outcome of a handler.
func CheckResponse(res *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		code, log := failure("check", err, debug)
		return abci.ResponseCheckTx{Code: code, Log: log}
	}
	return res.ToABCI()
}

func failure(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + phase + " tx: " + log
}
