package cash

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/x/wallet"
)

const (
	pathSendMsg = "cash/send"
	pathCallMsg = "cash/call"

	maxMemoSize int = 128
)

// SendMsg moves value from the source account. Sending to a contract
// invokes its fallback.
type SendMsg struct {
	Source      quorum.Address `json:"source"`
	Destination quorum.Address `json:"destination"`
	Amount      *big.Int       `json:"amount"`
	Memo        string         `json:"memo,omitempty"`
}

var _ quorum.Msg = (*SendMsg)(nil)

func (SendMsg) Path() string {
	return pathSendMsg
}

func (m SendMsg) Validate() error {
	var errs error
	if m.Amount == nil || m.Amount.Sign() <= 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if len(m.Memo) > maxMemoSize {
		errs = errors.AppendField(errs, "Memo", errors.Wrap(errors.ErrInput, "too long"))
	}
	return errs
}

// CallMsg invokes a contract method on behalf of the source account,
// sending the amount along.
type CallMsg struct {
	Source   quorum.Address `json:"source"`
	Contract quorum.Address `json:"contract"`
	// Method is empty to invoke the fallback.
	Method string        `json:"method"`
	Params wallet.Params `json:"params"`
	Amount *big.Int      `json:"amount"`
}

var _ quorum.Msg = (*CallMsg)(nil)

func (CallMsg) Path() string {
	return pathCallMsg
}

func (m CallMsg) Validate() error {
	var errs error
	if m.Amount != nil && m.Amount.Sign() < 0 {
		errs = errors.AppendField(errs, "Amount", errors.Wrap(errors.ErrAmount, "negative"))
	}
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Contract", m.Contract.Validate())
	errs = errors.AppendField(errs, "Params", m.Params.Validate())
	return errs
}

func (m CallMsg) amount() *big.Int {
	if m.Amount == nil {
		return new(big.Int)
	}
	return m.Amount
}

// Msgs returns a prototype of every message handled by this package.
func Msgs() []quorum.Msg {
	return []quorum.Msg{&SendMsg{}, &CallMsg{}}
}
