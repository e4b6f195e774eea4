package token

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathIssueMsg    = "token/issue"
	pathTransferMsg = "token/transfer"
)

// IssueMsg creates a new token. The whole supply goes to the owner.
type IssueMsg struct {
	Owner         quorum.Address `json:"owner"`
	Name          string         `json:"name"`
	Symbol        string         `json:"symbol"`
	Decimals      uint32         `json:"decimals"`
	InitialSupply *big.Int       `json:"initial_supply"`
}

var _ quorum.Msg = (*IssueMsg)(nil)

func (IssueMsg) Path() string {
	return pathIssueMsg
}

func (m IssueMsg) Validate() error {
	info := Info{Name: m.Name, Symbol: m.Symbol, Decimals: m.Decimals}
	errs := info.Validate()
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.InitialSupply == nil || m.InitialSupply.Sign() < 0 {
		errs = errors.AppendField(errs, "InitialSupply", errors.Wrap(errors.ErrAmount, "must be zero or more"))
	}
	return errs
}

// TransferMsg moves tokens owned by the source.
type TransferMsg struct {
	Token       quorum.Address `json:"token"`
	Source      quorum.Address `json:"source"`
	Destination quorum.Address `json:"destination"`
	Value       *big.Int       `json:"value"`
	// Data is passed to the recipient contract, if any.
	Data []byte `json:"data,omitempty"`
}

var _ quorum.Msg = (*TransferMsg)(nil)

func (TransferMsg) Path() string {
	return pathTransferMsg
}

func (m TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Token", m.Token.Validate())
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Value == nil || m.Value.Sign() <= 0 {
		errs = errors.AppendField(errs, "Value", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errs
}

func (m TransferMsg) data() []byte {
	if len(m.Data) == 0 {
		return defaultData
	}
	return m.Data
}

// Msgs returns a prototype of every message handled by this package.
func Msgs() []quorum.Msg {
	return []quorum.Msg{&IssueMsg{}, &TransferMsg{}}
}
