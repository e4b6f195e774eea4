package wallet

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

const (
	pathCreateMsg  = "wallet/create"
	pathSubmitMsg  = "wallet/submit"
	pathConfirmMsg = "wallet/confirm"
	pathRevokeMsg  = "wallet/revoke"
	pathCancelMsg  = "wallet/cancel"
)

// CreateMsg installs a new wallet.
type CreateMsg struct {
	// Owners is a comma separated list of addresses.
	Owners   string `json:"owners"`
	Required uint64 `json:"required"`
}

var _ quorum.Msg = (*CreateMsg)(nil)

func (CreateMsg) Path() string {
	return pathCreateMsg
}

func (m CreateMsg) Validate() error {
	owners, err := ParseOwners(m.Owners)
	if err != nil {
		return errors.Field("Owners", err, "invalid owner")
	}
	if len(owners) == 0 {
		return errors.Field("Owners", errors.ErrEmpty, "no owners")
	}
	if m.Required == 0 || m.Required > uint64(len(owners)) {
		return errors.Field("Required", ErrInvalidQuorum, "%d required of %d owners", m.Required, len(owners))
	}
	return nil
}

// SubmitMsg proposes a transaction to the owners of a wallet.
type SubmitMsg struct {
	Wallet      quorum.Address `json:"wallet"`
	Destination quorum.Address `json:"destination"`
	Method      string         `json:"method"`
	Params      Params         `json:"params"`
	// Value is the amount sent with the transaction. No value is zero.
	Value       *big.Int `json:"value"`
	Description string   `json:"description"`
}

var _ quorum.Msg = (*SubmitMsg)(nil)

func (SubmitMsg) Path() string {
	return pathSubmitMsg
}

func (m SubmitMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Wallet", m.Wallet.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Value != nil && m.Value.Sign() < 0 {
		errs = errors.AppendField(errs, "Value", ErrInvalidValue)
	}
	errs = errors.AppendField(errs, "Params", m.Params.Validate())
	return errs
}

func (m SubmitMsg) value() *big.Int {
	if m.Value == nil {
		return new(big.Int)
	}
	return m.Value
}

// ConfirmMsg approves a pending transaction.
type ConfirmMsg struct {
	Wallet        quorum.Address `json:"wallet"`
	TransactionID uint64         `json:"transaction_id"`
}

var _ quorum.Msg = (*ConfirmMsg)(nil)

func (ConfirmMsg) Path() string {
	return pathConfirmMsg
}

func (m ConfirmMsg) Validate() error {
	return errors.Field("Wallet", m.Wallet.Validate(), "invalid wallet")
}

// RevokeMsg withdraws a confirmation.
type RevokeMsg struct {
	Wallet        quorum.Address `json:"wallet"`
	TransactionID uint64         `json:"transaction_id"`
}

var _ quorum.Msg = (*RevokeMsg)(nil)

func (RevokeMsg) Path() string {
	return pathRevokeMsg
}

func (m RevokeMsg) Validate() error {
	return errors.Field("Wallet", m.Wallet.Validate(), "invalid wallet")
}

// CancelMsg deletes a transaction that has no confirmations.
type CancelMsg struct {
	Wallet        quorum.Address `json:"wallet"`
	TransactionID uint64         `json:"transaction_id"`
}

var _ quorum.Msg = (*CancelMsg)(nil)

func (CancelMsg) Path() string {
	return pathCancelMsg
}

func (m CancelMsg) Validate() error {
	return errors.Field("Wallet", m.Wallet.Validate(), "invalid wallet")
}

// Msgs returns an empty instance of every message of this extension.
func Msgs() []quorum.Msg {
	return []quorum.Msg{
		&CreateMsg{},
		&SubmitMsg{},
		&ConfirmMsg{},
		&RevokeMsg{},
		&CancelMsg{},
	}
}
