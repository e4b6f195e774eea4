package wallet

import (
	"encoding/hex"
	"math/big"
	"strconv"

	"github.com/iov-one/quorum"
)

// Event types emitted by a wallet. Every event carries the wallet address
// under the "wallet" attribute.
const (
	EventSubmission       = "Submission"
	EventConfirmation     = "Confirmation"
	EventRevocation       = "Revocation"
	EventCancellation     = "Cancellation"
	EventExecution        = "Execution"
	EventExecutionFailure = "ExecutionFailure"
	EventOwnerAddition    = "WalletOwnerAddition"
	EventOwnerRemoval     = "WalletOwnerRemoval"
	EventRequirement      = "RequirementChange"
	EventDeposit          = "Deposit"
	EventDepositToken     = "DepositToken"
)

func (w *Wallet) emit(ctx quorum.Context, typ string, keyvals ...string) {
	attrs := append([]string{"wallet", w.address.String()}, keyvals...)
	quorum.EmitEvent(ctx, quorum.NewEvent(typ, attrs...))
}

func formatUint(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func formatAmount(n *big.Int) string {
	if n == nil {
		return "0"
	}
	return n.String()
}

func formatHex(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
