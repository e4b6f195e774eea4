package wallet

import (
	"math/big"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

// Methods of the wallet contract. The governance methods can only be
// called by the wallet itself, that is by executing a transaction that
// has the wallet as its destination.
const (
	MethodAddOwner          = "addWalletOwner"
	MethodRemoveOwner       = "removeWalletOwner"
	MethodReplaceOwner      = "replaceWalletOwner"
	MethodChangeRequirement = "changeRequirement"
	MethodTokenFallback     = "tokenFallback"
)

// AddOwner adds an owner to the wallet.
func (w *Wallet) AddOwner(ctx quorum.Context, db quorum.KVStore, caller, owner quorum.Address) error {
	if err := w.onlyWallet(caller); err != nil {
		return err
	}
	conf, err := loadConfiguration(db)
	if err != nil {
		return err
	}
	if err := w.registry.AddOwner(db, owner, conf.MaxOwners); err != nil {
		return err
	}
	w.emit(ctx, EventOwnerAddition, "owner", owner.String())
	return nil
}

// RemoveOwner removes an owner from the wallet. Confirmations of the
// removed owner stop counting toward the quorum.
func (w *Wallet) RemoveOwner(ctx quorum.Context, db quorum.KVStore, caller, owner quorum.Address) error {
	if err := w.onlyWallet(caller); err != nil {
		return err
	}
	if err := w.registry.RemoveOwner(db, owner); err != nil {
		return err
	}
	w.emit(ctx, EventOwnerRemoval, "owner", owner.String())
	return nil
}

// ReplaceOwner puts newOwner in place of owner.
func (w *Wallet) ReplaceOwner(ctx quorum.Context, db quorum.KVStore, caller, owner, newOwner quorum.Address) error {
	if err := w.onlyWallet(caller); err != nil {
		return err
	}
	if err := w.registry.ReplaceOwner(db, owner, newOwner); err != nil {
		return err
	}
	w.emit(ctx, EventOwnerRemoval, "owner", owner.String())
	w.emit(ctx, EventOwnerAddition, "owner", newOwner.String())
	return nil
}

// ChangeRequirement sets the number of confirmations a transaction needs.
// Pending transactions are evaluated against the new value the next time
// they are confirmed.
func (w *Wallet) ChangeRequirement(ctx quorum.Context, db quorum.KVStore, caller quorum.Address, required uint64) error {
	if err := w.onlyWallet(caller); err != nil {
		return err
	}
	if err := w.registry.SetThreshold(db, required); err != nil {
		return err
	}
	w.emit(ctx, EventRequirement, "required", formatUint(required))
	return nil
}

func (w *Wallet) onlyWallet(caller quorum.Address) error {
	if !caller.Equals(w.address) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s is not the wallet", caller)
	}
	return nil
}

// Invoke is the contract entry point of the wallet. Any value attached to
// the call was already moved to the wallet by the host.
//
// A call without a method is a deposit. Governance methods are routed to
// the corresponding wallet operation with sender as the caller.
func (w *Wallet) Invoke(ctx quorum.Context, db quorum.KVStore, sender quorum.Address, method string, args Params, amount *big.Int) error {
	switch method {
	case "":
		if amount != nil && amount.Sign() > 0 {
			w.emit(ctx, EventDeposit, "sender", sender.String(), "amount", amount.String())
		}
		return nil
	case MethodTokenFallback:
		from, err := args.Address("_from")
		if err != nil {
			return err
		}
		value, err := args.Int("_value")
		if err != nil {
			return err
		}
		var data []byte
		if _, ok := args.Get("_data"); ok {
			if data, err = args.Bytes("_data"); err != nil {
				return err
			}
		}
		if value.Sign() > 0 {
			w.emit(ctx, EventDepositToken,
				"token", sender.String(),
				"sender", from.String(),
				"amount", value.String(),
				"data", formatHex(data))
		}
		return nil
	case MethodAddOwner:
		owner, err := args.Address("_walletOwner")
		if err != nil {
			return err
		}
		return w.AddOwner(ctx, db, sender, owner)
	case MethodRemoveOwner:
		owner, err := args.Address("_walletOwner")
		if err != nil {
			return err
		}
		return w.RemoveOwner(ctx, db, sender, owner)
	case MethodReplaceOwner:
		owner, err := args.Address("_walletOwner")
		if err != nil {
			return err
		}
		newOwner, err := args.Address("_newWalletOwner")
		if err != nil {
			return err
		}
		return w.ReplaceOwner(ctx, db, sender, owner, newOwner)
	case MethodChangeRequirement:
		required, err := args.Int("_required")
		if err != nil {
			return err
		}
		if required.Sign() <= 0 || !required.IsUint64() {
			return errors.Wrapf(ErrInvalidQuorum, "required %s", required)
		}
		return w.ChangeRequirement(ctx, db, sender, required.Uint64())
	default:
		return errors.Wrapf(errors.ErrInput, "unknown method %q", method)
	}
}
