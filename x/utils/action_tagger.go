package utils

import (
	"github.com/iov-one/quorum"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag key holding the message path.
const ActionKey = "action"

// ActionTagger tags every delivered transaction with action=<msg path>,
// so clients can subscribe to one kind of message, such as every wallet
// submission, whatever wallet it targets. Check is left untouched.
type ActionTagger struct{}

var _ quorum.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver reads the message before calling next, so a transaction that
// cannot be decoded never reaches the handler.
func (ActionTagger) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
