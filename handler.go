package quorum

import (
	"encoding/json"
	"reflect"

	"github.com/iov-one/quorum/errors"
)

// Handler processes the messages routed to it. Check validates a
// transaction against the check state and allocates gas; Deliver applies
// it.
type Handler interface {
	Checker
	Deliverer
}

// Checker is the Check half of a Handler, passed to decorators as the next
// step of the stack.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer is the Deliver half of a Handler.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a Handler, for example to verify signatures or to
// roll back the writes of a failed delivery.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the application state of the genesis file, one raw JSON
// document per extension key.
type Options map[string]json.RawMessage

// ReadOptions decodes the document under key into obj. A missing key
// leaves obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "cannot read %q options: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// Msg is a request for a state transition. It carries no authentication:
// signers come with the Tx wrapping it.
type Msg interface {
	// Path routes the message to its handler. It matches
	// [0-9A-Za-z_\-/]+, for example wallet/submit.
	Path() string

	// Validate checks the message on its own, without any state.
	Validate() error
}

// Tx is a decoded transaction. Implementations add what decorators need,
// such as signatures.
type Tx interface {
	GetMsg() (Msg, error)
}

// GetPath returns the path of the message of tx, for logging.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// TxDecoder decodes the bytes of a transaction.
type TxDecoder func(txBytes []byte) (Tx, error)

// LoadMsg extracts the message from given transaction, validates it and
// assigns it to the destination, which must be a pointer to the message
// type the handler expects.
//
//   var msg SubmitMsg
//   if err := quorum.LoadMsg(tx, &msg); err != nil {
//   	return nil, err
//   }
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrMsg, "no message")
	}
	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}

	dst := reflect.ValueOf(destination)
	if dst.Kind() != reflect.Ptr || dst.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	src := reflect.ValueOf(msg)
	// The message can be stored as a value or a pointer. Destination is
	// always a pointer.
	if src.Type() == dst.Type() {
		src = src.Elem()
	}
	if !src.Type().AssignableTo(dst.Elem().Type()) {
		return errors.Wrapf(errors.ErrType, "want %s, got %T", dst.Elem().Type(), msg)
	}
	dst.Elem().Set(src)
	return nil
}
