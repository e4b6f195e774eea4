package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all extensions. Codes are part of the ABCI
// contract with clients and must never change.
var (
	// ErrUnauthorized means the signers are not allowed to do this.
	ErrUnauthorized = Register(2, "unauthorized")
	// ErrNotFound means the referenced entity does not exist.
	ErrNotFound = Register(3, "not found")
	// ErrMsg means the message cannot be decoded or handled.
	ErrMsg = Register(4, "invalid message")
	// ErrModel means a stored entity is invalid.
	ErrModel = Register(5, "invalid model")
	// ErrDuplicate means a unique key is already taken.
	ErrDuplicate = Register(6, "duplicate")
	// ErrHuman is a programming error: a code path that must not be reached.
	ErrHuman = Register(7, "coding error")
	// ErrImmutable means something fixed at creation was changed.
	ErrImmutable = Register(8, "cannot be modified")
	// ErrEmpty means a required value is missing.
	ErrEmpty = Register(9, "value is empty")
	// ErrState means the operation does not fit the current state.
	ErrState = Register(10, "invalid state")
	// ErrType means a value has an unexpected type.
	ErrType = Register(11, "invalid type")
	// ErrAmount means an amount is out of range.
	ErrAmount = Register(12, "invalid amount")
	// ErrInput means the input is malformed.
	ErrInput = Register(13, "invalid input")
	// ErrOverflow means a result does not fit its type.
	ErrOverflow = Register(14, "an operation cannot be completed due to value overflow")
	// ErrDatabase means the underlying storage failed.
	ErrDatabase = Register(15, "database")
	// ErrInsufficientAmount means a balance cannot cover a debit.
	ErrInsufficientAmount = Register(16, "insufficient amount")
	// ErrPanic wraps a recovered panic. Its message is never shown to
	// clients outside debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry holds every registered root error by code. Code 1 is reserved
// for errors that were never registered.
var registry = map[uint32]*Error{
	internalABCICode: nil,
}

// Register declares a root error. Codes are unique: registering one twice
// panics, so extensions call it from package level declarations only.
func Register(code uint32, description string) *Error {
	if _, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d is already registered", code))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a registered root error. Failures wrap one of them, which gives
// the client a stable code to act on.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is this root error or wraps it. A grouped error
// matches when any of its members does. A nil *Error matches nil errors
// only.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	return visit(err, func(x error) bool { return x == e })
}

// Wrap adds context to err and returns nil for a nil err, so it can close
// a function without a check. A stack trace is attached by the innermost
// Wrap only.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if !hasStack(err) {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to *err. It only works
// when deferred directly.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type causer interface {
	Cause() error
}

// unpacker is implemented by errors grouping several others.
type unpacker interface {
	Unpack() []error
}

// visit calls fn on err and on everything it wraps, following Cause and
// descending into groups, until fn returns true. It reports whether fn
// did.
func visit(err error, fn func(error) bool) bool {
	for err != nil {
		if fn(err) {
			return true
		}
		if g, ok := err.(unpacker); ok {
			for _, e := range g.Unpack() {
				if visit(e, fn) {
					return true
				}
			}
			return false
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

func hasStack(err error) bool {
	return visit(err, func(x error) bool {
		_, ok := x.(interface{ StackTrace() errors.StackTrace })
		return ok
	})
}

// isNilErr also treats a typed nil pointer as nil.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	return v.Kind() == reflect.Ptr && v.IsNil()
}
