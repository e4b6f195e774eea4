package app

import (
	"reflect"

	"github.com/iov-one/quorum"
)

// Decorators is a stack of decorators waiting for the handler they wrap.
// The first decorator runs first.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//		utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
type Decorators []quorum.Decorator

// ChainDecorators starts a stack. Nil decorators are skipped, so optional
// ones can be passed unconditionally.
func ChainDecorators(ds ...quorum.Decorator) Decorators {
	return Decorators(nil).Chain(ds...)
}

// Chain returns the stack extended with ds.
func (d Decorators) Chain(ds ...quorum.Decorator) Decorators {
	out := make(Decorators, 0, len(d)+len(ds))
	out = append(out, d...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			out = append(out, dec)
		}
	}
	return out
}

func isNilDecorator(d quorum.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack with h.
func (d Decorators) WithHandler(h quorum.Handler) quorum.Handler {
	for i := len(d) - 1; i >= 0; i-- {
		h = layer{dec: d[i], next: h}
	}
	return h
}

// layer runs one decorator in front of the rest of the stack.
type layer struct {
	dec  quorum.Decorator
	next quorum.Handler
}

func (l layer) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return l.dec.Check(ctx, db, tx, l.next)
}

func (l layer) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return l.dec.Deliver(ctx, db, tx, l.next)
}
