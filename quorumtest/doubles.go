package quorumtest

import "github.com/iov-one/quorum"

// calls counts the Check and Deliver calls received by a test double,
// failed calls included.
type calls struct {
	check, deliver int
}

func (c *calls) CheckCallCount() int   { return c.check }
func (c *calls) DeliverCallCount() int { return c.deliver }
func (c *calls) CallCount() int        { return c.check + c.deliver }

// Handler returns the configured result, or the configured error when it
// is set.
type Handler struct {
	calls

	CheckResult   quorum.CheckResult
	CheckErr      error
	DeliverResult quorum.DeliverResult
	DeliverErr    error
}

var _ quorum.Handler = (*Handler)(nil)

func (h *Handler) Check(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.CheckResult, error) {
	h.check++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(quorum.Context, quorum.KVStore, quorum.Tx) (*quorum.DeliverResult, error) {
	h.deliver++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// Decorator passes calls through to the next handler unless the
// configured error is set, in which case it fails without calling it.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ quorum.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Checker) (*quorum.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return &quorum.CheckResult{}, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx, next quorum.Deliverer) (*quorum.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return &quorum.DeliverResult{}, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate returns a handler running h behind d.
func Decorate(h quorum.Handler, d quorum.Decorator) quorum.Handler {
	return decorated{h: h, d: d}
}

type decorated struct {
	h quorum.Handler
	d quorum.Decorator
}

func (x decorated) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	return x.d.Check(ctx, db, tx, x.h)
}

func (x decorated) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	return x.d.Deliver(ctx, db, tx, x.h)
}
