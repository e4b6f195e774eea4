package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/quorum"
	"github.com/iov-one/quorum/errors"
)

var validPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the path
// of its message, such as wallet/submit.
type Router struct {
	routes map[string]quorum.Handler
}

var _ quorum.Registry = (*Router)(nil)
var _ quorum.Handler = (*Router)(nil)

func NewRouter() *Router {
	return &Router{routes: map[string]quorum.Handler{}}
}

// Handle registers h for path. It panics on a malformed path or on a path
// registered twice.
func (r *Router) Handle(path string, h quorum.Handler) {
	if !validPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("path %s registered twice", path))
	}
	r.routes[path] = h
}

func (r *Router) route(tx quorum.Tx) (quorum.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h, ok := r.routes[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", msg.Path())
	}
	return h, nil
}

func (r *Router) Check(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx quorum.Context, db quorum.KVStore, tx quorum.Tx) (*quorum.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}
