/*
Package errors implements the error handling used across quorum.

Reuse the root errors declared in this package whenever possible and
register a custom error in an extension only when the failure is specific
to that extension (see x/wallet/errors.go). Every registered error carries
an ABCI code so a client can tell kinds of failures apart.

  err := errors.Wrapf(errors.ErrNotFound, "transaction %d", id)
  if errors.ErrNotFound.Is(err) {
  	...
  }

A stack trace is attached on the first Wrap. Wrapping multiple times keeps
the innermost trace only.
*/
package errors
