/*
Package x contains the extensions of the quorum node.

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application.
The multi-party wallet lives in x/wallet, the native ledger it moves
value through lives in x/cash, and x/sigs turns transaction signatures
into the caller identity every extension authorizes against. x/token is
a sample token contract a wallet can hold and spend.
*/
package x
