/*
Package quorum defines the interfaces shared by every part of the wallet
node: addresses, storage, context values, events and the handler plumbing
that routes messages to extensions.

The multi-party wallet itself lives in x/wallet. The packages under x/
provide the collaborators the wallet consumes (x/cash moves native value
and routes contract calls, x/sigs authenticates callers) and app wires it
all into an ABCI application.
*/
package quorum
