/*
Package wallet implements a multi-party wallet.

A wallet is owned by a set of addresses. Any owner can submit a
transaction: a value transfer or a call of a contract method. The
transaction is executed once the number of owners that confirmed it
reaches the required threshold. Owners can revoke their confirmation
until then, and a transaction that nobody confirms can be cancelled.

The owner set and the threshold can only be changed by the wallet itself,
which means by a transaction sent to the wallet address and approved like
any other.

A failed execution does not fail the confirmation that triggered it. The
transaction stays pending and an ExecutionFailure event is emitted.
*/
package wallet
