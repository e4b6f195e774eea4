/*
Package cash keeps the native balance of every account and routes calls to
the contracts deployed on the chain.

There is no logic in the balances, except that no balance may go below
zero. Thus, this implementation is referred to as cash. Simple and safe.

A contract is deployed at an address together with its kind. Calls to that
address are handled by the contract created by the factory registered for
that kind. The Ledger is the Host wallets move value through.
*/
package cash
