/*
Package token implements a fungible token contract.

A token keeps the balance of every holder. Transfers to an address with
a contract deployed notify that contract through its tokenFallback method,
which is how wallets learn about the tokens they receive.
*/
package token
