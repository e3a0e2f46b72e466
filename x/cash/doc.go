/*
Package cash defines a simple ledger of a single fungible token.

There is no logic in the token, except that the balance of any wallet may
not go below zero. Thus, this implementation is referred to as cash.
Simple and safe. The vesting pool holds its funds in a cash wallet and
pays beneficiaries out of it.
*/
package cash
