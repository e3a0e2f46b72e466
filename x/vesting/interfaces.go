package vesting

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
)

// TokenLink is the token ledger the pool holds its funds in.
type TokenLink interface {
	BalanceOf(db lockup.ReadOnlyKVStore, holder lockup.Address) (coin.Amount, error)
	Transfer(db lockup.KVStore, from, to lockup.Address, amount coin.Amount) error
}

// AccessGate knows the administrator of the pool and holds the pause flag.
type AccessGate interface {
	// IsAdministrator returns true if the administrator authorized the
	// call carried by the context.
	IsAdministrator(ctx lockup.Context, db lockup.ReadOnlyKVStore) (bool, error)
	// Admin returns the administrator address.
	Admin(db lockup.ReadOnlyKVStore) (lockup.Address, error)
	IsPaused(db lockup.ReadOnlyKVStore) (bool, error)
	SetPaused(db lockup.KVStore, paused bool) error
}
