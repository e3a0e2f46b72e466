package vesting

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/gconf"
)

const ledgerPkg = "vesting.ledger"

type ledgerState struct {
	TotalLocked coin.Amount `msgpack:"total_locked"`
}

func (*ledgerState) Validate() error { return nil }

// FundsLedger tracks the amount locked by all live schedules and the
// surplus of the pool that is free to use.
type FundsLedger struct {
	token TokenLink
}

// NewFundsLedger returns a ledger of the pool held in given token.
func NewFundsLedger(token TokenLink) *FundsLedger {
	return &FundsLedger{token: token}
}

// TotalLocked returns the sum of what live schedules still hold.
func (l *FundsLedger) TotalLocked(db lockup.ReadOnlyKVStore) (coin.Amount, error) {
	var st ledgerState
	switch err := gconf.Load(db, ledgerPkg, &st); {
	case err == nil:
		return st.TotalLocked, nil
	case errors.ErrNotFound.Is(err):
		return coin.Zero, nil
	default:
		return coin.Zero, err
	}
}

// PoolBalance returns what the pool wallet holds.
func (l *FundsLedger) PoolBalance(db lockup.ReadOnlyKVStore) (coin.Amount, error) {
	conf, err := loadConf(db)
	if err != nil {
		return coin.Zero, err
	}
	return l.token.BalanceOf(db, conf.Pool)
}

// Withdrawable returns the part of the pool balance that no schedule
// holds. A pool holding less than the locked total is reported as
// ErrState, never as a negative amount.
func (l *FundsLedger) Withdrawable(db lockup.ReadOnlyKVStore) (coin.Amount, error) {
	balance, err := l.PoolBalance(db)
	if err != nil {
		return coin.Zero, err
	}
	locked, err := l.TotalLocked(db)
	if err != nil {
		return coin.Zero, err
	}
	free, err := balance.Sub(locked)
	if err != nil {
		return coin.Zero, errors.Wrapf(errors.ErrState, "pool holds %s, %s is locked", balance, locked)
	}
	return free, nil
}

// Reserve adds the amount to the locked total.
func (l *FundsLedger) Reserve(db lockup.KVStore, amount coin.Amount) error {
	locked, err := l.TotalLocked(db)
	if err != nil {
		return err
	}
	return gconf.Save(db, ledgerPkg, &ledgerState{TotalLocked: locked.Add(amount)})
}

// Release takes the amount off the locked total.
func (l *FundsLedger) Release(db lockup.KVStore, amount coin.Amount) error {
	locked, err := l.TotalLocked(db)
	if err != nil {
		return err
	}
	left, err := locked.Sub(amount)
	if err != nil {
		return errors.Wrapf(errors.ErrState, "cannot release %s, only %s is locked", amount, locked)
	}
	return gconf.Save(db, ledgerPkg, &ledgerState{TotalLocked: left})
}
