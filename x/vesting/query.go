package vesting

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
)

// Paused returns the pause flag.
func (e *Engine) Paused(db lockup.ReadOnlyKVStore) (bool, error) {
	return e.gate.IsPaused(db)
}

// Withdrawable returns the pool surplus not locked by any schedule.
func (e *Engine) Withdrawable(db lockup.ReadOnlyKVStore) (coin.Amount, error) {
	return e.ledger.Withdrawable(db)
}

// VestingSchedulesTotalAmount returns the amount locked by all schedules.
func (e *Engine) VestingSchedulesTotalAmount(db lockup.ReadOnlyKVStore) (coin.Amount, error) {
	return e.ledger.TotalLocked(db)
}

// HoldersVestingScheduleCount returns how many schedules the beneficiary
// received.
func (e *Engine) HoldersVestingScheduleCount(db lockup.ReadOnlyKVStore, beneficiary lockup.Address) (uint64, error) {
	return e.store.CountFor(db, beneficiary)
}

// ComputeVestingScheduleIDForAddressAndIndex returns the identifier of the
// index-th schedule of the beneficiary.
func (e *Engine) ComputeVestingScheduleIDForAddressAndIndex(db lockup.ReadOnlyKVStore, beneficiary lockup.Address, index uint64) (lockup.Hex, error) {
	return e.store.IDAt(db, beneficiary, index)
}

// VestingSchedulesCount returns the number of schedules ever created.
func (e *Engine) VestingSchedulesCount(db lockup.ReadOnlyKVStore) (uint64, error) {
	return e.store.Count(db)
}

// VestingIDAtIndex returns the identifier of the index-th schedule ever
// created.
func (e *Engine) VestingIDAtIndex(db lockup.ReadOnlyKVStore, index uint64) (lockup.Hex, error) {
	return e.store.IDAtGlobal(db, index)
}

// AllIDs returns identifiers of all schedules in creation order.
func (e *Engine) AllIDs(db lockup.ReadOnlyKVStore) ([]lockup.Hex, error) {
	return e.store.AllIDs(db)
}

// VestingSchedule returns the schedule with given id.
func (e *Engine) VestingSchedule(db lockup.ReadOnlyKVStore, id []byte) (*VestingSchedule, error) {
	return e.store.Get(db, id)
}

// VestingScheduleByAddressAndIndex returns the index-th schedule of the
// beneficiary.
func (e *Engine) VestingScheduleByAddressAndIndex(db lockup.ReadOnlyKVStore, beneficiary lockup.Address, index uint64) (*VestingSchedule, error) {
	id, err := e.store.IDAt(db, beneficiary, index)
	if err != nil {
		return nil, err
	}
	return e.store.Get(db, id)
}

// LastVestingScheduleForHolder returns the most recent schedule of the
// beneficiary.
func (e *Engine) LastVestingScheduleForHolder(db lockup.ReadOnlyKVStore, beneficiary lockup.Address) (*VestingSchedule, error) {
	count, err := e.store.CountFor(db, beneficiary)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.Wrapf(errors.ErrNotFound, "%s has no schedules", beneficiary)
	}
	return e.VestingScheduleByAddressAndIndex(db, beneficiary, count-1)
}

// PoolInfo describes the pool as a whole.
type PoolInfo struct {
	Name         string         `json:"name"`
	Symbol       string         `json:"symbol"`
	Pool         lockup.Address `json:"pool"`
	TotalSupply  coin.Amount    `json:"total_supply"`
	Balance      coin.Amount    `json:"balance"`
	TotalLocked  coin.Amount    `json:"total_locked"`
	Withdrawable coin.Amount    `json:"withdrawable"`
	Paused       bool           `json:"paused"`
}

// PoolInfo returns the pool metadata and its funding state. The pool does
// not issue a token of its own, its total supply is always zero.
func (e *Engine) PoolInfo(db lockup.ReadOnlyKVStore) (*PoolInfo, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	balance, err := e.token.BalanceOf(db, conf.Pool)
	if err != nil {
		return nil, err
	}
	locked, err := e.ledger.TotalLocked(db)
	if err != nil {
		return nil, err
	}
	free, err := e.ledger.Withdrawable(db)
	if err != nil {
		return nil, err
	}
	paused, err := e.gate.IsPaused(db)
	if err != nil {
		return nil, err
	}
	return &PoolInfo{
		Name:         conf.Name,
		Symbol:       conf.Symbol,
		Pool:         conf.Pool,
		TotalSupply:  coin.Zero,
		Balance:      balance,
		TotalLocked:  locked,
		Withdrawable: free,
		Paused:       paused,
	}, nil
}
