package vesting

import (
	"testing"

	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/weavetest/assert"
)

func TestFundsLedger(t *testing.T) {
	f := newFixture(t, 1000)
	l := f.engine.Ledger()

	locked, err := l.TotalLocked(f.db)
	assert.Nil(t, err)
	assert.Equal(t, "0", locked.String())

	assert.Nil(t, l.Reserve(f.db, coin.NewAmount(600)))
	assert.Nil(t, l.Reserve(f.db, coin.NewAmount(100)))
	free, err := l.Withdrawable(f.db)
	assert.Nil(t, err)
	assert.Equal(t, "300", free.String())

	assert.Nil(t, l.Release(f.db, coin.NewAmount(200)))
	locked, err = l.TotalLocked(f.db)
	assert.Nil(t, err)
	assert.Equal(t, "500", locked.String())

	assert.IsErr(t, errors.ErrState, l.Release(f.db, coin.NewAmount(501)))

	balance, err := l.PoolBalance(f.db)
	assert.Nil(t, err)
	assert.Equal(t, "1000", balance.String())
}
