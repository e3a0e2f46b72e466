package vesting

import (
	"context"
	"testing"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/gconf"
	"github.com/iov-one/lockup/store"
	"github.com/iov-one/lockup/weavetest"
	"github.com/iov-one/lockup/weavetest/assert"
	"github.com/iov-one/lockup/x/admin"
	"github.com/iov-one/lockup/x/cash"
)

// fixture is a funded pool with an administrator, wired the same way the
// service does it.
type fixture struct {
	db     lockup.CacheableKVStore
	engine *Engine
	cash   cash.Controller
	clock  *weavetest.Clock
	auth   *weavetest.CtxAuth
	admin  lockup.Address
	pool   lockup.Address
}

func newFixture(t testing.TB, funds int64) *fixture {
	t.Helper()

	f := &fixture{
		db:    store.MemStore(),
		cash:  cash.NewController(cash.NewBucket()),
		clock: weavetest.NewClock(0),
		auth:  &weavetest.CtxAuth{Key: "signers"},
		admin: weavetest.NewAddress(),
		pool:  lockup.NewCondition("vesting", "pool", nil).Address(),
	}
	assert.Nil(t, gconf.Save(f.db, "admin", &admin.Configuration{Admin: f.admin}))
	assert.Nil(t, gconf.Save(f.db, pkgName, &Configuration{Pool: f.pool, Name: "Vesting Pool", Symbol: "VEST"}))
	if funds > 0 {
		assert.Nil(t, f.cash.IssueCoins(f.db, f.pool, coin.NewAmount(funds)))
	}
	f.engine = NewEngine(f.cash, admin.NewGate(f.auth), f.auth, f.clock)
	return f
}

// as returns a context signed by given addresses.
func (f *fixture) as(signers ...lockup.Address) lockup.Context {
	return f.auth.SetSigners(context.Background(), signers...)
}

// grant creates a schedule with the numbers used through the tests:
// cliff after one hour, a week long vesting in 30 second steps.
func (f *fixture) grant(t testing.TB, beneficiary lockup.Address, amount int64, revocable bool) lockup.Hex {
	t.Helper()
	id, err := f.engine.CreateSchedule(f.as(f.admin), f.db, &CreateScheduleMsg{
		Beneficiary:   beneficiary,
		Start:         0,
		CliffDuration: 3600,
		Duration:      604800,
		SlicePeriod:   30,
		Revocable:     revocable,
		Amount:        coin.NewAmount(amount),
	})
	assert.Nil(t, err)
	return id
}

func (f *fixture) releasable(t testing.TB, id lockup.Hex) string {
	t.Helper()
	amount, err := f.engine.ComputeReleasableAmount(f.db, id)
	assert.Nil(t, err)
	return amount.String()
}

func (f *fixture) balance(t testing.TB, addr lockup.Address) string {
	t.Helper()
	amount, err := f.cash.BalanceOf(f.db, addr)
	assert.Nil(t, err)
	return amount.String()
}

func (f *fixture) schedule(t testing.TB, id lockup.Hex) *VestingSchedule {
	t.Helper()
	s, err := f.engine.VestingSchedule(f.db, id)
	assert.Nil(t, err)
	return s
}

// assertConservation checks that the ledger agrees with the pool balance
// and with the schedules.
func (f *fixture) assertConservation(t testing.TB) {
	t.Helper()

	locked, err := f.engine.VestingSchedulesTotalAmount(f.db)
	assert.Nil(t, err)
	free, err := f.engine.Withdrawable(f.db)
	assert.Nil(t, err)
	balance, err := f.cash.BalanceOf(f.db, f.pool)
	assert.Nil(t, err)
	if !locked.Add(free).Equals(balance) {
		t.Fatalf("locked %s + withdrawable %s != pool balance %s", locked, free, balance)
	}

	ids, err := f.engine.AllIDs(f.db)
	assert.Nil(t, err)
	sum := coin.Zero
	for _, id := range ids {
		sum = sum.Add(f.schedule(t, id).Locked())
	}
	if !sum.Equals(locked) {
		t.Fatalf("schedules lock %s, ledger says %s", sum, locked)
	}
}
