package app

import (
	"context"
	"testing"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/notify"
	"github.com/iov-one/lockup/store/leveldb"
	"github.com/iov-one/lockup/weavetest"
	"github.com/iov-one/lockup/weavetest/assert"
)

const (
	genesisAdmin = "hex:0101010101010101010101010101010101010101"
	genesisPool  = "hex:0202020202020202020202020202020202020202"
)

type testService struct {
	*Service
	auth   *weavetest.CtxAuth
	clock  *weavetest.Clock
	events *notify.Recorder
	admin  lockup.Address
	pool   lockup.Address
}

// newTestService returns a service over given store. When db is nil an in
// memory store is used. The genesis from testdata is loaded if the store
// was not initialized yet.
func newTestService(t testing.TB, db lockup.CommitKVStore) *testService {
	t.Helper()

	if db == nil {
		var err error
		db, err = leveldb.OpenInMemory(128)
		assert.Nil(t, err)
	}
	ts := &testService{
		auth:   &weavetest.CtxAuth{Key: "signers"},
		clock:  weavetest.NewClock(0),
		events: &notify.Recorder{},
		admin:  weavetest.ParseAddress(t, genesisAdmin),
		pool:   weavetest.ParseAddress(t, genesisPool),
	}
	ts.Service = NewService(db, ts.auth, ts.clock, ts.events)

	chainID, err := ts.ChainID()
	assert.Nil(t, err)
	if chainID == "" {
		gen, err := LoadGenesis("testdata/genesis.json")
		assert.Nil(t, err)
		assert.Nil(t, ts.InitGenesis(context.Background(), gen, Initializers()))
		ts.events.Reset()
	}
	return ts
}

func (ts *testService) as(signers ...lockup.Address) lockup.Context {
	return ts.auth.SetSigners(context.Background(), signers...)
}

func (ts *testService) balance(t testing.TB, addr lockup.Address) string {
	t.Helper()
	var res string
	err := ts.View(func(db lockup.ReadOnlyKVStore) error {
		amount, err := ts.Cash().BalanceOf(db, addr)
		res = amount.String()
		return err
	})
	assert.Nil(t, err)
	return res
}

func (ts *testService) version(t testing.TB) int64 {
	t.Helper()
	id, err := ts.CommitInfo()
	assert.Nil(t, err)
	return id.Version
}
