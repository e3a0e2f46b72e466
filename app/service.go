package app

import (
	"fmt"
	"sync"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/x"
	"github.com/iov-one/lockup/x/admin"
	"github.com/iov-one/lockup/x/cash"
	"github.com/iov-one/lockup/x/utils"
	"github.com/iov-one/lockup/x/vesting"
	"github.com/tendermint/tendermint/libs/log"
)

// Service runs vesting operations against a durable store.
//
// Every state change is executed inside its own savepoint and committed to
// disk before the call returns. Events emitted by an operation are handed
// to the sinks only after the commit succeeded. State changes are
// serialized, queries run concurrently with each other.
type Service struct {
	mu sync.RWMutex

	store  *CommitStore
	engine *vesting.Engine
	gate   *admin.Gate
	cash   cash.Controller
	sinks  []lockup.EventSink
	logger log.Logger
}

// NewService wires the vesting engine, the administration gate and the
// bundled token ledger on top of given store.
func NewService(store lockup.CommitKVStore, auth x.Authenticator, clock lockup.Clock, sinks ...lockup.EventSink) *Service {
	ctrl := cash.NewController(cash.NewBucket())
	gate := admin.NewGate(auth)
	return &Service{
		store:  NewCommitStore(store),
		engine: vesting.NewEngine(ctrl, gate, auth, clock),
		gate:   gate,
		cash:   ctrl,
		sinks:  sinks,
		logger: log.NewNopLogger(),
	}
}

// WithLogger sets the logger on the Service and returns it,
// to make it easy to chain in initialization
func (s *Service) WithLogger(logger log.Logger) *Service {
	s.logger = logger
	return s
}

// Engine gives access to the vesting engine. Use it only through View or
// Deliver.
func (s *Service) Engine() *vesting.Engine { return s.engine }

// Gate gives access to the administration state.
func (s *Service) Gate() *admin.Gate { return s.gate }

// Cash gives access to the token ledger.
func (s *Service) Cash() cash.Controller { return s.cash }

// Close releases the underlying store.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Close()
}

// CommitInfo returns the version and hash of the last commit.
func (s *Service) CommitInfo() (lockup.CommitID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.CommitInfo()
}

// ChainID returns the chain id stored at genesis, or an empty string if the
// service was not initialized yet.
func (s *Service) ChainID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadChainID(s.store.CommittedStore())
}

// InitGenesis stores the chain id and runs init over the genesis options.
// It can be done only once.
func (s *Service) InitGenesis(ctx lockup.Context, gen Genesis, init lockup.Initializer) error {
	return s.Deliver(ctx, "genesis", func(ctx lockup.Context, db lockup.KVStore) error {
		if err := saveChainID(db, gen.ChainID); err != nil {
			return err
		}
		return init.FromGenesis(gen.AppOptions, db)
	})
}

// View runs fn against the last committed state. Many views can run at
// the same time.
func (s *Service) View(fn func(db lockup.ReadOnlyKVStore) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.store.CommittedStore())
}

// Deliver executes op atomically, commits the result and publishes the
// events op emitted. Nothing is written and nothing is published if op
// fails or panics.
func (s *Service) Deliver(ctx lockup.Context, name string, op utils.Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = lockup.WithLogger(ctx, s.logger.With("op", name))
	ctx, events := lockup.WithEventBuffer(ctx)

	run := utils.Chain(op,
		utils.NewLogging(name),
		utils.NewRecovery(),
		utils.NewSavepoint(),
	)
	if err := run(ctx, s.store.DeliverStore()); err != nil {
		s.store.Discard()
		return err
	}

	id, err := s.store.Commit()
	if err != nil {
		s.store.Discard()
		return err
	}
	s.logger.Debug("commit synced",
		"version", id.Version,
		"hash", fmt.Sprintf("%X", id.Hash))

	s.publish(ctx, events.Events())
	return nil
}

// publish hands events to every sink. The state is already committed at
// this point, so a failing sink is only logged.
func (s *Service) publish(ctx lockup.Context, events []lockup.Event) {
	if len(events) == 0 {
		return
	}
	for _, sink := range s.sinks {
		if err := sink.Publish(ctx, events); err != nil {
			lockup.GetLogger(ctx).Error("cannot publish events", "err", err)
		}
	}
}

// CreateSchedule creates and funds a new vesting schedule.
func (s *Service) CreateSchedule(ctx lockup.Context, msg *vesting.CreateScheduleMsg) (lockup.Hex, error) {
	var id lockup.Hex
	err := s.Deliver(ctx, "create schedule", func(ctx lockup.Context, db lockup.KVStore) error {
		var err error
		id, err = s.engine.CreateSchedule(ctx, db, msg)
		return err
	})
	if err != nil {
		return nil, err
	}
	return id, nil
}

// Release pays amount of the vested tokens out to the beneficiary.
func (s *Service) Release(ctx lockup.Context, id []byte, amount coin.Amount) error {
	return s.Deliver(ctx, "release", func(ctx lockup.Context, db lockup.KVStore) error {
		return s.engine.Release(ctx, db, id, amount)
	})
}

// Revoke stops a revocable schedule.
func (s *Service) Revoke(ctx lockup.Context, id []byte) error {
	return s.Deliver(ctx, "revoke", func(ctx lockup.Context, db lockup.KVStore) error {
		return s.engine.Revoke(ctx, db, id)
	})
}

// SetPaused toggles the pause flag.
func (s *Service) SetPaused(ctx lockup.Context, paused bool) error {
	return s.Deliver(ctx, "set paused", func(ctx lockup.Context, db lockup.KVStore) error {
		return s.engine.SetPaused(ctx, db, paused)
	})
}

// Withdraw moves unreserved pool funds to the administrator.
func (s *Service) Withdraw(ctx lockup.Context, amount coin.Amount) error {
	return s.Deliver(ctx, "withdraw", func(ctx lockup.Context, db lockup.KVStore) error {
		return s.engine.Withdraw(ctx, db, amount)
	})
}

// TransferAdmin hands the administration over to another address.
func (s *Service) TransferAdmin(ctx lockup.Context, newAdmin lockup.Address) error {
	return s.Deliver(ctx, "transfer admin", func(ctx lockup.Context, db lockup.KVStore) error {
		return s.gate.TransferAdmin(ctx, db, newAdmin)
	})
}
