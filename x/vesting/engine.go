package vesting

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/x"
	"github.com/iov-one/lockup/x/utils"
)

// Engine implements all vesting operations. Every mutating operation is
// atomic: when db can be cache wrapped, its writes, the ledger update and
// the payout land together or not at all. Callers must not run mutating
// operations concurrently on the same store.
type Engine struct {
	store  *ScheduleStore
	ledger *FundsLedger
	token  TokenLink
	gate   AccessGate
	auth   x.Authenticator
	clock  lockup.Clock
}

// NewEngine returns an engine paying out in token, guarded by gate.
func NewEngine(token TokenLink, gate AccessGate, auth x.Authenticator, clock lockup.Clock) *Engine {
	return &Engine{
		store:  NewScheduleStore(),
		ledger: NewFundsLedger(token),
		token:  token,
		gate:   gate,
		auth:   auth,
		clock:  clock,
	}
}

// Store gives read access to the schedule store.
func (e *Engine) Store() *ScheduleStore { return e.store }

// Ledger gives read access to the funds ledger.
func (e *Engine) Ledger() *FundsLedger { return e.ledger }

func (e *Engine) atomic(ctx lockup.Context, db lockup.KVStore, fn func(db lockup.KVStore) error) error {
	return utils.NewSavepoint().Run(ctx, db, func(_ lockup.Context, db lockup.KVStore) error {
		return fn(db)
	})
}

func (e *Engine) requireAdmin(ctx lockup.Context, db lockup.ReadOnlyKVStore) error {
	ok, err := e.gate.IsAdministrator(ctx, db)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(errors.ErrUnauthorized, "administrator only")
	}
	return nil
}

func (e *Engine) requireNotPaused(db lockup.ReadOnlyKVStore) error {
	paused, err := e.gate.IsPaused(db)
	if err != nil {
		return err
	}
	if paused {
		return errors.Wrap(ErrPaused, "pool is paused")
	}
	return nil
}

// requireBeneficiaryOrAdmin lets the beneficiary and the administrator
// through. The administrator can only trigger a payout, the funds always
// go to the beneficiary.
func (e *Engine) requireBeneficiaryOrAdmin(ctx lockup.Context, db lockup.ReadOnlyKVStore, s *VestingSchedule) error {
	if e.auth.HasAddress(ctx, s.Beneficiary) {
		return nil
	}
	ok, err := e.gate.IsAdministrator(ctx, db)
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrap(errors.ErrUnauthorized, "beneficiary or administrator only")
	}
	return nil
}

func (e *Engine) pool(db lockup.ReadOnlyKVStore) (lockup.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return conf.Pool, nil
}

// CreateSchedule locks msg.Amount of the pool surplus for the beneficiary.
func (e *Engine) CreateSchedule(ctx lockup.Context, db lockup.KVStore, msg *CreateScheduleMsg) (lockup.Hex, error) {
	if err := e.requireAdmin(ctx, db); err != nil {
		return nil, err
	}
	if err := e.requireNotPaused(db); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	free, err := e.ledger.Withdrawable(db)
	if err != nil {
		return nil, err
	}
	if msg.Amount.Cmp(free) > 0 {
		return nil, errors.Wrapf(ErrInsufficientWithdrawableFunds, "want %s, %s available", msg.Amount, free)
	}

	sched := &VestingSchedule{
		Beneficiary: msg.Beneficiary,
		Start:       msg.Start,
		Cliff:       msg.Start + lockup.UnixTime(msg.CliffDuration),
		Duration:    msg.Duration,
		SlicePeriod: msg.SlicePeriod,
		Revocable:   msg.Revocable,
		AmountTotal: msg.Amount,
	}
	var id lockup.Hex
	err = e.atomic(ctx, db, func(db lockup.KVStore) error {
		var err error
		if id, err = e.store.Create(db, sched); err != nil {
			return err
		}
		return e.ledger.Reserve(db, msg.Amount)
	})
	if err != nil {
		return nil, err
	}
	lockup.Emit(ctx, ScheduleCreated{ID: id, Beneficiary: msg.Beneficiary, AmountTotal: msg.Amount})
	return id, nil
}

// ComputeReleasableAmount returns what the beneficiary can receive now.
// It is not affected by the pause flag.
func (e *Engine) ComputeReleasableAmount(db lockup.ReadOnlyKVStore, id []byte) (coin.Amount, error) {
	s, err := e.store.Get(db, id)
	if err != nil {
		return coin.Zero, err
	}
	return s.releasableAt(e.clock.Now()), nil
}

// Release pays amount of the vested tokens out to the beneficiary.
func (e *Engine) Release(ctx lockup.Context, db lockup.KVStore, id []byte, amount coin.Amount) error {
	if err := e.requireNotPaused(db); err != nil {
		return err
	}
	s, err := e.store.Get(db, id)
	if err != nil {
		return err
	}
	if err := e.requireBeneficiaryOrAdmin(ctx, db, s); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	releasable := s.releasableAt(e.clock.Now())
	if amount.Cmp(releasable) > 0 {
		return errors.Wrapf(ErrInsufficientReleasableAmount, "want %s, %s releasable", amount, releasable)
	}
	pool, err := e.pool(db)
	if err != nil {
		return err
	}

	err = e.atomic(ctx, db, func(db lockup.KVStore) error {
		s.Released = s.Released.Add(amount)
		if err := e.store.Save(db, s); err != nil {
			return err
		}
		if err := e.ledger.Release(db, amount); err != nil {
			return err
		}
		return e.token.Transfer(db, pool, s.Beneficiary, amount)
	})
	if err != nil {
		return err
	}
	lockup.Emit(ctx, TokensReleased{ID: s.ID, Beneficiary: s.Beneficiary, Amount: amount})
	return nil
}

// Revoke terminates a revocable schedule. What vested so far is paid out,
// the rest is unlocked and becomes pool surplus. Revocation is allowed
// while the pool is paused.
func (e *Engine) Revoke(ctx lockup.Context, db lockup.KVStore, id []byte) error {
	if err := e.requireAdmin(ctx, db); err != nil {
		return err
	}
	s, err := e.store.Get(db, id)
	if err != nil {
		return err
	}
	if !s.Revocable {
		return errors.Wrapf(ErrNotRevocable, "schedule %s", s.ID)
	}
	if s.Revoked {
		return errors.Wrapf(ErrAlreadyRevoked, "schedule %s", s.ID)
	}
	if s.IsSettled() {
		return errors.Wrapf(ErrNotRevocable, "schedule %s is fully released", s.ID)
	}
	pool, err := e.pool(db)
	if err != nil {
		return err
	}

	vested := s.releasableAt(e.clock.Now())
	var remainder coin.Amount
	err = e.atomic(ctx, db, func(db lockup.KVStore) error {
		if vested.IsPositive() {
			s.Released = s.Released.Add(vested)
			if err := e.token.Transfer(db, pool, s.Beneficiary, vested); err != nil {
				return errors.Wrap(err, "cannot pay out vested tokens")
			}
		}
		var err error
		if remainder, err = s.AmountTotal.Sub(s.Released); err != nil {
			return errors.Wrap(errors.ErrState, "released exceeds total")
		}
		// The whole locked part of the schedule leaves the ledger: the
		// vested part was paid out, the remainder is surplus again.
		if err := e.ledger.Release(db, vested.Add(remainder)); err != nil {
			return err
		}
		s.Revoked = true
		return e.store.Save(db, s)
	})
	if err != nil {
		return err
	}
	lockup.GetLogger(ctx).Debug("schedule revoked", "id", s.ID.String(), "vested", vested.String(), "remainder", remainder.String())
	lockup.Emit(ctx, ScheduleRevoked{ID: s.ID, Vested: vested, RemainderReturned: remainder})
	return nil
}

// SetPaused sets the pause flag. While paused no schedule can be created
// and no tokens released.
func (e *Engine) SetPaused(ctx lockup.Context, db lockup.KVStore, paused bool) error {
	if err := e.requireAdmin(ctx, db); err != nil {
		return err
	}
	err := e.atomic(ctx, db, func(db lockup.KVStore) error {
		return e.gate.SetPaused(db, paused)
	})
	if err != nil {
		return err
	}
	lockup.Emit(ctx, PausedChanged{Paused: paused})
	return nil
}

// Withdraw moves surplus out of the pool to the administrator.
func (e *Engine) Withdraw(ctx lockup.Context, db lockup.KVStore, amount coin.Amount) error {
	if err := e.requireAdmin(ctx, db); err != nil {
		return err
	}
	if !amount.IsPositive() {
		return errors.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	free, err := e.ledger.Withdrawable(db)
	if err != nil {
		return err
	}
	if amount.Cmp(free) > 0 {
		return errors.Wrapf(ErrInsufficientWithdrawableFunds, "want %s, %s available", amount, free)
	}
	admin, err := e.gate.Admin(db)
	if err != nil {
		return err
	}
	pool, err := e.pool(db)
	if err != nil {
		return err
	}
	if admin.Equals(pool) {
		return errors.Wrap(errors.ErrState, "administrator is the pool account")
	}
	err = e.atomic(ctx, db, func(db lockup.KVStore) error {
		return e.token.Transfer(db, pool, admin, amount)
	})
	if err != nil {
		return err
	}
	lockup.Emit(ctx, Withdrawn{To: admin, Amount: amount})
	return nil
}
