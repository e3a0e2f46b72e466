package vesting

import (
	"math"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/errors"
	"github.com/iov-one/lockup/orm"
)

// VestingSchedule is a single grant. Only Released and Revoked change after
// creation.
type VestingSchedule struct {
	ID          lockup.Hex      `json:"id" msgpack:"id"`
	Beneficiary lockup.Address  `json:"beneficiary" msgpack:"beneficiary"`
	Start       lockup.UnixTime `json:"start" msgpack:"start"`
	// Cliff is an absolute time, Start plus the cliff duration.
	Cliff lockup.UnixTime `json:"cliff" msgpack:"cliff"`
	// Duration and SlicePeriod are in seconds.
	Duration    int64       `json:"duration" msgpack:"duration"`
	SlicePeriod int64       `json:"slice_period" msgpack:"slice_period"`
	Revocable   bool        `json:"revocable" msgpack:"revocable"`
	AmountTotal coin.Amount `json:"amount_total" msgpack:"amount_total"`
	Released    coin.Amount `json:"released" msgpack:"released"`
	Revoked     bool        `json:"revoked" msgpack:"revoked"`
}

var _ orm.Model = (*VestingSchedule)(nil)

// Validate ensures the schedule is consistent.
func (s *VestingSchedule) Validate() error {
	if len(s.ID) != ScheduleIDLength {
		return errors.Wrapf(errors.ErrInput, "id must be %d bytes", ScheduleIDLength)
	}
	if err := s.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if err := validateTiming(s.Start, int64(s.Cliff-s.Start), s.Duration, s.SlicePeriod); err != nil {
		return err
	}
	if !s.AmountTotal.IsPositive() {
		return errors.Wrap(ErrInvalidAmount, "total amount must be positive")
	}
	if s.Released.Cmp(s.AmountTotal) > 0 {
		return errors.Wrapf(errors.ErrState, "released %s exceeds total %s", s.Released, s.AmountTotal)
	}
	return nil
}

// End returns the time at which the whole amount is vested.
func (s *VestingSchedule) End() lockup.UnixTime {
	return s.Start + lockup.UnixTime(s.Duration)
}

// Locked returns the part of the total still held for this schedule.
// Revoked schedules hold nothing.
func (s *VestingSchedule) Locked() coin.Amount {
	if s.Revoked {
		return coin.Zero
	}
	left, err := s.AmountTotal.Sub(s.Released)
	if err != nil {
		// Validate does not let released exceed the total.
		return coin.Zero
	}
	return left
}

// IsSettled returns true once the schedule cannot change anymore.
func (s *VestingSchedule) IsSettled() bool {
	return s.Revoked || s.Released.Equals(s.AmountTotal)
}

// vestedAt returns the amount vested at given time, ignoring revocation
// and what was released already.
func (s *VestingSchedule) vestedAt(now lockup.UnixTime) coin.Amount {
	if now < s.Cliff {
		return coin.Zero
	}
	if now >= s.End() {
		return s.AmountTotal
	}
	elapsed := int64(now - s.Start)
	vestedSeconds := (elapsed / s.SlicePeriod) * s.SlicePeriod
	return s.AmountTotal.MulDiv(vestedSeconds, s.Duration)
}

// releasableAt returns the amount the beneficiary may receive at given
// time.
func (s *VestingSchedule) releasableAt(now lockup.UnixTime) coin.Amount {
	if s.Revoked {
		return coin.Zero
	}
	left, err := s.vestedAt(now).Sub(s.Released)
	if err != nil {
		return coin.Zero
	}
	return left
}

// CreateScheduleMsg describes a schedule to be created.
type CreateScheduleMsg struct {
	Beneficiary lockup.Address  `json:"beneficiary"`
	Start       lockup.UnixTime `json:"start"`
	// CliffDuration is relative to Start, in seconds.
	CliffDuration int64       `json:"cliff_duration"`
	Duration      int64       `json:"duration"`
	SlicePeriod   int64       `json:"slice_period"`
	Revocable     bool        `json:"revocable"`
	Amount        coin.Amount `json:"amount"`
}

// Validate checks the parameters in the order callers expect the
// failures: amount, duration, cliff and slice period.
func (m *CreateScheduleMsg) Validate() error {
	if err := m.Beneficiary.Validate(); err != nil {
		return errors.Wrap(err, "beneficiary")
	}
	if !m.Amount.IsPositive() {
		return errors.Wrap(ErrInvalidAmount, "amount must be positive")
	}
	return validateTiming(m.Start, m.CliffDuration, m.Duration, m.SlicePeriod)
}

func validateTiming(start lockup.UnixTime, cliff, duration, slice int64) error {
	if err := start.Validate(); err != nil {
		return errors.Wrap(err, "start")
	}
	if duration <= 0 {
		return errors.Wrapf(ErrInvalidDuration, "duration %d must be positive", duration)
	}
	if int64(start) > math.MaxInt64-duration {
		return errors.Wrap(ErrInvalidDuration, "vesting ends too far in the future")
	}
	if cliff < 0 {
		return errors.Wrapf(ErrInvalidDuration, "negative cliff %d", cliff)
	}
	if duration < cliff {
		return errors.Wrapf(ErrDurationShorterThanCliff, "duration %d, cliff %d", duration, cliff)
	}
	if slice < 1 {
		return errors.Wrapf(ErrInvalidSlicePeriod, "slice period %d", slice)
	}
	return nil
}
