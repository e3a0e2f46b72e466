package vesting

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/coin"
)

// ScheduleCreated is emitted for every new schedule.
type ScheduleCreated struct {
	ID          lockup.Hex     `json:"id"`
	Beneficiary lockup.Address `json:"beneficiary"`
	AmountTotal coin.Amount    `json:"amount_total"`
}

func (ScheduleCreated) EventName() string { return "vesting.schedule_created" }

// TokensReleased is emitted when tokens are paid out to a beneficiary.
type TokensReleased struct {
	ID          lockup.Hex     `json:"id"`
	Beneficiary lockup.Address `json:"beneficiary"`
	Amount      coin.Amount    `json:"amount"`
}

func (TokensReleased) EventName() string { return "vesting.tokens_released" }

// ScheduleRevoked is emitted when a schedule is terminated. Vested is what
// was paid out to the beneficiary during revocation, RemainderReturned is
// what went back to the pool surplus.
type ScheduleRevoked struct {
	ID                lockup.Hex  `json:"id"`
	Vested            coin.Amount `json:"vested"`
	RemainderReturned coin.Amount `json:"remainder_returned"`
}

func (ScheduleRevoked) EventName() string { return "vesting.schedule_revoked" }

// PausedChanged is emitted when the administrator sets the pause flag.
type PausedChanged struct {
	Paused bool `json:"paused"`
}

func (PausedChanged) EventName() string { return "vesting.paused_changed" }

// Withdrawn is emitted when the administrator takes surplus out of the
// pool.
type Withdrawn struct {
	To     lockup.Address `json:"to"`
	Amount coin.Amount    `json:"amount"`
}

func (Withdrawn) EventName() string { return "vesting.withdrawn" }
