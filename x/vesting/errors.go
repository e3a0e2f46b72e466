package vesting

import (
	"github.com/iov-one/lockup/errors"
)

// Vesting reserves 40~49 error codes
var (
	ErrInvalidAmount            = errors.RegisterIn(errors.ErrInput, 40, "invalid amount")
	ErrInvalidDuration          = errors.RegisterIn(errors.ErrInput, 41, "invalid duration")
	ErrDurationShorterThanCliff = errors.RegisterIn(errors.ErrInput, 42, "duration shorter than cliff")
	ErrInvalidSlicePeriod       = errors.RegisterIn(errors.ErrInput, 43, "invalid slice period")

	ErrPaused                        = errors.RegisterIn(errors.ErrState, 44, "paused")
	ErrNotRevocable                  = errors.RegisterIn(errors.ErrState, 45, "not revocable")
	ErrAlreadyRevoked                = errors.RegisterIn(errors.ErrState, 46, "already revoked")
	ErrInsufficientReleasableAmount  = errors.RegisterIn(errors.ErrState, 47, "insufficient releasable amount")
	ErrInsufficientWithdrawableFunds = errors.RegisterIn(errors.ErrState, 48, "insufficient withdrawable funds")

	ErrIndexOutOfRange = errors.RegisterIn(errors.ErrNotFound, 49, "index out of range")
)
