package cash

import (
	"github.com/iov-one/lockup/errors"
)

// Cash reserves 30~39 error codes
var (
	ErrInsufficientFunds = errors.RegisterIn(errors.ErrState, 30, "insufficient funds")
)
