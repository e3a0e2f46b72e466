package utils

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
)

// Recovery is a decorator to recover from panics in operations,
// so we can log them as errors
type Recovery struct{}

var _ Decorator = Recovery{}

// NewRecovery creates a Recovery decorator
func NewRecovery() Recovery {
	return Recovery{}
}

// Run turns panics into normal errors
func (Recovery) Run(ctx lockup.Context, db lockup.KVStore, next Op) (err error) {
	defer errors.Recover(&err)
	return next(ctx, db)
}
