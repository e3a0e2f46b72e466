package utils

import (
	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct{}

var _ Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// Run executes next on a cache wrap of db. The cache is written only if
// next succeeds. A panic discards the cache before it propagates.
func (Savepoint) Run(ctx lockup.Context, db lockup.KVStore, next Op) error {
	cstore, ok := db.(lockup.CacheableKVStore)
	if !ok {
		return next(ctx, db)
	}

	cache := cstore.CacheWrap()
	done := false
	defer func() {
		if !done {
			cache.Discard()
		}
	}()

	if err := next(ctx, cache); err != nil {
		return err
	}
	done = true
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}
