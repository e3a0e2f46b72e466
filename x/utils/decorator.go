package utils

import (
	"github.com/iov-one/lockup"
)

// Op is a unit of work executed against the store.
type Op func(ctx lockup.Context, db lockup.KVStore) error

// Decorator wraps an Op with additional behaviour.
type Decorator interface {
	Run(ctx lockup.Context, db lockup.KVStore, next Op) error
}

// Chain wraps op with all decorators. The first decorator is the outermost.
func Chain(op Op, decorators ...Decorator) Op {
	for i := len(decorators) - 1; i >= 0; i-- {
		op = wrap(decorators[i], op)
	}
	return op
}

func wrap(d Decorator, next Op) Op {
	return func(ctx lockup.Context, db lockup.KVStore) error {
		return d.Run(ctx, db, next)
	}
}
