package cash

import (
	"github.com/iov-one/lockup/coin"
	"github.com/iov-one/lockup/orm"
)

const bucketName = "cash"

// Wallet holds the balance of a single address.
type Wallet struct {
	Balance coin.Amount `msgpack:"balance"`
}

// Validate is always successful, an Amount cannot be negative.
func (w *Wallet) Validate() error {
	return nil
}

// NewBucket returns the bucket holding all wallets, keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(bucketName, &Wallet{})
}
