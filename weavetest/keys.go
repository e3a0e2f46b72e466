package weavetest

import (
	"sync/atomic"

	"github.com/iov-one/lockup"
	"github.com/iov-one/lockup/orm"
)

var condSeq uint64

// NewCondition returns a condition that is unique within the test binary.
func NewCondition() lockup.Condition {
	n := atomic.AddUint64(&condSeq, 1)
	return lockup.NewCondition("test", "seq", orm.EncodeSequence(int64(n)))
}

// NewAddress returns an address that is unique within the test binary.
func NewAddress() lockup.Address {
	return NewCondition().Address()
}
