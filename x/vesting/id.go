package vesting

import (
	"encoding/binary"

	"github.com/iov-one/lockup"
	"github.com/minio/sha256-simd"
)

// ScheduleIDLength is the size of every schedule identifier.
const ScheduleIDLength = sha256.Size

// ScheduleID returns the identifier of the schedule created for the
// beneficiary when it already had index schedules.
func ScheduleID(beneficiary lockup.Address, index uint64) lockup.Hex {
	var idx [8]byte
	binary.BigEndian.PutUint64(idx[:], index)

	h := sha256.New()
	h.Write([]byte("vesting/schedule/"))
	h.Write(beneficiary)
	h.Write(idx[:])
	return h.Sum(nil)
}
