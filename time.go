package lockup

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/iov-one/lockup/errors"
)

// UnixTime represents a point in time as POSIX time.
// Instead of using Go's time.Time that includes nanoseconds use primitive
// int64 type and seconds precision. All vesting arithmetic is done in whole
// seconds.
type UnixTime int64

// Time returns a time.Time structure that represents the same moment in time.
func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0)
}

// IsZero returns true if this time represents a zero value.
func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add modifies this UNIX time by given duration. This is compatible with
// time.Time.Add method.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// AsUnixTime converts given Time structure into its UNIX time representation.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

// UnmarshalJSON supports unmarshaling both as time.Time and from a number.
// Usually a number is used as a representation of this time in JSON but it is
// convinient to use a string format in configurations.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var unix int64
	if err := json.Unmarshal(raw, &unix); err == nil {
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = UnixTime(unix)
		return nil
	}

	var stdtime time.Time
	if err := json.Unmarshal(raw, &stdtime); err == nil {
		unix := UnixTime(stdtime.Unix())
		if unix < 0 {
			return errors.Wrap(errors.ErrInput, "time before epoch")
		}
		*t = unix
		return nil
	}

	return errors.Wrap(errors.ErrInput, "invalid time format")
}

// Validate returns an error if this time value is invalid.
func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "negative value")
	}
	return nil
}

// String returns the usual string representation of this time as the time.Time
// structure would.
func (t UnixTime) String() string {
	return t.Time().UTC().String()
}

// Clock is the source of the current time. Implementations must never go
// backwards.
type Clock interface {
	Now() UnixTime
}

// SystemClock reads the wall clock of the host. When the host clock is set
// back it keeps reporting the latest time it has seen.
type SystemClock struct {
	mu   sync.Mutex
	last UnixTime
	wall func() time.Time
}

var _ Clock = (*SystemClock)(nil)

// NewSystemClock returns a clock reading the host time.
func NewSystemClock() *SystemClock {
	return &SystemClock{wall: time.Now}
}

// Now returns the current host time in seconds.
func (c *SystemClock) Now() UnixTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := AsUnixTime(c.wall())
	if now < c.last {
		return c.last
	}
	c.last = now
	return now
}
