package weavetest

import (
	"sync"
	"time"

	"github.com/iov-one/lockup"
)

// Clock is a lockup.Clock that only moves when told to.
type Clock struct {
	mu  sync.Mutex
	now lockup.UnixTime
}

// NewClock returns a clock stopped at given time.
func NewClock(now lockup.UnixTime) *Clock {
	return &Clock{now: now}
}

func (c *Clock) Now() lockup.UnixTime {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to given time. Going back is allowed.
func (c *Clock) Set(t lockup.UnixTime) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
