package notify

import (
	"sync"

	"github.com/iov-one/lockup"
)

// Recorder keeps every published event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []lockup.Event
}

var _ lockup.EventSink = (*Recorder)(nil)

func (r *Recorder) Publish(ctx lockup.Context, events []lockup.Event) error {
	r.mu.Lock()
	r.events = append(r.events, events...)
	r.mu.Unlock()
	return nil
}

// Events returns a copy of all events recorded so far.
func (r *Recorder) Events() []lockup.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]lockup.Event, len(r.events))
	copy(res, r.events)
	return res
}

// Names returns the names of all events recorded so far.
func (r *Recorder) Names() []string {
	events := r.Events()
	names := make([]string, len(events))
	for i, e := range events {
		names[i] = e.EventName()
	}
	return names
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
