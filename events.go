package lockup

import (
	"context"
	"sync"
)

// Event is a notification emitted by a successful state change.
type Event interface {
	// EventName is a stable, dot separated name (ie. "vesting.created").
	EventName() string
}

// EventSink receives events once the state change that produced them is
// persisted.
type EventSink interface {
	Publish(ctx Context, events []Event) error
}

// EventBuffer collects events emitted while an operation runs. Events are
// not visible to sinks until the owner of the buffer flushes it, which only
// happens after the operation state was written.
type EventBuffer struct {
	mu     sync.Mutex
	events []Event
}

// WithEventBuffer returns a context carrying a fresh event buffer.
func WithEventBuffer(ctx Context) (Context, *EventBuffer) {
	buf := &EventBuffer{}
	return context.WithValue(ctx, contextKeyEvents, buf), buf
}

// Emit records an event in the buffer attached to the context. When the
// context carries no buffer the event is dropped.
func Emit(ctx Context, e Event) {
	buf, ok := ctx.Value(contextKeyEvents).(*EventBuffer)
	if !ok {
		return
	}
	buf.mu.Lock()
	buf.events = append(buf.events, e)
	buf.mu.Unlock()
}

// Events returns all events recorded so far, in emission order.
func (b *EventBuffer) Events() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	res := make([]Event, len(b.events))
	copy(res, b.events)
	return res
}

// Reset drops all recorded events.
func (b *EventBuffer) Reset() {
	b.mu.Lock()
	b.events = nil
	b.mu.Unlock()
}
