package ws

import (
	"sync"
	"time"
)

const (
	defaultBufferMaxLen = 500
	defaultBufferMaxAge = 10 * time.Minute
)

// EventBuffer keeps recent events for replay on reconnect. Events are stored
// in id order; anything older than maxAge or beyond maxLen is evicted.
type EventBuffer struct {
	mu     sync.RWMutex
	events []Event
	maxAge time.Duration
	maxLen int
	now    func() time.Time
}

// NewEventBuffer creates an EventBuffer with the given limits.
func NewEventBuffer(maxLen int, maxAge time.Duration) *EventBuffer {
	return &EventBuffer{
		maxAge: maxAge,
		maxLen: maxLen,
		now:    time.Now,
	}
}

// evictExpired drops events older than maxAge from the front. Caller holds mu.
func (eb *EventBuffer) evictExpired() {
	cutoff := eb.now().Add(-eb.maxAge)
	start := 0
	for start < len(eb.events) && eb.events[start].Time.Before(cutoff) {
		start++
	}
	if start > 0 {
		eb.events = append(eb.events[:0:0], eb.events[start:]...)
	}
}

// Append stores an event for potential replay, evicting old entries.
func (eb *EventBuffer) Append(event *Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.evictExpired()

	eb.events = append(eb.events, *event)
	if len(eb.events) > eb.maxLen {
		eb.events = append(eb.events[:0:0], eb.events[len(eb.events)-eb.maxLen:]...)
	}
}

// Since returns all unexpired events with ID > lastEventID, or nil.
func (eb *EventBuffer) Since(lastEventID uint64) []Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.evictExpired()

	buf := eb.events
	if len(buf) == 0 {
		return nil
	}

	// Binary search for the first event with ID > lastEventID.
	lo, hi := 0, len(buf)
	for lo < hi {
		mid := (lo + hi) / 2
		if buf[mid].ID <= lastEventID {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	if lo >= len(buf) {
		return nil
	}

	result := make([]Event, len(buf)-lo)
	copy(result, buf[lo:])

	return result
}

// OldestID returns the oldest buffered event ID, or 0 if empty.
func (eb *EventBuffer) OldestID() uint64 {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.evictExpired()

	if len(eb.events) == 0 {
		return 0
	}

	return eb.events[0].ID
}

// Len returns the number of buffered events.
func (eb *EventBuffer) Len() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	return len(eb.events)
}
