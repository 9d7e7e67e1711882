// Package stream provides a cached multicast value shared by the hydration
// and reference-store feeds.
package stream

import "sync"

// Value holds the last computed snapshot of T and fans updates out to
// subscribers. Late subscribers receive the current snapshot immediately.
type Value[T any] struct {
	mu          sync.RWMutex
	current     T
	hasValue    bool
	subscribers map[chan T]struct{}
}

// NewValue constructs an empty Value.
func NewValue[T any]() *Value[T] {
	return &Value[T]{subscribers: make(map[chan T]struct{})}
}

// NewValueWith constructs a Value pre-populated with an initial snapshot.
func NewValueWith[T any](initial T) *Value[T] {
	v := NewValue[T]()
	v.Set(initial)
	return v
}

// Get returns the last snapshot and whether one has been set.
func (v *Value[T]) Get() (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current, v.hasValue
}

// Set replaces the snapshot and notifies all subscribers. Each subscriber
// channel is drained before the new snapshot is queued, so a slow consumer
// observes the latest value rather than a backlog.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = next
	v.hasValue = true

	for ch := range v.subscribers {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
}

// Subscribe registers a listener. The returned channel carries the current
// snapshot (if any) followed by every subsequent update; the cancel function
// removes the subscription.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	ch := make(chan T, 1)

	v.mu.Lock()
	v.subscribers[ch] = struct{}{}
	if v.hasValue {
		ch <- v.current
	}
	v.mu.Unlock()

	cancel := func() {
		v.mu.Lock()
		delete(v.subscribers, ch)
		v.mu.Unlock()
	}
	return ch, cancel
}

// SubscriberCount reports the number of active subscriptions.
func (v *Value[T]) SubscriberCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.subscribers)
}
