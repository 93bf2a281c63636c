// ABOUTME: Observers subscribe a view to one key and receive every state change.
// ABOUTME: A closed observer never receives another callback, even from in-flight requests.
package query

import (
	"sync/atomic"
)

// Observer is a mounted subscription to one key.
type Observer[T any] struct {
	c   *Client
	key Key
	id  uint64

	closed   atomic.Bool
	onChange func(State[T])
}

// Observe subscribes onChange to key and fetches with fn if the entry is
// idle, failed or stale. onChange is called with the current state
// immediately and again after each transition.
func Observe[T any](c *Client, key Key, fn FetchFunc[T], onChange func(State[T])) *Observer[T] {
	o := &Observer[T]{c: c, key: append(Key(nil), key...), onChange: onChange}

	c.mu.Lock()
	e := c.entryLocked(key)
	e.fetch = erase(fn)
	c.nextID++
	o.id = c.nextID
	e.observers[o.id] = o.deliver

	if c.freshLocked(e) || (e.fetching && e.flightGen == e.gen) {
		c.publishAndUnlock(e, o.deliver)
		return o
	}
	c.startLocked(e)
	c.publishAndUnlock(e, nil)
	return o
}

func (o *Observer[T]) deliver(s snapshot) {
	if o.closed.Load() || o.onChange == nil {
		return
	}
	o.onChange(toState[T](o.key, s))
}

// State returns the current state of the observed key.
func (o *Observer[T]) State() State[T] {
	return Peek[T](o.c, o.key)
}

// Key returns the observed key.
func (o *Observer[T]) Key() Key { return o.key }

// Close unsubscribes. Responses that arrive afterwards still update the
// cache but are not delivered to this observer.
func (o *Observer[T]) Close() {
	o.closed.Store(true)

	o.c.mu.Lock()
	defer o.c.mu.Unlock()
	if e, ok := o.c.entries[o.key.id()]; ok {
		delete(e.observers, o.id)
	}
}
