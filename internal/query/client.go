// ABOUTME: Keyed query cache with request deduplication and stale-response discard.
// ABOUTME: Observers are notified on every state change of the keys they watch.
package query

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"
)

// FetchFunc loads the value for one key.
type FetchFunc[T any] func(ctx context.Context) (T, error)

type fetchFn func(ctx context.Context) (any, error)

func erase[T any](fn FetchFunc[T]) fetchFn {
	return func(ctx context.Context) (any, error) {
		v, err := fn(ctx)
		return v, err
	}
}

func cast[T any](key Key, v any) (T, error) {
	var zero T
	if v == nil {
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("query %s holds %T, not %T", key, v, zero)
	}
	return t, nil
}

// result is what a flight hands to its waiters.
type result struct {
	data       any
	err        error
	superseded bool
}

type entry struct {
	key       Key
	status    Status
	data      any
	hasData   bool
	err       error
	updatedAt time.Time
	stale     bool

	// gen increases on every invalidation or forced refetch. A flight
	// started at an older generation never writes its result.
	gen       uint64
	fetch     fetchFn
	fetching  bool
	flightGen uint64
	flightKey string
	flightFn  func() (any, error)
	attempt   uint64

	observers map[uint64]func(snapshot)
}

func (e *entry) snapshot() snapshot {
	return snapshot{
		status:    e.status,
		data:      e.data,
		hasData:   e.hasData,
		err:       e.err,
		updatedAt: e.updatedAt,
		stale:     e.stale,
	}
}

// Client is the shared query cache. All views and commands of one process
// use the same Client so they see the same server state.
//
// Listeners passed to Observe are called outside the cache lock and may
// call back into the Client.
type Client struct {
	mu      sync.Mutex
	entries map[string]*entry
	flights singleflight.Group
	nextID  uint64

	qmu      sync.Mutex
	queue    []delivery
	draining bool

	ctx       context.Context
	cancel    context.CancelFunc
	staleTime time.Duration
	now       func() time.Time
	logger    *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithStaleTime keeps successful results fresh for d. Zero means every
// entry is stale as soon as another fetch is requested after invalidation.
func WithStaleTime(d time.Duration) Option {
	return func(c *Client) { c.staleTime = d }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithContext sets the parent context for background refetches.
func WithContext(ctx context.Context) Option {
	return func(c *Client) { c.ctx = ctx }
}

// New creates an empty cache.
func New(opts ...Option) *Client {
	c := &Client{
		entries: make(map[string]*entry),
		ctx:     context.Background(),
		now:     time.Now,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ctx, c.cancel = context.WithCancel(c.ctx)
	return c
}

// Close cancels in-flight fetches. Their results are discarded.
func (c *Client) Close() {
	c.cancel()
}

func (c *Client) entryLocked(key Key) *entry {
	id := key.id()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{
			key:       append(Key(nil), key...),
			observers: make(map[uint64]func(snapshot)),
		}
		c.entries[id] = e
	}
	return e
}

func (c *Client) freshLocked(e *entry) bool {
	if e.status != StatusSuccess || e.stale {
		return false
	}
	if c.staleTime > 0 && c.now().Sub(e.updatedAt) > c.staleTime {
		return false
	}
	return true
}

// startLocked begins a flight for the entry's current generation or joins
// the one already running.
func (c *Client) startLocked(e *entry) <-chan singleflight.Result {
	if e.fetching && e.flightGen == e.gen {
		dedupedTotal.Inc()
		return c.flights.DoChan(e.flightKey, e.flightFn)
	}

	e.attempt++
	e.fetching = true
	e.flightGen = e.gen
	e.status = StatusLoading
	e.flightKey = fmt.Sprintf("%s\x00#%d.%d", e.key.id(), e.gen, e.attempt)

	gen, fetch := e.gen, e.fetch
	e.flightFn = func() (any, error) {
		return c.land(e, gen, fetch), nil
	}
	c.logger.Debug("query fetch", "key", e.key.String(), "generation", gen)
	return c.flights.DoChan(e.flightKey, e.flightFn)
}

// land runs the fetch and records its result if the generation it was
// started for is still current.
func (c *Client) land(e *entry, gen uint64, fetch fetchFn) result {
	data, err := fetch(c.ctx)

	c.mu.Lock()
	if e.gen != gen || c.entries[e.key.id()] != e {
		c.mu.Unlock()
		fetchesTotal.WithLabelValues(e.key.String(), "superseded").Inc()
		c.logger.Debug("discarding superseded response", "key", e.key.String(), "generation", gen)
		return result{superseded: true}
	}

	e.fetching = false
	if err != nil {
		e.status = StatusError
		e.err = err
		fetchesTotal.WithLabelValues(e.key.String(), "error").Inc()
		c.logger.Debug("query failed", "key", e.key.String(), "err", err)
	} else {
		e.status = StatusSuccess
		e.data = data
		e.hasData = true
		e.err = nil
		e.stale = false
		e.updatedAt = c.now()
		fetchesTotal.WithLabelValues(e.key.String(), "success").Inc()
	}
	c.publishAndUnlock(e, nil)
	return result{data: data, err: err}
}

// publishAndUnlock queues the entry's new state and releases c.mu. When
// only is non-nil, just that listener is notified. Deliveries are queued
// while c.mu is held so listeners see changes in commit order.
func (c *Client) publishAndUnlock(e *entry, only func(snapshot)) {
	d := delivery{snap: e.snapshot()}
	if only != nil {
		d.targets = append(d.targets, only)
	} else {
		for _, fn := range e.observers {
			d.targets = append(d.targets, fn)
		}
	}
	c.qmu.Lock()
	c.queue = append(c.queue, d)
	c.qmu.Unlock()
	c.mu.Unlock()
	c.drain()
}

type delivery struct {
	targets []func(snapshot)
	snap    snapshot
}

// drain delivers queued notifications. Only one goroutine drains at a time;
// others return and leave their deliveries to it.
func (c *Client) drain() {
	c.qmu.Lock()
	if c.draining {
		c.qmu.Unlock()
		return
	}
	c.draining = true
	for len(c.queue) > 0 {
		d := c.queue[0]
		c.queue = c.queue[1:]
		c.qmu.Unlock()
		for _, fn := range d.targets {
			fn(d.snap)
		}
		c.qmu.Lock()
	}
	c.draining = false
	c.qmu.Unlock()
}

func wait[T any](ctx context.Context, key Key, ch <-chan singleflight.Result) (T, bool, error) {
	var zero T
	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		r := res.Val.(result)
		if r.superseded {
			return zero, true, nil
		}
		if r.err != nil {
			return zero, false, r.err
		}
		v, err := cast[T](key, r.data)
		return v, false, err
	}
}

func run[T any](ctx context.Context, c *Client, key Key, fn FetchFunc[T], force bool) (T, error) {
	for {
		c.mu.Lock()
		e := c.entryLocked(key)
		e.fetch = erase(fn)
		if force {
			e.gen++
			e.stale = true
			force = false
		} else if c.freshLocked(e) {
			data := e.data
			c.mu.Unlock()
			cacheHits.Inc()
			return cast[T](key, data)
		}
		ch := c.startLocked(e)
		c.publishAndUnlock(e, nil)

		v, superseded, err := wait[T](ctx, key, ch)
		if superseded {
			continue
		}
		return v, err
	}
}

// Fetch returns the cached value for key when it is fresh. Otherwise it
// joins the in-flight request for key or starts one with fn.
func Fetch[T any](ctx context.Context, c *Client, key Key, fn FetchFunc[T]) (T, error) {
	return run(ctx, c, key, fn, false)
}

// Refetch always issues a new request. Any request still in flight for key
// is superseded and its response is dropped when it arrives.
func Refetch[T any](ctx context.Context, c *Client, key Key, fn FetchFunc[T]) (T, error) {
	return run(ctx, c, key, fn, true)
}

// Peek returns the current state of key without fetching.
func Peek[T any](c *Client, key Key) State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key.id()]
	if !ok {
		return State[T]{Status: StatusIdle}
	}
	return toState[T](key, e.snapshot())
}

// Invalidate marks every entry whose key starts with one of keys as stale.
// Entries with active observers or a request in flight are refetched in
// the background; the previous value stays visible until the new one lands.
func (c *Client) Invalidate(keys ...Key) {
	c.mu.Lock()
	var matched []*entry
	for _, e := range c.entries {
		for _, k := range keys {
			if e.key.HasPrefix(k) {
				matched = append(matched, e)
				break
			}
		}
	}
	c.mu.Unlock()

	for _, e := range matched {
		c.mu.Lock()
		if c.entries[e.key.id()] != e {
			c.mu.Unlock()
			continue
		}
		e.gen++
		e.stale = true
		invalidationsTotal.WithLabelValues(e.key.String()).Inc()
		if e.fetch != nil && (len(e.observers) > 0 || e.fetching) {
			c.startLocked(e)
		}
		c.publishAndUnlock(e, nil)
	}
}

// Remove drops key from the cache. A response in flight for it is discarded.
func (c *Client) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key.id()]; ok {
		e.gen++
		delete(c.entries, key.String())
	}
}

// Clear drops every entry, e.g. when the session changes.
func (c *Client) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, e := range c.entries {
		e.gen++
		delete(c.entries, id)
	}
}

// Mutate runs fn and, only if it succeeds, invalidates the given keys.
// A failed mutation leaves the cache untouched.
func Mutate[In, Out any](ctx context.Context, c *Client, fn func(context.Context, In) (Out, error), in In, invalidates ...Key) (Out, error) {
	out, err := fn(ctx, in)
	if err != nil {
		mutationsTotal.WithLabelValues("error").Inc()
		return out, err
	}
	mutationsTotal.WithLabelValues("success").Inc()
	c.Invalidate(invalidates...)
	return out, nil
}
