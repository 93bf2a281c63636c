// ABOUTME: Cache keys, per-key status and the typed State observed by views.
// ABOUTME: Status follows idle -> loading -> success|error; refetches return to loading.
package query

import (
	"strings"
	"time"
)

// Key identifies a cached query, e.g. Key{"workouts"}.
type Key []string

func (k Key) String() string {
	return strings.Join(k, "/")
}

// id is the cache map key. The separator cannot occur in key elements, so
// Key{"a/b"} and Key{"a", "b"} stay distinct.
func (k Key) id() string {
	return strings.Join(k, "\x00")
}

// HasPrefix reports whether p is an element-wise prefix of k.
func (k Key) HasPrefix(p Key) bool {
	if len(p) > len(k) {
		return false
	}
	for i := range p {
		if k[i] != p[i] {
			return false
		}
	}
	return true
}

// Status is the lifecycle position of a cache entry.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// State is what a view sees for one key. During a background refetch
// Status is loading while Data still holds the last known value.
type State[T any] struct {
	Status    Status
	Data      T
	HasData   bool
	Err       error
	UpdatedAt time.Time
	Stale     bool
}

// IsLoading reports whether a fetch is in flight.
func (s State[T]) IsLoading() bool { return s.Status == StatusLoading }

// snapshot is the untyped form of State stored in entries.
type snapshot struct {
	status    Status
	data      any
	hasData   bool
	err       error
	updatedAt time.Time
	stale     bool
}

func toState[T any](key Key, s snapshot) State[T] {
	st := State[T]{
		Status:    s.status,
		HasData:   s.hasData,
		Err:       s.err,
		UpdatedAt: s.updatedAt,
		Stale:     s.stale,
	}
	if s.hasData {
		data, err := cast[T](key, s.data)
		if err != nil {
			st.Status = StatusError
			st.Err = err
			st.HasData = false
			return st
		}
		st.Data = data
	}
	return st
}
