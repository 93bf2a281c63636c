// ABOUTME: Tests for the query cache: dedup, invalidation, superseded responses
// ABOUTME: and observer lifecycle.
package query

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second
const tick = 5 * time.Millisecond

type recorder struct {
	mu     sync.Mutex
	events map[string][]Status
}

func newRecorder() *recorder {
	return &recorder{events: make(map[string][]Status)}
}

func (r *recorder) listener(name string) func(State[string]) {
	return func(s State[string]) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events[name] = append(r.events[name], s.Status)
	}
}

func (r *recorder) count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events[name])
}

func (r *recorder) since(name string, n int) []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status(nil), r.events[name][n:]...)
}

func counting(prefix string, calls *atomic.Int32) FetchFunc[string] {
	return func(ctx context.Context) (string, error) {
		n := calls.Add(1)
		return fmt.Sprintf("%s%d", prefix, n), nil
	}
}

func TestPeekUnknownKeyIsIdle(t *testing.T) {
	c := New()
	defer c.Close()

	st := Peek[string](c, Key{"nothing"})
	assert.Equal(t, StatusIdle, st.Status)
	assert.False(t, st.HasData)
}

func TestFetchServesFreshCache(t *testing.T) {
	c := New()
	defer c.Close()
	var calls atomic.Int32
	hits := testutil.ToFloat64(cacheHits)

	v, err := Fetch(context.Background(), c, Key{"workouts"}, counting("w", &calls))
	require.NoError(t, err)
	assert.Equal(t, "w1", v)

	v, err = Fetch(context.Background(), c, Key{"workouts"}, counting("w", &calls))
	require.NoError(t, err)
	assert.Equal(t, "w1", v)
	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, hits+1, testutil.ToFloat64(cacheHits))

	st := Peek[string](c, Key{"workouts"})
	assert.Equal(t, StatusSuccess, st.Status)
	assert.Equal(t, "w1", st.Data)
	assert.False(t, st.UpdatedAt.IsZero())
}

func TestConcurrentFetchesShareOneRequest(t *testing.T) {
	c := New()
	defer c.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (string, error) {
		calls.Add(1)
		<-release
		return "meals", nil
	}
	deduped := testutil.ToFloat64(dedupedTotal)

	const n = 5
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Fetch(context.Background(), c, Key{"meals"}, fn)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(dedupedTotal)-deduped == n-1
	}, waitFor, tick)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "meals", v)
	}
}

func TestRefetchDiscardsSupersededResponse(t *testing.T) {
	c := New()
	defer c.Close()
	key := Key{"dashboardSummary"}
	superseded := testutil.ToFloat64(fetchesTotal.WithLabelValues(key.String(), "superseded"))

	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "first", nil
	}

	first := make(chan string, 1)
	go func() {
		v, err := Fetch(context.Background(), c, key, slow)
		assert.NoError(t, err)
		first <- v
	}()
	<-started

	v, err := Refetch(context.Background(), c, key, func(ctx context.Context) (string, error) {
		return "second", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "second", v)

	close(release)
	assert.Equal(t, "second", <-first)
	assert.Equal(t, "second", Peek[string](c, key).Data)
	assert.Equal(t, superseded+1, testutil.ToFloat64(fetchesTotal.WithLabelValues(key.String(), "superseded")))
}

func TestConcurrentInvalidationsLastWins(t *testing.T) {
	c := New()
	defer c.Close()
	key := Key{"moodChart"}
	superseded := testutil.ToFloat64(fetchesTotal.WithLabelValues(key.String(), "superseded"))

	var calls atomic.Int32
	gates := map[int32]chan struct{}{2: make(chan struct{}), 3: make(chan struct{})}
	fn := func(ctx context.Context) (string, error) {
		n := calls.Add(1)
		if gate, ok := gates[n]; ok {
			<-gate
		}
		return fmt.Sprintf("v%d", n), nil
	}

	var mu sync.Mutex
	var seen []string
	o := Observe(c, key, fn, func(s State[string]) {
		if s.Status != StatusSuccess {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, s.Data)
	})
	defer o.Close()
	assert.Eventually(t, func() bool { return o.State().Status == StatusSuccess }, waitFor, tick)

	c.Invalidate(key)
	assert.Eventually(t, func() bool { return calls.Load() == 2 }, waitFor, tick)
	c.Invalidate(key)
	assert.Eventually(t, func() bool { return calls.Load() == 3 }, waitFor, tick)

	close(gates[3])
	assert.Eventually(t, func() bool { return o.State().Data == "v3" }, waitFor, tick)

	close(gates[2])
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(fetchesTotal.WithLabelValues(key.String(), "superseded")) == superseded+1
	}, waitFor, tick)

	assert.Equal(t, "v3", o.State().Data)
	assert.Equal(t, StatusSuccess, o.State().Status)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"v1", "v3"}, seen)
}

func TestMutationRefetchesObservedKeys(t *testing.T) {
	c := New()
	defer c.Close()
	rec := newRecorder()

	var aCalls, bCalls atomic.Int32
	a := Observe(c, Key{"workouts"}, counting("a", &aCalls), rec.listener("workouts"))
	defer a.Close()
	b := Observe(c, Key{"dashboardSummary"}, counting("b", &bCalls), rec.listener("dashboardSummary"))
	defer b.Close()

	assert.Eventually(t, func() bool {
		return rec.count("workouts") == 2 && rec.count("dashboardSummary") == 2
	}, waitFor, tick)

	_, err := Mutate(context.Background(), c, func(ctx context.Context, in string) (string, error) {
		return in, nil
	}, "bench", Key{"workouts"}, Key{"dashboardSummary"})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return rec.count("workouts") == 4 && rec.count("dashboardSummary") == 4
	}, waitFor, tick)
	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, rec.since("workouts", 2))
	assert.Equal(t, []Status{StatusLoading, StatusSuccess}, rec.since("dashboardSummary", 2))
	assert.Equal(t, "a2", a.State().Data)
	assert.Equal(t, "b2", b.State().Data)
}

func TestInvalidateKeepsDataDuringRefetch(t *testing.T) {
	c := New()
	defer c.Close()

	var calls atomic.Int32
	release := make(chan struct{})
	fn := func(ctx context.Context) (string, error) {
		if calls.Add(1) > 1 {
			<-release
		}
		return fmt.Sprintf("v%d", calls.Load()), nil
	}
	o := Observe(c, Key{"mood"}, fn, nil)
	defer o.Close()
	assert.Eventually(t, func() bool { return o.State().Status == StatusSuccess }, waitFor, tick)

	c.Invalidate(Key{"mood"})
	st := o.State()
	assert.Equal(t, StatusLoading, st.Status)
	assert.True(t, st.HasData)
	assert.Equal(t, "v1", st.Data)

	close(release)
	assert.Eventually(t, func() bool { return o.State().Status == StatusSuccess }, waitFor, tick)
	assert.Equal(t, "v2", o.State().Data)
}

func TestInvalidateWithoutObserversMarksStale(t *testing.T) {
	c := New()
	defer c.Close()
	var calls atomic.Int32

	_, err := Fetch(context.Background(), c, Key{"meals"}, counting("m", &calls))
	require.NoError(t, err)

	c.Invalidate(Key{"meals"})
	st := Peek[string](c, Key{"meals"})
	assert.Equal(t, StatusSuccess, st.Status)
	assert.True(t, st.Stale)
	assert.Equal(t, int32(1), calls.Load())

	v, err := Fetch(context.Background(), c, Key{"meals"}, counting("m", &calls))
	require.NoError(t, err)
	assert.Equal(t, "m2", v)
	assert.False(t, Peek[string](c, Key{"meals"}).Stale)
}

func TestInvalidateMatchesKeyPrefix(t *testing.T) {
	c := New()
	defer c.Close()
	var calls atomic.Int32

	for _, k := range []Key{{"progress", "summary"}, {"progress", "trend"}, {"meals"}} {
		_, err := Fetch(context.Background(), c, k, counting("p", &calls))
		require.NoError(t, err)
	}

	c.Invalidate(Key{"progress"})
	assert.True(t, Peek[string](c, Key{"progress", "summary"}).Stale)
	assert.True(t, Peek[string](c, Key{"progress", "trend"}).Stale)
	assert.False(t, Peek[string](c, Key{"meals"}).Stale)
}

func TestFailedMutationLeavesCacheUntouched(t *testing.T) {
	c := New()
	defer c.Close()
	var calls atomic.Int32

	_, err := Fetch(context.Background(), c, Key{"workouts"}, counting("w", &calls))
	require.NoError(t, err)

	boom := errors.New("server said no")
	_, err = Mutate(context.Background(), c, func(ctx context.Context, in int) (int, error) {
		return 0, boom
	}, 1, Key{"workouts"})
	assert.ErrorIs(t, err, boom)

	st := Peek[string](c, Key{"workouts"})
	assert.Equal(t, StatusSuccess, st.Status)
	assert.False(t, st.Stale)
	assert.Equal(t, "w1", st.Data)
	assert.Equal(t, int32(1), calls.Load())
}

func TestErrorKeepsLastKnownData(t *testing.T) {
	c := New()
	defer c.Close()
	key := Key{"profile"}

	_, err := Fetch(context.Background(), c, key, func(ctx context.Context) (string, error) {
		return "alice", nil
	})
	require.NoError(t, err)

	boom := errors.New("offline")
	_, err = Refetch(context.Background(), c, key, func(ctx context.Context) (string, error) {
		return "", boom
	})
	assert.ErrorIs(t, err, boom)

	st := Peek[string](c, key)
	assert.Equal(t, StatusError, st.Status)
	assert.ErrorIs(t, st.Err, boom)
	assert.True(t, st.HasData)
	assert.Equal(t, "alice", st.Data)
}

func TestClosedObserverReceivesNothing(t *testing.T) {
	c := New()
	defer c.Close()
	key := Key{"meals"}

	release := make(chan struct{})
	var notified atomic.Int32
	o := Observe(c, key, func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	}, func(State[string]) { notified.Add(1) })

	o.Close()
	before := notified.Load()
	close(release)

	assert.Eventually(t, func() bool {
		return Peek[string](c, key).Status == StatusSuccess
	}, waitFor, tick)
	assert.Equal(t, before, notified.Load())
}

func TestListenerMayCallBackIntoClient(t *testing.T) {
	c := New()
	defer c.Close()
	key := Key{"me"}

	done := make(chan State[string], 1)
	o := Observe(c, key, func(ctx context.Context) (string, error) {
		return "ada", nil
	}, func(s State[string]) {
		if s.Status != StatusSuccess {
			return
		}
		c.Invalidate(Key{"unrelated"})
		select {
		case done <- Peek[string](c, key):
		default:
		}
	})
	defer o.Close()

	select {
	case st := <-done:
		assert.Equal(t, "ada", st.Data)
	case <-time.After(waitFor):
		t.Fatal("listener never saw success")
	}
}

func TestFetchHonoursCallerContext(t *testing.T) {
	c := New()
	defer c.Close()
	key := Key{"progressTrend"}

	release := make(chan struct{})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := Fetch(ctx, c, key, func(ctx context.Context) (string, error) {
		<-release
		return "trend", nil
	})
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	assert.Eventually(t, func() bool {
		return Peek[string](c, key).Data == "trend"
	}, waitFor, tick)
}

func TestRemoveDropsEntry(t *testing.T) {
	c := New()
	defer c.Close()
	var calls atomic.Int32

	_, err := Fetch(context.Background(), c, Key{"meals"}, counting("m", &calls))
	require.NoError(t, err)

	c.Remove(Key{"meals"})
	assert.Equal(t, StatusIdle, Peek[string](c, Key{"meals"}).Status)
}

func TestTypeMismatchIsAnError(t *testing.T) {
	c := New()
	defer c.Close()

	_, err := Fetch(context.Background(), c, Key{"n"}, func(ctx context.Context) (int, error) {
		return 7, nil
	})
	require.NoError(t, err)

	_, err = Fetch(context.Background(), c, Key{"n"}, func(ctx context.Context) (string, error) {
		return "seven", nil
	})
	assert.Error(t, err)
}

func TestStaleTimeExpiresEntries(t *testing.T) {
	c := New(WithStaleTime(time.Minute))
	defer c.Close()
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	c.now = func() time.Time { return now }
	var calls atomic.Int32

	_, err := Fetch(context.Background(), c, Key{"mood"}, counting("m", &calls))
	require.NoError(t, err)
	_, err = Fetch(context.Background(), c, Key{"mood"}, counting("m", &calls))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(2 * time.Minute)
	v, err := Fetch(context.Background(), c, Key{"mood"}, counting("m", &calls))
	require.NoError(t, err)
	assert.Equal(t, "m2", v)
}

func TestKeyHasPrefix(t *testing.T) {
	assert.True(t, Key{"progress", "trend"}.HasPrefix(Key{"progress"}))
	assert.True(t, Key{"meals"}.HasPrefix(Key{"meals"}))
	assert.False(t, Key{"meals"}.HasPrefix(Key{"meals", "today"}))
	assert.False(t, Key{"mood"}.HasPrefix(Key{"meals"}))
	assert.Equal(t, "progress/trend", Key{"progress", "trend"}.String())
}

func TestKeysWithSlashesStayDistinct(t *testing.T) {
	c := New()
	defer c.Close()

	joined, split := Key{"a/b"}, Key{"a", "b"}
	_, err := Fetch(context.Background(), c, joined, func(ctx context.Context) (string, error) { return "joined", nil })
	require.NoError(t, err)
	v, err := Fetch(context.Background(), c, split, func(ctx context.Context) (string, error) { return "split", nil })
	require.NoError(t, err)

	assert.Equal(t, "split", v)
	assert.Equal(t, "joined", Peek[string](c, joined).Data)
	assert.Equal(t, "split", Peek[string](c, split).Data)
}
