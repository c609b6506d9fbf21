package limiter

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter() (*FixedWindow, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewWithClock(0, clock.Now), clock
}

func TestFixedWindowExhaustion(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter()
	defer l.Close()

	limit := PerHour(100)

	for i := 0; i < 100; i++ {
		res, err := l.Check(ctx, "alice", ActionApplause, limit)
		require.NoError(t, err)
		require.True(t, res.Allowed, "request %d should pass", i+1)
		assert.Equal(t, 100-i-1, res.Remaining)
	}

	res, err := l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Equal(t, time.Hour, res.RetryAfter)

	// denials must not extend the window
	clock.Advance(30 * time.Minute)
	res, err = l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 30*time.Minute, res.RetryAfter)
}

func TestFixedWindowReopens(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter()
	defer l.Close()

	limit := PerHour(100)
	for i := 0; i < 100; i++ {
		_, err := l.Check(ctx, "alice", ActionApplause, limit)
		require.NoError(t, err)
	}

	clock.Advance(time.Hour + time.Second)

	res, err := l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 99, res.Remaining)
}

func TestFixedWindowKeysAreIsolated(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter()
	defer l.Close()

	limit := Per(1, time.Hour)

	res, err := l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	// other identity, same action
	res, err = l.Check(ctx, "bob", ActionApplause, limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	// same identity, other action
	res, err = l.Check(ctx, "alice", ActionRecordAction, limit)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestFixedWindowRetryAfterRoundsUp(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter()
	defer l.Close()

	limit := Per(1, time.Hour)
	_, err := l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)

	clock.Advance(30*time.Minute + 100*time.Millisecond)
	res, err := l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)
	require.False(t, res.Allowed)
	assert.Equal(t, 30*time.Minute, res.RetryAfter-(res.RetryAfter%time.Second))
	assert.Equal(t, time.Duration(0), res.RetryAfter%time.Second)
}

func TestFixedWindowConcurrentChecks(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter()
	defer l.Close()

	limit := PerHour(100)

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 250; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := l.Check(ctx, "alice", ActionApplause, limit)
			if err == nil && res.Allowed {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(100), allowed.Load())
}

func TestSweepDropsExpiredWindows(t *testing.T) {
	ctx := context.Background()
	l, clock := newTestLimiter()
	defer l.Close()

	limit := Per(5, time.Minute)
	_, err := l.Check(ctx, "alice", ActionApplause, limit)
	require.NoError(t, err)
	_, err = l.Check(ctx, "bob", ActionApplause, limit)
	require.NoError(t, err)

	l.mu.Lock()
	assert.Len(t, l.windows, 2)
	l.mu.Unlock()

	clock.Advance(2 * time.Minute)
	l.Sweep()

	l.mu.Lock()
	assert.Len(t, l.windows, 0)
	l.mu.Unlock()
}

func TestCloseIsIdempotent(t *testing.T) {
	l := New(time.Minute)
	l.Close()
	l.Close()
	assert.NoError(t, l.Shutdown())
}
