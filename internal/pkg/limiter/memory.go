package limiter

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow is an in-process fixed-window counter. State lives in a plain
// map behind one mutex; a background sweep drops expired windows so the map
// stays bounded without touching the request path more than a lock.
type FixedWindow struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time

	closeOnce sync.Once
	done      chan struct{}
}

// New starts the sweeper on the given interval. Use NewWithClock in tests
// to pin time; a non-positive sweep interval disables the goroutine.
func New(sweepEvery time.Duration) *FixedWindow {
	return NewWithClock(sweepEvery, time.Now)
}

func NewWithClock(sweepEvery time.Duration, now func() time.Time) *FixedWindow {
	l := &FixedWindow{
		windows: make(map[string]*window),
		now:     now,
		done:    make(chan struct{}),
	}

	if sweepEvery > 0 {
		go l.sweepLoop(sweepEvery)
	}

	return l
}

func (l *FixedWindow) Check(ctx context.Context, identity, action string, limit Limit) (Result, error) {
	key := action + ":" + identity
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{resetAt: now.Add(limit.Window)}
		l.windows[key] = w
	}

	if w.count >= limit.Rate {
		return Result{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    w.resetAt,
			RetryAfter: retryIn(w.resetAt, now),
		}, nil
	}

	w.count++
	return Result{
		Allowed:   true,
		Remaining: limit.Rate - w.count,
		ResetAt:   w.resetAt,
	}, nil
}

// Sweep removes windows whose reset time has passed.
func (l *FixedWindow) Sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, w := range l.windows {
		if !now.Before(w.resetAt) {
			delete(l.windows, key)
		}
	}
}

func (l *FixedWindow) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			l.Sweep()
		case <-l.done:
			return
		}
	}
}

func (l *FixedWindow) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
	})
}

// Shutdown lets the DI container stop the sweeper with the rest of the app.
func (l *FixedWindow) Shutdown() error {
	l.Close()
	return nil
}
