package spotify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RateLimit configures the client-side request pacing window.
type RateLimit struct {
	Window   time.Duration // Length of the quota window
	MaxCalls int           // Calls permitted per window
}

// DefaultRateLimit is the pacing applied when Config.RateLimit is unset.
var DefaultRateLimit = RateLimit{Window: time.Second, MaxCalls: 10}

// limiter admits at most max calls per window, first come first served.
//
// Admission works by reservation: under the mutex each caller is assigned
// the instant at which it may dispatch, then sleeps outside the lock until
// that instant. The first reservation anchors the window; once a window's
// budget is spent, later reservations land at the start of the following
// window. Assigned instants never decrease, so waiters dispatch in arrival
// order. A reservation is consumed at assignment: a caller that gives up
// while sleeping does not return its slot.
type limiter struct {
	mu     sync.Mutex
	window time.Duration
	max    int
	start  time.Time // start of the window holding the newest reservation
	used   int       // reservations in that window
	logger zerolog.Logger
	now    func() time.Time
}

func newLimiter(rl RateLimit, logger zerolog.Logger) *limiter {
	return &limiter{
		window: rl.Window,
		max:    rl.MaxCalls,
		logger: logger.With().Str("component", "ratelimit").Logger(),
		now:    time.Now,
	}
}

// Acquire blocks until a slot in the current window is available, or until
// the context is done. The slot is consumed either way.
func (l *limiter) Acquire(ctx context.Context) error {
	admitAt := l.reserve(l.now())
	wait := admitAt.Sub(l.now())
	if wait <= 0 {
		return nil
	}

	l.logger.Debug().
		Dur("wait", wait).
		Int("max_calls", l.max).
		Dur("window", l.window).
		Msg("Rate limit window full, waiting")

	if !sleep(ctx, wait) {
		return ctx.Err()
	}
	return nil
}

// reserve assigns the admission instant for the next call.
func (l *limiter) reserve(now time.Time) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Idle limiter, or every reserved window has fully elapsed: anchor a
	// fresh window at this call.
	if l.start.IsZero() || !now.Before(l.start.Add(l.window)) {
		l.start = now
		l.used = 1
		return now
	}

	if l.used < l.max {
		l.used++
		// The newest window may start in the future when earlier callers
		// already filled the present one.
		if l.start.After(now) {
			return l.start
		}
		return now
	}

	// Window budget spent; this call opens the next window.
	l.start = l.start.Add(l.window)
	l.used = 1
	return l.start
}
