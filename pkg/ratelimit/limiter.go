package ratelimit

import (
	"sync"
	"time"
)

// Limiter defines the interface for request pacing
type Limiter interface {
	// Wait blocks until the limiter allows another request
	Wait()
	// Reset resets the limiter state
	Reset()
}

// Interval enforces a minimum delay between consecutive requests.
// It is the politeness pause between page and detail fetches: a plain
// serial throttle, deliberately not a cancellation point.
type Interval struct {
	delay time.Duration
	last  time.Time
	mu    sync.Mutex
}

// NewInterval creates a limiter with the given minimum inter-request delay
func NewInterval(delay time.Duration) *Interval {
	return &Interval{delay: delay}
}

// Wait sleeps until at least the configured delay has passed since the
// previous request. The first call returns immediately.
func (i *Interval) Wait() {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.last.IsZero() {
		if remaining := i.delay - time.Since(i.last); remaining > 0 {
			time.Sleep(remaining)
		}
	}
	i.last = time.Now()
}

// Reset clears the last-request timestamp
func (i *Interval) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.last = time.Time{}
}
