package scheduler

import (
	"sync"
	"time"
)

// Clock is a monotonic source of elapsed time. It is the only
// dependency the emulator has on its environment.
type Clock interface {
	// Elapsed returns the time passed since the clock was created.
	Elapsed() time.Duration
}

type realClock struct {
	start time.Time
}

// NewClock returns a Clock backed by the host's monotonic clock.
func NewClock() Clock {
	return &realClock{start: time.Now()}
}

func (c *realClock) Elapsed() time.Duration {
	return time.Since(c.start)
}

// ManualClock is a Clock that only moves when told to, for driving
// the emulator deterministically.
type ManualClock struct {
	mu      sync.Mutex
	elapsed time.Duration
}

// NewManualClock returns a ManualClock at zero.
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.elapsed += d
	c.mu.Unlock()
}
