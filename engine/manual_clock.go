package engine

import (
	"sort"
	"sync"
	"time"
)

// ManualClock is a deterministic Timer for tests
// Callbacks fire synchronously inside Advance in deadline order (ties in scheduling order)
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending []pendingCall
}

type pendingCall struct {
	at  time.Duration
	seq uint64
	fn  func()
}

// NewManualClock creates a clock at elapsed time zero
func NewManualClock() *ManualClock {
	return &ManualClock{}
}

// After implements Timer
func (c *ManualClock) After(d time.Duration, fn func()) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	c.pending = append(c.pending, pendingCall{at: c.now + d, seq: c.seq, fn: fn})
}

// Now returns elapsed mock time
func (c *ManualClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Pending returns the number of scheduled callbacks not yet fired
func (c *ManualClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Advance moves time forward by d, firing every callback due on the way
// Callbacks scheduled by fired callbacks also fire if they fall inside the window
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		call, ok := c.popDue(target)
		if !ok {
			break
		}
		call.fn()
	}

	c.mu.Lock()
	c.now = target
	c.mu.Unlock()
}

// RunUntilIdle fires callbacks until none remain or limit of mock time elapses
// Returns the mock time consumed
func (c *ManualClock) RunUntilIdle(limit time.Duration) time.Duration {
	c.mu.Lock()
	start := c.now
	deadline := c.now + limit
	c.mu.Unlock()

	for {
		call, ok := c.popDue(deadline)
		if !ok {
			break
		}
		call.fn()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now - start
}

// popDue removes the earliest callback due at or before target and advances now to it
func (c *ManualClock) popDue(target time.Duration) (pendingCall, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.pending) == 0 {
		return pendingCall{}, false
	}
	sort.SliceStable(c.pending, func(i, j int) bool {
		if c.pending[i].at != c.pending[j].at {
			return c.pending[i].at < c.pending[j].at
		}
		return c.pending[i].seq < c.pending[j].seq
	})
	next := c.pending[0]
	if next.at > target {
		return pendingCall{}, false
	}
	c.pending = c.pending[1:]
	c.now = next.at
	return next, true
}
