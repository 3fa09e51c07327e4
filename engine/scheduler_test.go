package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSchedulerRunsTasksInOrder verifies posted tasks execute sequentially in FIFO order
func TestSchedulerRunsTasksInOrder(t *testing.T) {
	s := NewScheduler(16, zerolog.Nop())
	s.Start()
	defer s.Stop()

	var (
		mu    sync.Mutex
		order []int
	)
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		i := i
		require.True(t, s.Post(func() {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			if i == 9 {
				close(done)
			}
		}))
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("tasks did not complete")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, order)
}

// TestSchedulerAfterDeliversOnLoop verifies timer callbacks are funneled through the loop
func TestSchedulerAfterDeliversOnLoop(t *testing.T) {
	s := NewScheduler(4, zerolog.Nop())
	s.Start()
	defer s.Stop()

	fired := make(chan time.Duration, 1)
	start := time.Now()
	s.After(20*time.Millisecond, func() {
		fired <- time.Since(start)
	})

	select {
	case elapsed := <-fired:
		assert.GreaterOrEqual(t, elapsed, 20*time.Millisecond)
	case <-time.After(2 * time.Second):
		t.Fatal("timer callback never ran")
	}
}

// TestSchedulerPostAfterStop verifies posting to a stopped scheduler is rejected without blocking
func TestSchedulerPostAfterStop(t *testing.T) {
	s := NewScheduler(1, zerolog.Nop())
	s.Start()
	s.Stop()
	s.Stop() // idempotent

	assert.False(t, s.Post(func() { t.Error("task ran after stop") }))
}

// TestSchedulerStopWithoutStart verifies Stop is safe on a never-started scheduler
func TestSchedulerStopWithoutStart(t *testing.T) {
	s := NewScheduler(0, zerolog.Nop())
	assert.NotPanics(t, s.Stop)
	assert.Zero(t, s.Processed())
}
