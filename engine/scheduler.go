package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/simon/core"
)

// Scheduler is the single cooperative game loop
// All game-state mutation runs as tasks consumed one at a time from its queue:
// pointer and key events are posted by the input poller, timer completions are
// posted by After. A suspended sequence (waiting on a timer) leaves the loop
// free to process input in the meantime.
type Scheduler struct {
	tasks chan func()

	// Control channels
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool

	// Counters for debugging
	processed atomic.Uint64
	dropped   atomic.Uint64

	log zerolog.Logger
}

// NewScheduler creates a scheduler whose queue holds up to queueSize pending tasks
func NewScheduler(queueSize int, logger zerolog.Logger) *Scheduler {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Scheduler{
		tasks:    make(chan func(), queueSize),
		stopChan: make(chan struct{}),
		log:      logger.With().Str("component", "scheduler").Logger(),
	}
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		// Use core.Go for safe execution with centralized crash handling
		core.Go(s.loop)
	}
}

// Stop halts the loop, pending tasks are discarded
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.CompareAndSwap(true, false) {
			s.wg.Wait()
		}
		s.log.Debug().
			Uint64("processed", s.processed.Load()).
			Uint64("dropped", s.dropped.Load()).
			Msg("scheduler stopped")
	})
}

// Post enqueues fn for the loop, blocking while the queue is full
// Returns false if the scheduler has been stopped
// Must not be called from the loop itself; use After for deferred work
func (s *Scheduler) Post(fn func()) bool {
	select {
	case <-s.stopChan:
		s.dropped.Add(1)
		return false
	default:
	}

	select {
	case s.tasks <- fn:
		return true
	case <-s.stopChan:
		s.dropped.Add(1)
		return false
	}
}

// After implements Timer, fn runs on the loop once d has elapsed
func (s *Scheduler) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.Post(fn)
	})
}

// Processed returns the number of tasks executed so far
func (s *Scheduler) Processed() uint64 {
	return s.processed.Load()
}

// loop consumes tasks until stopped
func (s *Scheduler) loop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.stopChan:
			return
		case fn := <-s.tasks:
			fn()
			s.processed.Add(1)
		}
	}
}
