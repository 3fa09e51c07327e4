package engine

import "time"

// Timer schedules a single-shot delayed callback
// Implementations deliver fn on the game loop, never concurrently with other game logic
type Timer interface {
	After(d time.Duration, fn func())
}

// TimerFunc adapts a function to the Timer interface
type TimerFunc func(d time.Duration, fn func())

// After implements Timer
func (f TimerFunc) After(d time.Duration, fn func()) {
	f(d, fn)
}
