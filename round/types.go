package round

import (
	"slices"
	"time"

	"github.com/lixenwraith/simon/parameter"
	"github.com/lixenwraith/simon/playback"
	"github.com/lixenwraith/simon/sector"
)

// State is the phase of a session
type State int

const (
	Idle          State = iota // Before the first round
	Playback                   // Sequence being shown, input closed
	AwaitingInput              // Player reproducing the sequence
	RoundComplete              // Transient pause before the next playback
	Failed                     // Terminal for the session
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playback:
		return "playback"
	case AwaitingInput:
		return "awaiting_input"
	case RoundComplete:
		return "round_complete"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Session is the live game state
// Invariant: 0 <= PlayerStep <= len(Sequence); AcceptingInput only in AwaitingInput
type Session struct {
	// ID increases on every start; timer completions from older sessions are dropped
	ID uint64

	State          State
	Sequence       []sector.Index
	PlayerStep     int
	AcceptingInput bool

	// Score is len(Sequence) at the moment of failure, zero before
	Score int

	// Reported is set once the score has been handed off
	Reported bool
}

// Round returns the current round number (sequence length)
func (s Session) Round() int {
	return len(s.Sequence)
}

// Clone returns a copy that shares no memory with s
func (s Session) Clone() Session {
	s.Sequence = slices.Clone(s.Sequence)
	return s
}

// Event is an input to Step
type Event interface {
	isEvent()
}

// Start begins a fresh session whose first element is Next
type Start struct {
	Next sector.Index
}

// PlaybackDone is the playback driver's completion signal
type PlaybackDone struct{}

// Tap is a pointer event already resolved to a region
type Tap struct {
	Region sector.Index
}

// PauseElapsed ends the round-complete pause, Next is appended to the sequence
type PauseElapsed struct {
	Next sector.Index
}

// FailureShown fires when the failure flash has finished
type FailureShown struct{}

func (Start) isEvent()        {}
func (PlaybackDone) isEvent() {}
func (Tap) isEvent()          {}
func (PauseElapsed) isEvent() {}
func (FailureShown) isEvent() {}

// Effect is a side effect requested by Step, executed by the Machine
type Effect interface {
	isEffect()
}

// PlaySequence runs the playback driver over Sequence
type PlaySequence struct {
	Sequence []sector.Index
}

// Feedback highlights and sounds a tapped region, independent of correctness
type Feedback struct {
	Region sector.Index
}

// WaitNextRound schedules PauseElapsed after the round-complete pause
type WaitNextRound struct{}

// SignalFailure plays the game over clip and the failure flash
type SignalFailure struct {
	Score int
}

// Handoff passes the final score to the leaderboard flow
type Handoff struct {
	Score int
}

func (PlaySequence) isEffect()  {}
func (Feedback) isEffect()      {}
func (WaitNextRound) isEffect() {}
func (SignalFailure) isEffect() {}
func (Handoff) isEffect()       {}

// Timings configures the round machine
type Timings struct {
	Playback      playback.Timings
	TapFeedback   time.Duration
	RoundPause    time.Duration
	FailurePhase  time.Duration
	FailurePulses int
}

// DefaultTimings returns the standard round rhythm
func DefaultTimings() Timings {
	return Timings{
		Playback:      playback.DefaultTimings(),
		TapFeedback:   parameter.TapFeedbackDuration,
		RoundPause:    parameter.RoundCompletePause,
		FailurePhase:  parameter.FailurePhaseDuration,
		FailurePulses: parameter.FailurePulses,
	}
}
