// Package round owns a game session: sequence growth, timed playback,
// input validation and failure detection.
//
// Transitions are computed by the pure Step function; Machine holds the
// current Session, feeds it events and executes the returned effects. All
// Machine methods and every callback it schedules must run on the single
// game loop (see engine.Scheduler).
package round

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/playback"
	"github.com/lixenwraith/simon/sector"
)

// Surface is the drawing surface the round machine animates
type Surface interface {
	playback.Surface

	// FailureFlash pulses all regions dim/bright pulses times, phase each, then calls done
	FailureFlash(pulses int, phase time.Duration, done func())
}

// Disc reports the current geometry of the play disc in pointer coordinates
type Disc interface {
	Disc() (center sector.Point, radius float64)
}

// Rand draws uniform integers in [0,n)
// Satisfied by *rand.Rand from math/rand/v2
type Rand interface {
	IntN(n int) int
}

// Config wires a Machine to its collaborators
type Config struct {
	Surface Surface
	Disc    Disc
	Audio   audio.Player
	Timer   engine.Timer
	Rand    Rand
	Timings Timings
	Logger  zerolog.Logger

	// OnScore receives the final score exactly once per failed session
	OnScore func(score int)

	// OnChange observes every state, round or session change
	OnChange func(Session)
}

// Machine executes the round state machine against real collaborators
type Machine struct {
	cfg     Config
	driver  *playback.Driver
	session Session
	log     zerolog.Logger
}

// NewMachine creates a machine in Idle
func NewMachine(cfg Config) *Machine {
	logger := cfg.Logger.With().Str("component", "round").Logger()
	return &Machine{
		cfg:    cfg,
		driver: playback.NewDriver(cfg.Surface, cfg.Audio, cfg.Timer, cfg.Timings.Playback, cfg.Logger),
		log:    logger,
	}
}

// Start re-initializes a fresh session and begins its first playback
func (m *Machine) Start() {
	m.dispatch(Start{Next: m.draw()})
}

// Pointer resolves a raw coordinate against the disc and taps the region under it
// Returns false when the point lies outside the disc
func (m *Machine) Pointer(x, y float64) bool {
	center, radius := m.cfg.Disc.Disc()
	r := sector.Resolve(sector.Point{X: x, Y: y}, center, radius)
	if r == sector.None {
		return false
	}
	m.Tap(r)
	return true
}

// Tap feeds an already resolved region
func (m *Machine) Tap(r sector.Index) {
	m.dispatch(Tap{Region: r})
}

// Snapshot returns a copy of the current session
func (m *Machine) Snapshot() Session {
	return m.session.Clone()
}

// draw picks the next sequence element uniformly from the four regions
func (m *Machine) draw() sector.Index {
	return sector.Index(m.cfg.Rand.IntN(sector.Count))
}

// dispatch applies one event and executes the resulting effects
func (m *Machine) dispatch(ev Event) {
	prev := m.session
	next, effects := Step(m.session, ev)
	m.session = next

	if next.ID != prev.ID || next.State != prev.State || next.Round() != prev.Round() {
		m.log.Debug().
			Uint64("session", next.ID).
			Stringer("from", prev.State).
			Stringer("to", next.State).
			Int("round", next.Round()).
			Msg("transition")
		if m.cfg.OnChange != nil {
			m.cfg.OnChange(next.Clone())
		}
	}

	for _, eff := range effects {
		m.apply(next.ID, eff)
	}
}

// guard wraps a deferred event so it is dropped if a new session started meanwhile
func (m *Machine) guard(id uint64, ev func() Event) func() {
	return func() {
		if m.session.ID != id {
			m.log.Debug().Uint64("stale", id).Uint64("current", m.session.ID).Msg("dropped stale completion")
			return
		}
		m.dispatch(ev())
	}
}

func (m *Machine) apply(id uint64, eff Effect) {
	switch e := eff.(type) {
	case PlaySequence:
		m.driver.Play(e.Sequence, m.guard(id, func() Event { return PlaybackDone{} }))

	case Feedback:
		audio.PlaySafe(m.cfg.Audio, e.Region.Region().Clip, m.log)
		m.cfg.Surface.Highlight(e.Region, m.cfg.Timings.TapFeedback, nil)

	case WaitNextRound:
		m.cfg.Timer.After(m.cfg.Timings.RoundPause, m.guard(id, func() Event {
			return PauseElapsed{Next: m.draw()}
		}))

	case SignalFailure:
		m.log.Info().Uint64("session", id).Int("score", e.Score).Msg("session failed")
		audio.PlaySafe(m.cfg.Audio, sector.GameOverClip, m.log)
		m.cfg.Surface.FailureFlash(m.cfg.Timings.FailurePulses, m.cfg.Timings.FailurePhase,
			m.guard(id, func() Event { return FailureShown{} }))

	case Handoff:
		if m.cfg.OnScore != nil {
			m.cfg.OnScore(e.Score)
		}
	}
}
