// Package playback replays a round's sequence as strictly sequential
// highlight and pause steps.
package playback

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/parameter"
	"github.com/lixenwraith/simon/sector"
)

// StepKind distinguishes the entries of a playback plan
type StepKind int

const (
	StepPause StepKind = iota
	StepHighlight
)

func (k StepKind) String() string {
	switch k {
	case StepPause:
		return "pause"
	case StepHighlight:
		return "highlight"
	default:
		return "unknown"
	}
}

// Step is one entry of the ordered effect stream
// Region is sector.None for pauses
type Step struct {
	Kind     StepKind
	Region   sector.Index
	Duration time.Duration
}

// Timings configures the playback rhythm
type Timings struct {
	InitialPause time.Duration
	Highlight    time.Duration
	StepPause    time.Duration
}

// DefaultTimings returns the standard rhythm
func DefaultTimings() Timings {
	return Timings{
		InitialPause: parameter.PlaybackInitialPause,
		Highlight:    parameter.HighlightDuration,
		StepPause:    parameter.PlaybackStepPause,
	}
}

// Plan expands seq into its ordered step list:
// initial pause, then highlight+pause for every element
func Plan(seq []sector.Index, t Timings) []Step {
	steps := make([]Step, 0, 1+2*len(seq))
	steps = append(steps, Step{Kind: StepPause, Region: sector.None, Duration: t.InitialPause})
	for _, idx := range seq {
		steps = append(steps,
			Step{Kind: StepHighlight, Region: idx, Duration: t.Highlight},
			Step{Kind: StepPause, Region: sector.None, Duration: t.StepPause},
		)
	}
	return steps
}

// Surface draws the highlight animation for a region
// done is invoked once the full down/up ramp has completed; it may be nil
type Surface interface {
	Highlight(r sector.Index, d time.Duration, done func())
}

// Driver executes playback plans one step at a time
type Driver struct {
	surface Surface
	audio   audio.Player
	timer   engine.Timer
	timings Timings
	log     zerolog.Logger
}

// NewDriver creates a driver
func NewDriver(surface Surface, player audio.Player, timer engine.Timer, timings Timings, logger zerolog.Logger) *Driver {
	return &Driver{
		surface: surface,
		audio:   player,
		timer:   timer,
		timings: timings,
		log:     logger.With().Str("component", "playback").Logger(),
	}
}

// Play replays seq and calls done after the final pause
// The next step starts only when the previous one finished; playback cannot be cancelled
func (d *Driver) Play(seq []sector.Index, done func()) {
	steps := Plan(seq, d.timings)
	d.log.Debug().Int("length", len(seq)).Msg("playback started")
	d.run(steps, func() {
		d.log.Debug().Int("length", len(seq)).Msg("playback complete")
		if done != nil {
			done()
		}
	})
}

// run consumes the head of steps and schedules the remainder on its completion
func (d *Driver) run(steps []Step, done func()) {
	if len(steps) == 0 {
		done()
		return
	}

	step, rest := steps[0], steps[1:]
	next := func() { d.run(rest, done) }

	switch step.Kind {
	case StepHighlight:
		// Sound starts with the highlight and never gates it
		audio.PlaySafe(d.audio, step.Region.Region().Clip, d.log)
		d.surface.Highlight(step.Region, step.Duration, next)
	default:
		d.timer.After(step.Duration, next)
	}
}
