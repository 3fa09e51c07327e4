package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/sector"
)

// event records a surface or audio call with its mock timestamp
type event struct {
	at   time.Duration
	kind string
	idx  sector.Index
	clip string
}

type recorder struct {
	clock  *engine.ManualClock
	events []event
	active int
	maxAct int
	fail   bool
}

// Highlight completes after d on the manual clock
func (r *recorder) Highlight(idx sector.Index, d time.Duration, done func()) {
	r.events = append(r.events, event{at: r.clock.Now(), kind: "highlight", idx: idx})
	r.active++
	if r.active > r.maxAct {
		r.maxAct = r.active
	}
	r.clock.After(d, func() {
		r.active--
		r.events = append(r.events, event{at: r.clock.Now(), kind: "highlight-end", idx: idx})
		if done != nil {
			done()
		}
	})
}

func (r *recorder) PlayClip(name string) error {
	r.events = append(r.events, event{at: r.clock.Now(), kind: "clip", clip: name})
	if r.fail {
		return errors.New("device busy")
	}
	return nil
}

func newDriver(t *testing.T) (*Driver, *recorder, *engine.ManualClock) {
	t.Helper()
	clock := engine.NewManualClock()
	rec := &recorder{clock: clock}
	return NewDriver(rec, rec, clock, DefaultTimings(), zerolog.Nop()), rec, clock
}

// TestPlanOrder verifies the effect stream: initial pause, then highlight+pause per element
func TestPlanOrder(t *testing.T) {
	steps := Plan([]sector.Index{sector.Right, sector.Left}, DefaultTimings())
	require.Len(t, steps, 5)

	assert.Equal(t, Step{Kind: StepPause, Region: sector.None, Duration: 400 * time.Millisecond}, steps[0])
	assert.Equal(t, Step{Kind: StepHighlight, Region: sector.Right, Duration: 350 * time.Millisecond}, steps[1])
	assert.Equal(t, Step{Kind: StepPause, Region: sector.None, Duration: 200 * time.Millisecond}, steps[2])
	assert.Equal(t, sector.Left, steps[3].Region)
	assert.Equal(t, StepPause, steps[4].Kind)
}

// TestPlanEmptySequence verifies an empty sequence still carries the initial pause
func TestPlanEmptySequence(t *testing.T) {
	steps := Plan(nil, DefaultTimings())
	require.Len(t, steps, 1)
	assert.Equal(t, "pause", steps[0].Kind.String())
}

// TestDriverSequentialTiming verifies highlights never overlap and follow the configured rhythm
func TestDriverSequentialTiming(t *testing.T) {
	d, rec, clock := newDriver(t)

	completed := time.Duration(-1)
	d.Play([]sector.Index{sector.Top, sector.Top, sector.Bottom}, func() { completed = clock.Now() })

	clock.RunUntilIdle(10 * time.Second)

	// 400 + 3*(350+200)
	assert.Equal(t, 2050*time.Millisecond, completed)
	assert.Equal(t, 1, rec.maxAct, "highlights overlapped")

	var starts []time.Duration
	var clips []string
	for _, ev := range rec.events {
		switch ev.kind {
		case "highlight":
			starts = append(starts, ev.at)
		case "clip":
			clips = append(clips, ev.clip)
		}
	}
	assert.Equal(t, []time.Duration{400 * time.Millisecond, 950 * time.Millisecond, 1500 * time.Millisecond}, starts)
	assert.Equal(t, []string{"red", "red", "blue"}, clips)
}

// TestDriverClipPrecedesHighlight verifies the sound is triggered at the start of its highlight
func TestDriverClipPrecedesHighlight(t *testing.T) {
	d, rec, clock := newDriver(t)
	d.Play([]sector.Index{sector.Left}, nil)
	clock.RunUntilIdle(time.Second)

	require.GreaterOrEqual(t, len(rec.events), 2)
	assert.Equal(t, "clip", rec.events[0].kind)
	assert.Equal(t, "highlight", rec.events[1].kind)
	assert.Equal(t, rec.events[0].at, rec.events[1].at)
}

// TestDriverSurvivesAudioFailure verifies a failing clip never stalls playback
func TestDriverSurvivesAudioFailure(t *testing.T) {
	d, rec, clock := newDriver(t)
	rec.fail = true

	done := false
	d.Play([]sector.Index{sector.Right, sector.Left}, func() { done = true })
	clock.RunUntilIdle(time.Second * 5)

	assert.True(t, done)
}

// TestDriverCompletionNotEarly verifies done fires only after the last pause
func TestDriverCompletionNotEarly(t *testing.T) {
	d, _, clock := newDriver(t)

	done := false
	d.Play([]sector.Index{sector.Bottom}, func() { done = true })

	clock.Advance(949 * time.Millisecond)
	assert.False(t, done)
	clock.Advance(time.Millisecond)
	assert.True(t, done)
}
