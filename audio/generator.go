package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/simon/parameter"
	"github.com/lixenwraith/simon/sector"
)

// DefaultClips returns synthesized clips for every region and the game over buzz
func DefaultClips() map[string]Clip {
	tones := map[sector.Index]float64{
		sector.Left:   parameter.ToneGreenHz,
		sector.Top:    parameter.ToneRedHz,
		sector.Right:  parameter.ToneYellowHz,
		sector.Bottom: parameter.ToneBlueHz,
	}

	clips := make(map[string]Clip, sector.Count+1)
	for idx, freq := range tones {
		clips[idx.Region().Clip] = ToneClip(freq)
	}
	clips[sector.GameOverClip] = func() beep.Streamer {
		return NewEnvelope(
			NewBuzzGenerator(sampleRate, parameter.GameOverHz),
			parameter.GameOverDuration, parameter.GameOverAttack, parameter.GameOverRelease,
			parameter.GameOverGain,
		)
	}
	return clips
}

// ToneClip returns a clip playing a sine tone at freq with a short attack and release
func ToneClip(freq float64) Clip {
	return func() beep.Streamer {
		sine, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			// Frequency above Nyquist, fall back to silence of the same length
			sine = beep.Silence(-1)
		}
		return NewEnvelope(sine, parameter.ToneDuration, parameter.ToneAttack, parameter.ToneRelease, parameter.ToneGain)
	}
}

// Envelope shapes a streamer with linear attack/release and terminates it after duration
type Envelope struct {
	src     beep.Streamer
	gain    float64
	total   int
	attack  int
	release int
	pos     int
}

// NewEnvelope wraps src, which may be infinite
func NewEnvelope(src beep.Streamer, duration, attack, release time.Duration, gain float64) *Envelope {
	return &Envelope{
		src:     src,
		gain:    gain,
		total:   sampleRate.N(duration),
		attack:  sampleRate.N(attack),
		release: sampleRate.N(release),
	}
}

func (e *Envelope) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := e.total - e.pos
	if remaining <= 0 {
		return 0, false
	}
	if len(samples) > remaining {
		samples = samples[:remaining]
	}

	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		level := e.gain * e.level(e.pos)
		samples[i][0] *= level
		samples[i][1] *= level
		e.pos++
	}
	if !ok && n == 0 {
		e.pos = e.total
		return 0, false
	}
	return n, true
}

func (e *Envelope) Err() error {
	return e.src.Err()
}

// level returns the envelope amplitude at sample pos
func (e *Envelope) level(pos int) float64 {
	if e.attack > 0 && pos < e.attack {
		return float64(pos) / float64(e.attack)
	}
	if tail := e.total - pos; e.release > 0 && tail < e.release {
		return float64(tail) / float64(e.release)
	}
	return 1.0
}

// BuzzGenerator generates a low-pitch buzz sound
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{
		sr:   sr,
		freq: freq,
	}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Sine with odd-ish harmonics for a harsh buzz
		sample := 0.0
		sample += 0.6 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.3 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.15 * math.Sin(2*math.Pi*g.freq*3*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}
