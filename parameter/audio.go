package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioResampleQuality is passed to beep.Resample for WAV clips recorded at other rates
	AudioResampleQuality = 4
)

// Region Tones
// Frequencies follow the classic four-pad memory game
const (
	ToneGreenHz  = 415.3
	ToneRedHz    = 310.0
	ToneYellowHz = 252.0
	ToneBlueHz   = 209.0

	ToneDuration = 400 * time.Millisecond
	ToneAttack   = 10 * time.Millisecond
	ToneRelease  = 120 * time.Millisecond
	ToneGain     = 0.25
)

// Game Over Sound
const (
	GameOverHz       = 110.0
	GameOverDuration = 700 * time.Millisecond
	GameOverAttack   = 20 * time.Millisecond
	GameOverRelease  = 250 * time.Millisecond
	GameOverGain     = 0.2
)
