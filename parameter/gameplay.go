package parameter

import "time"

// Playback Timing
const (
	// PlaybackInitialPause precedes the first highlight of every playback
	PlaybackInitialPause = 400 * time.Millisecond

	// HighlightDuration is the full down/up ramp of one playback step
	HighlightDuration = 350 * time.Millisecond

	// PlaybackStepPause follows each highlight once its animation has completed
	PlaybackStepPause = 200 * time.Millisecond

	// HighlightDimLevel is the intensity at the bottom of the highlight ramp
	HighlightDimLevel = 0.35
)

// Round Timing
const (
	// RoundCompletePause separates a completed round from the next playback
	RoundCompletePause = 700 * time.Millisecond

	// TapFeedbackDuration is the highlight length for player taps
	TapFeedbackDuration = 200 * time.Millisecond

	// FailurePhaseDuration is the length of each dim or bright phase of the failure flash
	FailurePhaseDuration = 120 * time.Millisecond

	// FailurePulses is the number of dim/bright pairs in the failure flash
	FailurePulses = 3

	// FailureDimLevel is the intensity of all regions during a dim phase
	FailureDimLevel = 0.2
)
