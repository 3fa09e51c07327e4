package round

import (
	"slices"

	"github.com/lixenwraith/simon/sector"
)

// Step is the pure transition function of the round state machine
// It never mutates s; the returned effects must be executed in order
func Step(s Session, ev Event) (Session, []Effect) {
	switch e := ev.(type) {
	case Start:
		if !e.Next.Valid() {
			return s, nil
		}
		// A failed session replaced before its flash ended still hands off its score
		var pending []Effect
		if s.State == Failed && !s.Reported {
			pending = append(pending, Handoff{Score: s.Score})
		}
		next, effects := beginRound(Session{ID: s.ID + 1}, e.Next)
		return next, append(pending, effects...)

	case PlaybackDone:
		if s.State != Playback {
			return s, nil
		}
		s.State = AwaitingInput
		s.AcceptingInput = true
		return s, nil

	case Tap:
		return tap(s, e.Region)

	case PauseElapsed:
		if s.State != RoundComplete || !e.Next.Valid() {
			return s, nil
		}
		return beginRound(s, e.Next)

	case FailureShown:
		if s.State != Failed || s.Reported {
			return s, nil
		}
		s.Reported = true
		return s, []Effect{Handoff{Score: s.Score}}
	}
	return s, nil
}

// beginRound appends next and enters Playback
func beginRound(s Session, next sector.Index) (Session, []Effect) {
	seq := append(slices.Clone(s.Sequence), next)
	s.Sequence = seq
	s.PlayerStep = 0
	s.AcceptingInput = false
	s.State = Playback
	return s, []Effect{PlaySequence{Sequence: slices.Clone(seq)}}
}

// tap validates one player move against the sequence
func tap(s Session, r sector.Index) (Session, []Effect) {
	if !s.AcceptingInput || s.State != AwaitingInput || !r.Valid() {
		return s, nil
	}

	effects := []Effect{Feedback{Region: r}}

	if r == s.Sequence[s.PlayerStep] {
		s.PlayerStep++
		if s.PlayerStep == len(s.Sequence) {
			s.State = RoundComplete
			s.AcceptingInput = false
			effects = append(effects, WaitNextRound{})
		}
		return s, effects
	}

	s.State = Failed
	s.AcceptingInput = false
	s.Score = len(s.Sequence)
	return s, append(effects, SignalFailure{Score: s.Score})
}
