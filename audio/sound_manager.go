package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/simon/parameter"
)

const (
	sampleRate = beep.SampleRate(parameter.AudioSampleRate)
)

var (
	ErrNotInitialized = errors.New("audio: not initialized")
	ErrUnknownClip    = errors.New("audio: unknown clip")
)

// Player plays named clips, fire-and-forget
type Player interface {
	PlayClip(name string) error
}

// Clip builds a fresh streamer for one playback of a sound
type Clip func() beep.Streamer

// SoundManager manages all game audio
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	clips       map[string]Clip
	initialized bool
	muted       bool
}

// NewSoundManager creates a sound manager with the synthesized default clips
func NewSoundManager() *SoundManager {
	sm := &SoundManager{
		mixer: &beep.Mixer{},
		clips: DefaultClips(),
	}
	return sm
}

// Initialize sets up the audio system
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	// Note: beep doesn't provide a Close() method for speaker,
	// but clearing all streamers ensures no audio artifacts
	sm.initialized = false
}

// SetMuted toggles output without unregistering clips
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

// Register adds or replaces a clip
func (sm *SoundManager) Register(name string, clip Clip) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.clips[name] = clip
}

// Has reports whether a clip is registered under name
func (sm *SoundManager) Has(name string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	_, ok := sm.clips[name]
	return ok
}

// PlayClip implements Player
// Unknown names and an uninitialized speaker are reported; muting is not an error
func (sm *SoundManager) PlayClip(name string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	clip, ok := sm.clips[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}
	if !sm.initialized {
		return ErrNotInitialized
	}
	if sm.muted {
		return nil
	}

	streamer := clip()
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	return nil
}

// LoadDir replaces clips with <dir>/<name>.wav for every name that has a file
// Missing files keep the synthesized clip; returns the number of clips loaded
func (sm *SoundManager) LoadDir(dir string, names []string) (int, error) {
	loaded := 0
	for _, name := range names {
		path := filepath.Join(dir, name+".wav")
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("stat %s: %w", path, err)
		}

		clip, err := loadWAV(path)
		if err != nil {
			return loaded, err
		}
		sm.Register(name, clip)
		loaded++
	}
	return loaded, nil
}

// loadWAV decodes a WAV file into memory and returns a clip replaying it at the speaker rate
func loadWAV(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return func() beep.Streamer {
		s := buffer.Streamer(0, buffer.Len())
		if format.SampleRate == sampleRate {
			return s
		}
		return beep.Resample(parameter.AudioResampleQuality, format.SampleRate, sampleRate, s)
	}, nil
}

// PlaySafe plays a clip and logs any failure instead of propagating it
// Sound problems must never interrupt round progression
func PlaySafe(p Player, name string, logger zerolog.Logger) {
	if p == nil {
		return
	}
	if err := p.PlayClip(name); err != nil {
		logger.Warn().Err(err).Str("clip", name).Msg("clip playback failed")
	}
}
