// Package config loads runtime settings from an optional .env file and SIMON_* environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/simon/playback"
	"github.com/lixenwraith/simon/round"
)

// Config holds tunables; flags in main override Debug, Mute and Seed
type Config struct {
	InitialPause  time.Duration `env:"SIMON_INITIAL_PAUSE"   envDefault:"400ms"`
	Highlight     time.Duration `env:"SIMON_HIGHLIGHT"       envDefault:"350ms"`
	StepPause     time.Duration `env:"SIMON_STEP_PAUSE"      envDefault:"200ms"`
	RoundPause    time.Duration `env:"SIMON_ROUND_PAUSE"     envDefault:"700ms"`
	FailurePhase  time.Duration `env:"SIMON_FAILURE_PHASE"   envDefault:"120ms"`
	FailurePulses int           `env:"SIMON_FAILURE_PULSES"  envDefault:"3"`
	TapFeedback   time.Duration `env:"SIMON_TAP_FEEDBACK"    envDefault:"200ms"`
	DimLevel      float64       `env:"SIMON_DIM_LEVEL"       envDefault:"0.35"`

	SoundDir string `env:"SIMON_SOUND_DIR"`
	Mute     bool   `env:"SIMON_MUTE"`

	LeaderboardURL     string        `env:"SIMON_LEADERBOARD_URL"`
	LeaderboardTimeout time.Duration `env:"SIMON_LEADERBOARD_TIMEOUT" envDefault:"3s"`
	PlayerName         string        `env:"SIMON_PLAYER_NAME"`

	LogLevel string `env:"SIMON_LOG_LEVEL" envDefault:"info"`
	Debug    bool   `env:"SIMON_DEBUG"`
	Seed     uint64 `env:"SIMON_SEED"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads envFiles (".env" when none given) into the environment, then parses Config
// Missing files are ignored; variables already set win over file values
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with
func (c Config) Validate() error {
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"SIMON_INITIAL_PAUSE", c.InitialPause},
		{"SIMON_HIGHLIGHT", c.Highlight},
		{"SIMON_STEP_PAUSE", c.StepPause},
		{"SIMON_ROUND_PAUSE", c.RoundPause},
		{"SIMON_FAILURE_PHASE", c.FailurePhase},
		{"SIMON_TAP_FEEDBACK", c.TapFeedback},
		{"SIMON_LEADERBOARD_TIMEOUT", c.LeaderboardTimeout},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", d.name, d.d)
		}
	}
	if c.FailurePulses < 1 {
		return fmt.Errorf("SIMON_FAILURE_PULSES must be at least 1, got %d", c.FailurePulses)
	}
	if c.DimLevel <= 0 || c.DimLevel >= 1 {
		return fmt.Errorf("SIMON_DIM_LEVEL must be in (0,1), got %g", c.DimLevel)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel
func (c Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("SIMON_LOG_LEVEL: %w", err)
	}
	return lvl, nil
}

// RoundTimings converts the durations for the round machine
func (c Config) RoundTimings() round.Timings {
	return round.Timings{
		Playback: playback.Timings{
			InitialPause: c.InitialPause,
			Highlight:    c.Highlight,
			StepPause:    c.StepPause,
		},
		TapFeedback:   c.TapFeedback,
		RoundPause:    c.RoundPause,
		FailurePhase:  c.FailurePhase,
		FailurePulses: c.FailurePulses,
	}
}
