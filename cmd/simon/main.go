package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/config"
	"github.com/lixenwraith/simon/core"
	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/leaderboard"
	"github.com/lixenwraith/simon/parameter"
	"github.com/lixenwraith/simon/sector"
)

var (
	debugFlag = flag.Bool("debug", false, "Enable debug logging to logs/simon.log")
	seedFlag  = flag.Uint64("seed", 0, "Sequence seed, 0 picks one from the clock")
	muteFlag  = flag.Bool("mute", false, "Disable sound")
	envFlag   = flag.String("env", ".env", "Optional env file with SIMON_* settings")
)

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*envFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(&cfg)

	// Validated by config.Load
	level, _ := cfg.Level()
	logger, logFile := setupLogging(cfg.Debug, level)
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.HideCursor()
	core.SetCrashCleanup(screen.Fini)
	defer screen.Fini()

	sounds := audio.NewSoundManager()
	if cfg.SoundDir != "" {
		n, err := sounds.LoadDir(cfg.SoundDir, sector.Clips())
		if err != nil {
			logger.Warn().Err(err).Str("dir", cfg.SoundDir).Msg("Sound override failed")
		}
		logger.Info().Int("clips", n).Str("dir", cfg.SoundDir).Msg("Loaded sound overrides")
	}
	sounds.SetMuted(cfg.Mute)

	// nil when no speaker is available, clips are then skipped
	var player audio.Player
	if err := sounds.Initialize(); err != nil {
		logger.Warn().Err(err).Msg("Audio initialization failed, continuing without sound")
	} else {
		player = sounds
		defer sounds.Cleanup()
	}

	var remote leaderboard.Remote
	if cfg.LeaderboardURL != "" {
		remote = leaderboard.NewClient(cfg.LeaderboardURL, cfg.LeaderboardTimeout)
	}
	scores := leaderboard.NewService(leaderboard.NewBoard(parameter.LeaderboardSize), remote, logger)

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Info().Uint64("seed", seed).Bool("online", scores.Online()).Msg("Starting")

	loop := engine.NewScheduler(parameter.SchedulerQueueSize, logger)
	loop.Start()
	defer loop.Stop()

	app := NewApp(AppConfig{
		Screen:  screen,
		Loop:    loop,
		Audio:   player,
		Rand:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Timings: cfg.RoundTimings(),
		Dim:     cfg.DimLevel,
		Scores:  scores,
		Timeout: cfg.LeaderboardTimeout,
		Name:    cfg.PlayerName,
		Logger:  logger,
	})
	loop.Post(app.Draw)

	// Input polling interacts directly with the terminal; events are handled on the loop
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if !loop.Post(func() { app.HandleEvent(ev) }) {
				return
			}
		}
	})

	<-app.Done()
}

// applyFlags lets command-line flags override environment settings
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "debug":
			cfg.Debug = *debugFlag
		case "seed":
			cfg.Seed = *seedFlag
		case "mute":
			cfg.Mute = *muteFlag
		}
	})
}
