package main

import (
	"context"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/simon/audio"
	"github.com/lixenwraith/simon/core"
	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/leaderboard"
	"github.com/lixenwraith/simon/parameter"
	"github.com/lixenwraith/simon/render"
	"github.com/lixenwraith/simon/round"
	"github.com/lixenwraith/simon/sector"
)

// Info line texts per round state
const (
	infoIdle          = "Press ENTER or click PLAY"
	infoPlayback      = "Watch the sequence..."
	infoAwaitingInput = "Repeat the sequence"
	infoRoundComplete = "Well done! Next round..."
	infoFailed        = "Wrong!"

	statusSubmitting = "Submitting..."
	statusOffline    = "Server unreachable, showing local scores"
	statusLocal      = "Local scores"
	statusBadName    = "Enter a name or email"
)

type screenID int

const (
	screenMenu screenID = iota
	screenGame
	screenLeaderboard
)

func (s screenID) String() string {
	switch s {
	case screenMenu:
		return "menu"
	case screenGame:
		return "game"
	case screenLeaderboard:
		return "leaderboard"
	default:
		return "unknown"
	}
}

// Loop is the game loop the app runs on
// Post is only called from goroutines other than the loop
type Loop interface {
	engine.Timer
	Post(fn func()) bool
}

// AppConfig wires the app to its collaborators
type AppConfig struct {
	Screen  tcell.Screen
	Loop    Loop
	Audio   audio.Player
	Rand    round.Rand
	Timings round.Timings
	Dim     float64
	Scores  *leaderboard.Service
	Timeout time.Duration
	Name    string // Prefilled player name
	Logger  zerolog.Logger

	// Async runs blocking work off the loop; defaults to core.Go
	Async func(fn func())
}

// App routes terminal events between the menu, game and leaderboard screens
// Every method runs on the loop
type App struct {
	cfg     AppConfig
	screen  tcell.Screen
	board   *render.Board
	machine *round.Machine
	log     zerolog.Logger

	current   screenID
	mouseDown bool

	view    render.LeaderboardView
	lbToken uint64

	done     chan struct{}
	doneOnce sync.Once
}

// NewApp creates the app on the menu screen
func NewApp(cfg AppConfig) *App {
	if cfg.Async == nil {
		cfg.Async = core.Go
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = parameter.LeaderboardTimeout
	}

	a := &App{
		cfg:    cfg,
		screen: cfg.Screen,
		log:    cfg.Logger.With().Str("component", "app").Logger(),
		done:   make(chan struct{}),
	}
	a.board = render.NewBoard(cfg.Screen, cfg.Loop, cfg.Dim)
	a.board.SetVisible(false)
	a.board.SetInfo(infoIdle, false)

	a.machine = round.NewMachine(round.Config{
		Surface:  a.board,
		Disc:     a.board,
		Audio:    cfg.Audio,
		Timer:    cfg.Loop,
		Rand:     cfg.Rand,
		Timings:  cfg.Timings,
		Logger:   cfg.Logger,
		OnScore:  a.onScore,
		OnChange: a.onChange,
	})
	return a
}

// Done is closed when the player quits
func (a *App) Done() <-chan struct{} {
	return a.done
}

// Machine exposes the round machine
func (a *App) Machine() *round.Machine {
	return a.machine
}

// Quit ends the app
func (a *App) Quit() {
	a.doneOnce.Do(func() {
		a.log.Info().Msg("Quit requested")
		close(a.done)
	})
}

// Draw renders the current screen
func (a *App) Draw() {
	switch a.current {
	case screenMenu:
		render.DrawMenu(a.screen)
	case screenGame:
		a.board.Draw()
	case screenLeaderboard:
		render.DrawLeaderboard(a.screen, a.view)
	}
}

func (a *App) show(id screenID) {
	if a.current != id {
		a.log.Debug().Stringer("from", a.current).Stringer("to", id).Msg("Screen change")
	}
	a.current = id
	a.board.SetVisible(id == screenGame)
	a.Draw()
}

// startGame switches to the board and begins a fresh session
// Leaderboard results still in flight are discarded
func (a *App) startGame() {
	a.lbToken++
	a.show(screenGame)
	a.machine.Start()
}

// HandleEvent processes one terminal event
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.board.Layout(a.screen.Size())
		a.Draw()

	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			a.Quit()
			return
		}
		switch a.current {
		case screenMenu:
			a.menuKey(ev)
		case screenGame:
			a.gameKey(ev)
		case screenLeaderboard:
			a.leaderboardKey(ev)
		}

	case *tcell.EventMouse:
		pressed := ev.Buttons()&tcell.Button1 != 0
		edge := pressed && !a.mouseDown
		a.mouseDown = pressed
		if !edge {
			return
		}
		col, row := ev.Position()
		a.click(col, row)
	}
}

func (a *App) click(col, row int) {
	switch a.current {
	case screenMenu:
		w, h := a.screen.Size()
		if render.StartButton(w, h).Hit(col, row) {
			a.show(screenGame)
		}
	case screenGame:
		if a.board.HitPlay(col, row) && a.playable() {
			a.startGame()
			return
		}
		p := a.board.ToBoard(col, row)
		a.machine.Pointer(p.X, p.Y)
	case screenLeaderboard:
		w, h := a.screen.Size()
		if render.PlayAgainButton(w, h).Hit(col, row) {
			a.startGame()
		}
	}
}

func (a *App) menuKey(ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEnter:
		a.show(screenGame)
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
		a.Quit()
	}
}

// arrowRegions maps arrow keys onto the wedge they point at
var arrowRegions = map[tcell.Key]sector.Index{
	tcell.KeyLeft:  sector.Left,
	tcell.KeyUp:    sector.Top,
	tcell.KeyRight: sector.Right,
	tcell.KeyDown:  sector.Bottom,
}

func (a *App) gameKey(ev *tcell.EventKey) {
	if r, ok := arrowRegions[ev.Key()]; ok {
		a.machine.Tap(r)
		return
	}
	switch {
	case ev.Key() == tcell.KeyEnter:
		if a.playable() {
			a.startGame()
		}
	case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
		a.Quit()
	}
}

// playable reports whether a new session may be started from the board
// A failed session blocks restarts until its score has been handed off
func (a *App) playable() bool {
	s := a.machine.Snapshot()
	return s.State == round.Idle || (s.State == round.Failed && s.Reported)
}

func (a *App) onChange(s round.Session) {
	switch s.State {
	case round.Idle:
		a.board.SetInfo(infoIdle, false)
		a.board.SetPlayVisible(true)
	case round.Playback:
		a.board.SetRound(s.Round())
		a.board.SetInfo(infoPlayback, false)
		a.board.SetPlayVisible(false)
	case round.AwaitingInput:
		a.board.SetInfo(infoAwaitingInput, false)
	case round.RoundComplete:
		a.board.SetInfo(infoRoundComplete, false)
	case round.Failed:
		// PLAY stays hidden until the handoff opens the leaderboard
		a.board.SetInfo(infoFailed, true)
	}
	a.board.Draw()
}

// onScore receives the session-end handoff and opens the leaderboard
func (a *App) onScore(score int) {
	a.log.Info().Int("score", score).Msg("Session ended")

	a.lbToken++
	a.view = render.LeaderboardView{Score: score, Name: a.cfg.Name}
	a.show(screenLeaderboard)

	if a.cfg.Scores == nil {
		return
	}
	token := a.lbToken
	a.background(func(ctx context.Context) func() {
		entries, err := a.cfg.Scores.Standings(ctx)
		return func() {
			if token != a.lbToken || a.view.Submitted || a.view.Pending {
				return
			}
			a.view.Entries = entries
			a.setStatus(err)
		}
	})
}

func (a *App) leaderboardKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlR {
		a.startGame()
		return
	}
	if a.view.Submitted {
		switch {
		case ev.Key() == tcell.KeyRune && (ev.Rune() == 'r' || ev.Rune() == 'R'):
			a.startGame()
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
			a.Quit()
		}
		return
	}
	if a.view.Pending {
		return
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.Quit()
		return
	case tcell.KeyEnter:
		a.submit()
		return
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if _, size := utf8.DecodeLastRuneInString(a.view.Name); size > 0 {
			a.view.Name = a.view.Name[:len(a.view.Name)-size]
		}
	case tcell.KeyRune:
		if utf8.RuneCountInString(a.view.Name) < 2*parameter.LeaderboardMaxNameRunes {
			a.view.Name += string(ev.Rune())
		}
	}
	a.Draw()
}

// submit validates the typed name and records the score
func (a *App) submit() {
	name, err := leaderboard.NameFromEmail(a.view.Name)
	if err != nil {
		a.view.Status = statusBadName
		a.view.StatusErr = true
		a.Draw()
		return
	}

	entry := leaderboard.Entry{Name: name, Score: a.view.Score}
	if a.cfg.Scores == nil {
		a.view.Submitted = true
		a.view.Entries = []leaderboard.Entry{entry}
		a.view.Status = statusLocal
		a.Draw()
		return
	}

	a.view.Pending = true
	a.view.Status = statusSubmitting
	a.view.StatusErr = false
	a.Draw()

	token := a.lbToken
	a.background(func(ctx context.Context) func() {
		entries, err := a.cfg.Scores.Record(ctx, entry)
		return func() {
			if token != a.lbToken {
				return
			}
			a.view.Pending = false
			a.view.Submitted = true
			a.view.Entries = entries
			a.setStatus(err)
		}
	})
}

func (a *App) setStatus(err error) {
	switch {
	case err != nil:
		a.view.Status = statusOffline
		a.view.StatusErr = true
	case !a.cfg.Scores.Online():
		a.view.Status = statusLocal
		a.view.StatusErr = false
	default:
		a.view.Status = ""
		a.view.StatusErr = false
	}
	if a.current == screenLeaderboard {
		a.Draw()
	}
}

// background runs work off the loop and posts its result back
func (a *App) background(work func(ctx context.Context) func()) {
	a.cfg.Async(func() {
		ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeout)
		defer cancel()
		apply := work(ctx)
		if !a.cfg.Loop.Post(apply) {
			a.log.Debug().Msg("Loop stopped, dropped leaderboard result")
		}
	})
}
