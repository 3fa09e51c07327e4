package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/simon/leaderboard"
)

const (
	startLabel     = "[   START   ]"
	playAgainLabel = "[ PLAY AGAIN ]"
)

// StartButton returns the menu START button for a w x h screen
func StartButton(w, h int) Button {
	return CenteredButton(startLabel, w, h/2+2)
}

// DrawMenu renders the title screen
func DrawMenu(s tcell.Screen) {
	w, h := s.Size()
	bg := tcell.StyleDefault.Background(RgbBackground)
	s.Fill(' ', bg)

	drawCentered(s, h/2-2, "S I M O N", bg.Foreground(RgbText).Bold(true))
	drawCentered(s, h/2, "Repeat the sequence of colors", bg.Foreground(RgbMuted))
	StartButton(w, h).Draw(s, RgbStart)
	drawCentered(s, h-1, "ENTER start  Q quit", bg.Foreground(RgbMuted))

	s.Show()
}

// PlayAgainButton returns the leaderboard restart button for a w x h screen
func PlayAgainButton(w, h int) Button {
	return CenteredButton(playAgainLabel, w, h-2)
}

// LeaderboardView is the state of the leaderboard screen
type LeaderboardView struct {
	Score     int
	Name      string // Name being typed
	Submitted bool
	Pending   bool
	Entries   []leaderboard.Entry
	Status    string
	StatusErr bool
}

// DrawLeaderboard renders the score entry form and ranking
func DrawLeaderboard(s tcell.Screen, v LeaderboardView) {
	w, h := s.Size()
	bg := tcell.StyleDefault.Background(RgbBackground)
	text := bg.Foreground(RgbText)
	muted := bg.Foreground(RgbMuted)
	s.Fill(' ', bg)

	drawCentered(s, 0, "L E A D E R B O A R D", text.Bold(true))
	drawCentered(s, 2, fmt.Sprintf("Your score: %d", v.Score), text.Bold(true))

	row := 4
	if !v.Submitted {
		drawCentered(s, row, "Enter your name or email, then ENTER", muted)
		drawCentered(s, row+1, "> "+v.Name+"_", text)
		row += 3
	}

	if v.Status != "" {
		style := muted
		if v.StatusErr {
			style = bg.Foreground(RgbError)
		}
		drawCentered(s, row, v.Status, style)
		row += 2
	}

	for i, e := range v.Entries {
		if row >= h-3 {
			break
		}
		drawCentered(s, row, FormatEntry(i+1, e), text)
		row++
	}

	PlayAgainButton(w, h).Draw(s, RgbButton)
	drawCentered(s, h-1, LeaderboardFooter(v), muted)
	s.Show()
}

// LeaderboardFooter lists the keys valid in the current leaderboard state
func LeaderboardFooter(v LeaderboardView) string {
	if v.Submitted {
		return "R play again  ESC quit"
	}
	return "ENTER submit  ^R play again  ESC quit"
}

// FormatEntry renders one ranking line with the name padded to a fixed width
func FormatEntry(rank int, e leaderboard.Entry) string {
	name := runewidth.Truncate(e.Name, 16, "…")
	return fmt.Sprintf("%2d. %s %4d", rank, runewidth.FillRight(name, 16), e.Score)
}
