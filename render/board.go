package render

import (
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/parameter"
	"github.com/lixenwraith/simon/sector"
)

const playLabel = "[   PLAY   ]"

// Board draws the play disc on a terminal and animates its regions
// Board coordinates: x = col+0.5, y = (row+0.5)*CellAspect, so the disc is round on screen
// and pointer cells map into the same space as Disc()
// Not safe for concurrent use; call from the game loop only
type Board struct {
	screen tcell.Screen
	timer  engine.Timer

	// dim is the floor of the highlight ramp
	dim float64

	width, height int
	center        sector.Point
	radius        float64
	inner         float64
	play          Button

	intensity [sector.Count]float64
	anim      [sector.Count]uint64
	global    float64

	round    int
	info     string
	infoErr  bool
	showPlay bool
	visible  bool
}

// NewBoard creates a board sized to the screen
func NewBoard(screen tcell.Screen, timer engine.Timer, dim float64) *Board {
	b := &Board{
		screen:   screen,
		timer:    timer,
		dim:      dim,
		global:   1,
		showPlay: true,
		visible:  true,
	}
	for i := range b.intensity {
		b.intensity[i] = 1
	}
	b.Layout(screen.Size())
	return b
}

// Layout recomputes disc geometry for a w x h terminal
func (b *Board) Layout(w, h int) {
	b.width, b.height = w, h

	top := parameter.BoardTopRow
	rows := h - parameter.BoardBottomRows - top
	if rows < 1 {
		rows = 1
	}

	b.center = sector.Point{
		X: float64(w) / 2,
		Y: (float64(top) + float64(rows)/2) * parameter.CellAspect,
	}
	b.radius = math.Min(float64(w)/2-1, float64(rows)/2*parameter.CellAspect)
	if b.radius < parameter.MinBoardRadius {
		b.radius = parameter.MinBoardRadius
	}
	b.inner = b.radius * parameter.InnerRadiusRatio
	b.play = CenteredButton(playLabel, w, h-2)
}

// ToBoard maps a terminal cell to board coordinates (cell center)
func (b *Board) ToBoard(col, row int) sector.Point {
	return sector.Point{
		X: float64(col) + 0.5,
		Y: (float64(row) + 0.5) * parameter.CellAspect,
	}
}

// Disc implements round.Disc
func (b *Board) Disc() (sector.Point, float64) {
	return b.center, b.radius
}

// SetRound sets the counter shown in the center disc
func (b *Board) SetRound(n int) {
	b.round = n
}

// SetInfo sets the status line, isError renders it in the failure color
func (b *Board) SetInfo(text string, isError bool) {
	b.info = text
	b.infoErr = isError
}

// SetPlayVisible shows or hides the PLAY button
func (b *Board) SetPlayVisible(visible bool) {
	b.showPlay = visible
}

// SetVisible switches drawing on or off; animations keep their timing while hidden
func (b *Board) SetVisible(visible bool) {
	b.visible = visible
}

// HitPlay reports whether a click at (col,row) presses the visible PLAY button
func (b *Board) HitPlay(col, row int) bool {
	return b.showPlay && b.play.Hit(col, row)
}

// Intensity returns the current brightness multiplier of region r
func (b *Board) Intensity(r sector.Index) float64 {
	return b.intensity[r] * b.global
}

// Highlight implements playback.Surface
// Ramps r down to the dim level and back over d, redrawing every frame
// A newer highlight of the same region takes over drawing; the older one still completes on time
func (b *Board) Highlight(r sector.Index, d time.Duration, done func()) {
	if !r.Valid() {
		if done != nil {
			done()
		}
		return
	}

	b.anim[r]++
	frames := int(d / parameter.AnimationFrameInterval)
	if frames < 2 {
		frames = 2
	}
	b.animate(r, b.anim[r], d, frames, 0, done)
}

func (b *Board) animate(r sector.Index, token uint64, d time.Duration, frames, i int, done func()) {
	if b.anim[r] == token {
		b.intensity[r] = Ramp(float64(i)/float64(frames), b.dim)
		b.Draw()
	}
	if i == frames {
		if done != nil {
			done()
		}
		return
	}

	step := frameOffset(d, frames, i+1) - frameOffset(d, frames, i)
	b.timer.After(step, func() {
		b.animate(r, token, d, frames, i+1, done)
	})
}

// frameOffset is the start of frame i; offsets sum to exactly d
func frameOffset(d time.Duration, frames, i int) time.Duration {
	return d * time.Duration(i) / time.Duration(frames)
}

// FailureFlash implements round.Surface
// Alternates all regions dim/bright pulses times with phase per half
func (b *Board) FailureFlash(pulses int, phase time.Duration, done func()) {
	b.flash(2*pulses, 0, phase, done)
}

func (b *Board) flash(total, i int, phase time.Duration, done func()) {
	if i >= total {
		b.global = 1
		b.Draw()
		if done != nil {
			done()
		}
		return
	}

	if i%2 == 0 {
		b.global = parameter.FailureDimLevel
	} else {
		b.global = 1
	}
	b.Draw()
	b.timer.After(phase, func() {
		b.flash(total, i+1, phase, done)
	})
}

// Ramp is the symmetric highlight curve: 1 at t=0, dim at t=0.5, 1 at t=1
func Ramp(t, dim float64) float64 {
	switch {
	case t <= 0:
		return 1
	case t >= 1:
		return 1
	case t <= 0.5:
		return 1 - (1-dim)*(t/0.5)
	default:
		return dim + (1-dim)*((t-0.5)/0.5)
	}
}

// FormatRound renders the round counter with two digits
func FormatRound(n int) string {
	if n < 0 {
		n = 0
	}
	return fmt.Sprintf("%02d", n)
}

// Draw renders the full game screen
func (b *Board) Draw() {
	if !b.visible {
		return
	}
	s := b.screen
	bg := tcell.StyleDefault.Background(RgbBackground)
	s.Fill(' ', bg)

	drawCentered(s, 0, "S I M O N", bg.Foreground(RgbText).Bold(true))

	b.drawDisc()

	label := FormatRound(b.round)
	centerRow := int(b.center.Y / parameter.CellAspect)
	drawText(s, int(b.center.X)-len(label)/2, centerRow, label,
		tcell.StyleDefault.Background(RgbInnerDisc).Foreground(RgbText).Bold(true))

	infoStyle := bg.Foreground(RgbMuted)
	if b.infoErr {
		infoStyle = bg.Foreground(RgbError).Bold(true)
	}
	drawCentered(s, b.height-3, b.info, infoStyle)

	if b.showPlay {
		b.play.Draw(s, RgbButton)
	}

	s.Show()
}

// drawDisc fills every cell whose center lies on the disc
func (b *Board) drawDisc() {
	halfCell := parameter.CellAspect / 2
	for row := 0; row < b.height; row++ {
		for col := 0; col < b.width; col++ {
			p := b.ToBoard(col, row)
			dx := p.X - b.center.X
			dy := p.Y - b.center.Y
			dist := math.Hypot(dx, dy)
			if dist > b.radius {
				continue
			}

			var color tcell.Color
			switch {
			case dist <= b.inner:
				color = RgbInnerDisc
			case math.Abs(dx) <= 0.5 || math.Abs(dy) <= halfCell:
				color = RgbSeparator
			default:
				r := sector.Resolve(p, b.center, b.radius)
				color = RegionColor(r, b.Intensity(r))
			}
			b.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(color))
		}
	}
}
