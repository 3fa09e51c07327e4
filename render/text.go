package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes s starting at col, clipped to the screen width
func drawText(s tcell.Screen, col, row int, text string, style tcell.Style) {
	w, h := s.Size()
	if row < 0 || row >= h {
		return
	}
	for _, r := range text {
		if col >= w {
			return
		}
		if col >= 0 {
			s.SetContent(col, row, r, nil, style)
		}
		col += runewidth.RuneWidth(r)
	}
}

// drawCentered writes text centered on row
func drawCentered(s tcell.Screen, row int, text string, style tcell.Style) {
	w, _ := s.Size()
	drawText(s, (w-runewidth.StringWidth(text))/2, row, text, style)
}

// Button is a single-row clickable label
type Button struct {
	Label string
	Col   int
	Row   int
}

// CenteredButton places label centered on row for a screen of width w
func CenteredButton(label string, w, row int) Button {
	return Button{Label: label, Col: (w - runewidth.StringWidth(label)) / 2, Row: row}
}

// Hit reports whether the cell (col,row) lies on the button
func (b Button) Hit(col, row int) bool {
	return row == b.Row && col >= b.Col && col < b.Col+runewidth.StringWidth(b.Label)
}

// Draw renders the button with bg as its fill
func (b Button) Draw(s tcell.Screen, bg tcell.Color) {
	drawText(s, b.Col, b.Row, b.Label, tcell.StyleDefault.Background(bg).Foreground(RgbText).Bold(true))
}
