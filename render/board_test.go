package render

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/simon/engine"
	"github.com/lixenwraith/simon/leaderboard"
	"github.com/lixenwraith/simon/parameter"
	"github.com/lixenwraith/simon/sector"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newTestBoard(t *testing.T) (*Board, tcell.SimulationScreen, *engine.ManualClock) {
	t.Helper()
	s := newTestScreen(t, 40, 20)
	clock := engine.NewManualClock()
	return NewBoard(s, clock, parameter.HighlightDimLevel), s, clock
}

func background(s tcell.Screen, col, row int) tcell.Color {
	_, _, style, _ := s.GetContent(col, row)
	_, bg, _ := style.Decompose()
	return bg
}

func rowText(s tcell.Screen, row int) string {
	w, _ := s.Size()
	var sb strings.Builder
	for col := 0; col < w; col++ {
		r, _, _, _ := s.GetContent(col, row)
		sb.WriteRune(r)
	}
	return sb.String()
}

// TestLayoutFitsScreen verifies the disc stays inside the drawable rows
func TestLayoutFitsScreen(t *testing.T) {
	b, _, _ := newTestBoard(t)
	center, radius := b.Disc()

	assert.Equal(t, 20.0, center.X)
	assert.Equal(t, 18.0, center.Y)
	assert.Equal(t, 14.0, radius)

	b.Layout(4, 4)
	_, radius = b.Disc()
	assert.Equal(t, parameter.MinBoardRadius, radius)
}

// TestToBoardResolvesQuadrants verifies cell mapping agrees with region resolution
func TestToBoardResolvesQuadrants(t *testing.T) {
	b, _, _ := newTestBoard(t)
	center, radius := b.Disc()

	tests := []struct {
		col, row int
		want     sector.Index
	}{
		{26, 5, sector.Top},
		{14, 5, sector.Left},
		{14, 11, sector.Bottom},
		{26, 11, sector.Right},
		{0, 0, sector.None},
	}
	for _, tc := range tests {
		got := sector.Resolve(b.ToBoard(tc.col, tc.row), center, radius)
		assert.Equal(t, tc.want, got, "cell %d,%d", tc.col, tc.row)
	}
}

// TestDrawRegionsAndCounter verifies wedge colors and the round label
func TestDrawRegionsAndCounter(t *testing.T) {
	b, s, _ := newTestBoard(t)
	b.SetRound(3)
	b.SetInfo("Repeat the sequence", false)
	b.Draw()

	assert.Equal(t, RegionColor(sector.Top, 1), background(s, 26, 5))
	assert.Equal(t, RegionColor(sector.Left, 1), background(s, 14, 5))
	assert.Equal(t, RegionColor(sector.Bottom, 1), background(s, 14, 11))
	assert.Equal(t, RegionColor(sector.Right, 1), background(s, 26, 11))
	assert.Equal(t, RgbBackground, background(s, 0, 10))

	assert.Contains(t, rowText(s, 9), "03")
	assert.Contains(t, rowText(s, 0), "S I M O N")
	assert.Contains(t, rowText(s, 17), "Repeat the sequence")
	assert.Contains(t, rowText(s, 18), "PLAY")
}

// TestDrawSeparators verifies the axis lines are drawn between wedges
func TestDrawSeparators(t *testing.T) {
	b, s, _ := newTestBoard(t)
	b.Draw()

	assert.Equal(t, RgbSeparator, background(s, 20, 3), "vertical separator")
	assert.Equal(t, RgbSeparator, background(s, 30, 8), "horizontal separator")
	assert.Equal(t, RgbInnerDisc, background(s, 21, 8), "inner disc")
}

// TestHighlightRamp verifies the region dims toward the midpoint and recovers at the end
func TestHighlightRamp(t *testing.T) {
	b, s, clock := newTestBoard(t)
	d := parameter.HighlightDuration

	done := false
	b.Highlight(sector.Right, d, func() { done = true })
	assert.Equal(t, 1.0, b.Intensity(sector.Right))

	clock.Advance(d / 2)
	assert.Less(t, b.Intensity(sector.Right), 0.45)
	assert.Equal(t, 1.0, b.Intensity(sector.Left), "other regions unaffected")
	assert.NotEqual(t, RegionColor(sector.Right, 1), background(s, 26, 11))

	clock.Advance(d/2 - time.Millisecond)
	assert.False(t, done)

	clock.Advance(time.Millisecond)
	assert.True(t, done)
	assert.Equal(t, 1.0, b.Intensity(sector.Right))
	assert.Equal(t, RegionColor(sector.Right, 1), background(s, 26, 11))
}

// TestHighlightInvalidRegion verifies a non-region completes immediately
func TestHighlightInvalidRegion(t *testing.T) {
	b, _, clock := newTestBoard(t)
	done := false
	b.Highlight(sector.None, time.Second, func() { done = true })
	assert.True(t, done)
	assert.Zero(t, clock.Pending())
}

// TestHighlightOverlapSameRegion verifies both callers complete when a region is retriggered
func TestHighlightOverlapSameRegion(t *testing.T) {
	b, _, clock := newTestBoard(t)

	var first, second bool
	b.Highlight(sector.Top, 200*time.Millisecond, func() { first = true })
	clock.Advance(100 * time.Millisecond)
	b.Highlight(sector.Top, 200*time.Millisecond, func() { second = true })

	clock.Advance(100 * time.Millisecond)
	assert.True(t, first)
	assert.False(t, second)

	clock.Advance(100 * time.Millisecond)
	assert.True(t, second)
	assert.Equal(t, 1.0, b.Intensity(sector.Top))
}

// TestFailureFlash verifies alternating pulses and completion after all phases
func TestFailureFlash(t *testing.T) {
	b, _, clock := newTestBoard(t)
	phase := parameter.FailurePhaseDuration

	done := false
	b.FailureFlash(parameter.FailurePulses, phase, func() { done = true })

	for i := 0; i < 2*parameter.FailurePulses; i++ {
		want := 1.0
		if i%2 == 0 {
			want = parameter.FailureDimLevel
		}
		for _, r := range sector.Regions() {
			assert.InDelta(t, want, b.Intensity(r.Index), 1e-9, "phase %d region %s", i, r.Name)
		}
		assert.False(t, done, "phase %d", i)
		clock.Advance(phase)
	}

	assert.True(t, done)
	assert.Equal(t, 1.0, b.Intensity(sector.Left))
}

// TestHiddenBoardKeepsTiming verifies a hidden board does not draw but still completes animations
func TestHiddenBoardKeepsTiming(t *testing.T) {
	b, s, clock := newTestBoard(t)
	DrawMenu(s)
	b.SetVisible(false)

	done := false
	b.Highlight(sector.Left, 100*time.Millisecond, func() { done = true })
	clock.Advance(100 * time.Millisecond)

	assert.True(t, done)
	assert.Contains(t, rowText(s, 12), "START")
}

// TestRamp verifies the highlight curve endpoints and symmetry
func TestRamp(t *testing.T) {
	dim := 0.35
	assert.Equal(t, 1.0, Ramp(0, dim))
	assert.Equal(t, 1.0, Ramp(1, dim))
	assert.InDelta(t, dim, Ramp(0.5, dim), 1e-9)
	assert.InDelta(t, Ramp(0.25, dim), Ramp(0.75, dim), 1e-9)
	assert.Equal(t, 1.0, Ramp(-1, dim))
}

// TestFormatRound verifies two-digit counters
func TestFormatRound(t *testing.T) {
	assert.Equal(t, "00", FormatRound(0))
	assert.Equal(t, "01", FormatRound(1))
	assert.Equal(t, "10", FormatRound(10))
	assert.Equal(t, "123", FormatRound(123))
	assert.Equal(t, "00", FormatRound(-4))
}

// TestHitPlay verifies the PLAY button hit box and visibility
func TestHitPlay(t *testing.T) {
	b, _, _ := newTestBoard(t)

	assert.True(t, b.HitPlay(14, 18))
	assert.True(t, b.HitPlay(25, 18))
	assert.False(t, b.HitPlay(13, 18))
	assert.False(t, b.HitPlay(26, 18))
	assert.False(t, b.HitPlay(20, 17))

	b.SetPlayVisible(false)
	assert.False(t, b.HitPlay(20, 18))
}

// TestRegionColorLevels verifies blending toward the background
func TestRegionColorLevels(t *testing.T) {
	assert.Equal(t, RgbBackground, RegionColor(sector.Left, 0))
	assert.Equal(t, RegionColor(sector.Left, 1), RegionColor(sector.Left, 2))

	full := RegionColor(sector.Left, 1)
	r, g, bl := full.RGB()
	assert.Equal(t, [3]int32{0x2e, 0xcc, 0x71}, [3]int32{r, g, bl})
}

// TestDrawMenu verifies the title screen and START button placement
func TestDrawMenu(t *testing.T) {
	s := newTestScreen(t, 40, 20)
	DrawMenu(s)

	btn := StartButton(40, 20)
	assert.Contains(t, rowText(s, btn.Row), "START")
	assert.True(t, btn.Hit(btn.Col, btn.Row))
	assert.Equal(t, RgbStart, background(s, btn.Col, btn.Row))
}

// TestDrawLeaderboard verifies the form and ranking rows
func TestDrawLeaderboard(t *testing.T) {
	s := newTestScreen(t, 40, 20)
	DrawLeaderboard(s, LeaderboardView{
		Score: 7,
		Name:  "ann",
		Entries: []leaderboard.Entry{
			{Name: "bob", Score: 9},
			{Name: "ann", Score: 7},
		},
		Status: "Offline scores",
	})

	assert.Contains(t, rowText(s, 2), "Your score: 7")
	assert.Contains(t, rowText(s, 5), "> ann_")
	assert.Contains(t, rowText(s, 7), "Offline scores")
	assert.Contains(t, rowText(s, 9), FormatEntry(1, leaderboard.Entry{Name: "bob", Score: 9}))
	assert.Contains(t, rowText(s, 10), FormatEntry(2, leaderboard.Entry{Name: "ann", Score: 7}))
}

// TestDrawLeaderboardFooter verifies the key hints follow the submission state
func TestDrawLeaderboardFooter(t *testing.T) {
	s := newTestScreen(t, 40, 20)

	DrawLeaderboard(s, LeaderboardView{Score: 3})
	assert.Equal(t, "ENTER submit  ^R play again  ESC quit", strings.TrimSpace(rowText(s, 19)))

	btn := PlayAgainButton(40, 20)
	assert.Contains(t, rowText(s, btn.Row), "PLAY AGAIN")
	assert.Equal(t, RgbButton, background(s, btn.Col, btn.Row))

	DrawLeaderboard(s, LeaderboardView{Score: 3, Submitted: true})
	assert.Equal(t, "R play again  ESC quit", strings.TrimSpace(rowText(s, 19)))
}

// TestFormatEntry verifies fixed-width ranking lines
func TestFormatEntry(t *testing.T) {
	assert.Equal(t, " 1. ann                 7", FormatEntry(1, leaderboard.Entry{Name: "ann", Score: 7}))
	long := FormatEntry(2, leaderboard.Entry{Name: strings.Repeat("x", 30), Score: 1})
	assert.Contains(t, long, "…")
}
