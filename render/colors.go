package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/simon/sector"
)

// RGB color definitions for the board
var (
	RgbBackground = tcell.NewRGBColor(34, 34, 34)    // Scene background
	RgbSeparator  = tcell.NewRGBColor(0, 0, 0)       // Wedge separator lines
	RgbInnerDisc  = tcell.NewRGBColor(17, 17, 17)    // Center disc holding the round counter
	RgbText       = tcell.NewRGBColor(255, 255, 255) // Title, info, labels
	RgbMuted      = tcell.NewRGBColor(236, 240, 241) // Hints
	RgbButton     = tcell.NewRGBColor(142, 68, 173)  // PLAY button
	RgbStart      = tcell.NewRGBColor(46, 204, 113)  // START button
	RgbError      = tcell.NewRGBColor(231, 76, 60)   // Failure messages
)

// backgroundHue is RgbBackground in blendable form
var backgroundHue = colorful.Color{R: 34.0 / 255, G: 34.0 / 255, B: 34.0 / 255}

// RegionColor returns the hue of r blended toward the background by level (1 = full, 0 = background)
func RegionColor(r sector.Index, level float64) tcell.Color {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	c := backgroundHue.BlendRgb(r.Region().Hue, level).Clamped()
	red, green, blue := c.RGB255()
	return tcell.NewRGBColor(int32(red), int32(green), int32(blue))
}
