package sector

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Index identifies one of the four play regions
type Index int

const (
	None   Index = -1 // Pointer outside the disc
	Left   Index = 0
	Top    Index = 1
	Right  Index = 2
	Bottom Index = 3
)

// Count is the number of regions partitioning the disc
const Count = 4

// GameOverClip is the clip played when a session fails
const GameOverClip = "gameover"

// Region is the immutable identity of one play region
// StartDeg/EndDeg form the half-open interval [StartDeg, EndDeg) in screen degrees
type Region struct {
	Index    Index
	Name     string
	StartDeg float64
	EndDeg   float64
	Hue      colorful.Color
	Clip     string
}

var regions = [Count]Region{
	{Index: Left, Name: "left", StartDeg: 180, EndDeg: 270, Hue: mustHex("#2ecc71"), Clip: "green"},
	{Index: Top, Name: "top", StartDeg: 270, EndDeg: 360, Hue: mustHex("#e74c3c"), Clip: "red"},
	{Index: Right, Name: "right", StartDeg: 0, EndDeg: 90, Hue: mustHex("#f1c40f"), Clip: "yellow"},
	{Index: Bottom, Name: "bottom", StartDeg: 90, EndDeg: 180, Hue: mustHex("#3498db"), Clip: "blue"},
}

// mustHex parses a constant "#rrggbb" color
func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("sector: bad color %q: %v", s, err))
	}
	return c
}

// Regions returns the region table ordered by index
func Regions() [Count]Region {
	return regions
}

// Valid reports whether i names one of the four regions
func (i Index) Valid() bool {
	return i >= 0 && i < Count
}

// Region returns the table entry for i, panics on None
func (i Index) Region() Region {
	if !i.Valid() {
		panic(fmt.Sprintf("sector: no region for index %d", int(i)))
	}
	return regions[i]
}

func (i Index) String() string {
	if !i.Valid() {
		return "none"
	}
	return regions[i].Name
}

// Contains reports whether angle (degrees, [0,360)) falls in the region's interval
func (r Region) Contains(angle float64) bool {
	return angle >= r.StartDeg && angle < r.EndDeg
}

// Clips returns every clip name the game can request, regions first
func Clips() []string {
	names := make([]string, 0, Count+1)
	for _, r := range regions {
		names = append(names, r.Clip)
	}
	return append(names, GameOverClip)
}
