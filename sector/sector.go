// Package sector maps pointer coordinates on the play disc to one of four regions.
//
// Coordinates use screen orientation: x grows right, y grows down, so angles
// measured with atan2(dy, dx) increase clockwise. Region intervals are
// half-open, which puts the axis-aligned boundaries at 0, 90, 180 and 270
// degrees into regions Right, Bottom, Left and Top respectively.
package sector

import "math"

// Point is a position in board space
type Point struct {
	X, Y float64
}

// Angle returns the direction of p seen from center in degrees, normalized to [0,360)
func Angle(p, center Point) float64 {
	deg := math.Atan2(p.Y-center.Y, p.X-center.X) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	// Tiny negative angles round up to exactly 360
	if deg >= 360 {
		deg -= 360
	}
	return deg
}

// RegionFor returns the region whose interval contains angle
func RegionFor(angle float64) Index {
	for _, r := range regions {
		if r.Contains(angle) {
			return r.Index
		}
	}
	return None
}

// Resolve returns the region under p, or None when p lies outside the disc
//
// Classification works on the signs of the offset instead of the computed
// angle so that points exactly on an axis never depend on float rounding of
// atan2. The result is identical to RegionFor(Angle(p, center)).
func Resolve(p, center Point, radius float64) Index {
	dx := p.X - center.X
	dy := p.Y - center.Y
	if math.Hypot(dx, dy) > radius {
		return None
	}

	switch {
	case dx >= 0 && dy < 0:
		return Top // [270,360)
	case dx < 0 && dy <= 0:
		return Left // [180,270)
	case dx <= 0 && dy > 0:
		return Bottom // [90,180)
	default:
		return Right // [0,90), includes the center point
	}
}
