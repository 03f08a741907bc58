// Package collide has the overlap tests used by the rulesets: float AABBs,
// radial checks, the forgiving platform-landing band, the two-sample swipe
// heuristic and synchronous chain resolution.
package collide

import (
	"math"

	"github.com/vovakirdan/arcadeloop/internal/physics"
)

// Box is an axis-aligned rectangle in world units.
type Box struct {
	X, Y, W, H float64
}

// BoxAt builds a box of size w x h centered on c.
func BoxAt(c physics.Vec, w, h float64) Box {
	return Box{X: c.X - w/2, Y: c.Y - h/2, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// Center returns the center point.
func (b Box) Center() physics.Vec {
	return physics.V(b.X+b.W/2, b.Y+b.H/2)
}

// Overlaps is the strict AABB test. Touching edges do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right() && b.Right() > o.X && b.Y < o.Bottom() && b.Bottom() > o.Y
}

// Contains reports whether p lies strictly inside the box.
func (b Box) Contains(p physics.Vec) bool {
	return p.X > b.X && p.X < b.Right() && p.Y > b.Y && p.Y < b.Bottom()
}

// Shrink returns the box inset by d on every side.
func (b Box) Shrink(d float64) Box {
	return Box{X: b.X + d, Y: b.Y + d, W: math.Max(0, b.W-2*d), H: math.Max(0, b.H-2*d)}
}

// Within reports whether a and b are closer than r.
func Within(a, b physics.Vec, r float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) < r
}

// Circles reports whether two circles overlap: hypot < ra + rb.
func Circles(a physics.Vec, ra float64, b physics.Vec, rb float64) bool {
	return Within(a, b, ra+rb)
}

// Landing reports whether mover, falling at vy, lands on top of plat.
//
// Contact only counts on the way down, when the horizontal overlap survives
// an inset on each side of the platform, and when the mover's bottom edge is
// between the platform top and band units below the platform bottom. The
// band keeps fast falls from passing through thin platforms.
func Landing(mover Box, vy float64, plat Box, band, inset float64) bool {
	if vy <= 0 {
		return false
	}
	if mover.Right() <= plat.X+inset || mover.X >= plat.Right()-inset {
		return false
	}
	bottom := mover.Bottom()
	return bottom > plat.Y && bottom < plat.Bottom()+band
}
