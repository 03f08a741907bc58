package collide

import (
	"math"

	"github.com/vovakirdan/arcadeloop/internal/physics"
)

// TrailSize is the number of pointer samples a Trail keeps.
const TrailSize = 8

// Trail is the rolling buffer of recent pointer samples behind a swipe.
//
// Hit testing deliberately looks only at the last two samples: speed is the
// distance between them and the hit check runs at the newest one. A true
// continuous sweep is not attempted, so very fast swipes can step over an
// object between samples.
type Trail struct {
	pts []physics.Vec

	// Reach widens the hit radius by speed*Reach, capped at MaxReach of the
	// object size.
	Reach    float64
	MaxReach float64
}

// NewTrail returns an empty trail with the default reach settings.
func NewTrail() *Trail {
	return &Trail{pts: make([]physics.Vec, 0, TrailSize), Reach: 0.1, MaxReach: 0.25}
}

// Push records a sample, dropping the oldest one past TrailSize.
func (t *Trail) Push(p physics.Vec) {
	if len(t.pts) == TrailSize {
		copy(t.pts, t.pts[1:])
		t.pts = t.pts[:TrailSize-1]
	}
	t.pts = append(t.pts, p)
}

// Shift ages out the oldest sample.
func (t *Trail) Shift() {
	if len(t.pts) == 0 {
		return
	}
	copy(t.pts, t.pts[1:])
	t.pts = t.pts[:len(t.pts)-1]
}

// Clear drops every sample.
func (t *Trail) Clear() {
	t.pts = t.pts[:0]
}

// Len returns the number of samples held.
func (t *Trail) Len() int {
	return len(t.pts)
}

// Points returns the samples, oldest first. The slice is only valid until
// the next Push.
func (t *Trail) Points() []physics.Vec {
	return t.pts
}

// Swipe returns the newest sample and the distance covered since the
// previous one. ok is false with fewer than two samples.
func (t *Trail) Swipe() (at physics.Vec, speed float64, ok bool) {
	n := len(t.pts)
	if n < 2 {
		return physics.Vec{}, 0, false
	}
	at, prev := t.pts[n-1], t.pts[n-2]
	return at, at.Dist(prev), true
}

// Hits reports whether the current swipe slices an object of the given size
// centred on c. Zero-length swipes never hit.
func (t *Trail) Hits(c physics.Vec, size float64) bool {
	at, speed, ok := t.Swipe()
	if !ok || speed == 0 {
		return false
	}
	reach := math.Min(speed*t.Reach, size*t.MaxReach)
	return Within(at, c, size+reach)
}
