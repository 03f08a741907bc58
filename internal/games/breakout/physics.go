package breakout

import (
	"math"

	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
)

// Ball is one ball in play. Pos is its center; Vel is per frame.
type Ball struct {
	pool.Entity
	Attached bool
	Big      bool
}

func newBall(at physics.Vec, vel physics.Vec, big bool) *Ball {
	b := &Ball{Big: big}
	b.Active = true
	b.Pos = at
	b.Vel = vel
	return b
}

// Paddle is the player's bat. X is the left edge.
type Paddle struct {
	X, Y float64
	W, H float64
}

// Box returns the paddle's bounds.
func (p Paddle) Box() collide.Box {
	return collide.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// Center returns the paddle's horizontal center.
func (p Paddle) Center() float64 {
	return p.X + p.W/2
}

// reflectWalls pushes b back inside the side and top walls and points its
// velocity away from them. It reports whether any wall was hit.
func reflectWalls(b *Ball, radius float64) bool {
	hit := false
	switch {
	case b.Pos.X-radius < 0:
		b.Pos.X = radius
		b.Vel.X = math.Abs(b.Vel.X)
		hit = true
	case b.Pos.X+radius > Width:
		b.Pos.X = Width - radius
		b.Vel.X = -math.Abs(b.Vel.X)
		hit = true
	}
	if b.Pos.Y-radius < 0 {
		b.Pos.Y = radius
		b.Vel.Y = math.Abs(b.Vel.Y)
		hit = true
	}
	return hit
}

// touchesPaddle reports whether the ball overlaps the paddle's band with
// its center over the paddle.
func touchesPaddle(b *Ball, radius float64, p Paddle) bool {
	return b.Pos.Y+radius > p.Y && b.Pos.Y-radius < p.Y+p.H &&
		b.Pos.X > p.X && b.Pos.X < p.X+p.W
}

// bouncePaddle sends b upward with an angle set by where it struck.
func bouncePaddle(b *Ball, p Paddle, steer, boost float64) {
	b.Vel.Y = -math.Abs(b.Vel.Y)
	b.Vel.X = (b.Pos.X - p.Center()) * steer
	b.Vel = b.Vel.Scale(boost)
}
