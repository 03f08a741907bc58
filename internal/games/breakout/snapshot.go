package breakout

import "math"

// Snapshot captures the observable game state for determinism tests.
type Snapshot struct {
	Level       int
	PaddleX     float64
	PaddleWidth float64
	Alive       int
	Balls       []float64 // x, y, vx, vy per ball
	Drops       int
	Bullets     int
	Effects     int
}

// Snapshot returns the current state.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Level:       g.level.Number,
		PaddleX:     g.paddle.X,
		PaddleWidth: g.paddle.W,
		Alive:       g.level.Alive(),
		Drops:       g.drops.Active(),
		Bullets:     g.bullets.Active(),
		Effects:     len(g.status.Kinds()),
	}
	g.balls.Each(func(b *Ball) {
		snap.Balls = append(snap.Balls, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y)
	})
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Level)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Alive)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Drops)   //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Bullets) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Effects) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + math.Float64bits(snap.PaddleWidth)

	for _, v := range snap.Balls {
		h = h*31 + math.Float64bits(v)
	}

	return h
}
