package physics

import "math"

// Body is anything that moves: a position and a per-frame velocity.
type Body struct {
	Pos Vec
	Vel Vec
}

// Forces are the global constants applied by Step.
type Forces struct {
	Gravity    float64 // added to vy every frame
	Wind       float64 // lateral wind strength
	WindFactor float64 // scales Wind into a per-frame acceleration
	Drag       float64 // horizontal damping per frame in (0, 1); 0 or 1 disables it
}

// Step advances b by one frame at time scale ts:
//
//	vy += g*ts; vx += wind*windFactor*ts; x += vx*ts; y += vy*ts
//
// followed by vx *= drag^ts when drag is enabled. If any resulting
// component is NaN or infinite the body keeps its previous state and Step
// returns false.
func Step(b *Body, f Forces, ts float64) bool {
	if ts == 0 {
		return true
	}
	next := *b
	next.Vel.Y += f.Gravity * ts
	next.Vel.X += f.Wind * f.WindFactor * ts
	next.Pos.X += next.Vel.X * ts
	next.Pos.Y += next.Vel.Y * ts
	if f.Drag > 0 && f.Drag < 1 {
		next.Vel.X *= math.Pow(f.Drag, ts)
	}
	if !next.Pos.Finite() || !next.Vel.Finite() {
		return false
	}
	*b = next
	return true
}

// Drift moves b by its velocity without applying any force.
func Drift(b *Body, ts float64) bool {
	return Step(b, Forces{}, ts)
}

// ClampX caps the horizontal speed of b at limit.
func ClampX(b *Body, limit float64) {
	if b.Vel.X > limit {
		b.Vel.X = limit
	} else if b.Vel.X < -limit {
		b.Vel.X = -limit
	}
}

// Solve returns the launch velocity that carries a projectile from `from`
// to `to` in exactly t frames under gravity g and a constant horizontal
// acceleration windAcc, using the continuous range equations:
//
//	vy = (dy - 0.5*g*t²) / t
//	vx = (dx - 0.5*windAcc*t²) / t
//
// It returns false when t is not positive or the result is not finite.
func Solve(from, to Vec, g, windAcc, t float64) (Vec, bool) {
	if t <= 0 {
		return Vec{}, false
	}
	v := Vec{
		X: (to.X - from.X - 0.5*windAcc*t*t) / t,
		Y: (to.Y - from.Y - 0.5*g*t*t) / t,
	}
	if !v.Finite() {
		return Vec{}, false
	}
	return v, true
}
