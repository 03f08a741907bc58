package arcade

import (
	"math"

	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
	"github.com/vovakirdan/arcadeloop/internal/rng"
)

// MaxParticles caps the shared debris pool.
const MaxParticles = 64

const (
	particleGravity = 0.2
	particleFade    = 0.05
)

// Particle is one piece of debris.
type Particle struct {
	pool.Entity
	Life  float64
	Rune  rune
	Color core.Color
}

// Particles is the shared debris pool. Bursts past the cap are dropped.
type Particles struct {
	pool *pool.Pool[*Particle]
}

// NewParticles creates a pool with the given cap.
func NewParticles(limit int) *Particles {
	return &Particles{pool: pool.New[*Particle](limit)}
}

// Burst throws n particles out of at in random directions.
func (p *Particles) Burst(r *rng.RNG, at physics.Vec, n int, speed float64, glyph rune, c core.Color) {
	for i := 0; i < n; i++ {
		angle := r.Float64() * 2 * math.Pi
		v := speed * (0.5 + r.Float64()*0.5)
		pt := &Particle{Life: 1, Rune: glyph, Color: c}
		pt.Active = true
		pt.Pos = at
		pt.Vel = physics.V(math.Cos(angle)*v, math.Sin(angle)*v-speed*0.5)
		if !p.pool.Spawn(pt) {
			return
		}
	}
}

// Step advances all particles by one time-scaled frame and recycles the
// faded ones.
func (p *Particles) Step(ts float64) {
	if ts == 0 {
		return
	}
	p.pool.Each(func(pt *Particle) {
		pt.Pos = pt.Pos.Add(pt.Vel.Scale(ts))
		pt.Vel.Y += particleGravity * ts
		pt.Life -= particleFade * ts
		if pt.Life <= 0 {
			pt.Kill()
		}
	})
	p.pool.Recycle()
}

// Draw plots every live particle.
func (p *Particles) Draw(v *View) {
	p.pool.Each(func(pt *Particle) {
		glyph := pt.Rune
		if pt.Life < 0.35 {
			glyph = '.'
		}
		v.Plot(pt.Pos, glyph, pt.Color)
	})
}

// Len returns the number of live particles.
func (p *Particles) Len() int {
	return p.pool.Active()
}

// Clear removes all particles.
func (p *Particles) Clear() {
	p.pool.Clear()
}
