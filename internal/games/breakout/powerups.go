package breakout

import (
	"github.com/vovakirdan/arcadeloop/internal/effects"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
)

// PickupType represents different types of power-up pickups.
type PickupType int

const (
	PickupMulti   PickupType = iota // Two extra balls
	PickupGrow                      // Wider paddle
	PickupLaser                     // Paddle fires bullets
	PickupSticky                    // Ball sticks to the paddle
	PickupBig                       // Big ball force-breaks bricks
	PickupSpeedUp                   // Faster ball
	PickupCount                     // Sentinel for counting types
)

// Glyph returns the display character for a pickup type.
func (p PickupType) Glyph() rune {
	switch p {
	case PickupMulti:
		return 'M'
	case PickupGrow:
		return 'W'
	case PickupLaser:
		return 'L'
	case PickupSticky:
		return 'T'
	case PickupBig:
		return 'B'
	case PickupSpeedUp:
		return '+'
	default:
		return '?'
	}
}

// String returns the name of the pickup type.
func (p PickupType) String() string {
	switch p {
	case PickupMulti:
		return "Multi"
	case PickupGrow:
		return "Grow"
	case PickupLaser:
		return "Laser"
	case PickupSticky:
		return "Sticky"
	case PickupBig:
		return "Big"
	case PickupSpeedUp:
		return "Fast"
	default:
		return "?"
	}
}

// Timed effects. Multi is instant and has no timer.
const (
	effGrow   effects.Kind = "grow"
	effLaser  effects.Kind = "laser"
	effSticky effects.Kind = "sticky"
	effBig    effects.Kind = "big"
	effSpeed  effects.Kind = "speed"
)

var pickupEffect = map[PickupType]effects.Kind{
	PickupGrow:    effGrow,
	PickupLaser:   effLaser,
	PickupSticky:  effSticky,
	PickupBig:     effBig,
	PickupSpeedUp: effSpeed,
}

// Pickup represents a falling power-up item. Pos is its center.
type Pickup struct {
	pool.Entity
	Type PickupType
}

func newPickup(at physics.Vec, typ PickupType, fall float64) *Pickup {
	p := &Pickup{Type: typ}
	p.Active = true
	p.Pos = at
	p.Vel = physics.V(0, fall)
	return p
}

// Bullet is a laser shot. Pos is its tip.
type Bullet struct {
	pool.Entity
}

func newBullet(x, y, dy float64) *Bullet {
	b := &Bullet{}
	b.Active = true
	b.Pos = physics.V(x, y)
	b.Vel = physics.V(0, dy)
	return b
}
