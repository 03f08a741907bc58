package doodle

import (
	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
)

// PlatformKind is the landing behavior of a platform.
type PlatformKind int

const (
	PlatformNormal PlatformKind = iota
	PlatformMoving
	PlatformFragile
	PlatformSpring
)

// Item is a pickup resting on a normal platform.
type Item int

const (
	ItemNone Item = iota
	ItemChili
	ItemPropeller
	ItemShield
)

// Platform is a ledge. Pos is its top-left corner.
type Platform struct {
	pool.Entity
	W, H float64
	Kind PlatformKind
	Item Item
}

// Box returns the platform's bounds.
func (p *Platform) Box() collide.Box {
	return collide.Box{X: p.Pos.X, Y: p.Pos.Y, W: p.W, H: p.H}
}

// ItemAt returns where the platform's item floats.
func (p *Platform) ItemAt() physics.Vec {
	return physics.V(p.Pos.X+p.W/2, p.Pos.Y-15)
}

func newPlatform(x, y, w float64, kind PlatformKind) *Platform {
	p := &Platform{W: w, H: 15, Kind: kind}
	p.Active = true
	p.Pos = physics.V(x, y)
	return p
}

// EnemyKind selects an enemy's movement and contact rules.
type EnemyKind int

const (
	EnemyFly EnemyKind = iota
	EnemyPlunger
	EnemyBlackHole
)

// Enemy is a hazard. Pos is its top-left corner.
type Enemy struct {
	pool.Entity
	Kind   EnemyKind
	Size   float64
	StartY float64
}

// Center returns the enemy's center.
func (e *Enemy) Center() physics.Vec {
	return physics.V(e.Pos.X+e.Size/2, e.Pos.Y+e.Size/2)
}

// Shot is a projectile fired straight up.
type Shot struct {
	pool.Entity
}
