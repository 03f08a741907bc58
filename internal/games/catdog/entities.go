package catdog

import (
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/effects"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
)

// Fighter is the side the player picked. The CPU plays the other one.
type Fighter int

const (
	Cat Fighter = iota
	Dog
)

func (f Fighter) String() string {
	if f == Dog {
		return "DOG"
	}
	return "CAT"
}

func (f Fighter) other() Fighter {
	if f == Cat {
		return Dog
	}
	return Cat
}

func (f Fighter) glyph() (rune, core.Color) {
	if f == Dog {
		return 'D', core.ColorOrange
	}
	return 'C', core.ColorBrightCyan
}

// ammo is what the fighter throws: cats throw trash, dogs throw bones.
func (f Fighter) ammo() (rune, core.Color) {
	if f == Dog {
		return '=', core.ColorBrightWhite
	}
	return '¤', core.ColorGray
}

// Side identifies a thrower.
type Side int

const (
	noSide Side = iota
	SidePlayer
	SideCPU
)

// Power-ups. Heal applies at once; the others arm the next throw.
const (
	ItemDouble effects.Kind = "double_shot"
	ItemBomb   effects.Kind = "big_bomb"
	ItemHeal   effects.Kind = "heal"
)

// slotItems maps the digit keys to items.
var slotItems = map[int]effects.Kind{1: ItemDouble, 2: ItemBomb, 3: ItemHeal}

// Arm is the set of power-ups riding on one throw.
type Arm struct {
	Double bool
	Bomb   bool
}

// Shot is a projectile in flight.
type Shot struct {
	pool.Entity
	Owner Side
	Bomb  bool
}

func newShot(owner Side, at, vel physics.Vec, bomb bool) *Shot {
	s := &Shot{Owner: owner, Bomb: bomb}
	s.Active = true
	s.Pos = at
	s.Vel = vel
	return s
}
