package ninja

import (
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
)

// Kind is what gets thrown up from below the screen.
type Kind int

const (
	TP Kind = iota
	Golden
	Poop
	Mega
	Ice
	Bomb
	Rainbow
)

var kindNames = [...]string{
	TP:      "TP",
	Golden:  "GOLDEN",
	Poop:    "POOP",
	Mega:    "MEGA",
	Ice:     "ICE",
	Bomb:    "BOMB",
	Rainbow: "RAINBOW",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// Size is the slice radius of the kind.
func (k Kind) Size() float64 {
	switch k {
	case Poop, Bomb:
		return 60
	case Rainbow:
		return 65
	case Mega:
		return 150
	}
	return 70
}

func (k Kind) glyph() (rune, core.Color) {
	switch k {
	case Golden:
		return '◎', core.ColorBrightYellow
	case Poop:
		return '●', core.ColorBrown
	case Mega:
		return '◉', core.ColorBrightMagenta
	case Ice:
		return '❄', core.ColorBrightCyan
	case Bomb:
		return '✹', core.ColorRed
	case Rainbow:
		return '✺', core.ColorMagenta
	}
	return '◎', core.ColorWhite
}

// hitStop is how many frames the world pauses after slicing the kind.
func (k Kind) hitStop() int {
	switch k {
	case Mega:
		return 8
	case Golden, Ice, Bomb:
		return 5
	}
	return 3
}

// Object is a thrown roll. Pos is its centre.
type Object struct {
	pool.Entity
	Kind  Kind
	Size  float64
	HP    int
	Flash int
}

func newObject(kind Kind, at, vel physics.Vec) *Object {
	o := &Object{Kind: kind, Size: kind.Size(), HP: 1}
	if kind == Mega {
		o.HP = 5
	}
	o.Active = true
	o.Pos = at
	o.Vel = vel
	return o
}
