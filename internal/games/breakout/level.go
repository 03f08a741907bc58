package breakout

import (
	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/rng"
)

// BrickType represents different types of bricks.
type BrickType int

const (
	BrickToilet    BrickType = iota // Standard brick, one hit
	BrickPaper                      // Standard brick, one hit
	BrickExplosive                  // Chains into its neighbours
	BrickGolden                     // Several hits
	BrickStone                      // Only forced hits break it
)

// Points awarded when the brick is destroyed.
func (t BrickType) Points() int {
	switch t {
	case BrickExplosive:
		return 50
	case BrickGolden:
		return 100
	case BrickStone:
		return 200
	}
	return 10
}

// Glyph returns the display character for a brick type.
func (t BrickType) Glyph() rune {
	switch t {
	case BrickPaper:
		return '▒'
	case BrickExplosive:
		return '✸'
	case BrickGolden:
		return '▓'
	case BrickStone:
		return '▩'
	}
	return '█'
}

// Brick represents a single brick in the level.
type Brick struct {
	collide.Box
	Type  BrickType
	HP    int
	MaxHP int
	Alive bool
}

// Breakable reports whether an unforced hit can ever destroy the brick.
func (b *Brick) Breakable() bool {
	return b.Type != BrickStone
}

// Layout is the brick grid geometry.
type Layout struct {
	Cols       int     `yaml:"cols" toml:"cols"`
	Rows       int     `yaml:"rows" toml:"rows"`
	Height     float64 `yaml:"height" toml:"height"`
	Padding    float64 `yaml:"padding" toml:"padding"`
	OffsetTop  float64 `yaml:"offset_top" toml:"offset_top"`
	OffsetLeft float64 `yaml:"offset_left" toml:"offset_left"`
}

func (l Layout) brickWidth() float64 {
	return (Width - 2*l.OffsetLeft) / float64(l.Cols)
}

func (l Layout) box(row, col int) collide.Box {
	w := l.brickWidth()
	return collide.Box{
		X: float64(col)*(w+l.Padding) + l.OffsetLeft,
		Y: float64(row)*(l.Height+l.Padding) + l.OffsetTop,
		W: w,
		H: l.Height,
	}
}

// Level is a playable set of bricks.
type Level struct {
	Number int
	Bricks []*Brick
}

// skip reports whether the pattern of level n leaves cell (r, c) empty.
func skip(n, r, c int, rnd *rng.RNG) bool {
	switch {
	case n == 2:
		return (c+r)%2 == 0
	case n == 3:
		return c%2 != 0
	case n == 4:
		return r%2 == 0
	case n > 5:
		return rnd.Above(0.8)
	}
	return false
}

// BuildLevel lays out level n (1-based).
func BuildLevel(n int, l Layout, rnd *rng.RNG) *Level {
	rows := l.Rows
	if n > 2 {
		rows++
	}
	level := &Level{Number: n}
	for c := 0; c < l.Cols; c++ {
		for r := 0; r < rows; r++ {
			if skip(n, r, c, rnd) {
				continue
			}
			typ := BrickToilet
			if (r+c)%3 == 0 {
				typ = BrickPaper
			}
			hp := 1
			switch roll := rnd.Float64(); {
			case n >= 2 && roll > 0.92:
				typ, hp = BrickStone, 999
			case roll > 0.94:
				typ = BrickExplosive
			case roll > 0.88:
				typ, hp = BrickGolden, 2+n/3
			}
			level.Bricks = append(level.Bricks, &Brick{
				Box:   l.box(r, c),
				Type:  typ,
				HP:    hp,
				MaxHP: hp,
				Alive: true,
			})
		}
	}
	return level
}

// ParseLevel creates a Level from an ASCII map.
// Characters:
//
//	'#' = toilet brick
//	'p' = paper brick
//	'E' = explosive brick
//	'G' = golden brick (2 HP)
//	'S' = stone brick
//	'.' = empty
func ParseLevel(n int, l Layout, lines []string) *Level {
	level := &Level{Number: n}
	for row, line := range lines {
		for col, ch := range line {
			typ, hp := BrickToilet, 1
			switch ch {
			case '#':
			case 'p':
				typ = BrickPaper
			case 'E':
				typ = BrickExplosive
			case 'G':
				typ, hp = BrickGolden, 2
			case 'S':
				typ, hp = BrickStone, 999
			default:
				continue
			}
			level.Bricks = append(level.Bricks, &Brick{
				Box:   l.box(row, col),
				Type:  typ,
				HP:    hp,
				MaxHP: hp,
				Alive: true,
			})
		}
	}
	return level
}

// Breakable returns the number of live bricks that are not stone.
func (lv *Level) Breakable() int {
	count := 0
	for _, b := range lv.Bricks {
		if b.Alive && b.Breakable() {
			count++
		}
	}
	return count
}

// Alive returns the number of live bricks.
func (lv *Level) Alive() int {
	count := 0
	for _, b := range lv.Bricks {
		if b.Alive {
			count++
		}
	}
	return count
}

// Blast returns the live bricks whose centers lie within radius of brick i.
func (lv *Level) Blast(i int, radius float64) []int {
	at := lv.Bricks[i].Center()
	var out []int
	for j, b := range lv.Bricks {
		if j != i && b.Alive && collide.Within(at, b.Center(), radius) {
			out = append(out, j)
		}
	}
	return out
}
