package flappy

import (
	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
)

// Pipe is a pair of columns with a gap. Pos.X is the left edge; Top is the
// height of the upper column.
type Pipe struct {
	pool.Entity
	Top    float64
	Passed bool // scored already
}

func newPipe(x, top float64) *Pipe {
	p := &Pipe{Top: top}
	p.Active = true
	p.Pos = physics.V(x, 0)
	return p
}

// Hits reports whether box touches either column.
func (p *Pipe) Hits(box collide.Box, width, gap float64) bool {
	if box.Right() <= p.Pos.X || box.X >= p.Pos.X+width {
		return false
	}
	return box.Y < p.Top || box.Bottom() > p.Top+gap
}
