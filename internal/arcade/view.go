package arcade

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
)

// HUDRows is the number of screen rows above the playfield.
const HUDRows = 1

// cellAspect is how many world units tall a cell is per unit of width.
// Terminal cells are roughly twice as tall as they are wide.
const cellAspect = 2.0

// View maps world coordinates onto screen cells below the HUD. The world
// is scaled uniformly (corrected for cell aspect) and centred horizontally.
type View struct {
	scr    *core.Screen
	world  World
	camera physics.Vec

	sx, sy float64 // cells per world unit
	ox     float64 // left margin in cells
	cols   int
	rows   int

	status string
}

func newView(world World, w, h int) *View {
	v := &View{world: world}
	v.resize(w, h)
	return v
}

func (v *View) resize(w, h int) {
	v.cols = max(1, w)
	v.rows = max(1, h-HUDRows)
	if v.world.W <= 0 || v.world.H <= 0 {
		v.sx, v.sy = 1, 1
		return
	}
	s := math.Min(float64(v.cols)/v.world.W, cellAspect*float64(v.rows)/v.world.H)
	v.sx = s
	v.sy = s / cellAspect
	v.ox = math.Floor((float64(v.cols) - v.world.W*v.sx) / 2)
}

func (v *View) attach(scr *core.Screen) {
	if scr.Width() != v.cols || scr.Height()-HUDRows != v.rows {
		v.resize(scr.Width(), scr.Height())
	}
	v.scr = scr
	v.status = ""
}

// Screen returns the screen being drawn.
func (v *View) Screen() *core.Screen {
	return v.scr
}

// SetCamera sets the world position shown at the top-left of the playfield.
func (v *View) SetCamera(c physics.Vec) {
	v.camera = c
}

// Camera returns the camera offset.
func (v *View) Camera() physics.Vec {
	return v.camera
}

// Playfield returns the screen rectangle holding the world.
func (v *View) Playfield() core.Rect {
	w := int(math.Ceil(v.world.W * v.sx))
	h := int(math.Ceil(v.world.H * v.sy))
	return core.Rect{X: int(v.ox), Y: HUDRows, W: min(w, v.cols), H: min(h, v.rows)}
}

// Cell returns the screen cell showing world point p.
func (v *View) Cell(p physics.Vec) (col, row int) {
	col = int(math.Floor((p.X-v.camera.X)*v.sx + v.ox))
	row = HUDRows + int(math.Floor((p.Y-v.camera.Y)*v.sy))
	return col, row
}

// ToWorld maps a screen cell to the world point at its centre, clamped to
// the visible world.
func (v *View) ToWorld(col, row int) physics.Vec {
	x := (float64(col)-v.ox+0.5)/v.sx + v.camera.X
	y := (float64(row-HUDRows)+0.5)/v.sy + v.camera.Y
	return physics.V(
		core.ClampF(x, v.camera.X, v.camera.X+v.world.W),
		core.ClampF(y, v.camera.Y, v.camera.Y+v.world.H),
	)
}

func (v *View) visible(col, row int) bool {
	pf := v.Playfield()
	return pf.Contains(col, row)
}

// Plot draws one rune at world point p.
func (v *View) Plot(p physics.Vec, r rune, c core.Color) {
	col, row := v.Cell(p)
	if v.visible(col, row) {
		v.scr.SetColor(col, row, r, c)
	}
}

// Fill paints a world box. Every box covers at least one cell.
func (v *View) Fill(b collide.Box, r rune, c core.Color) {
	c0, r0 := v.Cell(physics.V(b.X, b.Y))
	c1, r1 := v.Cell(physics.V(b.Right(), b.Bottom()))
	c1 = max(c1, c0+1)
	r1 = max(r1, r0+1)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			if v.visible(col, row) {
				v.scr.SetColor(col, row, r, c)
			}
		}
	}
}

// Text writes s starting at world point p, clipped to the playfield.
func (v *View) Text(p physics.Vec, s string, c core.Color) {
	col, row := v.Cell(p)
	for _, r := range s {
		if v.visible(col, row) {
			v.scr.SetColor(col, row, r, c)
		}
		col++
	}
}

// Line draws a straight line in cells between two world points.
func (v *View) Line(a, b physics.Vec, r rune, c core.Color) {
	x0, y0 := v.Cell(a)
	x1, y1 := v.Cell(b)
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if v.visible(x0, y0) {
			v.scr.SetColor(x0, y0, r, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// Status appends a game-specific note to the HUD.
func (v *View) Status(s string) {
	if v.status == "" {
		v.status = s
		return
	}
	v.status += "  " + s
}

// Overlay draws a centred box with a title and lines over the playfield.
func (v *View) Overlay(title string, c core.Color, lines ...string) {
	width := utf8.RuneCountInString(title)
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	width += 4
	height := len(lines) + 4
	pf := v.Playfield()
	box := core.Rect{
		X: pf.X + (pf.W-width)/2,
		Y: pf.Y + (pf.H-height)/2,
		W: width,
		H: height,
	}
	if box.X < 0 {
		box.X = 0
	}
	v.scr.DrawRect(box, ' ', core.ColorDefault)
	v.scr.DrawBox(box, c)
	v.centre(box, box.Y+1, title, c)
	for i, l := range lines {
		v.centre(box, box.Y+3+i, l, core.ColorWhite)
	}
}

func (v *View) centre(box core.Rect, y int, s string, c core.Color) {
	x := box.X + (box.W-utf8.RuneCountInString(s))/2
	v.scr.DrawTextColor(x, y, s, c)
}

func (v *View) drawBorder() {
	pf := v.Playfield()
	if pf.X > 0 {
		for y := pf.Y; y < pf.Bottom(); y++ {
			v.scr.SetColor(pf.X-1, y, '│', core.ColorGray)
		}
	}
	if pf.Right() < v.cols {
		for y := pf.Y; y < pf.Bottom(); y++ {
			v.scr.SetColor(pf.Right(), y, '│', core.ColorGray)
		}
	}
}

func (v *View) drawHUD(title string, s *Session) {
	parts := []string{" " + title, fmt.Sprintf("Score: %d", s.Score), fmt.Sprintf("Best: %d", s.HighScore)}
	if s.Lives >= 0 {
		parts = append(parts, fmt.Sprintf("Lives: %d", s.Lives))
	}
	if s.Health >= 0 {
		parts = append(parts, fmt.Sprintf("HP: %d", s.Health))
	}
	if s.TimeLeft >= 0 {
		parts = append(parts, fmt.Sprintf("Time: %d", int(math.Ceil(s.TimeLeft))))
	}
	if v.status != "" {
		parts = append(parts, v.status)
	}
	v.scr.DrawHLine(0, 0, v.scr.Width(), ' ', core.ColorDefault)
	v.scr.DrawTextColor(0, 0, strings.Join(parts, "  "), core.ColorBrightWhite)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
