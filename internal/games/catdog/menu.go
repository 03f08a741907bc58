package catdog

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// Menu rows, in world pixels so pointer presses line up with the text.
const (
	menuLeft = 220
	menuTop  = 180
	menuGap  = 70
)

var blurbs = map[config.Difficulty]string{
	config.Easy:   "Opponent is bad at aiming.",
	config.Normal: "Standard challenge.",
	config.Hard:   "Physics god. Stronger wind.",
}

// Entry implements arcade.Menu. Once a fighter is picked, retries are
// rematches with the same settings and skip the menu.
func (g *Game) Entry() arcade.Phase {
	if g.chosen {
		return ""
	}
	return arcade.PhaseSelectDifficulty
}

// Handle implements arcade.Menu.
func (g *Game) Handle(env *arcade.Env) {
	switch env.Session.Phase {
	case arcade.PhaseSelectDifficulty:
		g.handleDifficulty(env)
	case arcade.PhaseSelectChar:
		g.handleFighter(env)
	}
}

func (g *Game) handleDifficulty(env *arcade.Env) {
	in := env.In
	levels := config.Difficulties()
	switch {
	case in.Has(core.ActionUp):
		g.cursor = (g.cursor + len(levels) - 1) % len(levels)
	case in.Has(core.ActionDown):
		g.cursor = (g.cursor + 1) % len(levels)
	}

	if n, ok := in.Slot(); ok && n <= len(levels) {
		g.cursor = n - 1
		g.chooseDifficulty(env)
		return
	}
	if p, ok := in.Pressed(); ok {
		if row, ok := menuRow(p, len(levels)); ok {
			g.cursor = row
			g.chooseDifficulty(env)
		}
		return
	}
	if in.Any(core.ActionConfirm, core.ActionJump, core.ActionFire) {
		g.chooseDifficulty(env)
	}
}

// menuRow maps a press to a difficulty row.
func menuRow(p physics.Vec, rows int) (int, bool) {
	row := int(math.Floor((p.Y - (menuTop - menuGap/2)) / menuGap))
	if row < 0 || row >= rows {
		return 0, false
	}
	return row, true
}

func (g *Game) chooseDifficulty(env *arcade.Env) {
	g.pick = config.Difficulties()[g.cursor]
	g.tier = g.t.tier(g.pick)
	env.Play(sound.Score)
	env.Goto(arcade.PhaseSelectChar)
}

func (g *Game) handleFighter(env *arcade.Env) {
	in := env.In
	switch {
	case in.Has(core.ActionBack):
		env.Goto(arcade.PhaseSelectDifficulty)
		return
	case in.Has(core.ActionLeft):
		g.fighter = Cat
	case in.Has(core.ActionRight):
		g.fighter = Dog
	}

	if n, ok := in.Slot(); ok && n <= 2 {
		g.chooseFighter(env, Fighter(n-1))
		return
	}
	if p, ok := in.Pressed(); ok {
		f := Cat
		if p.X >= Width/2 {
			f = Dog
		}
		g.chooseFighter(env, f)
		return
	}
	if in.Any(core.ActionConfirm, core.ActionJump, core.ActionFire) {
		g.chooseFighter(env, g.fighter)
	}
}

func (g *Game) chooseFighter(env *arcade.Env, f Fighter) {
	g.fighter = f
	g.chosen = true
	env.Play(sound.Score)
	env.Log.Debug("duel", "game", Key, "difficulty", g.pick, "fighter", f)
	env.Begin()
}

func (g *Game) drawDifficulty(v *arcade.View) {
	v.Text(physics.V(menuLeft, menuTop-100), "SELECT DIFFICULTY", core.ColorBrightYellow)
	for i, d := range config.Difficulties() {
		marker, color := "  ", core.ColorWhite
		if i == g.cursor {
			marker, color = "> ", core.ColorBrightGreen
		}
		line := fmt.Sprintf("%s%d %-6s %s", marker, i+1, strings.ToUpper(string(d)), blurbs[d])
		v.Text(physics.V(menuLeft, menuTop+float64(i*menuGap)), line, color)
	}
}

func (g *Game) drawFighters(v *arcade.View) {
	v.Text(physics.V(menuLeft, menuTop-100), "CHOOSE YOUR FIGHTER", core.ColorBrightYellow)
	for _, f := range []Fighter{Cat, Dog} {
		x := Width / 4.0
		if f == Dog {
			x = Width * 3 / 4.0
		}
		glyph, color := f.glyph()
		if f == g.fighter {
			v.Text(physics.V(x-40, menuTop+60), ">   <", core.ColorBrightGreen)
		}
		v.Plot(physics.V(x-20, menuTop+60), glyph, color)
		v.Text(physics.V(x-60, menuTop+130), fmt.Sprintf("%d THE %s", int(f)+1, f), color)
	}
	v.Text(physics.V(menuLeft, Height-60), "B back", core.ColorGray)
}
