// Package speedroll implements speed_roll: a time trial where the player
// pulls a toilet roll empty as fast as possible.
package speedroll

import (
	"fmt"
	"math"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/score"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// Key is the registry and score key.
const Key = "speed_roll"

// World size in pixels.
const (
	Width  = 300
	Height = 500
)

// Roll geometry.
const (
	holderY    = 150
	rollY      = holderY + 60
	coreRadius = 20
)

func init() {
	score.RegisterOrder(Key, score.LowerIsBetter)
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Tuning holds every gameplay constant. Spin is in radians per frame.
type Tuning struct {
	Sheets   float64 `yaml:"sheets" toml:"sheets"`
	Pull     float64 `yaml:"pull" toml:"pull"`         // spin per pixel pulled down
	KeyPull  float64 `yaml:"key_pull" toml:"key_pull"` // pixels one Down press is worth
	Friction float64 `yaml:"friction" toml:"friction"`
	Unroll   float64 `yaml:"unroll" toml:"unroll"` // sheets per unit of spin
	MinSpin  float64 `yaml:"min_spin" toml:"min_spin"`
	FireOn   float64 `yaml:"fire_on" toml:"fire_on"`
	FireOff  float64 `yaml:"fire_off" toml:"fire_off"`
	Radius   float64 `yaml:"radius" toml:"radius"` // paper thickness of a full roll
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Sheets:   500,
		Pull:     0.02,
		KeyPull:  30,
		Friction: 0.96,
		Unroll:   0.5,
		MinSpin:  0.01,
		FireOn:   1.5,
		FireOff:  1.0,
		Radius:   55,
	}
}

// Game is the speed_roll ruleset.
type Game struct {
	arcade.Stages

	t        Tuning
	sheets   float64
	spin     float64
	rotation float64
	onFire   bool
	lastY    float64
	pulling  bool
}

// New creates a game with the default tuning.
func New() *Game {
	return &Game{t: DefaultTuning()}
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "Speed Roll" }
func (g *Game) Blurb() string       { return "Pull down hard. Empty the roll against the clock." }
func (g *Game) World() arcade.World { return arcade.World{W: Width, H: Height} }

// Tune implements arcade.Tuner. Presets are ignored; records are only
// comparable on a roll of fixed length.
func (g *Game) Tune(path string, _ config.Preset) (string, error) {
	t := DefaultTuning()
	src, err := config.Load(Key, path, &t)
	if err != nil {
		return src, err
	}
	g.t = t
	return src, nil
}

// Defaults implements arcade.Tuner.
func (g *Game) Defaults() any { return DefaultTuning() }

// Reset implements arcade.Ruleset.
func (g *Game) Reset(env *arcade.Env) {
	g.sheets = g.t.Sheets
	g.spin = 0
	g.rotation = 0
	g.onFire = false
	g.pulling = false
}

// Begin implements arcade.Beginner.
func (g *Game) Begin(env *arcade.Env) {
	env.Play(sound.Score)
}

// Control implements arcade.Ruleset. Only downward pulls add spin.
func (g *Game) Control(env *arcade.Env) {
	if env.In.Has(core.ActionDown) {
		g.pull(env, g.t.KeyPull)
	}
	for _, s := range env.In.Pointer {
		switch s.Event {
		case core.PointerPress:
			g.pulling = true
			g.lastY = s.Y
		case core.PointerRelease:
			g.pulling = false
		case core.PointerMove:
			if !g.pulling {
				continue
			}
			delta := s.Y - g.lastY
			g.lastY = s.Y
			g.pull(env, delta)
		}
	}
}

func (g *Game) pull(env *arcade.Env, delta float64) {
	if delta <= 0 {
		return
	}
	g.spin += delta * g.t.Pull
	env.Play(sound.Roll)
}

// Integrate implements arcade.Ruleset.
func (g *Game) Integrate(env *arcade.Env) {
	g.rotation = math.Mod(g.rotation+g.spin*env.TimeScale, 2*math.Pi)
	g.spin *= math.Pow(g.t.Friction, env.TimeScale)
	if g.spin > g.t.MinSpin {
		g.sheets = max(0, g.sheets-g.spin*g.t.Unroll*env.TimeScale)
	}
}

// Effects implements arcade.Ruleset: the "on fire" flare, with hysteresis.
func (g *Game) Effects(env *arcade.Env) {
	switch {
	case g.spin > g.t.FireOn:
		g.onFire = true
	case g.spin < g.t.FireOff:
		g.onFire = false
	}
}

// Settle implements arcade.Ruleset. The score is the run time in ms.
func (g *Game) Settle(env *arcade.Env) {
	if g.sheets > 0 {
		return
	}
	env.Session.Score = elapsedMs(env.Session.Elapsed)
	if env.End(arcade.PhaseWin) {
		env.Play(sound.Score)
		env.Log.Debug("roll empty", "game", Key, "ms", env.Session.Score)
	}
}

func elapsedMs(frames int) int {
	return int(math.Round(float64(frames) * 1000 / arcade.NominalRate))
}

// Sheets returns the sheets left, rounded down.
func (g *Game) Sheets() int {
	return int(g.sheets)
}

// radius is the outer radius of the roll, shrinking to the core.
func (g *Game) radius() float64 {
	return coreRadius + 5 + g.sheets/g.t.Sheets*g.t.Radius
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	cx := Width / 2.0
	v.Fill(collide.Box{X: cx - 100, Y: holderY - 20, W: 200, H: 20}, '▀', core.ColorGray)
	v.Fill(collide.Box{X: cx - 100, Y: holderY - 20, W: 10, H: 100}, '│', core.ColorGray)
	v.Fill(collide.Box{X: cx + 90, Y: holderY - 20, W: 10, H: 100}, '│', core.ColorGray)

	center := physics.V(cx, rollY)
	r := g.radius()
	if g.sheets > 0 {
		v.Fill(collide.BoxAt(center, 2*r, 2*r), '▓', core.ColorBrightWhite)
	}
	v.Fill(collide.BoxAt(center, 2*coreRadius, 2*coreRadius), '█', core.ColorBrown)
	for i := range 4 {
		a := g.rotation + float64(i)*math.Pi/2
		tip := center.Add(physics.V(math.Cos(a), math.Sin(a)).Scale(r))
		v.Line(center, tip, '·', core.ColorGray)
	}

	if g.spin > 0.1 {
		top := rollY + r
		length := min(300, g.spin*100+50)
		v.Fill(collide.Box{X: cx - 60, Y: top, W: 120, H: length}, '░', core.ColorWhite)
		v.Line(physics.V(cx-60, top+length/2), physics.V(cx+60, top+length/2), '-', core.ColorGray)
	}
	if g.onFire {
		v.Text(physics.V(cx-90, holderY+50), "^^", core.ColorOrange)
		v.Text(physics.V(cx+60, holderY+50), "^^", core.ColorOrange)
		v.Status("ON FIRE!")
	}

	v.Status(fmt.Sprintf("Sheets: %d", g.Sheets()))
	v.Status(fmt.Sprintf("Time: %.2fs", float64(elapsedMs(env.Session.Elapsed))/1000))
}
