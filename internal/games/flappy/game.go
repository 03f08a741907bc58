// Package flappy implements flappy_turd: a side-scroller where the player
// flaps through gaps in a stream of pipes.
package flappy

import (
	"fmt"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/sched"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// Key is the registry and score key.
const Key = "flappy_turd"

// World size in pixels.
const (
	Width  = 400
	Height = 600
)

// Visual characters for rendering
const (
	BirdChar      = '●'
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GroundChar    = '▀'
)

func init() {
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Tuning holds every gameplay constant. Values are per frame at 60 FPS.
type Tuning struct {
	Gravity      float64     `yaml:"gravity" toml:"gravity"`
	Flap         float64     `yaml:"flap" toml:"flap"`
	FlapCooldown int         `yaml:"flap_cooldown" toml:"flap_cooldown"`
	StartY       float64     `yaml:"start_y" toml:"start_y"`
	BirdX        float64     `yaml:"bird_x" toml:"bird_x"`
	BirdSize     float64     `yaml:"bird_size" toml:"bird_size"`
	Buffer       float64     `yaml:"buffer" toml:"buffer"`
	PipeWidth    float64     `yaml:"pipe_width" toml:"pipe_width"`
	Gap          float64     `yaml:"gap" toml:"gap"`
	MinHeight    float64     `yaml:"min_height" toml:"min_height"`
	PipeSpeed    sched.Curve `yaml:"pipe_speed" toml:"pipe_speed"`
	Spawn        sched.Ramp  `yaml:"spawn" toml:"spawn"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:      0.6,
		Flap:         -8,
		FlapCooldown: 6,
		StartY:       200,
		BirdX:        50,
		BirdSize:     30,
		Buffer:       4,
		PipeWidth:    50,
		Gap:          160,
		MinHeight:    50,
		PipeSpeed:    sched.Curve{Base: 3, Slope: 0.15, Min: 3, Max: 8},
		Spawn:        sched.Ramp{Base: 100, Floor: 60, ScoreStep: 1, ScoreDrop: 2},
	}
}

func (t Tuning) scaled(p config.Preset) Tuning {
	t.PipeSpeed.Base = p.ScaleSpeed(t.PipeSpeed.Base)
	t.PipeSpeed.Min = p.ScaleSpeed(t.PipeSpeed.Min)
	t.PipeSpeed.Max = p.ScaleSpeed(t.PipeSpeed.Max)
	t.Spawn.Base = p.ScaleFrames(t.Spawn.Base)
	t.Spawn.Floor = p.ScaleFrames(t.Spawn.Floor)
	return t
}

// Game is the flappy_turd ruleset.
type Game struct {
	arcade.Stages

	t        Tuning
	bird     physics.Body
	pipes    *pool.Pool[*Pipe]
	spawn    sched.Timer
	cooldown int
}

// New creates a game with the default tuning.
func New() *Game {
	return &Game{t: DefaultTuning(), pipes: pool.New[*Pipe](0)}
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "Flappy Turd" }
func (g *Game) Blurb() string       { return "Flap through the pipes. One touch and it's over." }
func (g *Game) World() arcade.World { return arcade.World{W: Width, H: Height} }

// Tune implements arcade.Tuner.
func (g *Game) Tune(path string, p config.Preset) (string, error) {
	t := DefaultTuning()
	src, err := config.Load(Key, path, &t)
	if err != nil {
		return src, err
	}
	g.t = t.scaled(p)
	return src, nil
}

// Defaults implements arcade.Tuner.
func (g *Game) Defaults() any { return DefaultTuning() }

// Reset implements arcade.Ruleset.
func (g *Game) Reset(env *arcade.Env) {
	g.bird = physics.Body{Pos: physics.V(g.t.BirdX, g.t.StartY)}
	g.pipes.Clear()
	g.spawn.Reset()
	g.cooldown = 0
}

// Begin plays the opening flap.
func (g *Game) Begin(env *arcade.Env) {
	env.Play(sound.Bounce)
}

// Control flaps on any primary input, rate limited by the cooldown.
func (g *Game) Control(env *arcade.Env) {
	if g.cooldown > 0 {
		g.cooldown--
	}
	if env.In.Tap() && g.cooldown == 0 {
		g.bird.Vel.Y = g.t.Flap
		g.cooldown = g.t.FlapCooldown
		env.Play(sound.Bounce)
	}
}

// Schedule spawns pipes at the score-driven interval.
func (g *Game) Schedule(env *arcade.Env) {
	interval := g.t.Spawn.Next(env.Session.Score, env.Session.Elapsed, false)
	if !g.spawn.Due(interval, env.TimeScale) {
		return
	}
	top := env.RNG.Float64()*(Height-g.t.Gap-2*g.t.MinHeight) + g.t.MinHeight
	g.pipes.Spawn(newPipe(Width, top))
}

func (g *Game) speed(score int) float64 {
	return g.t.PipeSpeed.At(float64(score))
}

// Integrate moves the bird and the pipes.
func (g *Game) Integrate(env *arcade.Env) {
	physics.Step(&g.bird, physics.Forces{Gravity: g.t.Gravity}, env.TimeScale)
	dx := -g.speed(env.Session.Score) * env.TimeScale
	g.pipes.Each(func(p *Pipe) {
		p.Pos.X += dx
	})
}

func (g *Game) birdBox() collide.Box {
	return collide.Box{X: g.t.BirdX, Y: g.bird.Pos.Y, W: g.t.BirdSize, H: g.t.BirdSize}
}

// Collide checks pipes, scores passed ones and checks floor and ceiling.
func (g *Game) Collide(env *arcade.Env) {
	bird := g.birdBox()
	hit := false
	g.pipes.Each(func(p *Pipe) {
		if p.Hits(bird.Shrink(g.t.Buffer), g.t.PipeWidth, g.t.Gap) {
			hit = true
		}
		if !p.Passed && bird.X > p.Pos.X+g.t.PipeWidth {
			p.Passed = true
			env.Session.Add(1)
			env.Play(sound.Score)
		}
	})
	if bird.Bottom() > Height || bird.Y < 0 {
		hit = true
	}
	if hit && env.End(arcade.PhaseGameOver) {
		env.Play(sound.Failure)
		env.Particles.Burst(env.RNG, bird.Center(), 12, 3, '*', core.ColorBrown)
	}
}

// Settle recycles pipes that scrolled off the left edge.
func (g *Game) Settle(env *arcade.Env) {
	g.pipes.Each(func(p *Pipe) {
		if p.Pos.X < -g.t.PipeWidth-10 {
			p.Kill()
		}
	})
	g.pipes.Recycle()
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	g.pipes.Each(func(p *Pipe) {
		top := collide.Box{X: p.Pos.X, Y: 0, W: g.t.PipeWidth, H: p.Top}
		bottom := collide.Box{X: p.Pos.X, Y: p.Top + g.t.Gap, W: g.t.PipeWidth, H: Height - p.Top - g.t.Gap}
		v.Fill(top, PipeChar, core.ColorGreen)
		v.Fill(bottom, PipeChar, core.ColorGreen)
	})
	v.Fill(collide.Box{X: 0, Y: Height - 20, W: Width, H: 20}, GroundChar, core.ColorBrown)
	if !env.Session.Ended() {
		v.Fill(g.birdBox(), BirdChar, core.ColorBrown)
	}
	v.Status(fmt.Sprintf("Speed: %.1f", g.speed(env.Session.Score)))
}
