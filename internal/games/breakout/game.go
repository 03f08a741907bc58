// Package breakout implements poop_breaker: a brick breaker with explosive
// chains, golden and stone bricks, and falling power-ups.
package breakout

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/collide"
	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/effects"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/pool"
	"github.com/vovakirdan/arcadeloop/internal/registry"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// Key is the registry and score key.
const Key = "poop_breaker"

// World size in pixels.
const (
	Width  = 350
	Height = 500
)

// Visual characters for rendering
const (
	PaddleChar = '='
	BallChar   = '●'
	BulletChar = '|'
)

// MaxBalls caps the balls in play; extra multi-ball spawns are dropped.
const MaxBalls = 16

func init() {
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Tuning holds every gameplay constant. Values are per frame at 60 FPS.
type Tuning struct {
	Layout       Layout  `yaml:"layout" toml:"layout"`
	PaddleWidth  float64 `yaml:"paddle_width" toml:"paddle_width"`
	PaddleHeight float64 `yaml:"paddle_height" toml:"paddle_height"`
	PaddleLift   float64 `yaml:"paddle_lift" toml:"paddle_lift"`
	PaddleSpeed  float64 `yaml:"paddle_speed" toml:"paddle_speed"`
	GrowWidth    float64 `yaml:"grow_width" toml:"grow_width"`
	Radius       float64 `yaml:"radius" toml:"radius"`
	BigFactor    float64 `yaml:"big_factor" toml:"big_factor"`
	BallSpeed    float64 `yaml:"ball_speed" toml:"ball_speed"`
	LevelSpeedUp float64 `yaml:"level_speed_up" toml:"level_speed_up"`
	LaunchSpread float64 `yaml:"launch_spread" toml:"launch_spread"`
	Steer        float64 `yaml:"steer" toml:"steer"`
	Boost        float64 `yaml:"boost" toml:"boost"`
	SpeedFactor  float64 `yaml:"speed_factor" toml:"speed_factor"`
	DropChance   float64 `yaml:"drop_chance" toml:"drop_chance"`
	DropFall     float64 `yaml:"drop_fall" toml:"drop_fall"`
	EffectFrames int     `yaml:"effect_frames" toml:"effect_frames"`
	LaserEvery   int     `yaml:"laser_every" toml:"laser_every"`
	LaserSpeed   float64 `yaml:"laser_speed" toml:"laser_speed"`
	BlastRadius  float64 `yaml:"blast_radius" toml:"blast_radius"`
	Lives        int     `yaml:"lives" toml:"lives"`
	Respawn      int     `yaml:"respawn" toml:"respawn"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Layout:       Layout{Cols: 6, Rows: 6, Height: 25, Padding: 3, OffsetTop: 50, OffsetLeft: 10},
		PaddleWidth:  80,
		PaddleHeight: 15,
		PaddleLift:   10,
		PaddleSpeed:  14,
		GrowWidth:    120,
		Radius:       10,
		BigFactor:    2.5,
		BallSpeed:    4.2,
		LevelSpeedUp: 0.05,
		LaunchSpread: 4,
		Steer:        0.15,
		Boost:        1.02,
		SpeedFactor:  1.5,
		DropChance:   0.85,
		DropFall:     3,
		EffectFrames: 600,
		LaserEvery:   20,
		LaserSpeed:   -8,
		BlastRadius:  1.5,
		Lives:        3,
		Respawn:      30,
	}
}

func (t Tuning) scaled(p config.Preset) Tuning {
	t.BallSpeed = p.ScaleSpeed(t.BallSpeed)
	t.Lives = p.ScaleLives(t.Lives)
	return t
}

// Game is the poop_breaker ruleset.
type Game struct {
	arcade.Stages

	t       Tuning
	level   *Level
	paddle  Paddle
	balls   *pool.Pool[*Ball]
	bullets *pool.Pool[*Bullet]
	drops   *pool.Pool[*Pickup]
	status  *effects.Set
	cascade collide.Cascade
	env     *arcade.Env // valid during a stage call

	losing  bool // life loss latch, cleared by the respawn
	respawn int  // frames until the ball respawns
	laser   int  // frames since the last laser volley
}

// New creates a game with the default tuning.
func New() *Game {
	g := &Game{
		t:       DefaultTuning(),
		balls:   pool.New[*Ball](MaxBalls),
		bullets: pool.New[*Bullet](0),
		drops:   pool.New[*Pickup](0),
		status:  effects.NewSet(),
	}
	g.cascade = collide.Cascade{Destroy: g.destroy, Neighbours: g.neighbours}
	return g
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "Poop Breaker" }
func (g *Game) Blurb() string       { return "Smash the bricks. Mind the dynamite." }
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

// Level returns the level in play.
func (g *Game) Level() *Level {
	return g.level
}

// Reset implements arcade.Ruleset.
func (g *Game) Reset(env *arcade.Env) {
	env.Session.Lives = g.t.Lives
	g.startLevel(env, 1)
}

// Advance implements arcade.Advancer.
func (g *Game) Advance(env *arcade.Env) {
	g.startLevel(env, g.level.Number+1)
	env.Play(sound.Launch)
}

func (g *Game) startLevel(env *arcade.Env, n int) {
	g.level = BuildLevel(n, g.t.Layout, env.RNG)
	g.paddle = Paddle{
		X: Width/2 - g.t.PaddleWidth/2,
		Y: Height - g.t.PaddleHeight - g.t.PaddleLift,
		W: g.t.PaddleWidth,
		H: g.t.PaddleHeight,
	}
	g.status.Clear()
	g.balls.Clear()
	g.bullets.Clear()
	g.drops.Clear()
	g.losing = false
	g.respawn = 0
	g.laser = 0
	g.serve()
}

// serve puts a fresh ball on the paddle.
func (g *Game) serve() {
	b := newBall(physics.Vec{}, physics.Vec{}, g.status.Active(effBig))
	b.Attached = true
	g.balls.Spawn(b)
	g.follow(b)
}

// Begin implements arcade.Beginner.
func (g *Game) Begin(env *arcade.Env) {
	env.Play(sound.Launch)
}

// speed is the base ball speed for the current level.
func (g *Game) speed() float64 {
	return g.t.BallSpeed * (1 + float64(g.level.Number-1)*g.t.LevelSpeedUp)
}

func (g *Game) radius(b *Ball) float64 {
	if b.Big {
		return g.t.Radius * g.t.BigFactor
	}
	return g.t.Radius
}

// follow keeps an attached ball centered on top of the paddle.
func (g *Game) follow(b *Ball) {
	b.Pos = physics.V(g.paddle.Center(), g.paddle.Y-g.radius(b))
}

// Control moves the paddle and launches attached balls.
func (g *Game) Control(env *arcade.Env) {
	in := env.In
	if in.Any(core.ActionLeft) {
		g.paddle.X -= g.t.PaddleSpeed
	}
	if in.Any(core.ActionRight) {
		g.paddle.X += g.t.PaddleSpeed
	}
	if len(in.Pointer) > 0 {
		g.paddle.X = in.Pointer[len(in.Pointer)-1].X - g.paddle.W/2
	}
	g.paddle.X = core.ClampF(g.paddle.X, 0, Width-g.paddle.W)

	if in.Tap() {
		g.launch(env)
	}
}

func (g *Game) launch(env *arcade.Env) {
	launched := false
	g.balls.Each(func(b *Ball) {
		if !b.Attached {
			return
		}
		b.Attached = false
		b.Vel = physics.V((env.RNG.Float64()-0.5)*g.t.LaunchSpread, -g.speed())
		launched = true
	})
	if launched {
		env.Play(sound.Launch)
	}
}

// Schedule fires laser volleys and respawns the ball after a miss.
func (g *Game) Schedule(env *arcade.Env) {
	if g.status.Active(effLaser) {
		g.laser++
		if g.laser%g.t.LaserEvery == 0 {
			g.bullets.Spawn(newBullet(g.paddle.X, g.paddle.Y, g.t.LaserSpeed))
			g.bullets.Spawn(newBullet(g.paddle.X+g.paddle.W, g.paddle.Y, g.t.LaserSpeed))
			env.Play(sound.Laser)
		}
	}
	if g.losing && g.respawn > 0 {
		g.respawn--
		if g.respawn == 0 {
			g.losing = false
			g.serve()
			env.Play(sound.Launch)
		}
	}
}

// Integrate moves balls, bullets and pickups.
func (g *Game) Integrate(env *arcade.Env) {
	ts := env.TimeScale
	mult := 1.0
	if g.status.Active(effSpeed) {
		mult = g.t.SpeedFactor
	}
	g.balls.Each(func(b *Ball) {
		if b.Attached {
			g.follow(b)
			return
		}
		physics.Drift(&b.Body, ts*mult)
	})
	g.bullets.Each(func(b *Bullet) { physics.Drift(&b.Body, ts) })
	g.drops.Each(func(p *Pickup) { physics.Drift(&p.Body, ts) })
}

// Collide resolves walls, the paddle, bricks, bullets and pickups, then
// checks for a lost ball or a cleared level.
func (g *Game) Collide(env *arcade.Env) {
	g.env = env
	defer func() { g.env = nil }()

	g.balls.Each(func(b *Ball) {
		if b.Attached {
			return
		}
		r := g.radius(b)
		if reflectWalls(b, r) {
			env.Play(sound.Bounce)
		}
		if b.Pos.Y+r > Height {
			b.Kill()
			env.Play(sound.Failure)
			return
		}
		if touchesPaddle(b, r, g.paddle) {
			if g.status.Active(effSticky) {
				b.Attached = true
				b.Vel = physics.Vec{}
				g.follow(b)
			} else {
				bouncePaddle(b, g.paddle, g.t.Steer, g.t.Boost)
				env.Play(sound.Bounce)
			}
		}
		// Only the first brick per ball per frame counts.
		for i, br := range g.level.Bricks {
			if br.Alive && br.Contains(b.Pos) {
				if !b.Big {
					b.Vel.Y = -b.Vel.Y
				}
				g.cascade.Trigger(i, b.Big)
				break
			}
		}
	})

	g.bullets.Each(func(bl *Bullet) {
		if bl.Pos.Y < 0 {
			bl.Kill()
			return
		}
		for i, br := range g.level.Bricks {
			if br.Alive && br.Contains(bl.Pos) {
				bl.Kill()
				g.cascade.Trigger(i, true)
				break
			}
		}
	})

	g.drops.Each(func(p *Pickup) {
		pb := g.paddle
		if p.Pos.Y > pb.Y && p.Pos.Y < pb.Y+pb.H && p.Pos.X > pb.X && p.Pos.X < pb.X+pb.W {
			p.Kill()
			g.collect(env, p.Type)
			return
		}
		if p.Pos.Y > Height {
			p.Kill()
		}
	})

	if g.balls.Active() == 0 && !g.losing {
		g.losing = true
		if !env.Session.LoseLife() {
			env.End(arcade.PhaseGameOver)
			return
		}
		g.respawn = g.t.Respawn
	}

	if g.level.Breakable() == 0 && env.End(arcade.PhaseLevelComplete) {
		env.Play(sound.Score)
	}
}

// destroy is the cascade callback: it hits brick i and reports whether the
// blast spreads.
func (g *Game) destroy(i int, forced bool) bool {
	env := g.env
	b := g.level.Bricks[i]
	if !b.Alive {
		return false
	}
	if b.Type == BrickStone && !forced {
		env.Play(sound.Bounce)
		return false
	}
	if b.Type == BrickGolden && b.HP > 1 && !forced {
		b.HP--
		env.Play(sound.Bounce)
		env.Particles.Burst(env.RNG, b.Center(), 3, 2, '·', core.ColorBrightYellow)
		return false
	}
	b.Alive = false
	env.Session.Add(b.Type.Points())

	if b.Type == BrickExplosive {
		env.Play(sound.Explosion)
		env.Particles.Burst(env.RNG, b.Center(), 20, 4, '*', core.ColorOrange)
		return true
	}
	env.Play(sound.Impact)
	env.Particles.Burst(env.RNG, b.Center(), 8, 3, '·', core.ColorWhite)
	if env.RNG.Above(g.t.DropChance) {
		typ := PickupType(env.RNG.Intn(int(PickupCount)))
		g.drops.Spawn(newPickup(b.Center(), typ, g.t.DropFall))
	}
	return false
}

func (g *Game) neighbours(i int) []int {
	return g.level.Blast(i, g.level.Bricks[i].W*g.t.BlastRadius)
}

// collect applies a caught pickup.
func (g *Game) collect(env *arcade.Env, typ PickupType) {
	env.Play(sound.Score)
	switch typ {
	case PickupMulti:
		main, ok := g.balls.Find(func(b *Ball) bool { return true })
		at, big := physics.V(g.paddle.Center(), g.paddle.Y-20), false
		if ok {
			at, big = main.Pos, main.Big
		}
		g.balls.Spawn(newBall(at, physics.V(-4, -5), big))
		g.balls.Spawn(newBall(at, physics.V(4, -5), big))
	case PickupGrow:
		center := g.paddle.Center()
		g.paddle.W = min(Width-2*g.t.Layout.OffsetLeft, g.t.GrowWidth)
		g.paddle.X = core.ClampF(center-g.paddle.W/2, 0, Width-g.paddle.W)
		g.status.Activate(effGrow, g.t.EffectFrames)
	case PickupBig:
		g.balls.Each(func(b *Ball) { b.Big = true })
		g.status.Activate(effBig, g.t.EffectFrames)
	default:
		g.status.Activate(pickupEffect[typ], g.t.EffectFrames)
	}
}

// Effects ages the power-ups and undoes the ones that ran out.
func (g *Game) Effects(env *arcade.Env) {
	for _, k := range g.status.Tick() {
		switch k {
		case effGrow:
			center := g.paddle.Center()
			g.paddle.W = g.t.PaddleWidth
			g.paddle.X = core.ClampF(center-g.paddle.W/2, 0, Width-g.paddle.W)
			env.Play(sound.Failure)
		case effSticky:
			g.balls.Each(func(b *Ball) {
				if b.Attached {
					b.Attached = false
					b.Vel = physics.V(0, -g.speed())
				}
			})
		case effBig:
			g.balls.Each(func(b *Ball) { b.Big = false })
		case effLaser:
			g.laser = 0
		}
	}
}

// Settle recycles dead entities.
func (g *Game) Settle(env *arcade.Env) {
	g.balls.Recycle()
	g.bullets.Recycle()
	g.drops.Recycle()
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	for _, b := range g.level.Bricks {
		if !b.Alive {
			continue
		}
		v.Fill(b.Shrink(1), b.Type.Glyph(), brickColor(b))
	}
	g.drops.Each(func(p *Pickup) {
		v.Plot(p.Pos, p.Type.Glyph(), core.ColorBrightCyan)
	})
	g.bullets.Each(func(b *Bullet) {
		v.Plot(b.Pos, BulletChar, core.ColorBrightRed)
	})
	v.Fill(g.paddle.Box(), PaddleChar, g.paddleColor())
	g.balls.Each(func(b *Ball) {
		r := g.radius(b)
		if b.Big {
			v.Fill(collide.BoxAt(b.Pos, 2*r, 2*r), BallChar, core.ColorBrown)
			return
		}
		v.Plot(b.Pos, BallChar, core.ColorBrown)
	})

	v.Status(fmt.Sprintf("Level %d", g.level.Number))
	var active []string
	for _, k := range g.status.Kinds() {
		active = append(active, strings.ToUpper(string(k)))
	}
	if len(active) > 0 {
		v.Status(strings.Join(active, " "))
	}
}

func (g *Game) paddleColor() core.Color {
	switch {
	case g.status.Active(effGrow):
		return core.ColorGreen
	case g.status.Active(effLaser):
		return core.ColorRed
	case g.status.Active(effSticky):
		return core.ColorMagenta
	case g.status.Active(effBig):
		return core.ColorYellow
	case g.status.Active(effSpeed):
		return core.ColorOrange
	}
	return core.ColorBrown
}

func brickColor(b *Brick) core.Color {
	switch b.Type {
	case BrickStone:
		return core.ColorGray
	case BrickExplosive:
		return core.ColorOrange
	case BrickGolden:
		if b.HP < b.MaxHP {
			return core.ColorYellow
		}
		return core.ColorBrightYellow
	}
	return core.ColorWhite
}
