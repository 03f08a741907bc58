// Package doodle implements doodle_poop: an endless vertical platformer with
// springs, fragile ledges, flight power-ups and enemies.
package doodle

import (
	"fmt"
	"math"

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
const Key = "doodle_poop"

// World size in pixels. The world scrolls upward without bound; these are
// the dimensions of the visible window.
const (
	Width  = 400
	Height = 600
)

// Visual characters for rendering
const (
	PlayerChar   = '●'
	PlatformChar = '▀'
	SpringChar   = '≡'
	FragileChar  = '┅'
	ShotChar     = '•'
)

const (
	effRocket    effects.Kind = "rocket"
	effPropeller effects.Kind = "propeller"
	itemShield   effects.Kind = "shield"
)

func init() {
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Tuning holds every gameplay constant. Values are per frame at 60 FPS.
type Tuning struct {
	Gravity         float64 `yaml:"gravity" toml:"gravity"`
	Jump            float64 `yaml:"jump" toml:"jump"`
	Spring          float64 `yaml:"spring" toml:"spring"`
	Accel           float64 `yaml:"accel" toml:"accel"`
	Friction        float64 `yaml:"friction" toml:"friction"`
	MaxVX           float64 `yaml:"max_vx" toml:"max_vx"`
	Size            float64 `yaml:"size" toml:"size"`
	Rocket          float64 `yaml:"rocket" toml:"rocket"`
	RocketFrames    int     `yaml:"rocket_frames" toml:"rocket_frames"`
	RocketExit      float64 `yaml:"rocket_exit" toml:"rocket_exit"`
	Propeller       float64 `yaml:"propeller" toml:"propeller"`
	PropellerFrames int     `yaml:"propeller_frames" toml:"propeller_frames"`
	PropellerExit   float64 `yaml:"propeller_exit" toml:"propeller_exit"`
	ShotSpeed       float64 `yaml:"shot_speed" toml:"shot_speed"`
	Band            float64 `yaml:"band" toml:"band"`
	Inset           float64 `yaml:"inset" toml:"inset"`
	CameraLead      float64 `yaml:"camera_lead" toml:"camera_lead"`
	CameraEase      float64 `yaml:"camera_ease" toml:"camera_ease"`
	MovingSpeed     float64 `yaml:"moving_speed" toml:"moving_speed"`
	FlySpeed        float64 `yaml:"fly_speed" toml:"fly_speed"`
	PlungerSpeed    float64 `yaml:"plunger_speed" toml:"plunger_speed"`
	PlungerRange    float64 `yaml:"plunger_range" toml:"plunger_range"`
	EnemyFrom       float64 `yaml:"enemy_from" toml:"enemy_from"`
	SafeWidth       float64 `yaml:"safe_width" toml:"safe_width"`
	SafeDrop        float64 `yaml:"safe_drop" toml:"safe_drop"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:         0.4,
		Jump:            -10,
		Spring:          -18,
		Accel:           0.6,
		Friction:        0.90,
		MaxVX:           8,
		Size:            30,
		Rocket:          -14,
		RocketFrames:    180,
		RocketExit:      -5,
		Propeller:       -6,
		PropellerFrames: 300,
		PropellerExit:   -3,
		ShotSpeed:       -12,
		Band:            20,
		Inset:           5,
		CameraLead:      250,
		CameraEase:      0.1,
		MovingSpeed:     2,
		FlySpeed:        1.5,
		PlungerSpeed:    2,
		PlungerRange:    100,
		EnemyFrom:       800,
		SafeWidth:       80,
		SafeDrop:        120,
	}
}

func (t Tuning) scaled(p config.Preset) Tuning {
	t.MovingSpeed = p.ScaleSpeed(t.MovingSpeed)
	t.FlySpeed = p.ScaleSpeed(t.FlySpeed)
	t.PlungerSpeed = p.ScaleSpeed(t.PlungerSpeed)
	if p.Interval > 0 {
		t.EnemyFrom *= p.Interval
	}
	return t
}

// Game is the doodle_poop ruleset.
type Game struct {
	arcade.Stages

	t         Tuning
	player    physics.Body // Pos is the top-left corner
	faceRight bool
	camY      float64

	platforms *pool.Pool[*Platform]
	enemies   *pool.Pool[*Enemy]
	shots     *pool.Pool[*Shot]
	status    *effects.Set
	items     *effects.Inventory
}

// New creates a game with the default tuning.
func New() *Game {
	g := &Game{
		t:         DefaultTuning(),
		platforms: pool.New[*Platform](0),
		enemies:   pool.New[*Enemy](0),
		shots:     pool.New[*Shot](0),
		status:    effects.NewSet(),
	}
	g.status.Define(effRocket, effects.Spec{Group: "flight"})
	g.status.Define(effPropeller, effects.Spec{Group: "flight"})
	return g
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "Doodle Poop" }
func (g *Game) Blurb() string       { return "Bounce ever higher. Chili is rocket fuel." }
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
	g.player = physics.Body{
		Pos: physics.V(Width/2-g.t.Size/2, 400),
		Vel: physics.V(0, g.t.Jump),
	}
	g.faceRight = true
	g.camY = 0
	g.platforms.Clear()
	g.enemies.Clear()
	g.shots.Clear()
	g.status.Clear()
	g.items = effects.NewInventory(nil)

	g.platforms.Spawn(newPlatform(Width/2-40, 480, 80, PlatformNormal))
	y := 480.0
	for i := 0; i < 10; i++ {
		y -= env.RNG.Range(60, 100)
		g.addPlatform(env, y)
	}
}

// Begin implements arcade.Beginner.
func (g *Game) Begin(env *arcade.Env) {
	env.Play(sound.Bounce)
}

func (g *Game) box() collide.Box {
	return collide.Box{X: g.player.Pos.X, Y: g.player.Pos.Y, W: g.t.Size, H: g.t.Size}
}

func (g *Game) flying() bool {
	return g.status.Active(effRocket) || g.status.Active(effPropeller)
}

// Control steers with held keys or the pointer and fires on demand.
func (g *Game) Control(env *arcade.Env) {
	in := env.In
	left, right := in.Has(core.ActionLeft), in.Has(core.ActionRight)
	shoot := in.Any(core.ActionFire, core.ActionJump, core.ActionUp)

	if at, ok := in.At(); ok && in.Down() {
		if at.Y < g.camY+Height*0.3 {
			if _, pressed := in.Pressed(); pressed {
				shoot = true
			}
		} else if at.X < Width/2 {
			left = true
		} else {
			right = true
		}
	}

	if left {
		g.player.Vel.X -= g.t.Accel
		g.faceRight = false
	}
	if right {
		g.player.Vel.X += g.t.Accel
		g.faceRight = true
	}
	g.player.Vel.X *= g.t.Friction
	physics.ClampX(&g.player, g.t.MaxVX)

	if shoot {
		s := &Shot{}
		s.Active = true
		s.Pos = physics.V(g.player.Pos.X+g.t.Size/2, g.player.Pos.Y)
		s.Vel = physics.V(0, g.t.ShotSpeed)
		g.shots.Spawn(s)
		env.Play(sound.Launch)
	}
}

// Schedule tops up the platform column above the camera.
func (g *Game) Schedule(env *arcade.Env) {
	highest := math.Inf(1)
	g.platforms.Each(func(p *Platform) {
		highest = math.Min(highest, p.Pos.Y)
	})
	if math.IsInf(highest, 1) {
		highest = g.camY + Height
	}
	if highest > g.camY-100 {
		g.addPlatform(env, highest-env.RNG.Range(70, 130))
	}
}

// addPlatform creates a ledge at height y and maybe an enemy above it.
func (g *Game) addPlatform(env *arcade.Env, y float64) {
	r := env.RNG
	w := r.Range(60, 80)
	x := r.Float64() * (Width - w)
	d := math.Abs(y)

	kind := PlatformNormal
	if d > 1000 && r.Above(0.8) {
		kind = PlatformMoving
	}
	if d > 500 && r.Above(0.85) {
		kind = PlatformFragile
	}
	if r.Above(0.9) {
		kind = PlatformSpring
	}

	p := newPlatform(x, y, w, kind)
	if kind == PlatformMoving {
		p.Vel.X = g.t.MovingSpeed * r.Sign()
	}
	if kind == PlatformNormal {
		switch roll := r.Float64(); {
		case roll > 0.97:
			p.Item = ItemChili
		case roll > 0.95:
			p.Item = ItemPropeller
		case roll > 0.93:
			p.Item = ItemShield
		}
	}

	if d > g.t.EnemyFrom && r.Above(spawnThreshold(d)) {
		g.addEnemy(env, p)
	}
	g.platforms.Spawn(p)
}

// spawnThreshold tightens with height.
func spawnThreshold(d float64) float64 {
	switch {
	case d > 4000:
		return 0.78
	case d > 3000:
		return 0.83
	case d > 2000:
		return 0.88
	}
	return 0.93
}

func (g *Game) addEnemy(env *arcade.Env, p *Platform) {
	r := env.RNG
	d := math.Abs(p.Pos.Y)
	kind := EnemyFly
	switch {
	case d > 2500 && r.Above(0.85):
		kind = EnemyBlackHole
	case d > 1500 && r.Above(0.6):
		kind = EnemyPlunger
	}

	size, gap := 30.0, 20.0
	if kind == EnemyBlackHole {
		size, gap = 40, 80
	}
	plat := p.Box()
	at, ok := pool.Place(8, func() physics.Vec {
		return physics.V(r.Float64()*(Width-size), p.Pos.Y-80-r.Float64()*50)
	}, func(c physics.Vec) bool {
		return c.X+size < plat.X-gap || c.X > plat.Right()+gap
	})
	if !ok {
		return
	}

	e := &Enemy{Kind: kind, Size: size, StartY: at.Y}
	e.Active = true
	e.Pos = at
	switch kind {
	case EnemyFly:
		e.Vel.X = g.t.FlySpeed * r.Sign()
	case EnemyPlunger:
		e.Vel.Y = g.t.PlungerSpeed
	}
	g.enemies.Spawn(e)
}

// Integrate flies or drops the avatar and moves everything else.
func (g *Game) Integrate(env *arcade.Env) {
	ts := env.TimeScale
	switch {
	case g.status.Active(effRocket):
		g.player.Vel.Y = g.t.Rocket
		if g.status.Final(effRocket) {
			g.exitFlight(g.t.RocketExit)
		}
		physics.Drift(&g.player, ts)
		env.Particles.Burst(env.RNG, physics.V(g.player.Pos.X+g.t.Size/2, g.player.Pos.Y+g.t.Size), 1, 1, '^', core.ColorOrange)
	case g.status.Active(effPropeller):
		g.player.Vel.Y = g.t.Propeller
		if g.status.Final(effPropeller) {
			g.exitFlight(g.t.PropellerExit)
		}
		physics.Drift(&g.player, ts)
	default:
		physics.Step(&g.player, physics.Forces{Gravity: g.t.Gravity}, ts)
	}

	half := g.t.Size / 2
	if g.player.Pos.X < -half {
		g.player.Pos.X = Width - half
	} else if g.player.Pos.X > Width-half {
		g.player.Pos.X = -half
	}

	g.platforms.Each(func(p *Platform) {
		if p.Kind != PlatformMoving {
			return
		}
		physics.Drift(&p.Body, ts)
		if p.Pos.X < 0 || p.Pos.X+p.W > Width {
			p.Vel.X = -p.Vel.X
		}
	})
	g.enemies.Each(func(e *Enemy) {
		physics.Drift(&e.Body, ts)
		switch e.Kind {
		case EnemyFly:
			if e.Pos.X < 0 || e.Pos.X > Width-e.Size {
				e.Vel.X = -e.Vel.X
			}
		case EnemyPlunger:
			if math.Abs(e.Pos.Y-e.StartY) > g.t.PlungerRange {
				e.Vel.Y = -e.Vel.Y
			}
		}
	})
	g.shots.Each(func(s *Shot) { physics.Drift(&s.Body, ts) })
}

// exitFlight ends a flight on its last frame: the avatar coasts straight up
// and a wide ledge appears below it.
func (g *Game) exitFlight(vy float64) {
	g.player.Vel = physics.V(0, vy)
	x := core.ClampF(g.player.Pos.X-25, 0, Width-g.t.SafeWidth)
	g.platforms.Spawn(newPlatform(x, g.player.Pos.Y+g.t.SafeDrop, g.t.SafeWidth, PlatformNormal))
}

// Collide resolves landings, pickups, shots and enemy contact.
func (g *Game) Collide(env *arcade.Env) {
	me := g.box()
	flying := g.flying()
	center := me.Center()

	g.platforms.Each(func(p *Platform) {
		if !flying && collide.Landing(me, g.player.Vel.Y, p.Box(), g.t.Band, g.t.Inset) {
			switch p.Kind {
			case PlatformSpring:
				g.player.Vel.Y = g.t.Spring
				env.Play(sound.Bounce)
				env.Particles.Burst(env.RNG, p.ItemAt(), 8, 3, '*', core.ColorBrightYellow)
			case PlatformFragile:
				g.player.Vel.Y = g.t.Jump
				p.Kill()
				env.Play(sound.Failure)
				env.Particles.Burst(env.RNG, p.ItemAt(), 6, 2, '·', core.ColorWhite)
			default:
				g.player.Vel.Y = g.t.Jump
				env.Play(sound.Bounce)
			}
		}
		if p.Item != ItemNone && p.IsActive() && collide.Within(center, p.ItemAt(), 35) {
			g.pickup(env, p)
		}
	})

	g.shots.Each(func(s *Shot) {
		g.enemies.EachUntil(func(e *Enemy) bool {
			if !collide.Within(s.Pos, e.Center(), e.Size) {
				return true
			}
			e.Kill()
			s.Kill()
			env.Play(sound.Impact)
			env.Particles.Burst(env.RNG, e.Center(), 10, 3, '*', core.ColorGreen)
			return false
		})
	})

	g.enemies.Each(func(e *Enemy) {
		if !collide.Within(center, e.Center(), e.Size/2+g.t.Size/2) {
			return
		}
		switch {
		case flying:
			e.Kill()
			env.Play(sound.Impact)
		case g.player.Vel.Y > 0 && me.Bottom() < e.Center().Y && e.Kind != EnemyBlackHole:
			g.player.Vel.Y = g.t.Jump
			e.Kill()
			env.Play(sound.Impact)
			env.Particles.Burst(env.RNG, e.Center(), 10, 3, '*', core.ColorGreen)
		case e.Kind != EnemyBlackHole && g.items.Consume(itemShield):
			g.player.Vel.Y = g.t.Jump
			e.Kill()
			env.Play(sound.Bounce)
			env.Particles.Burst(env.RNG, center, 12, 4, '○', core.ColorCyan)
		default:
			g.die(env)
		}
	})
}

func (g *Game) pickup(env *arcade.Env, p *Platform) {
	at := p.ItemAt()
	switch p.Item {
	case ItemChili:
		g.status.Activate(effRocket, g.t.RocketFrames)
		env.Play(sound.Explosion)
		env.Particles.Burst(env.RNG, at, 10, 4, '*', core.ColorRed)
	case ItemPropeller:
		g.status.Activate(effPropeller, g.t.PropellerFrames)
		env.Play(sound.Score)
	case ItemShield:
		if g.items.Count(itemShield) == 0 {
			g.items.Add(itemShield, 1)
		}
		env.Play(sound.Heal)
	}
	p.Item = ItemNone
}

func (g *Game) die(env *arcade.Env) {
	if env.End(arcade.PhaseGameOver) {
		env.Play(sound.Failure)
	}
}

// Effects ages the flight timers.
func (g *Game) Effects(env *arcade.Env) {
	g.status.Tick()
}

// Settle follows the avatar with the camera, scores height, recycles what
// fell out of view and ends the run on a fall.
func (g *Game) Settle(env *arcade.Env) {
	if target := g.player.Pos.Y - g.t.CameraLead; target < g.camY {
		g.camY += (target - g.camY) * g.t.CameraEase
		if h := int(math.Floor(math.Abs(g.camY) / 10)); h > env.Session.Score {
			env.Session.Score = h
		}
	}
	env.SetCamera(physics.V(0, g.camY))

	bottom := g.camY + Height + 50
	g.platforms.Each(func(p *Platform) {
		if p.Pos.Y > bottom {
			p.Kill()
		}
	})
	g.enemies.Each(func(e *Enemy) {
		if e.Pos.Y > bottom {
			e.Kill()
		}
	})
	g.shots.Each(func(s *Shot) {
		if s.Pos.Y < g.camY-100 {
			s.Kill()
		}
	})
	g.platforms.Recycle()
	g.enemies.Recycle()
	g.shots.Recycle()

	if g.player.Pos.Y > g.camY+Height {
		g.die(env)
	}
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	v.SetCamera(physics.V(0, g.camY))

	g.platforms.Each(func(p *Platform) {
		glyph, color := PlatformChar, core.ColorGreen
		switch p.Kind {
		case PlatformMoving:
			color = core.ColorBlue
		case PlatformFragile:
			glyph, color = FragileChar, core.ColorWhite
		case PlatformSpring:
			glyph, color = SpringChar, core.ColorBrightYellow
		}
		v.Fill(p.Box(), glyph, color)
		switch p.Item {
		case ItemChili:
			v.Plot(p.ItemAt(), '♨', core.ColorBrightRed)
		case ItemPropeller:
			v.Plot(p.ItemAt(), '✣', core.ColorBrightBlue)
		case ItemShield:
			v.Plot(p.ItemAt(), '○', core.ColorCyan)
		}
	})
	g.enemies.Each(func(e *Enemy) {
		glyph, color := 'x', core.ColorGreen
		switch e.Kind {
		case EnemyPlunger:
			glyph, color = 'T', core.ColorRed
		case EnemyBlackHole:
			glyph, color = '@', core.ColorMagenta
		}
		v.Fill(collide.Box{X: e.Pos.X, Y: e.Pos.Y, W: e.Size, H: e.Size}, glyph, color)
	})
	g.shots.Each(func(s *Shot) {
		v.Plot(s.Pos, ShotChar, core.ColorBrown)
	})

	color := core.ColorBrown
	if g.items.Count(itemShield) > 0 {
		color = core.ColorBrightCyan
	}
	v.Fill(g.box(), PlayerChar, color)

	if g.status.Active(effRocket) {
		v.Status(fmt.Sprintf("ROCKET %.1fs", env.Seconds(float64(g.status.Remaining(effRocket)))))
	}
	if g.status.Active(effPropeller) {
		v.Status(fmt.Sprintf("PROPELLER %.1fs", env.Seconds(float64(g.status.Remaining(effPropeller)))))
	}
	if g.items.Count(itemShield) > 0 {
		v.Status("SHIELD")
	}
}
