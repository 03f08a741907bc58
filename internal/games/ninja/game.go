// Package ninja implements tp_ninja: slice the flying toilet rolls, never
// the poop. Hit-stop and the ICE slow motion both work through the frame
// time scale.
package ninja

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
	"github.com/vovakirdan/arcadeloop/internal/rng"
	"github.com/vovakirdan/arcadeloop/internal/sched"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// Key is the registry and score key.
const Key = "tp_ninja"

// World size in pixels.
const (
	Width  = 600
	Height = 800
)

const (
	effFrenzy effects.Kind = "frenzy"
	effFreeze effects.Kind = "freeze"
)

func init() {
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Tuning holds every gameplay constant. Values are per frame at 60 FPS.
type Tuning struct {
	Gravity      float64    `yaml:"gravity" toml:"gravity"`
	Lives        int        `yaml:"lives" toml:"lives"`
	Cap          int        `yaml:"cap" toml:"cap"`
	FrenzyCap    int        `yaml:"frenzy_cap" toml:"frenzy_cap"`
	Spawn        sched.Ramp `yaml:"spawn" toml:"spawn"`
	Burst        float64    `yaml:"burst" toml:"burst"`
	BurstPerPts  float64    `yaml:"burst_per_point" toml:"burst_per_point"`
	FrenzyBurst  float64    `yaml:"frenzy_burst" toml:"frenzy_burst"`
	Spread       float64    `yaml:"spread" toml:"spread"`
	Separation   float64    `yaml:"separation" toml:"separation"`
	Power        [2]float64 `yaml:"power" toml:"power"`
	MegaPower    [2]float64 `yaml:"mega_power" toml:"mega_power"`
	RainbowPower [2]float64 `yaml:"rainbow_power" toml:"rainbow_power"`
	FrenzyBoost  float64    `yaml:"frenzy_boost" toml:"frenzy_boost"`
	CenterBias   float64    `yaml:"center_bias" toml:"center_bias"`
	MegaHP       int        `yaml:"mega_hp" toml:"mega_hp"`
	MegaKnock    float64    `yaml:"mega_knock" toml:"mega_knock"`
	FrenzyFrames int        `yaml:"frenzy_frames" toml:"frenzy_frames"`
	FreezeFrames int        `yaml:"freeze_frames" toml:"freeze_frames"`
	FreezeScale  float64    `yaml:"freeze_scale" toml:"freeze_scale"`
	Crit         float64    `yaml:"crit" toml:"crit"`
	BlitzWindow  int        `yaml:"blitz_window" toml:"blitz_window"`
	BladeStep    float64    `yaml:"blade_step" toml:"blade_step"`
	Floor        float64    `yaml:"floor" toml:"floor"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:      0.45,
		Lives:        3,
		Cap:          18,
		FrenzyCap:    25,
		Spawn:        sched.Ramp{Base: 30, Floor: 15, Special: 10, ScoreStep: 100, ScoreDrop: 1, TimeStep: 1000, TimeDrop: 1, TimeCap: 15},
		Burst:        0.5,
		BurstPerPts:  1.0 / 2000,
		FrenzyBurst:  0.95,
		Spread:       120,
		Separation:   60,
		Power:        [2]float64{18, 30},
		MegaPower:    [2]float64{23, 27},
		RainbowPower: [2]float64{26, 31},
		FrenzyBoost:  1.2,
		CenterBias:   0.015,
		MegaHP:       5,
		MegaKnock:    -12,
		FrenzyFrames: 90,
		FreezeFrames: 180,
		FreezeScale:  0.3,
		Crit:         0.85,
		BlitzWindow:  15,
		BladeStep:    40,
		Floor:        150,
	}
}

func (t Tuning) scaled(p config.Preset) Tuning {
	t.Gravity = p.ScaleSpeed(t.Gravity)
	for _, pw := range []*[2]float64{&t.Power, &t.MegaPower, &t.RainbowPower} {
		pw[0] = p.ScaleSpeed(pw[0])
		pw[1] = p.ScaleSpeed(pw[1])
	}
	t.Spawn.Base = p.ScaleFrames(t.Spawn.Base)
	t.Spawn.Floor = p.ScaleFrames(t.Spawn.Floor)
	t.Lives = p.ScaleLives(t.Lives)
	return t
}

// Game is the tp_ninja ruleset.
type Game struct {
	arcade.Stages

	t       Tuning
	objects *pool.Pool[*Object]
	bag     *sched.Bag[Kind]
	spawn   sched.Timer
	status  *effects.Set
	trail   *collide.Trail
	blade   physics.Vec // keyboard blade
	drag    bool

	frames  int // simulated frames, for the spawn ramp
	stop    int // hit-stop frames left
	stopped bool
	combo   int
	blitz   int
	lastHit int
	meter   int
}

// New creates a game with the default tuning.
func New() *Game {
	g := &Game{
		t:      DefaultTuning(),
		status: effects.NewSet(),
		trail:  collide.NewTrail(),
	}
	g.objects = pool.New[*Object](g.t.Cap)
	return g
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "TP Ninja" }
func (g *Game) Blurb() string       { return "Swipe the rolls. Don't slice the poop." }
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
	env.Session.Lives = g.t.Lives
	g.objects.Clear()
	g.objects.SetLimit(g.t.Cap)
	g.bag = sched.NewBag(env.RNG, func() []Kind { return g.fill(env) })
	g.spawn.Reset()
	g.status.Clear()
	g.trail.Clear()
	g.blade = physics.V(Width/2, Height/2)
	g.drag = false
	g.frames, g.stop, g.stopped = 0, 0, false
	g.combo, g.blitz, g.lastHit, g.meter = 0, 0, 0, 0
}

// Begin implements arcade.Beginner.
func (g *Game) Begin(env *arcade.Env) {
	env.Play(sound.Impact)
}

func (g *Game) frenzy() bool { return g.status.Active(effFrenzy) }
func (g *Game) frozen() bool { return g.status.Active(effFreeze) }

// fill builds one bag: four plain rolls, a poop and a rolled special.
func (g *Game) fill(env *arcade.Env) []Kind {
	special := TP
	switch r := env.RNG.Float64(); {
	case r > 0.85:
		special = Mega
	case r > 0.70:
		special = Ice
	case r > 0.55:
		special = Bomb
	case r > 0.50:
		special = Rainbow
	case r > 0.25:
		special = Golden
	}
	return []Kind{TP, TP, TP, special, Poop, TP}
}

// Control sets the frame time scale and slices along the blade.
func (g *Game) Control(env *arcade.Env) {
	g.stopped = g.stop > 0
	switch {
	case g.stopped:
		g.stop--
		env.TimeScale = 0
	case g.frozen():
		env.TimeScale = g.t.FreezeScale
	}

	sliced := false
	for _, s := range env.In.Pointer {
		switch s.Event {
		case core.PointerPress:
			g.drag = true
		case core.PointerRelease:
			g.drag = false
			g.trail.Clear()
			continue
		}
		if !g.drag {
			continue
		}
		g.cut(env, s.Vec)
		sliced = true
	}

	step := physics.Vec{}
	if env.In.Has(core.ActionLeft) {
		step.X -= g.t.BladeStep
	}
	if env.In.Has(core.ActionRight) {
		step.X += g.t.BladeStep
	}
	if env.In.Has(core.ActionUp) {
		step.Y -= g.t.BladeStep
	}
	if env.In.Has(core.ActionDown) {
		step.Y += g.t.BladeStep
	}
	if step != (physics.Vec{}) {
		if pts := g.trail.Points(); len(pts) == 0 || pts[len(pts)-1] != g.blade {
			g.trail.Push(g.blade)
		}
		g.blade = physics.V(
			core.ClampF(g.blade.X+step.X, 0, Width),
			core.ClampF(g.blade.Y+step.Y, 0, Height),
		)
		g.cut(env, g.blade)
		sliced = true
	}

	if !sliced {
		g.trail.Shift()
	}
}

// cut adds a blade sample and slices whatever it touches.
func (g *Game) cut(env *arcade.Env, at physics.Vec) {
	g.trail.Push(at)
	g.objects.Each(func(o *Object) {
		if o.IsActive() && g.trail.Hits(o.Pos, o.Size) {
			g.slice(env, o)
		}
	})
}

func (g *Game) slice(env *arcade.Env, o *Object) {
	if env.Frame-g.lastHit <= g.t.BlitzWindow && g.blitz > 0 {
		g.blitz++
	} else {
		g.blitz = 1
	}
	g.lastHit = env.Frame
	g.stop = o.Kind.hitStop()

	if o.Kind == Mega && o.HP > 1 {
		o.HP--
		o.Flash = 5
		o.Vel = physics.V(env.RNG.Jitter(8), g.t.MegaKnock)
		env.Session.Add(5)
		g.addMeter(env, 2)
		env.Play(sound.Impact)
		env.Particles.Burst(env.RNG, o.Pos, 6, 2, '·', core.ColorWhite)
		return
	}
	o.Kill()

	switch o.Kind {
	case Poop:
		if g.frenzy() {
			return
		}
		g.combo, g.blitz, g.meter = 0, 0, 0
		env.Play(sound.Failure)
		env.Particles.Burst(env.RNG, o.Pos, 16, 4, '●', core.ColorBrown)
		if !env.Session.LoseLife() {
			env.End(arcade.PhaseGameOver)
		}
		return

	case Bomb:
		cleared := 0
		g.objects.Each(func(other *Object) {
			if other.Kind != Poop {
				other.Kill()
				cleared++
			}
		})
		env.Session.Add(10 * cleared)
		env.Play(sound.Explosion)
		env.Particles.Burst(env.RNG, o.Pos, 20, 5, '*', core.ColorOrange)
		return
	}

	points, gain := 1, 5
	switch o.Kind {
	case Golden:
		points, gain = 5, 12
		env.Play(sound.Score)
	case Rainbow:
		points, gain = 50, 50
		env.Play(sound.Score)
	case Mega:
		points, gain = 50, 20
		env.Play(sound.Explosion)
	case Ice:
		points, gain = 10, 20
		g.status.Activate(effFreeze, g.t.FreezeFrames)
		env.Play(sound.Laser)
	default:
		env.Play(sound.Impact)
	}
	if env.RNG.Above(g.t.Crit) {
		points *= 2
	}
	points += g.combo / 5
	g.combo++
	env.Session.Add(points)

	if g.blitz >= 3 {
		env.Session.Add(g.blitz * 5)
		env.Play(sound.Score)
	}
	g.addMeter(env, gain)

	glyph, color := o.Kind.glyph()
	env.Particles.Burst(env.RNG, o.Pos, 8, 3, glyph, color)
}

// addMeter fills the frenzy meter outside frenzy; a full meter starts one.
func (g *Game) addMeter(env *arcade.Env, n int) {
	if g.frenzy() {
		return
	}
	g.meter = min(100, g.meter+n)
	if g.meter < 100 {
		return
	}
	g.status.Activate(effFrenzy, g.t.FrenzyFrames)
	g.status.Cancel(effFreeze)
	g.objects.SetLimit(g.t.FrenzyCap)
	g.objects.Each(func(o *Object) {
		if o.Kind == Poop {
			o.Kill()
		}
	})
	env.Play(sound.Score)
}

// Schedule spawns single throws and bursts.
func (g *Game) Schedule(env *arcade.Env) {
	if g.stopped {
		return
	}
	g.frames++
	interval := g.t.Spawn.Next(env.Session.Score, g.frames, g.frenzy())
	if !g.spawn.Due(interval, env.TimeScale) {
		return
	}
	chance := g.t.Burst + float64(env.Session.Score)*g.t.BurstPerPts
	if g.frenzy() {
		chance = g.t.FrenzyBurst
	}
	count := 1
	if env.RNG.Float64() < chance {
		count = 2 + env.RNG.Intn(3)
	}
	g.throw(env, count)
}

// nextKind draws from the bag, except in frenzy, which rolls its own mix
// and leaves the bag untouched.
func (g *Game) nextKind(r *rng.RNG) Kind {
	if !g.frenzy() {
		return g.bag.Draw()
	}
	switch roll := r.Float64(); {
	case roll > 0.95:
		return Mega
	case roll > 0.7:
		return Golden
	}
	return TP
}

func (g *Game) throw(env *arcade.Env, count int) {
	r := env.RNG
	var placed []float64
	for i := 0; i < count; i++ {
		kind := g.nextKind(r)

		offset := (float64(i) - float64(count-1)/2) * g.t.Spread
		x, _ := pool.Place(4, func() float64 {
			return core.ClampF(60+r.Float64()*(Width-120)+offset, 80, Width-80)
		}, func(x float64) bool {
			for _, px := range placed {
				if math.Abs(x-px) < g.t.Separation {
					return false
				}
			}
			return true
		})
		placed = append(placed, x)
		y := Height + 100 + math.Abs(offset)*0.5 + r.Float64()*50

		power := g.t.Power
		switch kind {
		case Mega:
			power = g.t.MegaPower
		case Rainbow:
			power = g.t.RainbowPower
		}
		speed := r.Range(power[0], power[1])
		if g.frenzy() {
			speed *= g.t.FrenzyBoost
		}
		vx := (Width/2-x)*g.t.CenterBias + r.Jitter(4)

		o := newObject(kind, physics.V(x, y), physics.V(vx, -speed))
		if kind == Mega {
			o.HP = g.t.MegaHP
		}
		g.objects.Spawn(o)
	}
}

// Integrate throws everything along its arc.
func (g *Game) Integrate(env *arcade.Env) {
	f := physics.Forces{Gravity: g.t.Gravity}
	g.objects.Each(func(o *Object) {
		physics.Step(&o.Body, f, env.TimeScale)
		if o.Flash > 0 && !g.stopped {
			o.Flash--
		}
	})
}

// Settle drops objects that fell past the floor line.
func (g *Game) Settle(env *arcade.Env) {
	g.objects.Each(func(o *Object) {
		if o.Pos.Y <= Height+g.t.Floor || o.Vel.Y < 0 {
			return
		}
		o.Kill()
		if o.Kind != Poop && !g.frenzy() {
			g.combo, g.blitz = 0, 0
		}
	})
	g.objects.Recycle()
}

// Effects runs the frenzy and freeze timers; hit-stop holds them.
func (g *Game) Effects(env *arcade.Env) {
	if g.stopped {
		return
	}
	for _, k := range g.status.Tick() {
		if k == effFrenzy {
			g.meter = 0
			g.objects.SetLimit(g.t.Cap)
		}
	}
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	g.objects.Each(func(o *Object) {
		glyph, color := o.Kind.glyph()
		if o.Flash > 0 {
			color = core.ColorBrightWhite
		}
		d := o.Size * 0.7
		v.Fill(collide.BoxAt(o.Pos, d, d), glyph, color)
		if o.Kind == Mega {
			v.Text(o.Pos, fmt.Sprint(o.HP), core.ColorBrightWhite)
		}
	})

	pts := g.trail.Points()
	for i := 1; i < len(pts); i++ {
		v.Line(pts[i-1], pts[i], '·', core.ColorBrightWhite)
	}
	v.Plot(g.blade, '+', core.ColorBrightCyan)

	if g.combo >= 5 {
		v.Status(fmt.Sprintf("COMBO %d", g.combo))
	}
	switch {
	case g.frenzy():
		v.Status(fmt.Sprintf("FRENZY %d%%", g.status.Remaining(effFrenzy)*100/max(1, g.t.FrenzyFrames)))
	default:
		v.Status(fmt.Sprintf("METER %d%%", g.meter))
	}
	if g.frozen() {
		v.Status("FROZEN")
	}
}
