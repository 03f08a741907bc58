// Package catdog implements cat_vs_dog: a turn-based artillery duel over a
// wall, with wind, three power-ups and a CPU that solves its throws.
package catdog

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
	"github.com/vovakirdan/arcadeloop/internal/sched"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// Key is the registry and score key.
const Key = "cat_vs_dog"

// World size in pixels.
const (
	Width  = 800
	Height = 500
)

const (
	effPlayerHurt effects.Kind = "player_hurt"
	effCPUHurt    effects.Kind = "cpu_hurt"
)

const previewSteps = 15

func init() {
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Tier is the CPU's skill at one difficulty. The aim errors are bounds:
// each throw is off by up to ±ErrVX and ±ErrVY.
type Tier struct {
	Wind       float64 `yaml:"wind" toml:"wind"`               // full range of the wind roll
	Think      int     `yaml:"think" toml:"think"`             // frames before the CPU throws
	ItemChance float64 `yaml:"item_chance" toml:"item_chance"` // per roll
	ErrVX      float64 `yaml:"err_vx" toml:"err_vx"`
	ErrVY      float64 `yaml:"err_vy" toml:"err_vy"`
	Spread     float64 `yaml:"spread" toml:"spread"` // second shot of a CPU double
}

// Items are the starting power-up counts of each side.
type Items struct {
	Double int `yaml:"double_shot" toml:"double_shot"`
	Bomb   int `yaml:"big_bomb" toml:"big_bomb"`
	Heal   int `yaml:"heal" toml:"heal"`
}

func (it Items) inventory() *effects.Inventory {
	return effects.NewInventory(map[effects.Kind]int{
		ItemDouble: it.Double,
		ItemBomb:   it.Bomb,
		ItemHeal:   it.Heal,
	})
}

// Tuning holds every gameplay constant, in pixels and frames.
type Tuning struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	WindFactor   float64 `yaml:"wind_factor" toml:"wind_factor"`
	Ground       float64 `yaml:"ground" toml:"ground"`
	PlayerX      float64 `yaml:"player_x" toml:"player_x"`
	CPUX         float64 `yaml:"cpu_x" toml:"cpu_x"`
	WallX        float64 `yaml:"wall_x" toml:"wall_x"`
	WallW        float64 `yaml:"wall_w" toml:"wall_w"`
	WallH        float64 `yaml:"wall_h" toml:"wall_h"`
	HandX        float64 `yaml:"hand_x" toml:"hand_x"` // launch point, towards the wall
	HandY        float64 `yaml:"hand_y" toml:"hand_y"`
	BodyY        float64 `yaml:"body_y" toml:"body_y"` // hit centre above the ground
	Margin       float64 `yaml:"margin" toml:"margin"` // shots die this far outside the world
	HP           int     `yaml:"hp" toml:"hp"`
	Heal         int     `yaml:"heal" toml:"heal"`
	HealBelow    int     `yaml:"heal_below" toml:"heal_below"`
	FinishBelow  int     `yaml:"finish_below" toml:"finish_below"` // hard CPU doubles when the player is this low
	Power        float64 `yaml:"power" toml:"power"`
	MinDrag      float64 `yaml:"min_drag" toml:"min_drag"`
	AimX         float64 `yaml:"aim_x" toml:"aim_x"`
	AimY         float64 `yaml:"aim_y" toml:"aim_y"`
	AimStep      float64 `yaml:"aim_step" toml:"aim_step"`
	AimMax       float64 `yaml:"aim_max" toml:"aim_max"`
	HitRadius    float64 `yaml:"hit_radius" toml:"hit_radius"`
	BombRadius   float64 `yaml:"bomb_radius" toml:"bomb_radius"`
	Splash       float64 `yaml:"splash" toml:"splash"`
	DamageMin    int     `yaml:"damage_min" toml:"damage_min"`
	DamageMax    int     `yaml:"damage_max" toml:"damage_max"`
	BombDamage   float64 `yaml:"bomb_damage" toml:"bomb_damage"`
	SwitchFrames int     `yaml:"switch_frames" toml:"switch_frames"`
	SecondFrames int     `yaml:"second_frames" toml:"second_frames"`
	Spread       float64 `yaml:"spread" toml:"spread"`
	Flight       float64 `yaml:"flight" toml:"flight"`
	FastFlight   float64 `yaml:"fast_flight" toml:"fast_flight"`
	MinVX        float64 `yaml:"min_vx" toml:"min_vx"`
	FallbackVX   float64 `yaml:"fallback_vx" toml:"fallback_vx"`
	FallbackVY   float64 `yaml:"fallback_vy" toml:"fallback_vy"`
	HurtFrames   int     `yaml:"hurt_frames" toml:"hurt_frames"`
	Items        Items   `yaml:"items" toml:"items"`
	Easy         Tier    `yaml:"easy" toml:"easy"`
	Normal       Tier    `yaml:"normal" toml:"normal"`
	Hard         Tier    `yaml:"hard" toml:"hard"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:      0.4,
		WindFactor:   0.06,
		Ground:       400,
		PlayerX:      100,
		CPUX:         700,
		WallX:        400,
		WallW:        30,
		WallH:        160,
		HandX:        20,
		HandY:        -60,
		BodyY:        -30,
		Margin:       400,
		HP:           100,
		Heal:         30,
		HealBelow:    40,
		FinishBelow:  30,
		Power:        0.13,
		MinDrag:      10,
		AimX:         11,
		AimY:         -11,
		AimStep:      0.5,
		AimMax:       25,
		HitRadius:    50,
		BombRadius:   90,
		Splash:       160,
		DamageMin:    15,
		DamageMax:    19,
		BombDamage:   1.5,
		SwitchFrames: 30,
		SecondFrames: 9,
		Spread:       1.5,
		Flight:       80,
		FastFlight:   50,
		MinVX:        -6,
		FallbackVX:   -10,
		FallbackVY:   -12,
		HurtFrames:   60,
		Items:        Items{Double: 2, Bomb: 2, Heal: 1},
		Easy:         Tier{Wind: 2, Think: 72, ItemChance: 0, ErrVX: 4, ErrVY: 2.5, Spread: 1.5},
		Normal:       Tier{Wind: 2, Think: 72, ItemChance: 0.15, ErrVX: 1.5, ErrVY: 1.5, Spread: 1.5},
		Hard:         Tier{Wind: 3.5, Think: 36, ItemChance: 0.35, ErrVX: 0.25, ErrVY: 0.25, Spread: 0.2},
	}
}

func (t Tuning) tier(d config.Difficulty) Tier {
	switch d {
	case config.Easy:
		return t.Easy
	case config.Hard:
		return t.Hard
	}
	return t.Normal
}

type stage int

const (
	stageIdle     stage = iota // player's turn, nothing thrown yet
	stageAiming                // pointer held down
	stageThinking              // CPU is about to throw
	stageFlying                // shots in the air
)

// Game is the cat_vs_dog ruleset.
type Game struct {
	arcade.Stages

	t       Tuning
	tier    Tier
	pick    config.Difficulty
	cursor  int
	fighter Fighter
	chosen  bool

	shots    *pool.Pool[*Shot]
	second   *Shot // the delayed half of a double
	items    *effects.Inventory
	cpuItems *effects.Inventory
	armed    Arm
	status   *effects.Set

	turn      Side
	stage     stage
	wind      float64
	hp, cpuHP int
	aim       physics.Vec
	dragFrom  physics.Vec
	dragTo    physics.Vec
	think     sched.Timer
	settle    sched.Timer
	thrownAt  int // frame of the last throw
	camY      float64
}

// New creates a game with the default tuning.
func New() *Game {
	g := &Game{
		t:      DefaultTuning(),
		shots:  pool.New[*Shot](0),
		status: effects.NewSet(),
	}
	g.preselect(config.Normal)
	return g
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "Cat vs Dog" }
func (g *Game) Blurb() string       { return "Drag to lob trash over the wall. Mind the wind." }
func (g *Game) World() arcade.World { return arcade.World{W: Width, H: Height} }

// Tune implements arcade.Tuner. The preset only preselects the menu
// difficulty; the CPU tiers are the difficulty here.
func (g *Game) Tune(path string, p config.Preset) (string, error) {
	t := DefaultTuning()
	src, err := config.Load(Key, path, &t)
	if err != nil {
		return src, err
	}
	g.t = t
	g.preselect(p.Difficulty)
	return src, nil
}

// Defaults implements arcade.Tuner.
func (g *Game) Defaults() any { return DefaultTuning() }

func (g *Game) preselect(d config.Difficulty) {
	g.pick = config.Normal
	g.cursor = 1
	for i, c := range config.Difficulties() {
		if c == d {
			g.pick, g.cursor = c, i
		}
	}
	g.tier = g.t.tier(g.pick)
}

// Reset implements arcade.Ruleset.
func (g *Game) Reset(env *arcade.Env) {
	g.tier = g.t.tier(g.pick)
	g.round(env)
}

// Begin implements arcade.Beginner.
func (g *Game) Begin(env *arcade.Env) {
	g.round(env)
}

// round sets up a fresh duel with the chosen difficulty and fighter.
func (g *Game) round(env *arcade.Env) {
	g.hp, g.cpuHP = g.t.HP, g.t.HP
	g.turn = SidePlayer
	g.stage = stageIdle
	g.items = g.t.Items.inventory()
	g.cpuItems = g.t.Items.inventory()
	g.armed = Arm{}
	g.shots.Clear()
	g.second = nil
	g.think.Reset()
	g.settle.Reset()
	g.status.Clear()
	g.aim = physics.V(g.t.AimX, g.t.AimY)
	g.camY = 0
	g.rollWind(env)
	env.Session.Health = g.hp
}

func (g *Game) rollWind(env *arcade.Env) {
	g.wind = env.RNG.Jitter(g.tier.Wind)
}

func (g *Game) forces() physics.Forces {
	return physics.Forces{Gravity: g.t.Gravity, Wind: g.wind, WindFactor: g.t.WindFactor}
}

// body is where a side is hit.
func (g *Game) body(s Side) physics.Vec {
	if s == SideCPU {
		return physics.V(g.t.CPUX, g.t.Ground+g.t.BodyY)
	}
	return physics.V(g.t.PlayerX, g.t.Ground+g.t.BodyY)
}

// hand is where a side throws from.
func (g *Game) hand(s Side) physics.Vec {
	if s == SideCPU {
		return physics.V(g.t.CPUX-g.t.HandX, g.t.Ground+g.t.HandY)
	}
	return physics.V(g.t.PlayerX+g.t.HandX, g.t.Ground+g.t.HandY)
}

func (g *Game) wall() collide.Box {
	t := &g.t
	return collide.Box{X: t.WallX - t.WallW/2, Y: t.Ground - t.WallH, W: t.WallW, H: t.WallH}
}

// Control implements arcade.Ruleset: items, keyboard aim and slingshot drags
// on the player's turn.
func (g *Game) Control(env *arcade.Env) {
	if g.turn != SidePlayer || g.stage > stageAiming {
		return
	}
	in := env.In
	if g.stage == stageIdle {
		if n, ok := in.Slot(); ok {
			if kind, ok := slotItems[n]; ok {
				g.use(env, kind)
			}
		}
		g.steer(in)
		if in.Any(core.ActionFire, core.ActionJump) {
			g.throw(env, SidePlayer, g.hand(SidePlayer), g.aim, g.armed)
			return
		}
	}

	for _, s := range in.Pointer {
		switch s.Event {
		case core.PointerPress:
			if g.stage == stageIdle {
				g.stage = stageAiming
				g.dragFrom, g.dragTo = s.Vec, s.Vec
			}
		case core.PointerMove:
			if g.stage == stageAiming {
				g.dragTo = s.Vec
			}
		case core.PointerRelease:
			if g.stage == stageAiming {
				g.dragTo = s.Vec
				g.release(env)
			}
		}
		if g.stage == stageFlying {
			return
		}
	}
}

func (g *Game) steer(in arcade.Input) {
	t := &g.t
	switch {
	case in.Has(core.ActionLeft):
		g.aim.X -= t.AimStep
	case in.Has(core.ActionRight):
		g.aim.X += t.AimStep
	}
	switch {
	case in.Has(core.ActionUp):
		g.aim.Y -= t.AimStep
	case in.Has(core.ActionDown):
		g.aim.Y += t.AimStep
	}
	g.aim.X = core.ClampF(g.aim.X, -t.AimMax, t.AimMax)
	g.aim.Y = core.ClampF(g.aim.Y, -t.AimMax, t.AimMax)
}

// release throws along the drag, pulled back like a slingshot. Short drags
// are cancelled.
func (g *Game) release(env *arcade.Env) {
	d := g.dragFrom.Sub(g.dragTo)
	if math.Abs(d.X) < g.t.MinDrag && math.Abs(d.Y) < g.t.MinDrag {
		g.stage = stageIdle
		return
	}
	g.aim = d.Scale(g.t.Power)
	g.throw(env, SidePlayer, g.hand(SidePlayer), g.aim, g.armed)
}

// use spends one player item. An item already armed is not spent twice.
func (g *Game) use(env *arcade.Env, kind effects.Kind) bool {
	switch {
	case kind == ItemDouble && g.armed.Double, kind == ItemBomb && g.armed.Bomb:
		return false
	}
	if !g.items.Consume(kind) {
		return false
	}
	switch kind {
	case ItemHeal:
		g.hp = min(g.t.HP, g.hp+g.t.Heal)
		env.Session.Health = g.hp
		env.Play(sound.Heal)
	case ItemDouble:
		g.armed.Double = true
		env.Play(sound.Score)
	case ItemBomb:
		g.armed.Bomb = true
		env.Play(sound.Score)
	}
	env.Log.Debug("item", "game", Key, "kind", kind, "left", g.items.Count(kind))
	return true
}

// throw launches one shot now and, for a double, queues the second.
func (g *Game) throw(env *arcade.Env, owner Side, from, vel physics.Vec, arm Arm) {
	g.shots.Clear()
	g.shots.Spawn(newShot(owner, from, vel, arm.Bomb))
	env.Play(sound.Launch)
	g.second = nil
	if arm.Double {
		spread := g.t.Spread
		if owner == SideCPU {
			spread = g.tier.Spread
		}
		jitter := physics.V(env.RNG.Jitter(spread), env.RNG.Jitter(spread))
		g.second = newShot(owner, from, vel.Add(jitter), arm.Bomb)
	}
	if owner == SidePlayer {
		g.armed = Arm{}
	}
	g.thrownAt = env.Frame
	g.settle.Reset()
	g.stage = stageFlying
}

// solveShot aims the CPU at the player with a flat arc that lands back at
// launch height. Weak throws are re-solved over a shorter flight.
func (g *Game) solveShot(from physics.Vec) physics.Vec {
	t := &g.t
	to := physics.V(t.PlayerX, from.Y)
	acc := g.wind * t.WindFactor
	v, ok := physics.Solve(from, to, t.Gravity, acc, t.Flight)
	if ok && v.X > t.MinVX {
		v, ok = physics.Solve(from, to, t.Gravity, acc, t.FastFlight)
	}
	if !ok {
		return physics.V(t.FallbackVX, t.FallbackVY)
	}
	return v
}

// cpuThrow is the CPU's move: maybe an item, then a solved throw with the
// tier's aim error.
func (g *Game) cpuThrow(env *arcade.Env) {
	t, tier := &g.t, g.tier
	var arm Arm
	healed := false
	if g.cpuHP < t.HealBelow && env.RNG.Float64() < tier.ItemChance && g.cpuItems.Consume(ItemHeal) {
		g.cpuHP = min(t.HP, g.cpuHP+t.Heal)
		env.Play(sound.Heal)
		healed = true
	}
	if !healed && env.RNG.Float64() < tier.ItemChance {
		double := env.RNG.Above(0.5)
		if g.pick == config.Hard {
			double = g.hp < t.FinishBelow
		}
		if double {
			arm.Double = g.cpuItems.Consume(ItemDouble)
		} else {
			arm.Bomb = g.cpuItems.Consume(ItemBomb)
		}
	}

	from := g.hand(SideCPU)
	vel := g.solveShot(from)
	vel.X += env.RNG.Jitter(2 * tier.ErrVX)
	vel.Y += env.RNG.Jitter(2 * tier.ErrVY)
	env.Log.Debug("cpu throw", "game", Key, "vx", vel.X, "vy", vel.Y, "wind", g.wind, "double", arm.Double, "bomb", arm.Bomb)
	g.throw(env, SideCPU, from, vel, arm)
}

// Schedule implements arcade.Ruleset: CPU think time, the delayed second
// shot and the pause before the turn passes.
func (g *Game) Schedule(env *arcade.Env) {
	switch g.stage {
	case stageThinking:
		if g.think.Due(g.tier.Think, 1) {
			g.cpuThrow(env)
		}
	case stageFlying:
		if g.second != nil {
			if env.Frame-g.thrownAt >= g.t.SecondFrames {
				g.shots.Spawn(g.second)
				g.second = nil
				env.Play(sound.Launch)
			}
			return
		}
		if g.shots.Active() > 0 {
			g.settle.Reset()
			return
		}
		if g.settle.Due(g.t.SwitchFrames, 1) {
			g.switchTurn(env)
		}
	}
}

func (g *Game) switchTurn(env *arcade.Env) {
	if g.hp <= 0 || g.cpuHP <= 0 {
		return
	}
	g.rollWind(env)
	if g.turn == SidePlayer {
		g.turn = SideCPU
		g.stage = stageThinking
		g.think.Reset()
		return
	}
	g.turn = SidePlayer
	g.stage = stageIdle
}

// Integrate implements arcade.Ruleset.
func (g *Game) Integrate(env *arcade.Env) {
	f := g.forces()
	g.shots.Each(func(s *Shot) {
		physics.Step(&s.Body, f, env.TimeScale)
	})
}

// Collide implements arcade.Ruleset.
func (g *Game) Collide(env *arcade.Env) {
	g.shots.Each(func(s *Shot) {
		if target, hit := g.check(s); hit {
			g.impact(env, s, target)
		}
	})
}

// check reports whether s struck something this frame and which side it
// hurt; target is noSide for a miss. Shots never hurt their thrower.
func (g *Game) check(s *Shot) (Side, bool) {
	t := &g.t
	p := s.Pos
	grounded := p.Y > t.Ground
	hit := grounded
	if w := g.wall(); p.X > w.X && p.X < w.Right() && p.Y > w.Y {
		hit = true
	}
	if p.X < -t.Margin || p.X > Width+t.Margin {
		hit = true
	}

	radius := t.HitRadius
	if s.Bomb {
		radius = t.BombRadius
	}
	target := noSide
	dCPU, dPlayer := p.Dist(g.body(SideCPU)), p.Dist(g.body(SidePlayer))
	if dCPU < radius && s.Owner != SideCPU {
		hit, target = true, SideCPU
	}
	if dPlayer < radius && s.Owner != SidePlayer {
		hit, target = true, SidePlayer
	}
	if grounded && s.Bomb {
		if dCPU < t.Splash && s.Owner != SideCPU {
			target = SideCPU
		}
		if dPlayer < t.Splash && s.Owner != SidePlayer {
			target = SidePlayer
		}
	}
	return target, hit
}

func (g *Game) impact(env *arcade.Env, s *Shot, target Side) {
	t := &g.t
	s.Kill()
	dmg := env.RNG.IntRange(t.DamageMin, t.DamageMax)
	if s.Bomb {
		dmg = int(float64(dmg) * t.BombDamage)
		env.Play(sound.Explosion)
		env.Particles.Burst(env.RNG, s.Pos, 20, 5, '*', core.ColorOrange)
	} else {
		env.Play(sound.Impact)
		env.Particles.Burst(env.RNG, s.Pos, 6, 2, '·', core.ColorBrightWhite)
	}

	switch target {
	case SideCPU:
		g.cpuHP -= dmg
		g.status.Activate(effCPUHurt, t.HurtFrames)
	case SidePlayer:
		g.hp -= dmg
		g.status.Activate(effPlayerHurt, t.HurtFrames)
	default:
		env.Play(sound.Bounce)
	}
	env.Log.Debug("impact", "game", Key, "target", target, "damage", dmg, "hp", g.hp, "cpu_hp", g.cpuHP)
}

// Effects implements arcade.Ruleset.
func (g *Game) Effects(env *arcade.Env) {
	g.status.Tick()
}

// Settle implements arcade.Ruleset: camera, recycling and the end of the
// duel.
func (g *Game) Settle(env *arcade.Env) {
	g.shots.Recycle()
	g.follow(env)
	env.Session.Health = max(0, g.hp)

	switch {
	case g.cpuHP <= 0:
		env.Session.Add(1)
		if env.End(arcade.PhaseWin) {
			env.Play(sound.Score)
		}
	case g.hp <= 0:
		if env.End(arcade.PhaseGameOver) {
			env.Play(sound.Failure)
		}
	}
}

// follow lifts the camera after the highest shot and eases back down.
func (g *Game) follow(env *arcade.Env) {
	target := 0.0
	g.shots.Each(func(s *Shot) {
		target = min(target, s.Pos.Y-50)
	})
	target = max(target, -g.t.Margin)
	g.camY += (target - g.camY) * 0.1
	env.SetCamera(physics.V(0, g.camY))
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	switch env.Session.Phase {
	case arcade.PhaseSelectDifficulty:
		g.drawDifficulty(v)
		return
	case arcade.PhaseSelectChar:
		g.drawFighters(v)
		return
	}

	t := &g.t
	v.Fill(collide.Box{X: -t.Margin, Y: t.Ground, W: Width + 2*t.Margin, H: Height - t.Ground}, '▒', core.ColorGreen)
	v.Fill(g.wall(), '█', core.ColorBrown)

	pg, pc := g.fighter.glyph()
	if g.status.Active(effPlayerHurt) {
		pc = core.ColorBrightRed
	}
	v.Plot(g.body(SidePlayer), pg, pc)
	cg, cc := g.fighter.other().glyph()
	if g.status.Active(effCPUHurt) {
		cc = core.ColorBrightRed
	}
	v.Plot(g.body(SideCPU), cg, cc)

	if g.turn == SidePlayer && g.stage <= stageAiming {
		for _, p := range g.preview() {
			v.Plot(p, '·', core.ColorWhite)
		}
	}

	g.shots.Each(func(s *Shot) {
		f := g.fighter
		if s.Owner == SideCPU {
			f = f.other()
		}
		glyph, color := f.ammo()
		if s.Bomb {
			glyph, color = '●', core.ColorBrightRed
		}
		v.Plot(s.Pos, glyph, color)
	})

	v.Status(fmt.Sprintf("CPU: %d", max(0, g.cpuHP)))
	v.Status(windLabel(g.wind))
	v.Status(fmt.Sprintf("1:x2(%d) 2:bomb(%d) 3:heal(%d)",
		g.items.Count(ItemDouble), g.items.Count(ItemBomb), g.items.Count(ItemHeal)))
	if g.armed.Double {
		v.Status("x2 SHOT")
	}
	if g.armed.Bomb {
		v.Status("BIG BOMB")
	}
	if g.stage == stageThinking {
		v.Status("CPU aiming...")
	}
}

// preview traces the first frames of the pending throw.
func (g *Game) preview() []physics.Vec {
	vel := g.aim
	if g.stage == stageAiming {
		vel = g.dragFrom.Sub(g.dragTo).Scale(g.t.Power)
	}
	b := physics.Body{Pos: g.hand(SidePlayer), Vel: vel}
	f := g.forces()
	pts := make([]physics.Vec, 0, previewSteps)
	for range previewSteps {
		physics.Step(&b, f, 1)
		pts = append(pts, b.Pos)
	}
	return pts
}

func windLabel(w float64) string {
	arrow := "→"
	if w < 0 {
		arrow = "←"
	}
	return fmt.Sprintf("Wind: %s%.1f", arrow, math.Abs(w))
}
