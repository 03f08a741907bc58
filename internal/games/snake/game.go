// Package snake implements snake_turd: grid snake with a golden roll,
// temporary chili and burrito bonuses, and a survival mode whose energy bar
// drains every step.
package snake

import (
	"fmt"

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
const Key = "snake_turd"

// Grid is the number of cells per side; Cell is a cell's size in pixels.
const (
	Grid = 20
	Cell = 20
)

func init() {
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	return [...]string{"Right", "Down", "Left", "Up"}[d]
}

// Mode represents the game mode.
type Mode string

const (
	ModeClassic  Mode = "CLASSIC"
	ModeSurvival Mode = "SURVIVAL"
)

// Point is a grid cell.
type Point struct {
	X, Y int
}

// Food kinds.
type FoodKind int

const (
	Food FoodKind = iota
	GoldenRoll
)

// Bonus kinds.
type BonusKind int

const (
	Chili BonusKind = iota
	BadBurrito
)

// Bonus is a temporary pickup that expires after its life runs out.
type Bonus struct {
	pool.Entity
	Cell Point
	Kind BonusKind
	Life int // frames
}

// Status effects, counted in steps rather than frames.
const (
	effChili    effects.Kind = "chili"
	effReversed effects.Kind = "reversed"
)

// Tuning holds the gameplay constants.
type Tuning struct {
	StepMs        sched.Ramp `yaml:"step_ms" toml:"step_ms"`
	GoldenChance  float64    `yaml:"golden_chance" toml:"golden_chance"`
	GoldenPoints  int        `yaml:"golden_points" toml:"golden_points"`
	GoldenGrowth  int        `yaml:"golden_growth" toml:"golden_growth"`
	BonusChance   float64    `yaml:"bonus_chance" toml:"bonus_chance"`
	MaxBonuses    int        `yaml:"max_bonuses" toml:"max_bonuses"`
	ChiliLifeMs   int        `yaml:"chili_life_ms" toml:"chili_life_ms"`
	ChiliSteps    int        `yaml:"chili_steps" toml:"chili_steps"`
	ChiliPoints   int        `yaml:"chili_points" toml:"chili_points"`
	BurritoLifeMs int        `yaml:"burrito_life_ms" toml:"burrito_life_ms"`
	BurritoGrowth int        `yaml:"burrito_growth" toml:"burrito_growth"`
	BurritoPoints int        `yaml:"burrito_points" toml:"burrito_points"`
	ReverseSteps  int        `yaml:"reverse_steps" toml:"reverse_steps"`
	ChiliFactor   int        `yaml:"chili_factor" toml:"chili_factor"`
	Energy        float64    `yaml:"energy" toml:"energy"`
	Drain         float64    `yaml:"drain" toml:"drain"`
	ChiliDrain    float64    `yaml:"chili_drain" toml:"chili_drain"`
	FoodEnergy    float64    `yaml:"food_energy" toml:"food_energy"`
	SwipeMin      float64    `yaml:"swipe_min" toml:"swipe_min"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		StepMs:        sched.Ramp{Base: 130, Floor: 80, Special: 60, ScoreStep: 50, ScoreDrop: 5},
		GoldenChance:  0.9,
		GoldenPoints:  30,
		GoldenGrowth:  2,
		BonusChance:   0.025,
		MaxBonuses:    2,
		ChiliLifeMs:   10000,
		ChiliSteps:    50,
		ChiliPoints:   10,
		BurritoLifeMs: 8000,
		BurritoGrowth: 4,
		BurritoPoints: 60,
		ReverseSteps:  50,
		ChiliFactor:   3,
		Energy:        100,
		Drain:         1.5,
		ChiliDrain:    0.5,
		FoodEnergy:    30,
		SwipeMin:      15,
	}
}

func (t Tuning) scaled(p config.Preset) Tuning {
	t.StepMs.Base = p.ScaleFrames(t.StepMs.Base)
	t.StepMs.Floor = p.ScaleFrames(t.StepMs.Floor)
	t.Drain = p.ScaleSpeed(t.Drain)
	return t
}

// Game is the snake_turd ruleset.
type Game struct {
	arcade.Stages

	t      Tuning
	mode   Mode
	choice int // highlighted menu entry

	snake     []Point // head first
	direction Direction
	nextDir   Direction
	lastDir   Direction // direction of the last processed step
	food      Point
	foodKind  FoodKind
	bonuses   *pool.Pool[*Bonus]
	status    *effects.Set
	energy    float64
	steps     int
	timer     sched.Timer
	swipeFrom *physics.Vec
}

// New creates a game with the default tuning.
func New() *Game {
	return &Game{
		t:       DefaultTuning(),
		bonuses: pool.New[*Bonus](0),
		status:  effects.NewSet(),
	}
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "Turd Snake" }
func (g *Game) Blurb() string       { return "Eat, grow, don't bite yourself. Chili burns fast." }
func (g *Game) World() arcade.World { return arcade.World{W: Grid * Cell, H: Grid * Cell} }

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

// Entry implements arcade.Menu.
func (g *Game) Entry() arcade.Phase {
	return arcade.PhaseModeSelect
}

// Handle implements arcade.Menu: pick CLASSIC or SURVIVAL.
func (g *Game) Handle(env *arcade.Env) {
	in := env.In
	switch {
	case in.Has(core.ActionSlot1):
		g.choice = 0
		g.start(env)
	case in.Has(core.ActionSlot2):
		g.choice = 1
		g.start(env)
	case in.Any(core.ActionUp, core.ActionLeft):
		g.choice = 0
	case in.Any(core.ActionDown, core.ActionRight):
		g.choice = 1
	case in.Any(core.ActionConfirm, core.ActionJump):
		g.start(env)
	default:
		if p, ok := in.Pressed(); ok {
			g.choice = 0
			if p.Y >= Grid*Cell/2 {
				g.choice = 1
			}
			g.start(env)
		}
	}
}

func (g *Game) start(env *arcade.Env) {
	g.mode = ModeClassic
	if g.choice == 1 {
		g.mode = ModeSurvival
	}
	env.Begin()
}

// Mode returns the selected mode.
func (g *Game) Mode() Mode {
	return g.mode
}

// Reset implements arcade.Ruleset.
func (g *Game) Reset(env *arcade.Env) {
	g.snake = append(g.snake[:0], Point{X: 10, Y: 10})
	g.direction, g.nextDir, g.lastDir = DirRight, DirRight, DirRight
	g.food, g.foodKind = Point{X: 15, Y: 5}, Food
	g.bonuses.Clear()
	g.status.Clear()
	g.energy = g.t.Energy
	g.steps = 0
	g.timer.Reset()
	g.swipeFrom = nil
}

// Begin implements arcade.Beginner.
func (g *Game) Begin(env *arcade.Env) {
	if g.mode == ModeSurvival {
		env.Session.Health = int(g.energy)
	}
	env.Play(sound.Score)
}

// Control buffers a direction change from keys or a swipe.
func (g *Game) Control(env *arcade.Env) {
	in := env.In
	dir, ok := g.keyDirection(in)
	if !ok {
		dir, ok = g.swipeDirection(in)
	}
	if !ok {
		return
	}
	if g.status.Active(effReversed) {
		dir = dir.opposite()
	}
	if dir != g.lastDir.opposite() {
		g.nextDir = dir
	}
}

func (g *Game) keyDirection(in arcade.Input) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

func (g *Game) swipeDirection(in arcade.Input) (Direction, bool) {
	if p, ok := in.Pressed(); ok {
		g.swipeFrom = &p
	}
	if g.swipeFrom == nil {
		return 0, false
	}
	from := *g.swipeFrom
	at, _ := in.At()
	if !in.Down() {
		g.swipeFrom = nil
	}
	d := at.Sub(from)
	if max(abs(d.X), abs(d.Y)) <= g.t.SwipeMin {
		return 0, false
	}
	if g.swipeFrom != nil {
		g.swipeFrom = &at
	}
	switch {
	case abs(d.X) > abs(d.Y) && d.X > 0:
		return DirRight, true
	case abs(d.X) > abs(d.Y):
		return DirLeft, true
	case d.Y > 0:
		return DirDown, true
	}
	return DirUp, true
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// StepInterval returns the frames between moves at the current score.
func (g *Game) StepInterval(env *arcade.Env) int {
	ms := g.t.StepMs.Next(env.Session.Score, 0, g.status.Active(effChili))
	return max(1, env.Frames(msToDuration(ms)))
}

// Schedule expires bonuses and moves the snake when its step is due.
func (g *Game) Schedule(env *arcade.Env) {
	g.bonuses.Each(func(b *Bonus) {
		b.Life--
		if b.Life <= 0 {
			b.Kill()
		}
	})
	g.bonuses.Recycle()

	if g.timer.Due(g.StepInterval(env), env.TimeScale) {
		g.step(env)
	}
}

// step is one grid move.
func (g *Game) step(env *arcade.Env) {
	g.steps++
	if env.RNG.Float64() < g.t.BonusChance {
		g.spawnBonus(env)
	}

	if g.mode == ModeSurvival {
		drain := g.t.Drain
		if g.status.Active(effChili) {
			drain = g.t.ChiliDrain
		}
		g.energy -= drain
		if g.energy <= 0 {
			g.energy = 0
			env.Session.Health = 0
			g.die(env)
			return
		}
		env.Session.Health = int(g.energy)
	}

	g.direction = g.nextDir
	g.lastDir = g.direction
	head := g.snake[0]
	switch g.direction {
	case DirUp:
		head.Y--
	case DirDown:
		head.Y++
	case DirLeft:
		head.X--
	case DirRight:
		head.X++
	}

	if head.X < 0 || head.X >= Grid || head.Y < 0 || head.Y >= Grid || g.occupied(head) {
		g.die(env)
		return
	}

	g.snake = append(g.snake, Point{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head

	chili := g.status.Active(effChili)
	ate := false

	if head == g.food {
		ate = true
		points := 1
		if g.mode == ModeSurvival {
			g.energy = min(g.t.Energy, g.energy+g.t.FoodEnergy)
			env.Session.Health = int(g.energy)
		}
		if g.foodKind == GoldenRoll {
			points = g.t.GoldenPoints
			g.grow(g.t.GoldenGrowth)
		}
		if chili {
			points *= g.t.ChiliFactor
		}
		env.Session.Add(points)
		env.Play(sound.Score)
		g.placeFood(env)
	}

	if b, ok := g.bonuses.Find(func(b *Bonus) bool { return b.Cell == head }); ok {
		ate = true
		b.Kill()
		points := g.t.BurritoPoints
		if b.Kind == Chili {
			points = g.t.ChiliPoints
			g.status.Extend(effChili, g.t.ChiliSteps)
			env.Play(sound.Explosion)
		} else {
			g.grow(g.t.BurritoGrowth)
			g.status.Extend(effReversed, g.t.ReverseSteps)
			env.Play(sound.Failure)
		}
		if chili {
			points *= g.t.ChiliFactor
		}
		env.Session.Add(points)
		at := g.cellBox(head).Center()
		env.Particles.Burst(env.RNG, at, 6, 2, '*', core.ColorOrange)
	}

	if !ate {
		g.snake = g.snake[:len(g.snake)-1]
	}
	// Step-counted effects age only on a completed move.
	g.status.Tick()
}

func (g *Game) die(env *arcade.Env) {
	if env.End(arcade.PhaseGameOver) {
		env.Play(sound.Failure)
	}
}

// grow stacks n copies of the tail; they unfold as the snake moves.
func (g *Game) grow(n int) {
	tail := g.snake[len(g.snake)-1]
	for i := 0; i < n; i++ {
		g.snake = append(g.snake, tail)
	}
}

func (g *Game) occupied(p Point) bool {
	for _, s := range g.snake {
		if s == p {
			return true
		}
	}
	return false
}

func (g *Game) taken(p Point) bool {
	if g.occupied(p) || p == g.food {
		return true
	}
	_, hit := g.bonuses.Find(func(b *Bonus) bool { return b.Cell == p })
	return hit
}

func (g *Game) randomFree(env *arcade.Env) (Point, bool) {
	return pool.Place(Grid*Grid, func() Point {
		return Point{X: env.RNG.Intn(Grid), Y: env.RNG.Intn(Grid)}
	}, func(p Point) bool { return !g.taken(p) })
}

func (g *Game) placeFood(env *arcade.Env) {
	p, ok := g.randomFree(env)
	if !ok {
		return
	}
	g.food = p
	g.foodKind = Food
	if env.RNG.Above(g.t.GoldenChance) {
		g.foodKind = GoldenRoll
	}
}

func (g *Game) spawnBonus(env *arcade.Env) {
	if g.bonuses.Active() >= g.t.MaxBonuses {
		return
	}
	kind, lifeMs := BadBurrito, g.t.BurritoLifeMs
	if env.RNG.Above(0.5) {
		kind, lifeMs = Chili, g.t.ChiliLifeMs
	}
	p, ok := g.randomFree(env)
	if !ok {
		return
	}
	b := &Bonus{Cell: p, Kind: kind, Life: env.Frames(msToDuration(lifeMs))}
	b.Active = true
	g.bonuses.Spawn(b)
}

func (g *Game) cellBox(p Point) collide.Box {
	return collide.Box{X: float64(p.X * Cell), Y: float64(p.Y * Cell), W: Cell, H: Cell}
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	if env.Session.Phase == arcade.PhaseModeSelect {
		g.drawMenu(v)
		return
	}

	foodRune, foodColor := '●', core.ColorBrown
	if g.foodKind == GoldenRoll {
		foodRune, foodColor = '◎', core.ColorBrightYellow
	}
	v.Fill(g.cellBox(g.food), foodRune, foodColor)

	g.bonuses.Each(func(b *Bonus) {
		r, c := '♨', core.ColorBrightRed
		if b.Kind == BadBurrito {
			r, c = '≋', core.ColorMagenta
		}
		v.Fill(g.cellBox(b.Cell), r, c)
	})

	body := core.ColorBrown
	if g.status.Active(effChili) {
		body = core.ColorOrange
	}
	if g.status.Active(effReversed) {
		body = core.ColorMagenta
	}
	for i := len(g.snake) - 1; i >= 0; i-- {
		r := '▓'
		if i == 0 {
			r = '█'
		}
		v.Fill(g.cellBox(g.snake[i]), r, body)
	}

	v.Status(string(g.mode))
	if g.status.Active(effChili) {
		v.Status(fmt.Sprintf("CHILI %d", g.status.Remaining(effChili)))
	}
	if g.status.Active(effReversed) {
		v.Status("REVERSED")
	}
}

func (g *Game) drawMenu(v *arcade.View) {
	lines := []string{"  1  CLASSIC   just eat & grow", "  2  SURVIVAL  hunger bar drains"}
	lines[g.choice] = ">" + lines[g.choice][1:]
	v.Overlay("TURD SNAKE: SELECT MODE", core.ColorBrightYellow, lines...)
}
