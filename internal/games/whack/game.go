// Package whack implements whack_turd: a 30 second whack-a-mole on a 3x3
// grid with combos, a fever meter and an armored mega turd.
package whack

import (
	"fmt"
	"strconv"
	"time"

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
const Key = "whack_turd"

// Grid geometry in pixels.
const (
	Cols     = 3
	Holes    = Cols * Cols
	CellSize = 100
	Width    = Cols * CellSize
	Height   = Cols * CellSize
)

const effFever effects.Kind = "fever"

// Kind is what pops out of a hole.
type Kind int

const (
	Turd Kind = iota
	Soap
	Golden
	Ninja
	Mega
)

var kindOrder = []Kind{Turd, Soap, Golden, Ninja, Mega}

func (k Kind) String() string {
	switch k {
	case Soap:
		return "SOAP"
	case Golden:
		return "GOLDEN"
	case Ninja:
		return "NINJA"
	case Mega:
		return "MEGA"
	}
	return "TURD"
}

// Hole is one grid slot. Life counts the frames until it hides.
type Hole struct {
	Active bool
	Kind   Kind
	HP     int
	Broken bool
	Life   int
}

// Mix is the tag count of one shuffle bag tier.
type Mix struct {
	Turd   int `yaml:"turd" toml:"turd"`
	Soap   int `yaml:"soap" toml:"soap"`
	Golden int `yaml:"golden" toml:"golden"`
	Ninja  int `yaml:"ninja" toml:"ninja"`
	Mega   int `yaml:"mega" toml:"mega"`
}

func (m Mix) tags() []Kind {
	return sched.Weighted(kindOrder, map[Kind]int{
		Turd: m.Turd, Soap: m.Soap, Golden: m.Golden, Ninja: m.Ninja, Mega: m.Mega,
	})
}

func init() {
	registry.Register(Key, func() registry.Game { return arcade.New(New()) })
}

// Tuning holds every gameplay constant. Times are milliseconds.
type Tuning struct {
	Duration     int         `yaml:"duration" toml:"duration"`
	Spawn        sched.Ramp  `yaml:"spawn" toml:"spawn"`
	Stay         sched.Curve `yaml:"stay" toml:"stay"`
	FeverStay    float64     `yaml:"fever_stay" toml:"fever_stay"`
	SoapExtra    float64     `yaml:"soap_extra" toml:"soap_extra"`
	NinjaStay    float64     `yaml:"ninja_stay" toml:"ninja_stay"`
	MegaStay     float64     `yaml:"mega_stay" toml:"mega_stay"`
	MegaBroken   float64     `yaml:"mega_broken" toml:"mega_broken"`
	MegaHP       int         `yaml:"mega_hp" toml:"mega_hp"`
	MegaPoints   int         `yaml:"mega_points" toml:"mega_points"`
	MegaExtra    int         `yaml:"mega_extra" toml:"mega_extra"`
	TurdPoints   int         `yaml:"turd_points" toml:"turd_points"`
	GoldenPoints int         `yaml:"golden_points" toml:"golden_points"`
	NinjaPoints  int         `yaml:"ninja_points" toml:"ninja_points"`
	SoapPenalty  int         `yaml:"soap_penalty" toml:"soap_penalty"`
	ComboStep    int         `yaml:"combo_step" toml:"combo_step"`
	FeverMs      float64     `yaml:"fever_ms" toml:"fever_ms"`
	FeverMax     int         `yaml:"fever_max" toml:"fever_max"`
	HitFever     int         `yaml:"hit_fever" toml:"hit_fever"`
	GoldenFever  int         `yaml:"golden_fever" toml:"golden_fever"`
	NinjaFever   int         `yaml:"ninja_fever" toml:"ninja_fever"`
	MegaFever    int         `yaml:"mega_fever" toml:"mega_fever"`
	SoapFever    int         `yaml:"soap_fever" toml:"soap_fever"`
	Normal       Mix         `yaml:"normal" toml:"normal"`
	Fever        Mix         `yaml:"fever" toml:"fever"`
}

// DefaultTuning returns the built-in tuning.
func DefaultTuning() Tuning {
	return Tuning{
		Duration:     30,
		Spawn:        sched.Ramp{Base: 750, Floor: 300, Special: 120, ScoreStep: 1, ScoreDrop: 3, TimeStep: 1, TimeDrop: 10},
		Stay:         sched.Curve{Base: 1300, Slope: -12, Min: 550},
		FeverStay:    600,
		SoapExtra:    300,
		NinjaStay:    800,
		MegaStay:     4000,
		MegaBroken:   1000,
		MegaHP:       3,
		MegaPoints:   100,
		MegaExtra:    20,
		TurdPoints:   1,
		GoldenPoints: 5,
		NinjaPoints:  20,
		SoapPenalty:  1,
		ComboStep:    5,
		FeverMs:      5000,
		FeverMax:     100,
		HitFever:     5,
		GoldenFever:  10,
		NinjaFever:   20,
		MegaFever:    25,
		SoapFever:    10,
		Normal:       Mix{Turd: 12, Soap: 4, Golden: 2, Ninja: 1, Mega: 1},
		Fever:        Mix{Turd: 7, Golden: 3},
	}
}

func (t Tuning) scaled(p config.Preset) Tuning {
	t.Stay.Base = p.ScaleFrames(t.Stay.Base)
	t.Stay.Min = p.ScaleFrames(t.Stay.Min)
	t.Spawn.Base = p.ScaleFrames(t.Spawn.Base)
	t.Spawn.Floor = p.ScaleFrames(t.Spawn.Floor)
	return t
}

// Game is the whack_turd ruleset.
type Game struct {
	arcade.Stages

	t      Tuning
	holes  [Holes]Hole
	bag    *sched.Bag[Kind]
	spawn  sched.Timer
	next   int // frames until the next spawn
	clock  sched.Timer
	combo  int
	meter  int
	status *effects.Set
}

// New creates a game with the default tuning.
func New() *Game {
	return &Game{t: DefaultTuning(), status: effects.NewSet()}
}

func (g *Game) Key() string         { return Key }
func (g *Game) Title() string       { return "Whack-a-Turd" }
func (g *Game) Blurb() string       { return "Bop them with 1-9. Never touch the soap." }
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
	g.holes = [Holes]Hole{}
	g.bag = sched.NewBag(env.RNG, g.fill)
	g.spawn.Reset()
	g.clock.Reset()
	g.next = 0
	g.combo = 0
	g.meter = 0
	g.status.Clear()
	env.Session.TimeLeft = float64(g.t.Duration)
}

func (g *Game) fever() bool {
	return g.status.Active(effFever)
}

// fill picks the bag tier current at refill time.
func (g *Game) fill() []Kind {
	if g.fever() {
		return g.t.Fever.tags()
	}
	return g.t.Normal.tags()
}

func (g *Game) frames(env *arcade.Env, ms float64) int {
	return max(1, env.Frames(time.Duration(ms)*time.Millisecond))
}

// SlotHole maps a digit key to a hole index using the numpad layout:
// 7 8 9 on top, 1 2 3 at the bottom.
func SlotHole(n int) int {
	row := Cols - 1 - (n-1)/Cols
	return row*Cols + (n-1)%Cols
}

// HoleBox returns the clickable area of hole i.
func HoleBox(i int) collide.Box {
	col, row := i%Cols, i/Cols
	return collide.Box{X: float64(col * CellSize), Y: float64(row * CellSize), W: CellSize, H: CellSize}.Shrink(10)
}

// Control whacks the holes chosen by digit keys or pointer presses.
func (g *Game) Control(env *arcade.Env) {
	for n := 1; n <= Holes; n++ {
		if env.In.Has(core.SlotAction(n)) {
			g.whack(env, SlotHole(n))
		}
	}
	for _, s := range env.In.Pointer {
		if s.Event != core.PointerPress {
			continue
		}
		for i := 0; i < Holes; i++ {
			if HoleBox(i).Contains(s.Vec) {
				g.whack(env, i)
				break
			}
		}
	}
}

func (g *Game) whack(env *arcade.Env, i int) {
	h := &g.holes[i]
	if !h.Active {
		return
	}
	at := HoleBox(i).Center()

	switch h.Kind {
	case Soap:
		env.Session.Add(-g.t.SoapPenalty)
		g.combo = 0
		g.meter = max(0, g.meter-g.t.SoapFever)
		h.Active = false
		env.Play(sound.Failure)
		env.Particles.Burst(env.RNG, at, 6, 2, '○', core.ColorCyan)

	case Mega:
		h.HP--
		switch {
		case h.HP == 0:
			env.Session.Add(g.t.MegaPoints)
			g.addFever(env, g.t.MegaFever)
			h.Broken = true
			h.Life = g.frames(env, g.t.MegaBroken)
			env.Play(sound.Explosion)
			env.Particles.Burst(env.RNG, at, 16, 4, '*', core.ColorBrightMagenta)
		case h.HP < 0:
			env.Session.Add(g.t.MegaExtra)
			env.Play(sound.Score)
		default:
			env.Play(sound.Impact)
		}

	default:
		points := g.t.TurdPoints
		gain := g.t.HitFever
		switch h.Kind {
		case Golden:
			points, gain = g.t.GoldenPoints, g.t.GoldenFever
		case Ninja:
			points, gain = g.t.NinjaPoints, g.t.NinjaFever
		}
		if g.fever() {
			points *= 2
		}
		g.combo++
		if g.t.ComboStep > 0 {
			points += g.combo / g.t.ComboStep
		}
		env.Session.Add(points)
		g.addFever(env, gain)
		h.Active = false
		env.Play(sound.Impact)
		env.Particles.Burst(env.RNG, at, 8, 3, '*', core.ColorBrown)
	}
}

// addFever fills the meter outside fever and starts one when it is full.
func (g *Game) addFever(env *arcade.Env, n int) {
	if g.fever() {
		return
	}
	g.meter = min(g.t.FeverMax, g.meter+n)
	if g.meter >= g.t.FeverMax {
		g.status.Activate(effFever, g.frames(env, g.t.FeverMs))
		g.bag.Empty()
		env.Play(sound.Explosion)
	}
}

// Schedule runs the round clock, hides expired holes and spawns.
func (g *Game) Schedule(env *arcade.Env) {
	s := env.Session
	if g.clock.Due(env.Frames(time.Second), env.TimeScale) {
		s.TimeLeft--
		if s.TimeLeft <= 0 {
			s.TimeLeft = 0
			if env.End(arcade.PhaseGameOver) {
				env.Play(sound.Failure)
			}
			return
		}
	}

	for i := range g.holes {
		h := &g.holes[i]
		if !h.Active {
			continue
		}
		h.Life--
		if h.Life <= 0 {
			h.Active = false
		}
	}

	if g.spawn.Due(g.next, env.TimeScale) {
		g.pop(env)
		elapsed := g.t.Duration - int(s.TimeLeft)
		g.next = g.frames(env, float64(g.t.Spawn.Next(s.Score, elapsed, g.fever())))
	}
}

// pop fills a random empty hole from the bag.
func (g *Game) pop(env *arcade.Env) {
	i, ok := pool.Place(Holes, func() int { return env.RNG.Intn(Holes) }, func(i int) bool {
		return !g.holes[i].Active
	})
	if !ok {
		return
	}
	kind := g.bag.Draw()
	h := Hole{Active: true, Kind: kind, HP: 1}

	var stay float64
	switch kind {
	case Mega:
		stay = g.t.MegaStay
		h.HP = g.t.MegaHP
	case Ninja:
		stay = g.t.NinjaStay
	default:
		stay = g.t.Stay.At(float64(env.Session.Score))
	}
	if g.fever() {
		stay = g.t.FeverStay
	}
	if kind == Soap {
		stay += g.t.SoapExtra
	}
	h.Life = g.frames(env, stay)
	g.holes[i] = h
}

// Effects ends fever and empties the meter.
func (g *Game) Effects(env *arcade.Env) {
	for _, k := range g.status.Tick() {
		if k == effFever {
			g.meter = 0
			g.bag.Empty()
		}
	}
}

// Draw implements arcade.Ruleset.
func (g *Game) Draw(env *arcade.Env, v *arcade.View) {
	rim := core.ColorBrown
	if g.fever() {
		rim = core.ColorOrange
	}
	for i := range g.holes {
		box := HoleBox(i)
		v.Fill(box, '░', rim)
		v.Text(physics.V(box.X, box.Y), strconv.Itoa(slotFor(i)), core.ColorGray)

		h := g.holes[i]
		if !h.Active {
			continue
		}
		glyph, color := '●', core.ColorBrown
		switch {
		case h.Kind == Soap:
			glyph, color = '◊', core.ColorBrightCyan
		case h.Kind == Golden:
			glyph, color = '★', core.ColorBrightYellow
		case h.Kind == Ninja:
			glyph, color = '✦', core.ColorWhite
		case h.Kind == Mega && h.Broken:
			glyph, color = '✸', core.ColorBrightRed
		case h.Kind == Mega:
			glyph, color = 'M', core.ColorBrightMagenta
		}
		v.Fill(box.Shrink(25), glyph, color)
		if h.Kind == Mega && !h.Broken {
			v.Text(physics.V(box.Center().X, box.Bottom()-15), strconv.Itoa(h.HP), core.ColorWhite)
		}
	}

	if g.combo >= g.t.ComboStep {
		v.Status(fmt.Sprintf("COMBO %d", g.combo))
	}
	if g.fever() {
		v.Status("FEVER!")
	} else {
		v.Status(fmt.Sprintf("FEVER %d%%", g.meter*100/max(1, g.t.FeverMax)))
	}
}

// slotFor is the inverse of SlotHole.
func slotFor(i int) int {
	col, row := i%Cols, i/Cols
	return (Cols-1-row)*Cols + col + 1
}
