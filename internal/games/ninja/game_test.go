package ninja

import (
	"testing"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// started returns a PLAYING loop with crits disabled so points are exact.
func started(t *testing.T, seed int64) (*Game, *arcade.Loop, *sound.Log) {
	t.Helper()
	cues := &sound.Log{}
	g := New()
	l := arcade.New(g)
	l.Attach(arcade.Services{Sounds: cues})
	l.Reset(testConfig(seed))
	g.t.Crit = 1
	l.Step(press(core.ActionConfirm))
	if l.State().Phase != string(arcade.PhasePlaying) {
		t.Fatalf("phase = %s, want PLAYING", l.State().Phase)
	}
	return g, l, cues
}

// put places a resting object of the given kind.
func put(g *Game, kind Kind, x, y float64) *Object {
	o := newObject(kind, physics.V(x, y), physics.Vec{})
	g.objects.Spawn(o)
	return o
}

func TestGameDeterminism(t *testing.T) {
	run := func() (core.GameState, int, int, physics.Vec) {
		g, l, _ := started(t, 4242)
		g.t.Crit = DefaultTuning().Crit
		var state core.GameState
		for i := 0; i < 900; i++ {
			dir := core.ActionLeft
			if (i/8)%2 == 0 {
				dir = core.ActionRight
			}
			state = l.Step(press(dir, core.ActionDown)).State
			if state.GameOver {
				break
			}
		}
		return state, g.objects.Len(), g.meter, g.blade
	}

	s1, n1, m1, b1 := run()
	s2, n2, m2, b2 := run()
	if s1 != s2 {
		t.Errorf("Determinism failed: states differ. Run1=%+v, Run2=%+v", s1, s2)
	}
	if n1 != n2 || m1 != m2 || b1 != b2 {
		t.Errorf("Determinism failed: objects %d/%d meter %d/%d blade %v/%v", n1, n2, m1, m2, b1, b2)
	}
}

func TestBagHoldsOnePoop(t *testing.T) {
	g, l, _ := started(t, 1)
	for i := 0; i < 20; i++ {
		bag := g.fill(l.Env())
		if len(bag) != 6 {
			t.Fatalf("bag size = %d, want 6", len(bag))
		}
		poop, tp := 0, 0
		for _, k := range bag {
			switch k {
			case Poop:
				poop++
			case TP:
				tp++
			}
		}
		if poop != 1 || tp < 4 {
			t.Errorf("bag %v should hold one poop and at least four rolls", bag)
		}
	}
}

func TestFrenzyLeavesBagAlone(t *testing.T) {
	g, l, _ := started(t, 3)
	g.bag.Draw()
	left := g.bag.Remaining()

	g.status.Activate(effFrenzy, 100)
	g.throw(l.Env(), 4)
	if g.bag.Remaining() != left {
		t.Errorf("frenzy throws drew from the bag: %d left, want %d", g.bag.Remaining(), left)
	}

	g.status.Cancel(effFrenzy)
	g.throw(l.Env(), 1)
	if g.bag.Remaining() != left-1 {
		t.Errorf("normal throw should draw once: %d left, want %d", g.bag.Remaining(), left-1)
	}
}

func TestSliceScoring(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		score int
		meter int
		cue   sound.Cue
	}{
		{"tp", TP, 1, 5, sound.Impact},
		{"golden", Golden, 5, 12, sound.Score},
		{"rainbow", Rainbow, 50, 50, sound.Score},
		{"ice", Ice, 10, 20, sound.Laser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, l, cues := started(t, 2)
			o := put(g, tt.kind, 340, 400)
			before := cues.Count(tt.cue)

			l.Step(press(core.ActionRight))

			if o.IsActive() {
				t.Fatal("object should be sliced")
			}
			if l.State().Score != tt.score {
				t.Errorf("score = %d, want %d", l.State().Score, tt.score)
			}
			if g.meter != tt.meter {
				t.Errorf("meter = %d, want %d", g.meter, tt.meter)
			}
			if cues.Count(tt.cue) != before+1 {
				t.Errorf("%v cue count = %d, want %d", tt.cue, cues.Count(tt.cue), before+1)
			}
			if g.combo != 1 {
				t.Errorf("combo = %d, want 1", g.combo)
			}
		})
	}
}

func TestComboBonus(t *testing.T) {
	g, l, _ := started(t, 2)
	g.combo = 10
	put(g, TP, 340, 400)

	l.Step(press(core.ActionRight))

	if l.State().Score != 1+2 {
		t.Errorf("score = %d, want 3", l.State().Score)
	}
}

func TestMegaTakesFiveHits(t *testing.T) {
	g, l, cues := started(t, 3)
	o := put(g, Mega, 340, 400)

	l.Step(press(core.ActionRight))

	if !o.IsActive() || o.HP != 4 {
		t.Fatalf("first hit should only chip the mega: active %v hp %d", o.IsActive(), o.HP)
	}
	if l.State().Score != 5 || g.meter != 2 {
		t.Errorf("chip: score %d meter %d, want 5 and 2", l.State().Score, g.meter)
	}
	if o.Vel.Y >= 0 {
		t.Errorf("a chip should knock the mega up, vy = %v", o.Vel.Y)
	}
	if g.stop != Mega.hitStop() {
		t.Errorf("hit-stop = %d, want %d", g.stop, Mega.hitStop())
	}

	o.HP = 1
	o.Pos = physics.V(g.blade.X+40, g.blade.Y)
	g.trail.Clear()
	l.Step(press(core.ActionRight))

	if o.IsActive() {
		t.Fatal("last hit should crush the mega")
	}
	if l.State().Score != 5+50 || cues.Count(sound.Explosion) != 1 {
		t.Errorf("crush: score %d explosions %d", l.State().Score, cues.Count(sound.Explosion))
	}
}

func TestBlitzBonus(t *testing.T) {
	g, l, cues := started(t, 4)
	for _, y := range []float64{440, 480, 520} {
		put(g, TP, 300, y).Size = 10
	}

	for i := 0; i < 3; i++ {
		l.Step(press(core.ActionDown))
	}

	if g.blitz != 3 {
		t.Fatalf("blitz = %d, want 3", g.blitz)
	}
	if l.State().Score != 3+15 {
		t.Errorf("score = %d, want 18", l.State().Score)
	}
	if cues.Count(sound.Score) != 1 {
		t.Errorf("blitz cue count = %d, want 1", cues.Count(sound.Score))
	}
}

func TestBlitzSurvivesPause(t *testing.T) {
	g, l, _ := started(t, 4)
	for _, y := range []float64{440, 480, 520} {
		put(g, TP, 300, y).Size = 10
	}

	l.Step(press(core.ActionDown))
	l.Step(press(core.ActionDown))
	l.Step(press(core.ActionPause))
	for range 30 {
		l.Step(core.NewInputFrame())
	}
	l.Step(press(core.ActionPause))
	l.Step(press(core.ActionDown))

	if g.blitz != 3 {
		t.Fatalf("blitz = %d, want 3", g.blitz)
	}
	if l.State().Score != 3+15 {
		t.Errorf("score = %d, want 18", l.State().Score)
	}
}

func TestBombClearsRolls(t *testing.T) {
	g, l, cues := started(t, 5)
	put(g, Bomb, 340, 400)
	put(g, TP, 100, 100)
	put(g, Golden, 500, 100)
	poop := put(g, Poop, 300, 700)

	l.Step(press(core.ActionRight))

	if l.State().Score != 20 {
		t.Errorf("score = %d, want 20", l.State().Score)
	}
	if !poop.IsActive() || g.objects.Active() != 1 {
		t.Errorf("only the poop should survive, %d active", g.objects.Active())
	}
	if cues.Count(sound.Explosion) != 1 {
		t.Errorf("explosion cue count = %d, want 1", cues.Count(sound.Explosion))
	}
}

func TestPoopCostsLife(t *testing.T) {
	g, l, cues := started(t, 6)
	g.combo, g.meter = 7, 40
	put(g, Poop, 340, 400)

	state := l.Step(press(core.ActionRight)).State

	if state.Lives != 2 || state.GameOver {
		t.Errorf("lives = %d gameOver %v, want 2 and false", state.Lives, state.GameOver)
	}
	if g.combo != 0 || g.meter != 0 || g.blitz != 0 {
		t.Errorf("poop should reset combo %d meter %d blitz %d", g.combo, g.meter, g.blitz)
	}
	if cues.Count(sound.Failure) != 1 {
		t.Errorf("failure cue count = %d, want 1", cues.Count(sound.Failure))
	}
}

func TestLastLifeEndsRun(t *testing.T) {
	g, l, _ := started(t, 6)
	l.Env().Session.Lives = 1
	put(g, Poop, 340, 400)

	if !l.Step(press(core.ActionRight)).State.GameOver {
		t.Error("slicing poop on the last life should end the run")
	}
}

func TestFrenzy(t *testing.T) {
	g, l, cues := started(t, 7)
	g.meter = 96
	g.status.Activate(effFreeze, 100)
	poop := put(g, Poop, 100, 100)
	put(g, TP, 340, 400)

	l.Step(press(core.ActionRight))

	if !g.frenzy() {
		t.Fatal("a full meter should start a frenzy")
	}
	if g.frozen() {
		t.Error("frenzy should lift the freeze")
	}
	if poop.IsActive() {
		t.Error("frenzy should clear the poop")
	}
	if cues.Count(sound.Score) != 1 {
		t.Errorf("frenzy cue count = %d, want 1", cues.Count(sound.Score))
	}

	// Poop sliced during frenzy is harmless.
	g.trail.Clear()
	put(g, Poop, g.blade.X+40, g.blade.Y)
	l.Step(press(core.ActionRight))
	if l.State().Lives != 3 {
		t.Errorf("lives = %d, poop should be ignored in frenzy", l.State().Lives)
	}

	for i := 0; i < g.t.FrenzyFrames+20; i++ {
		l.Step(core.NewInputFrame())
	}
	if g.frenzy() || g.meter != 0 {
		t.Errorf("frenzy should end and empty the meter: frenzy %v meter %d", g.frenzy(), g.meter)
	}
}

func TestHitStopFreezesWorld(t *testing.T) {
	g, l, _ := started(t, 8)
	put(g, TP, 340, 400)
	falling := put(g, TP, 100, 100)

	l.Step(press(core.ActionRight))
	y := falling.Pos.Y

	for i := 0; i < TP.hitStop(); i++ {
		l.Step(core.NewInputFrame())
		if falling.Pos.Y != y {
			t.Fatalf("frame %d of hit-stop moved the world", i)
		}
		if l.Env().TimeScale != 0 {
			t.Fatalf("time scale during hit-stop = %v", l.Env().TimeScale)
		}
	}
	l.Step(core.NewInputFrame())
	if falling.Pos.Y == y {
		t.Error("the world should move again after hit-stop")
	}
}

func TestIceSlowsTime(t *testing.T) {
	g, l, _ := started(t, 9)
	put(g, Ice, 340, 400)

	l.Step(press(core.ActionRight))
	for i := 0; i < Ice.hitStop(); i++ {
		l.Step(core.NewInputFrame())
	}
	l.Step(core.NewInputFrame())

	if !g.frozen() || l.Env().TimeScale != g.t.FreezeScale {
		t.Errorf("frozen %v time scale %v, want %v", g.frozen(), l.Env().TimeScale, g.t.FreezeScale)
	}
}

func TestMissResetsCombo(t *testing.T) {
	tests := []struct {
		name  string
		kind  Kind
		combo int
	}{
		{"missed roll", TP, 0},
		{"missed poop", Poop, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, l, _ := started(t, 10)
			g.combo = 4
			o := put(g, tt.kind, 300, Height+g.t.Floor+1)
			o.Vel.Y = 1

			l.Step(core.NewInputFrame())

			if o.IsActive() {
				t.Error("object past the floor line should be dropped")
			}
			if g.combo != tt.combo {
				t.Errorf("combo = %d, want %d", g.combo, tt.combo)
			}
		})
	}
}

func TestRisingThrowsSurviveBelowFloor(t *testing.T) {
	g, l, _ := started(t, 11)
	o := put(g, TP, 300, Height+g.t.Floor+50)
	o.Vel.Y = -20

	l.Step(core.NewInputFrame())

	if !o.IsActive() {
		t.Error("a roll still rising from below should stay in play")
	}
}

func TestSpawnCap(t *testing.T) {
	g, _, _ := started(t, 12)
	for i := 0; i < 30; i++ {
		put(g, TP, 300, 900)
	}
	if g.objects.Active() != g.t.Cap {
		t.Errorf("active = %d, want cap %d", g.objects.Active(), g.t.Cap)
	}
	if g.objects.Dropped() != 30-g.t.Cap {
		t.Errorf("dropped = %d, want %d", g.objects.Dropped(), 30-g.t.Cap)
	}
}

func TestPointerSwipe(t *testing.T) {
	g, l, _ := started(t, 13)
	o := put(g, TP, 340, 400)
	v := l.View()

	in := core.NewInputFrame()
	c0, r0 := v.Cell(physics.V(200, 400))
	c1, r1 := v.Cell(physics.V(340, 400))
	in.AddPointer(c0, r0, core.PointerPress)
	in.AddPointer(c1, r1, core.PointerMove)
	l.Step(in)

	if o.IsActive() {
		t.Error("a swipe across the roll should slice it")
	}
}

func TestHoverDoesNotSlice(t *testing.T) {
	g, l, _ := started(t, 13)
	o := put(g, TP, 340, 400)
	v := l.View()

	in := core.NewInputFrame()
	c0, r0 := v.Cell(physics.V(200, 400))
	c1, r1 := v.Cell(physics.V(340, 400))
	in.AddPointer(c0, r0, core.PointerMove)
	in.AddPointer(c1, r1, core.PointerMove)
	l.Step(in)

	if !o.IsActive() {
		t.Error("moving without a held button should not slice")
	}
}

func TestSpawnInterval(t *testing.T) {
	tun := DefaultTuning()
	tests := []struct {
		score  int
		frames int
		frenzy bool
		want   int
	}{
		{0, 0, false, 30},
		{250, 0, false, 28},
		{0, 5000, false, 25},
		{2000, 20000, false, 15},
		{0, 0, true, 10},
	}
	for _, tt := range tests {
		if got := tun.Spawn.Next(tt.score, tt.frames, tt.frenzy); got != tt.want {
			t.Errorf("interval(score %d, frames %d, frenzy %v) = %d, want %d", tt.score, tt.frames, tt.frenzy, got, tt.want)
		}
	}
}

func TestGameRender(t *testing.T) {
	g, l, _ := started(t, 1)
	put(g, Bomb, 300, 400)

	screen := core.NewScreen(80, 24)
	l.Render(screen)

	found := false
	for _, ch := range screen.String() {
		if ch == '✹' {
			found = true
		}
	}
	if !found {
		t.Error("Render should draw the bomb")
	}
}
