package catdog

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/arcadeloop/internal/arcade"
	"github.com/vovakirdan/arcadeloop/internal/config"
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

func pointer(l *arcade.Loop, at physics.Vec, ev core.PointerEvent) core.InputFrame {
	in := core.NewInputFrame()
	col, row := l.View().Cell(at)
	in.AddPointer(col, row, ev)
	return in
}

func fresh(seed int64) (*Game, *arcade.Loop, *sound.Log) {
	cues := &sound.Log{}
	g := New()
	l := arcade.New(g)
	l.Attach(arcade.Services{Sounds: cues})
	l.Reset(testConfig(seed))
	return g, l, cues
}

// started picks NORMAL and the cat, leaving a calm player turn.
func started(t *testing.T, seed int64) (*Game, *arcade.Loop, *sound.Log) {
	t.Helper()
	g, l, cues := fresh(seed)
	if l.State().Phase != string(arcade.PhaseSelectDifficulty) {
		t.Fatalf("phase = %s, want SELECT_DIFFICULTY", l.State().Phase)
	}
	l.Step(press(core.SlotAction(2)))
	l.Step(press(core.SlotAction(1)))
	if l.State().Phase != string(arcade.PhasePlaying) {
		t.Fatalf("phase = %s, want PLAYING", l.State().Phase)
	}
	g.wind = 0
	return g, l, cues
}

func only(g *Game) *Shot {
	s, _ := g.shots.Find(func(*Shot) bool { return true })
	return s
}

func TestDeterminism(t *testing.T) {
	run := func() (core.GameState, int, int, float64) {
		g, l, _ := started(t, 777)
		var state core.GameState
		for i := 0; i < 3000; i++ {
			in := core.NewInputFrame()
			if i%120 == 0 {
				in.Set(core.ActionFire)
			}
			state = l.Step(in).State
			if state.GameOver {
				break
			}
		}
		return state, g.hp, g.cpuHP, g.wind
	}

	s1, hp1, cpu1, w1 := run()
	s2, hp2, cpu2, w2 := run()
	if s1 != s2 || hp1 != hp2 || cpu1 != cpu2 || w1 != w2 {
		t.Errorf("Determinism failed: %+v hp %d/%d vs %+v hp %d/%d", s1, hp1, cpu1, s2, hp2, cpu2)
	}
}

func TestMenuFlow(t *testing.T) {
	g, l, cues := fresh(1)

	l.Step(press(core.ActionDown))
	if g.cursor != 2 {
		t.Fatalf("cursor = %d, want 2", g.cursor)
	}
	l.Step(press(core.ActionConfirm))
	if l.State().Phase != string(arcade.PhaseSelectChar) || g.pick != config.Hard {
		t.Fatalf("after confirm: phase %s pick %s", l.State().Phase, g.pick)
	}
	if g.tier != g.t.Hard {
		t.Errorf("tier = %+v, want hard", g.tier)
	}

	l.Step(press(core.ActionBack))
	if l.State().Phase != string(arcade.PhaseSelectDifficulty) {
		t.Fatalf("Back should return to SELECT_DIFFICULTY, got %s", l.State().Phase)
	}

	l.Step(press(core.SlotAction(1)))
	l.Step(press(core.ActionRight))
	l.Step(press(core.ActionConfirm))

	if l.State().Phase != string(arcade.PhasePlaying) {
		t.Fatalf("phase = %s, want PLAYING", l.State().Phase)
	}
	if g.pick != config.Easy || g.fighter != Dog {
		t.Errorf("picked %s/%s, want easy/DOG", g.pick, g.fighter)
	}
	if g.hp != 100 || g.cpuHP != 100 || l.State().Health != 100 {
		t.Errorf("duel should start at full hp, got %d/%d", g.hp, g.cpuHP)
	}
	if got := cues.Count(sound.Score); got != 3 {
		t.Errorf("menu picks played %d score cues, want 3", got)
	}
}

func TestMenuPointer(t *testing.T) {
	g, l, _ := fresh(1)

	l.Step(pointer(l, physics.V(400, menuTop), core.PointerPress))
	if l.State().Phase != string(arcade.PhaseSelectChar) || g.pick != config.Easy {
		t.Fatalf("press on the first row: phase %s pick %s", l.State().Phase, g.pick)
	}
	l.Step(pointer(l, physics.V(600, 250), core.PointerPress))
	if l.State().Phase != string(arcade.PhasePlaying) || g.fighter != Dog {
		t.Errorf("press on the right half: phase %s fighter %s", l.State().Phase, g.fighter)
	}
}

func TestPresetPreselects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cat_vs_dog.yaml")
	if err := os.WriteFile(path, []byte("hard:\n  think: 10\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	g := New()
	src, err := g.Tune(path, config.PresetFor(config.Hard))
	if err != nil {
		t.Fatalf("Tune() failed: %v", err)
	}
	if src != path {
		t.Errorf("source = %q, want %q", src, path)
	}
	if g.pick != config.Hard || g.cursor != 2 {
		t.Errorf("preset should preselect hard, got %s at %d", g.pick, g.cursor)
	}
	if g.t.Hard.Think != 10 || g.t.Hard.Wind != 3.5 {
		t.Errorf("overlay: %+v", g.t.Hard)
	}
}

func TestRematchKeepsSettings(t *testing.T) {
	g, l, _ := fresh(1)
	l.Step(press(core.SlotAction(3)))
	l.Step(press(core.SlotAction(2)))

	g.hp = 0
	l.Step(core.NewInputFrame())
	if l.State().Phase != string(arcade.PhaseGameOver) {
		t.Fatalf("phase = %s, want GAME_OVER", l.State().Phase)
	}

	l.Step(press(core.ActionRestart))
	if l.State().Phase != string(arcade.PhasePlaying) {
		t.Fatalf("rematch should skip the menu, got %s", l.State().Phase)
	}
	if g.pick != config.Hard || g.fighter != Dog {
		t.Errorf("rematch changed settings: %s/%s", g.pick, g.fighter)
	}
	if g.hp != 100 || g.cpuHP != 100 || g.turn != SidePlayer {
		t.Errorf("rematch should reset the duel: hp %d/%d turn %v", g.hp, g.cpuHP, g.turn)
	}
}

func TestSolveShot(t *testing.T) {
	tests := []struct {
		name   string
		wind   float64
		vx, vy float64
	}{
		{"calm", 0, -580.0 / 80, -16},
		{"headwind", 1, (-580 - 0.5*0.06*80*80) / 80, -16},
		// Help from the wind leaves vx above -6, so the flight is shortened.
		{"tailwind", -1, (-580 + 0.5*0.06*50*50) / 50, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			g.wind = tt.wind
			v := g.solveShot(g.hand(SideCPU))
			if math.Abs(v.X-tt.vx) > 1e-9 || math.Abs(v.Y-tt.vy) > 1e-9 {
				t.Errorf("solveShot() = %+v, want (%v, %v)", v, tt.vx, tt.vy)
			}
		})
	}
}

func TestSolvedShotHitsPlayer(t *testing.T) {
	g := New()
	from := g.hand(SideCPU)
	s := newShot(SideCPU, from, g.solveShot(from), false)
	for i := 0; i < 200; i++ {
		physics.Step(&s.Body, g.forces(), 1)
		if target, hit := g.check(s); hit {
			if target != SidePlayer {
				t.Fatalf("frame %d: shot stopped at %+v without hitting the player", i, s.Pos)
			}
			return
		}
	}
	t.Fatal("solved shot never landed")
}

func TestCPUTurn(t *testing.T) {
	g, l, cues := started(t, 3)
	g.tier = Tier{Think: 72}
	g.turn = SideCPU
	g.stage = stageThinking
	g.think.Reset()

	for i := 0; i < 71; i++ {
		l.Step(core.NewInputFrame())
	}
	if g.shots.Active() != 0 {
		t.Fatal("the CPU should still be thinking")
	}
	l.Step(core.NewInputFrame())
	if g.shots.Active() != 1 || cues.Count(sound.Launch) != 1 {
		t.Fatalf("the CPU should throw after its think time: %d shots", g.shots.Active())
	}

	for i := 0; i < 200 && g.hp == 100; i++ {
		l.Step(core.NewInputFrame())
	}
	if g.hp < 81 || g.hp > 85 {
		t.Errorf("player hp = %d, want a 15-19 hit", g.hp)
	}
	if cues.Count(sound.Impact) != 1 {
		t.Errorf("impact cue played %d times, want 1", cues.Count(sound.Impact))
	}
}

func TestCPUItems(t *testing.T) {
	g, l, cues := started(t, 5)
	env := l.Env()
	g.tier.ItemChance = 1

	g.cpuHP = 30
	g.cpuThrow(env)
	if g.cpuHP != 60 || g.cpuItems.Count(ItemHeal) != 0 || cues.Count(sound.Heal) != 1 {
		t.Fatalf("low CPU should heal: hp %d, heals left %d", g.cpuHP, g.cpuItems.Count(ItemHeal))
	}
	if g.second != nil || only(g).Bomb {
		t.Error("a heal takes the item roll for the turn")
	}

	g.pick = config.Hard
	g.cpuHP = 30
	g.hp = 20
	g.cpuThrow(env)
	if g.cpuHP != 30 {
		t.Errorf("no heals left, hp should stay 30, got %d", g.cpuHP)
	}
	if g.second == nil || g.cpuItems.Count(ItemDouble) != 1 {
		t.Error("hard CPU should double against a weak player")
	}

	g.hp = 80
	g.cpuThrow(env)
	if !only(g).Bomb || g.cpuItems.Count(ItemBomb) != 1 {
		t.Error("hard CPU should bomb a healthy player")
	}

	g.tier.ItemChance = 0
	g.cpuHP = 10
	g.cpuThrow(env)
	if g.cpuHP != 10 || g.second != nil || only(g).Bomb {
		t.Error("with no item chance the CPU throws plain")
	}
}

func TestPlayerDrag(t *testing.T) {
	g, l, cues := started(t, 1)
	v := l.View()
	from, to := physics.V(400, 200), physics.V(300, 300)

	l.Step(pointer(l, from, core.PointerPress))
	if g.stage != stageAiming {
		t.Fatalf("press should start aiming, stage %v", g.stage)
	}
	l.Step(pointer(l, to, core.PointerRelease))

	if g.stage != stageFlying || g.shots.Active() != 1 {
		t.Fatalf("release should throw: stage %v, %d shots", g.stage, g.shots.Active())
	}
	c0, r0 := v.Cell(from)
	c1, r1 := v.Cell(to)
	want := v.ToWorld(c0, r0).Sub(v.ToWorld(c1, r1)).Scale(g.t.Power)
	if g.aim != want {
		t.Errorf("aim = %+v, want %+v", g.aim, want)
	}
	if s := only(g); s.Vel.X <= 0 || s.Vel.Y >= 0 || s.Owner != SidePlayer {
		t.Errorf("slingshot should throw up and right, got %+v", s.Vel)
	}
	if cues.Count(sound.Launch) != 1 {
		t.Errorf("launch cue played %d times, want 1", cues.Count(sound.Launch))
	}
}

func TestShortDragCancels(t *testing.T) {
	g, l, cues := started(t, 1)
	at := physics.V(400, 200)
	l.Step(pointer(l, at, core.PointerPress))
	l.Step(pointer(l, at, core.PointerRelease))

	if g.stage != stageIdle || g.shots.Active() != 0 || cues.Count(sound.Launch) != 0 {
		t.Errorf("a drag under the minimum should cancel: stage %v", g.stage)
	}
}

func TestKeyboardAim(t *testing.T) {
	g, l, _ := started(t, 1)
	l.Step(press(core.ActionRight))
	l.Step(press(core.ActionUp))
	if g.aim != physics.V(11.5, -11.5) {
		t.Fatalf("aim = %+v, want (11.5, -11.5)", g.aim)
	}

	l.Step(press(core.ActionFire))
	s := only(g)
	if s == nil {
		t.Fatal("Fire should throw")
	}
	if s.Vel.X != 11.5 || s.Vel.Y != -11.5+g.t.Gravity {
		t.Errorf("shot velocity = %+v", s.Vel)
	}

	for i := 0; i < 50; i++ {
		l.Step(press(core.ActionRight))
	}
	if g.aim.X != 11.5 {
		t.Errorf("aim must not change while the shot flies, got %v", g.aim.X)
	}
}

func TestHeal(t *testing.T) {
	tests := []struct {
		name  string
		hp    int
		spent bool
		want  int
	}{
		{"heals", 50, false, 80},
		{"caps at max", 90, false, 100},
		{"none left", 50, true, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, l, cues := started(t, 1)
			g.hp = tt.hp
			if tt.spent {
				g.items.Consume(ItemHeal)
			}
			l.Step(press(core.SlotAction(3)))
			if g.hp != tt.want {
				t.Errorf("hp = %d, want %d", g.hp, tt.want)
			}
			if g.items.Count(ItemHeal) != 0 {
				t.Errorf("heals left = %d, want 0", g.items.Count(ItemHeal))
			}
			wantCue := 1
			if tt.spent {
				wantCue = 0
			}
			if cues.Count(sound.Heal) != wantCue {
				t.Errorf("heal cue played %d times, want %d", cues.Count(sound.Heal), wantCue)
			}
		})
	}
}

func TestDoubleShot(t *testing.T) {
	g, l, cues := started(t, 1)
	l.Step(press(core.SlotAction(1)))
	l.Step(press(core.SlotAction(1)))
	if !g.armed.Double || g.items.Count(ItemDouble) != 1 {
		t.Fatalf("double should arm once: armed %v, left %d", g.armed, g.items.Count(ItemDouble))
	}

	l.Step(press(core.ActionJump))
	if g.armed.Double {
		t.Error("a throw should use up the armed power-ups")
	}
	for i := 1; i < g.t.SecondFrames; i++ {
		l.Step(core.NewInputFrame())
		if g.shots.Active() != 1 {
			t.Fatalf("frame %d: %d shots, want 1", i, g.shots.Active())
		}
	}
	l.Step(core.NewInputFrame())
	if g.shots.Active() != 2 || cues.Count(sound.Launch) != 2 {
		t.Errorf("second shot should follow %d frames later: %d shots", g.t.SecondFrames, g.shots.Active())
	}
}

func TestDoubleShotWaitsOutPause(t *testing.T) {
	g, l, _ := started(t, 1)
	l.Step(press(core.SlotAction(1)))
	l.Step(press(core.ActionJump))

	l.Step(core.NewInputFrame())
	l.Step(core.NewInputFrame())
	l.Step(press(core.ActionPause))
	for range 30 {
		l.Step(core.NewInputFrame())
	}
	l.Step(press(core.ActionPause))
	if l.State().Paused {
		t.Fatal("second Pause should resume")
	}

	for i := 3; i < g.t.SecondFrames; i++ {
		l.Step(core.NewInputFrame())
		if g.shots.Active() != 1 {
			t.Fatalf("play frame %d after the pause: %d shots, want 1", i, g.shots.Active())
		}
	}
	l.Step(core.NewInputFrame())
	if g.shots.Active() != 2 {
		t.Errorf("second shot should follow %d play frames: %d shots", g.t.SecondFrames, g.shots.Active())
	}
}

func TestBigBomb(t *testing.T) {
	g, l, _ := started(t, 1)
	l.Step(press(core.SlotAction(2)))
	l.Step(press(core.ActionFire))
	if s := only(g); s == nil || !s.Bomb {
		t.Fatal("armed throw should be a bomb")
	}
	if g.items.Count(ItemBomb) != 1 {
		t.Errorf("bombs left = %d, want 1", g.items.Count(ItemBomb))
	}
}

func TestCheck(t *testing.T) {
	g := New()
	tests := []struct {
		name   string
		owner  Side
		at     physics.Vec
		bomb   bool
		target Side
		hit    bool
	}{
		{"hits cpu", SidePlayer, g.body(SideCPU), false, SideCPU, true},
		{"hits player", SideCPU, physics.V(110, 360), false, SidePlayer, true},
		{"own body", SidePlayer, g.body(SidePlayer), false, noSide, false},
		{"in the air", SidePlayer, physics.V(250, 100), false, noSide, false},
		{"wall", SidePlayer, physics.V(400, 300), false, noSide, true},
		{"over the wall", SidePlayer, physics.V(400, 230), false, noSide, false},
		{"out of world", SidePlayer, physics.V(-401, 100), false, noSide, true},
		{"ground", SidePlayer, physics.V(300, 401), false, noSide, true},
		{"bomb radius", SidePlayer, physics.V(700, 290), true, SideCPU, true},
		{"bomb splash", SidePlayer, physics.V(580, 401), true, SideCPU, true},
		{"no splash without bomb", SidePlayer, physics.V(580, 401), false, noSide, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, hit := g.check(newShot(tt.owner, tt.at, physics.Vec{}, tt.bomb))
			if target != tt.target || hit != tt.hit {
				t.Errorf("check() = (%v, %v), want (%v, %v)", target, hit, tt.target, tt.hit)
			}
		})
	}
}

func TestImpactDamage(t *testing.T) {
	tests := []struct {
		name     string
		bomb     bool
		min, max int
		cue      sound.Cue
	}{
		{"plain", false, 15, 19, sound.Impact},
		{"bomb", true, 22, 28, sound.Explosion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, l, cues := started(t, 9)
			g.shots.Spawn(newShot(SidePlayer, g.body(SideCPU), physics.Vec{}, tt.bomb))
			g.stage = stageFlying

			l.Step(core.NewInputFrame())

			dmg := g.t.HP - g.cpuHP
			if dmg < tt.min || dmg > tt.max {
				t.Errorf("damage = %d, want %d-%d", dmg, tt.min, tt.max)
			}
			if cues.Count(tt.cue) != 1 {
				t.Errorf("%v cue played %d times, want 1", tt.cue, cues.Count(tt.cue))
			}
			if !g.status.Active(effCPUHurt) {
				t.Error("a hit should flash the target")
			}
			if g.shots.Active() != 0 {
				t.Error("the shot should be spent")
			}
		})
	}
}

func TestMissBounces(t *testing.T) {
	g, l, cues := started(t, 1)
	g.shots.Spawn(newShot(SidePlayer, physics.V(300, 401), physics.Vec{}, false))
	g.stage = stageFlying

	l.Step(core.NewInputFrame())
	if cues.Count(sound.Bounce) != 1 {
		t.Errorf("bounce cue played %d times, want 1", cues.Count(sound.Bounce))
	}
	if g.hp != 100 || g.cpuHP != 100 {
		t.Errorf("a miss hurts nobody: %d/%d", g.hp, g.cpuHP)
	}
}

func TestTurnSwitch(t *testing.T) {
	g, l, _ := started(t, 1)
	g.shots.Spawn(newShot(SidePlayer, physics.V(-500, 100), physics.Vec{}, false))
	g.stage = stageFlying

	for i := 0; i < 1+g.t.SwitchFrames-1; i++ {
		l.Step(core.NewInputFrame())
	}
	if g.turn != SidePlayer {
		t.Fatal("the turn should wait after the last shot")
	}
	l.Step(core.NewInputFrame())
	if g.turn != SideCPU || g.stage != stageThinking {
		t.Fatalf("turn = %v stage %v, want the CPU thinking", g.turn, g.stage)
	}
	if math.Abs(g.wind) > g.t.Normal.Wind/2 {
		t.Errorf("wind %v outside the normal range", g.wind)
	}
}

func TestWindRange(t *testing.T) {
	for _, d := range config.Difficulties() {
		t.Run(string(d), func(t *testing.T) {
			g, l, _ := started(t, 11)
			g.tier = g.t.tier(d)
			peak := 0.0
			for i := 0; i < 200; i++ {
				g.rollWind(l.Env())
				if math.Abs(g.wind) > g.tier.Wind/2 {
					t.Fatalf("wind %v outside ±%v", g.wind, g.tier.Wind/2)
				}
				peak = max(peak, math.Abs(g.wind))
			}
			if peak <= 0.8*g.tier.Wind/2 {
				t.Errorf("wind never got strong: peak %v", peak)
			}
		})
	}
}

func TestDuelEnds(t *testing.T) {
	tests := []struct {
		name  string
		owner Side
		phase arcade.Phase
		score int
		cue   sound.Cue
	}{
		{"win", SidePlayer, arcade.PhaseWin, 1, sound.Score},
		{"loss", SideCPU, arcade.PhaseGameOver, 0, sound.Failure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, l, cues := started(t, 1)
			before := cues.Count(tt.cue)
			g.hp, g.cpuHP = 5, 5
			target := SideCPU
			if tt.owner == SideCPU {
				target = SidePlayer
			}
			g.shots.Spawn(newShot(tt.owner, g.body(target), physics.Vec{}, false))
			g.stage = stageFlying

			state := l.Step(core.NewInputFrame()).State
			if state.Phase != string(tt.phase) || state.Score != tt.score {
				t.Errorf("phase %s score %d, want %s %d", state.Phase, state.Score, tt.phase, tt.score)
			}
			if cues.Count(tt.cue)-before != 1 {
				t.Errorf("%v cue played %d times, want 1", tt.cue, cues.Count(tt.cue)-before)
			}
			if state.Health < 0 {
				t.Errorf("health = %d, should not go negative", state.Health)
			}
		})
	}
}

func TestGameRender(t *testing.T) {
	_, l, _ := fresh(1)
	screen := core.NewScreen(80, 24)
	l.Render(screen)
	if !strings.Contains(screen.String(), "SELECT DIFFICULTY") {
		t.Error("menu phase should draw the difficulty list")
	}

	g, l, _ := started(t, 1)
	g.shots.Spawn(newShot(SidePlayer, physics.V(250, 200), physics.Vec{}, true))
	screen = core.NewScreen(80, 24)
	l.Render(screen)
	str := screen.String()
	for _, want := range []rune{'C', 'D', '█', '●'} {
		if !strings.ContainsRune(str, want) {
			t.Errorf("render is missing %q", want)
		}
	}
}
