package arcade

import (
	"testing"

	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
)

func TestSessionEndLatch(t *testing.T) {
	s := newSession(PhaseStart, 0)
	s.Phase = PhasePlaying

	if s.End(PhasePlaying) {
		t.Error("End should refuse non-terminal phases")
	}
	if !s.End(PhaseGameOver) {
		t.Fatal("first End should win")
	}
	if s.End(PhaseWin) {
		t.Error("second End should be ignored")
	}
	if s.Phase != PhaseGameOver {
		t.Errorf("Phase = %s, want GAME_OVER", s.Phase)
	}

	s.reopen()
	if s.Ended() || s.Phase != PhasePlaying {
		t.Error("reopen should clear the latch")
	}
}

func TestSessionScoreAndLives(t *testing.T) {
	s := newSession(PhaseStart, 0)
	s.Add(5)
	s.Add(-10)
	if s.Score != 0 {
		t.Errorf("score floored at 0, got %d", s.Score)
	}
	s.Lives = 2
	if !s.LoseLife() {
		t.Error("one life should remain")
	}
	if s.LoseLife() {
		t.Error("no lives should remain")
	}
}

func TestPhaseClasses(t *testing.T) {
	tests := []struct {
		p                       Phase
		terminal, final, custom bool
	}{
		{PhaseStart, false, false, false},
		{PhasePlaying, false, false, false},
		{PhasePaused, false, false, false},
		{PhaseGameOver, true, true, false},
		{PhaseWin, true, true, false},
		{PhaseLevelComplete, true, false, false},
		{PhaseModeSelect, false, false, true},
		{PhaseSelectDifficulty, false, false, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.p), func(t *testing.T) {
			if tt.p.Terminal() != tt.terminal || tt.p.Final() != tt.final || tt.p.Custom() != tt.custom {
				t.Errorf("%s: terminal %v final %v custom %v", tt.p, tt.p.Terminal(), tt.p.Final(), tt.p.Custom())
			}
		})
	}
}

func TestParticlesFadeAndCap(t *testing.T) {
	l := New(&dropper{})
	l.Reset(testConfig())
	env := l.Env()

	env.Particles.Burst(env.RNG, physics.V(100, 100), MaxParticles+10, 3, '*', core.ColorYellow)
	if env.Particles.Len() != MaxParticles {
		t.Errorf("burst should stop at the cap, got %d", env.Particles.Len())
	}

	env.Particles.Step(0)
	if env.Particles.Len() != MaxParticles {
		t.Error("a zero time scale must not age particles")
	}
	for i := 0; i < 21; i++ {
		env.Particles.Step(1)
	}
	if env.Particles.Len() != 0 {
		t.Errorf("particles should fade after 21 frames, %d left", env.Particles.Len())
	}
}

func TestViewRoundTrip(t *testing.T) {
	v := newView(World{W: 800, H: 500}, 100, 30)
	v.SetCamera(physics.V(0, 0))
	for _, p := range []physics.Vec{physics.V(10, 10), physics.V(400, 250), physics.V(790, 490)} {
		col, row := v.Cell(p)
		back := v.ToWorld(col, row)
		if back.Dist(p) > 1/v.sy {
			t.Errorf("round trip %v -> (%d,%d) -> %v", p, col, row, back)
		}
	}
}
