package sched

import (
	"testing"

	"github.com/vovakirdan/arcadeloop/internal/rng"
)

// ninjaRamp mirrors the slicer's schedule:
// max(15, 30 - floor(score/100) - min(15, floor(frame/1000))), frenzy 10.
var ninjaRamp = Ramp{Base: 30, Floor: 15, Special: 10, ScoreStep: 100, ScoreDrop: 1, TimeStep: 1000, TimeDrop: 1, TimeCap: 15}

func TestRampNext(t *testing.T) {
	tests := []struct {
		name    string
		score   int
		elapsed int
		special bool
		want    int
	}{
		{"fresh game", 0, 0, false, 30},
		{"score step", 250, 0, false, 28},
		{"time step", 0, 3500, false, 27},
		{"both", 500, 5000, false, 20},
		{"floor", 5000, 90000, false, 15},
		{"special mode", 0, 0, true, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ninjaRamp.Next(tc.score, tc.elapsed, tc.special); got != tc.want {
				t.Errorf("Next(%d, %d, %v) = %d, want %d", tc.score, tc.elapsed, tc.special, got, tc.want)
			}
		})
	}
}

func TestRampMonotonic(t *testing.T) {
	flappy := Ramp{Base: 100, Floor: 60, ScoreStep: 1, ScoreDrop: 2}

	prev := flappy.Next(0, 0, false)
	for score := 1; score < 100; score++ {
		got := flappy.Next(score, 0, false)
		if got > prev {
			t.Fatalf("interval rose from %d to %d at score %d", prev, got, score)
		}
		if got < 60 {
			t.Fatalf("interval %d below floor", got)
		}
		prev = got
	}
}

func TestRampNeverZero(t *testing.T) {
	r := Ramp{Base: 5, ScoreStep: 1, ScoreDrop: 10}
	if got := r.Next(100, 0, false); got != 1 {
		t.Errorf("unfloored ramp should stop at 1, got %d", got)
	}
}

func TestCurve(t *testing.T) {
	pipeSpeed := Curve{Base: 3, Slope: 0.15, Max: 8}

	if got := pipeSpeed.At(0); got != 3 {
		t.Errorf("At(0) = %f", got)
	}
	if got := pipeSpeed.At(100); got != 8 {
		t.Errorf("At(100) = %f, want cap 8", got)
	}
}

func TestTimerScaled(t *testing.T) {
	var normal, slow Timer

	fires := 0
	for i := 0; i < 30; i++ {
		if normal.Due(10, 1) {
			fires++
		}
	}
	if fires != 3 {
		t.Errorf("normal timer fired %d times, want 3", fires)
	}

	fires = 0
	for i := 0; i < 30; i++ {
		if slow.Due(10, 0.5) {
			fires++
		}
	}
	if fires != 1 {
		t.Errorf("half-speed timer fired %d times, want 1", fires)
	}
}

func TestTimerPauseExactness(t *testing.T) {
	var straight, paused Timer
	var a, b []int

	for i := 0; i < 40; i++ {
		if straight.Due(7, 1) {
			a = append(a, i)
		}
	}

	frame := 0
	for i := 0; i < 60; i++ {
		ts := 1.0
		if i >= 15 && i < 35 {
			ts = 0
		}
		if paused.Due(7, ts) {
			b = append(b, frame)
		}
		if ts > 0 {
			frame++
		}
	}

	if len(a) != len(b) {
		t.Fatalf("fire counts differ: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("firing %d at frame %d, paused run at %d", i, a[i], b[i])
		}
	}
}

func TestBagFairness(t *testing.T) {
	counts := map[string]int{"MEGA": 1, "NINJA": 1, "GOLDEN": 2, "SOAP": 4, "TURD": 12}
	keys := []string{"MEGA", "NINJA", "GOLDEN", "SOAP", "TURD"}
	bag := NewBag(rng.New(99), func() []string { return Weighted(keys, counts) })

	for window := 0; window < 5; window++ {
		got := make(map[string]int)
		for i := 0; i < 20; i++ {
			got[bag.Draw()]++
		}
		for k, want := range counts {
			if got[k] != want {
				t.Errorf("window %d: %s drawn %d times, want %d", window, k, got[k], want)
			}
		}
	}
}

func TestBagRefillsOnlyWhenDrained(t *testing.T) {
	refills := 0
	tier := 0
	bag := NewBag(rng.New(1), func() []int {
		refills++
		return []int{tier, tier, tier}
	})

	bag.Draw()
	tier = 1
	if a, b := bag.Draw(), bag.Draw(); a != 0 || b != 0 {
		t.Error("bag changed contents before draining")
	}
	if refills != 1 {
		t.Errorf("refills = %d, want 1", refills)
	}

	if v := bag.Draw(); v != 1 {
		t.Errorf("refill should use the new tier, got %d", v)
	}
	if bag.Remaining() != 2 {
		t.Errorf("Remaining() = %d, want 2", bag.Remaining())
	}
}

func TestBagEmptyFill(t *testing.T) {
	bag := NewBag(rng.New(1), func() []int { return nil })
	if bag.Draw() != 0 {
		t.Error("empty fill should return the zero value")
	}
}
