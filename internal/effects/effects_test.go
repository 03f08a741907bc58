package effects

import "testing"

func TestSetLifecycle(t *testing.T) {
	s := NewSet()
	s.Activate("laser", 3)

	if !s.Active("laser") || s.Remaining("laser") != 3 {
		t.Fatalf("laser should be active with 3 frames, got %d", s.Remaining("laser"))
	}

	var expired []Kind
	for i := 0; i < 3; i++ {
		if i == 2 && !s.Final("laser") {
			t.Error("last frame should be Final")
		}
		expired = s.Tick()
	}

	if len(expired) != 1 || expired[0] != "laser" {
		t.Errorf("Tick() expired = %v, want [laser]", expired)
	}
	if s.Active("laser") {
		t.Error("laser should be inactive after expiry")
	}
}

func TestSetRefreshRespectsCap(t *testing.T) {
	s := NewSet()
	s.Define("grow", Spec{Cap: 600})

	s.Activate("grow", 600)
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	s.Activate("grow", 600)
	if s.Remaining("grow") != 600 {
		t.Errorf("re-collect should reset to 600, got %d", s.Remaining("grow"))
	}

	s.Extend("grow", 500)
	if s.Remaining("grow") != 600 {
		t.Errorf("Extend must not pass the cap, got %d", s.Remaining("grow"))
	}
}

func TestSetExclusiveGroup(t *testing.T) {
	s := NewSet()
	s.Define("rocket", Spec{Group: "flight", Magnitude: -14})
	s.Define("propeller", Spec{Group: "flight", Magnitude: -6})

	s.Activate("rocket", 180)
	s.Activate("propeller", 300)

	if s.Active("rocket") {
		t.Error("propeller should replace rocket")
	}
	if k, ok := s.InGroup("flight"); !ok || k != "propeller" {
		t.Errorf("InGroup(flight) = %q, %v", k, ok)
	}
	if s.Magnitude("propeller") != -6 || s.Magnitude("rocket") != 0 {
		t.Error("Magnitude should follow the active kind")
	}
}

func TestSetTickOrderStable(t *testing.T) {
	s := NewSet()
	s.Activate("sticky", 1)
	s.Activate("big", 1)
	s.Activate("laser", 1)

	expired := s.Tick()
	want := []Kind{"big", "laser", "sticky"}
	for i := range want {
		if expired[i] != want[i] {
			t.Fatalf("expired = %v, want %v", expired, want)
		}
	}
}

func TestSetCancelAndClear(t *testing.T) {
	s := NewSet()
	s.Activate("ice", 10)
	s.Activate("frenzy", 10)
	s.Activate("noop", 0)

	s.Cancel("ice")
	if s.Active("ice") || s.Active("noop") {
		t.Error("cancelled and zero-length effects must be inactive")
	}
	if len(s.Kinds()) != 1 {
		t.Errorf("Kinds() = %v", s.Kinds())
	}
	s.Clear()
	if len(s.Tick()) != 0 {
		t.Error("cleared set should expire nothing")
	}
}

func TestInventoryConsumeAtomic(t *testing.T) {
	inv := NewInventory(map[Kind]int{"double_shot": 2, "heal": 1})

	if !inv.Consume("heal") {
		t.Fatal("first heal should succeed")
	}
	if inv.Consume("heal") {
		t.Error("second heal should fail")
	}
	if inv.Count("heal") != 0 {
		t.Errorf("Count(heal) = %d, must not go negative", inv.Count("heal"))
	}
	if inv.Consume("missing") {
		t.Error("unknown item cannot be consumed")
	}

	inv.Add("heal", 2)
	inv.Add("heal", -5)
	if inv.Count("heal") != 2 {
		t.Errorf("Count(heal) = %d after Add", inv.Count("heal"))
	}
}
