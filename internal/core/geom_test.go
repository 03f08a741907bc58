package core

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 2, Y: 3, W: 4, H: 2}

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"top-left corner", 2, 3, true},
		{"inside", 4, 4, true},
		{"right edge excluded", 6, 3, false},
		{"bottom edge excluded", 2, 5, false},
		{"left of rect", 1, 3, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 4}

	in := r.Inset(1)
	if in != (Rect{X: 1, Y: 1, W: 8, H: 2}) {
		t.Errorf("Inset(1) = %+v", in)
	}

	tiny := r.Inset(5)
	if tiny.W != 0 || tiny.H != 0 {
		t.Errorf("Inset past size should clamp to zero, got %+v", tiny)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(1.5, 0, 1); got != 1 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, expected 1", got)
	}
}

func TestActionSlots(t *testing.T) {
	for n := 1; n <= 9; n++ {
		a := SlotAction(n)
		got, ok := a.Slot()
		if !ok || got != n {
			t.Errorf("SlotAction(%d).Slot() = %d, %v", n, got, ok)
		}
	}

	if SlotAction(0) != ActionNone || SlotAction(10) != ActionNone {
		t.Error("SlotAction outside 1..9 should be ActionNone")
	}
	if ActionSlot3.String() != "Slot3" {
		t.Errorf("ActionSlot3.String() = %q", ActionSlot3.String())
	}
	if ActionFire.String() != "Fire" {
		t.Errorf("ActionFire.String() = %q", ActionFire.String())
	}
}

func TestInputFramePointer(t *testing.T) {
	f := NewInputFrame()
	if _, ok := f.LastPointer(); ok {
		t.Fatal("empty frame should have no pointer sample")
	}

	f.AddPointer(1, 2, PointerPress)
	f.AddPointer(3, 4, PointerMove)
	f.Set(ActionJump)

	last, ok := f.LastPointer()
	if !ok || last.X != 3 || last.Y != 4 || last.Event != PointerMove {
		t.Errorf("LastPointer() = %+v, %v", last, ok)
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionJump) || len(f.Pointer) != 0 {
		t.Error("Clear should drop actions and samples")
	}
	if !clone.Has(ActionJump) || len(clone.Pointer) != 2 {
		t.Error("Clone should survive Clear of the original")
	}
}
