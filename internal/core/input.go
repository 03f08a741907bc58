package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionJump           // Space - primary action (flap, launch, fire)
	ActionFire           // F, X - secondary action (shoot, laser)
	ActionConfirm        // Enter - confirm selection / start
	ActionBack           // B - go back to menu
	ActionRestart        // R key - retry after a final phase
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
	ActionSlot1          // Digit keys 1-9: grid holes, items, menu choices
	ActionSlot2
	ActionSlot3
	ActionSlot4
	ActionSlot5
	ActionSlot6
	ActionSlot7
	ActionSlot8
	ActionSlot9
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionJump:    "Jump",
	ActionFire:    "Fire",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if n, ok := a.Slot(); ok {
		return "Slot" + string(rune('0'+n))
	}
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// Slot returns the 1-based slot number for the digit actions.
func (a Action) Slot() (int, bool) {
	if a >= ActionSlot1 && a <= ActionSlot9 {
		return int(a-ActionSlot1) + 1, true
	}
	return 0, false
}

// SlotAction returns the digit action for slot n (1..9).
func SlotAction(n int) Action {
	if n < 1 || n > 9 {
		return ActionNone
	}
	return ActionSlot1 + Action(n-1)
}

// PointerEvent tells what a pointer sample records.
type PointerEvent int

const (
	PointerMove PointerEvent = iota
	PointerPress
	PointerRelease
)

// PointerSample is one mouse or touch sample in screen cells.
type PointerSample struct {
	X, Y  int
	Event PointerEvent
}

// InputFrame represents the input gathered during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Pointer holds the pointer samples in arrival order.
	Pointer []PointerSample
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// AddPointer appends a pointer sample.
func (f *InputFrame) AddPointer(x, y int, ev PointerEvent) {
	f.Pointer = append(f.Pointer, PointerSample{X: x, Y: y, Event: ev})
}

// LastPointer returns the most recent pointer sample, if any.
func (f InputFrame) LastPointer() (PointerSample, bool) {
	if len(f.Pointer) == 0 {
		return PointerSample{}, false
	}
	return f.Pointer[len(f.Pointer)-1], true
}

// Clear resets all actions and samples for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Pointer = f.Pointer[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	if len(f.Pointer) > 0 {
		clone.Pointer = append([]PointerSample(nil), f.Pointer...)
	}
	return clone
}
