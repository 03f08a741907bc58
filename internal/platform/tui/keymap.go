package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/arcadeloop/internal/core"
)

// holdTicks is how long a horizontal key stays down after its last press
// or repeat. Terminals report repeats, never releases.
const holdTicks = 6

// KeyMapper translates Bubble Tea key and mouse messages into input frames.
type KeyMapper struct {
	held map[core.Action]int
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{held: make(map[core.Action]int)}
}

var keyActions = map[string]core.Action{
	"w":     core.ActionUp,
	"up":    core.ActionUp,
	"s":     core.ActionDown,
	"down":  core.ActionDown,
	"a":     core.ActionLeft,
	"left":  core.ActionLeft,
	"d":     core.ActionRight,
	"right": core.ActionRight,
	" ":     core.ActionJump,
	"f":     core.ActionFire,
	"x":     core.ActionFire,
	"enter": core.ActionConfirm,
	"b":     core.ActionBack,
	"r":     core.ActionRestart,
	"p":     core.ActionPause,
	"esc":   core.ActionPause,
}

// MapKey translates a key message to an action. The second result reports
// a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		return core.SlotAction(int(key[0] - '0')), false
	}
	if a, ok := keyActions[key]; ok {
		return a, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame sets the key's action on frame and reports a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action == core.ActionNone {
		return isQuit
	}
	frame.Set(action)

	switch action {
	case core.ActionLeft:
		delete(km.held, core.ActionRight)
		km.held[action] = holdTicks
	case core.ActionRight:
		delete(km.held, core.ActionLeft)
		km.held[action] = holdTicks
	}
	return isQuit
}

// Hold sets the horizontal keys still considered down and ages them by one
// tick.
func (km *KeyMapper) Hold(frame *core.InputFrame) {
	for a, n := range km.held {
		frame.Set(a)
		if n <= 1 {
			delete(km.held, a)
		} else {
			km.held[a] = n - 1
		}
	}
}

// Release forgets every held key.
func (km *KeyMapper) Release() {
	clear(km.held)
}

// MapMouse appends a pointer sample for left-button presses, releases and
// drags. Wheel events are ignored.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, frame *core.InputFrame) {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		frame.AddPointer(msg.X, msg.Y, core.PointerPress)
	case tea.MouseActionRelease:
		frame.AddPointer(msg.X, msg.Y, core.PointerRelease)
	case tea.MouseActionMotion:
		frame.AddPointer(msg.X, msg.Y, core.PointerMove)
	}
}
