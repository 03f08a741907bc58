package arcade

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/arcadeloop/internal/config"
	"github.com/vovakirdan/arcadeloop/internal/core"
	"github.com/vovakirdan/arcadeloop/internal/physics"
	"github.com/vovakirdan/arcadeloop/internal/rng"
	"github.com/vovakirdan/arcadeloop/internal/sound"
)

// NominalRate is the frame rate all frame constants are authored at.
// Simulation time advances one frame per Step whatever the host tick rate.
const NominalRate = 60

// Env is the per-frame context handed to ruleset stages.
type Env struct {
	Session *Session
	RNG     *rng.RNG
	In      Input

	Frame     int     // PLAYING steps of this session; frozen while paused
	TimeScale float64 // 1 unless an effect slows time; reset every frame
	TickRate  int     // host ticks per second

	Sounds    sound.Player
	Log       *log.Logger
	Particles *Particles
	Preset    config.Preset

	loop *Loop
}

// Frames converts a duration into simulation frames, rounded.
func (e *Env) Frames(d time.Duration) int {
	return int(math.Round(d.Seconds() * NominalRate))
}

// Seconds converts simulation frames into seconds.
func (e *Env) Seconds(frames float64) float64 {
	return frames / NominalRate
}

// Play fires a sound cue.
func (e *Env) Play(c sound.Cue) {
	if e.Sounds != nil {
		e.Sounds.Play(c)
	}
}

// End latches a terminal phase; see Session.End.
func (e *Env) End(p Phase) bool {
	return e.Session.End(p)
}

// Begin enters PLAYING from START or a custom phase.
func (e *Env) Begin() {
	if e.loop != nil {
		e.loop.begin()
		return
	}
	e.Session.Phase = PhasePlaying
}

// Goto switches to a custom phase.
func (e *Env) Goto(p Phase) {
	if p.Custom() || p == PhaseStart {
		e.Session.Phase = p
	}
}

// SetCamera moves the view over the world. Pointer samples map through the
// new camera from the next frame on.
func (e *Env) SetCamera(c physics.Vec) {
	if e.loop != nil {
		e.loop.view.SetCamera(c)
	}
}

// Sample is a pointer sample in world coordinates.
type Sample struct {
	physics.Vec
	Event core.PointerEvent
}

// Input is one frame of input: the host's semantic actions plus pointer
// samples mapped into the world and clamped to it.
type Input struct {
	Actions core.InputFrame
	Pointer []Sample

	down bool
	at   physics.Vec
	seen bool
}

// Has reports whether action a was triggered this frame.
func (in Input) Has(a core.Action) bool {
	return in.Actions.Has(a)
}

// Any reports whether any of the actions was triggered.
func (in Input) Any(actions ...core.Action) bool {
	for _, a := range actions {
		if in.Actions.Has(a) {
			return true
		}
	}
	return false
}

// Slot returns the lowest digit key pressed this frame.
func (in Input) Slot() (int, bool) {
	for n := 1; n <= 9; n++ {
		if in.Actions.Has(core.SlotAction(n)) {
			return n, true
		}
	}
	return 0, false
}

// Pressed returns the first pointer press this frame.
func (in Input) Pressed() (physics.Vec, bool) {
	return in.first(core.PointerPress)
}

// Released returns the first pointer release this frame.
func (in Input) Released() (physics.Vec, bool) {
	return in.first(core.PointerRelease)
}

func (in Input) first(ev core.PointerEvent) (physics.Vec, bool) {
	for _, s := range in.Pointer {
		if s.Event == ev {
			return s.Vec, true
		}
	}
	return physics.Vec{}, false
}

// Down reports whether the pointer button is held after this frame's samples.
func (in Input) Down() bool {
	return in.down
}

// At returns the last known pointer position; ok is false before the
// pointer was ever seen.
func (in Input) At() (physics.Vec, bool) {
	return in.at, in.seen
}

// Tap reports a pointer press or one of the primary action keys.
func (in Input) Tap() bool {
	if _, ok := in.Pressed(); ok {
		return true
	}
	return in.Any(core.ActionJump, core.ActionFire, core.ActionConfirm)
}
