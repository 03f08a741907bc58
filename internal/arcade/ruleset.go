package arcade

import "github.com/vovakirdan/arcadeloop/internal/config"

// World is the simulation area in world units (the original pixel sizes).
type World struct {
	W, H float64
}

// Ruleset is one game. Stage hooks run in the order
// Control, Schedule, Integrate, Collide, Effects, Settle while PLAYING;
// Draw runs on every render regardless of phase.
type Ruleset interface {
	Key() string
	Title() string
	World() World

	// Reset builds a fresh run. The session already holds its defaults.
	Reset(env *Env)

	Control(env *Env)   // read input, steer the avatar
	Schedule(env *Env)  // spawn timers and waves
	Integrate(env *Env) // move bodies
	Collide(env *Env)   // detect and resolve contacts
	Effects(env *Env)   // tick status effects, apply expiries
	Settle(env *Env)    // recycle pools, camera, end conditions

	Draw(env *Env, v *View)
}

// Stages gives a Ruleset no-op stage hooks; embed it and override the
// stages the game needs.
type Stages struct{}

func (Stages) Control(*Env)   {}
func (Stages) Schedule(*Env)  {}
func (Stages) Integrate(*Env) {}
func (Stages) Collide(*Env)   {}
func (Stages) Effects(*Env)   {}
func (Stages) Settle(*Env)    {}

// Beginner is notified on every START -> PLAYING transition.
type Beginner interface {
	Begin(env *Env)
}

// Menu is implemented by games with custom pre-game phases.
type Menu interface {
	// Entry is the phase a fresh run starts in.
	Entry() Phase
	// Handle runs once per frame while the phase is custom. It moves on
	// with env.Goto or env.Begin.
	Handle(env *Env)
}

// Advancer builds the next level after LEVEL_COMPLETE.
type Advancer interface {
	Advance(env *Env)
}

// Tuner loads tuning from the config search path and applies a preset.
// Tune returns the source that was applied; Defaults returns the built-in
// tuning struct for dumping.
type Tuner interface {
	Tune(path string, p config.Preset) (string, error)
	Defaults() any
}
