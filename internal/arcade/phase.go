// Package arcade is the shared loop engine. A game is a Ruleset: tuning
// plus stage hooks that the Loop runs in a fixed order every PLAYING frame.
// The Loop owns the phase machine, the session, input mapping, the HUD and
// the score submission, and satisfies registry.Game for the host.
package arcade

// Phase is the discrete state exposed to the host.
type Phase string

// Canonical phases.
const (
	PhaseStart         Phase = "START"
	PhasePlaying       Phase = "PLAYING"
	PhasePaused        Phase = "PAUSED"
	PhaseGameOver      Phase = "GAME_OVER"
	PhaseWin           Phase = "WIN"
	PhaseLevelComplete Phase = "LEVEL_COMPLETE"
)

// Custom phases used by games with a pre-game menu.
const (
	PhaseSelectDifficulty Phase = "SELECT_DIFFICULTY"
	PhaseSelectChar       Phase = "SELECT_CHAR"
	PhaseModeSelect       Phase = "MODE_SELECT"
)

// Terminal reports whether p ends play: GAME_OVER, WIN or LEVEL_COMPLETE.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWin || p == PhaseLevelComplete
}

// Final reports whether p ends the session and submits the score.
func (p Phase) Final() bool {
	return p == PhaseGameOver || p == PhaseWin
}

// Custom reports whether p is a game-defined phase.
func (p Phase) Custom() bool {
	switch p {
	case PhaseStart, PhasePlaying, PhasePaused, PhaseGameOver, PhaseWin, PhaseLevelComplete:
		return false
	}
	return p != ""
}
