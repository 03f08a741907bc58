package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to fit their world onto the terminal and to seed their RNG.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState is the host-facing snapshot of a running game.
// The platform reads it for the status line, menus and score saving.
type GameState struct {
	Phase     string  // Discrete phase name (START, PLAYING, GAME_OVER, ...)
	Score     int     // Current score
	HighScore int     // Best known score for this user, 0 until loaded
	Lives     int     // Remaining lives, -1 when the game has none
	Health    int     // Remaining health, -1 when the game has none
	TimeLeft  float64 // Seconds remaining, -1 when the game is untimed
	Elapsed   float64 // Seconds spent playing
	GameOver  bool    // Whether a final phase was reached
	Paused    bool    // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
