package snake

import "time"

// Snapshot captures the observable game state for determinism tests.
type Snapshot struct {
	Steps    int
	Mode     Mode
	Score    int
	SnakeLen int
	HeadX    int
	HeadY    int
	Dir      Direction
	FoodX    int
	FoodY    int
	Golden   bool
	Bonuses  int
	Energy   float64
	Chili    int
	Reversed int
}

// Snapshot returns the current state.
func (g *Game) Snapshot(score int) Snapshot {
	head := g.snake[0]
	return Snapshot{
		Steps:    g.steps,
		Mode:     g.mode,
		Score:    score,
		SnakeLen: len(g.snake),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      g.direction,
		FoodX:    g.food.X,
		FoodY:    g.food.Y,
		Golden:   g.foodKind == GoldenRoll,
		Bonuses:  g.bonuses.Active(),
		Energy:   g.energy,
		Chili:    g.status.Remaining(effChili),
		Reversed: g.status.Remaining(effReversed),
	}
}

func msToDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
