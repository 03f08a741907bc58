// Package sound defines the closed set of sound cues the games emit and the
// players that render them. Playing a cue never blocks and never fails
// visibly; a player that cannot produce audio stays silent.
package sound

import "sync"

// Cue identifies one sound effect.
type Cue int

const (
	Impact Cue = iota
	Score
	Failure
	Explosion
	Bounce
	Launch
	Heal
	Roll
	Laser
)

var cueNames = [...]string{
	Impact:    "impact",
	Score:     "score",
	Failure:   "failure",
	Explosion: "explosion",
	Bounce:    "bounce",
	Launch:    "launch",
	Heal:      "heal",
	Roll:      "roll",
	Laser:     "laser",
}

// String returns the cue name.
func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// Cues lists every cue in declaration order.
func Cues() []Cue {
	return []Cue{Impact, Score, Failure, Explosion, Bounce, Launch, Heal, Roll, Laser}
}

// Player plays cues, fire-and-forget.
type Player interface {
	Play(c Cue)
}

// Nop discards every cue.
type Nop struct{}

// Play does nothing.
func (Nop) Play(Cue) {}

// Log records cues in order. It is safe for concurrent use.
type Log struct {
	mu   sync.Mutex
	cues []Cue
}

// Play records c.
func (l *Log) Play(c Cue) {
	l.mu.Lock()
	l.cues = append(l.cues, c)
	l.mu.Unlock()
}

// Cues returns a copy of the recorded cues.
func (l *Log) Cues() []Cue {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Cue(nil), l.cues...)
}

// Count returns how many times c was played.
func (l *Log) Count(c Cue) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, x := range l.cues {
		if x == c {
			n++
		}
	}
	return n
}

// Reset forgets the recorded cues.
func (l *Log) Reset() {
	l.mu.Lock()
	l.cues = l.cues[:0]
	l.mu.Unlock()
}
