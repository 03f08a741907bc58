package arcade

// Session is the mutable record of one run. Lives, Health and TimeLeft are
// -1 for games that don't use them.
type Session struct {
	Phase     Phase
	Score     int
	HighScore int
	Lives     int
	Health    int
	TimeLeft  float64 // seconds
	Elapsed   int     // frames spent in PLAYING

	latched   bool
	submitted bool
}

func newSession(entry Phase, highScore int) Session {
	return Session{
		Phase:     entry,
		HighScore: highScore,
		Lives:     -1,
		Health:    -1,
		TimeLeft:  -1,
	}
}

// End moves the session to a terminal phase. Only the first call after the
// latch was last cleared has an effect; it reports whether it was that call.
func (s *Session) End(p Phase) bool {
	if s.latched || !p.Terminal() {
		return false
	}
	s.latched = true
	s.Phase = p
	return true
}

// Ended reports whether a terminal phase has been latched.
func (s Session) Ended() bool {
	return s.latched
}

// Submitted reports whether the final score was handed to the score service.
func (s Session) Submitted() bool {
	return s.submitted
}

// Add changes the score by n, never below zero.
func (s *Session) Add(n int) {
	s.Score = max(0, s.Score+n)
}

// LoseLife takes one life and reports whether any remain.
func (s *Session) LoseLife() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives > 0
}

// reopen clears the latch after LEVEL_COMPLETE so the next level can end.
func (s *Session) reopen() {
	s.latched = false
	s.Phase = PhasePlaying
}
