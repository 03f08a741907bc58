// Package effects tracks timed status effects (power-ups, temporary modes)
// and consumable item inventories.
//
// An effect is INACTIVE until activated, then ACTIVE with a remaining frame
// count that Tick decrements; reaching zero returns it to INACTIVE and
// reports it as expired so the ruleset can undo whatever it changed.
package effects

import "sort"

// Kind names an effect, e.g. "rocket" or "laser".
type Kind string

// Spec configures one effect kind.
type Spec struct {
	Cap       int     // upper bound on remaining frames; 0 means no cap
	Group     string  // effects in the same non-empty group are mutually exclusive
	Magnitude float64 // strength reported by Magnitude while active
}

type timer struct {
	remaining int
}

// Set is the live collection of effects on one owner (avatar, paddle, game).
type Set struct {
	specs  map[Kind]Spec
	timers map[Kind]*timer
}

// NewSet creates an empty effect set.
func NewSet() *Set {
	return &Set{
		specs:  make(map[Kind]Spec),
		timers: make(map[Kind]*timer),
	}
}

// Define registers the spec for kind. Undefined kinds behave as uncapped
// and ungrouped with magnitude 1.
func (s *Set) Define(kind Kind, spec Spec) {
	s.specs[kind] = spec
}

func (s *Set) spec(kind Kind) Spec {
	if sp, ok := s.specs[kind]; ok {
		return sp
	}
	return Spec{Magnitude: 1}
}

// Activate starts or refreshes kind for frames frames. Re-activation resets
// the timer (never adding beyond the cap) and cancels any other active kind
// in the same group. Non-positive durations are ignored.
func (s *Set) Activate(kind Kind, frames int) {
	if frames <= 0 {
		return
	}
	sp := s.spec(kind)
	if sp.Cap > 0 && frames > sp.Cap {
		frames = sp.Cap
	}
	if sp.Group != "" {
		for other := range s.timers {
			if other != kind && s.spec(other).Group == sp.Group {
				delete(s.timers, other)
			}
		}
	}
	if t, ok := s.timers[kind]; ok {
		t.remaining = frames
		return
	}
	s.timers[kind] = &timer{remaining: frames}
}

// Extend adds frames to an active effect (or starts it), respecting the cap.
func (s *Set) Extend(kind Kind, frames int) {
	s.Activate(kind, s.Remaining(kind)+frames)
}

// Active reports whether kind is running.
func (s *Set) Active(kind Kind) bool {
	_, ok := s.timers[kind]
	return ok
}

// Remaining returns the frames left for kind, or 0.
func (s *Set) Remaining(kind Kind) int {
	if t, ok := s.timers[kind]; ok {
		return t.remaining
	}
	return 0
}

// Final reports whether kind is in its last active frame. Safe-landing
// hooks run here, before Tick expires the effect.
func (s *Set) Final(kind Kind) bool {
	return s.Remaining(kind) == 1
}

// Magnitude returns the spec magnitude of kind while active, or 0.
func (s *Set) Magnitude(kind Kind) float64 {
	if !s.Active(kind) {
		return 0
	}
	return s.spec(kind).Magnitude
}

// InGroup returns the active kind of a group, if any.
func (s *Set) InGroup(group string) (Kind, bool) {
	for k := range s.timers {
		if s.spec(k).Group == group {
			return k, true
		}
	}
	return "", false
}

// Tick advances every effect by one frame and returns the kinds that
// expired, sorted by name.
func (s *Set) Tick() []Kind {
	var expired []Kind
	for k, t := range s.timers {
		t.remaining--
		if t.remaining <= 0 {
			delete(s.timers, k)
			expired = append(expired, k)
		}
	}
	sort.Slice(expired, func(i, j int) bool { return expired[i] < expired[j] })
	return expired
}

// Cancel stops kind without reporting it as expired.
func (s *Set) Cancel(kind Kind) {
	delete(s.timers, kind)
}

// Clear stops every effect.
func (s *Set) Clear() {
	clear(s.timers)
}

// Kinds returns the active kinds, sorted by name.
func (s *Set) Kinds() []Kind {
	out := make([]Kind, 0, len(s.timers))
	for k := range s.timers {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
