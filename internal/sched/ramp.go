// Package sched derives spawn timing and entity mix from the authoritative
// difficulty counters (score and elapsed frames).
//
// Nothing here drifts incrementally: every interval and speed is recomputed
// from those counters at the moment it is needed, so a paused and resumed
// game schedules exactly like an uninterrupted one at the same score and time.
package sched

import "math"

// Ramp is a spawn-interval curve in frames:
//
//	Base - floor(score/ScoreStep)*ScoreDrop - min(TimeCap, floor(elapsed/TimeStep)*TimeDrop)
//
// clamped below at Floor. Special replaces the curve while a special mode
// (frenzy, fever) is active.
type Ramp struct {
	Base      float64 `yaml:"base" toml:"base"`
	Floor     float64 `yaml:"floor" toml:"floor"`
	Special   float64 `yaml:"special" toml:"special"`
	ScoreStep float64 `yaml:"score_step" toml:"score_step"`
	ScoreDrop float64 `yaml:"score_drop" toml:"score_drop"`
	TimeStep  float64 `yaml:"time_step" toml:"time_step"`
	TimeDrop  float64 `yaml:"time_drop" toml:"time_drop"`
	TimeCap   float64 `yaml:"time_cap" toml:"time_cap"`
}

// Next returns the spawn interval for the given counters. It is
// non-increasing in score and elapsed and never below max(Floor, 1).
func (r Ramp) Next(score, elapsed int, special bool) int {
	floor := math.Max(r.Floor, 1)
	if special && r.Special > 0 {
		return int(math.Max(r.Special, 1))
	}
	v := r.Base
	if r.ScoreStep > 0 && score > 0 {
		v -= math.Floor(float64(score)/r.ScoreStep) * r.ScoreDrop
	}
	if r.TimeStep > 0 && elapsed > 0 {
		drop := math.Floor(float64(elapsed)/r.TimeStep) * r.TimeDrop
		if r.TimeCap > 0 {
			drop = math.Min(drop, r.TimeCap)
		}
		v -= drop
	}
	return int(math.Max(math.Floor(v), floor))
}

// Curve is a clamped linear function of one monotonic input, used for speeds:
// Base + x*Slope, clamped to [Min, Max]. A zero Max means no upper bound.
type Curve struct {
	Base  float64 `yaml:"base" toml:"base"`
	Slope float64 `yaml:"slope" toml:"slope"`
	Min   float64 `yaml:"min" toml:"min"`
	Max   float64 `yaml:"max" toml:"max"`
}

// At evaluates the curve.
func (c Curve) At(x float64) float64 {
	v := c.Base + x*c.Slope
	if v < c.Min {
		v = c.Min
	}
	if c.Max > 0 && v > c.Max {
		v = c.Max
	}
	return v
}

// Timer accumulates time-scaled frames toward the next spawn.
// With a time scale of 0 it does not advance, and slow motion stretches the
// wall-clock interval by the inverse of the scale.
type Timer struct {
	acc float64
}

// Due advances the timer by ts and reports whether interval frames have
// accumulated. A firing resets the timer.
func (t *Timer) Due(interval int, ts float64) bool {
	t.acc += ts
	if t.acc >= float64(interval) {
		t.acc = 0
		return true
	}
	return false
}

// Elapsed returns the accumulated frames since the last firing.
func (t *Timer) Elapsed() float64 {
	return t.acc
}

// Reset zeroes the timer.
func (t *Timer) Reset() {
	t.acc = 0
}
