package config

import (
	"fmt"
	"math"
	"strings"
)

// Difficulty is a named preset.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// Difficulties lists the presets from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{Easy, Normal, Hard}
}

// ParseDifficulty accepts a preset name; empty means Normal.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return Normal, nil
	case Easy, Normal, Hard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
}

// Preset scales tuning knobs for a difficulty. Normal is the identity, so
// the built-in tuning is the normal game.
type Preset struct {
	Difficulty Difficulty
	Speed      float64 // multiplier on speeds and gravity-free velocities
	Interval   float64 // multiplier on spawn intervals and dwell times
	Lives      int     // added to the starting lives, never below 1
	Tier       int     // 0 easy, 1 normal, 2 hard, for games with built-in tiers
}

// PresetFor returns the preset of d; unknown values get Normal.
func PresetFor(d Difficulty) Preset {
	switch d {
	case Easy:
		return Preset{Difficulty: Easy, Speed: 0.85, Interval: 1.25, Lives: 2, Tier: 0}
	case Hard:
		return Preset{Difficulty: Hard, Speed: 1.2, Interval: 0.8, Lives: -1, Tier: 2}
	}
	return Preset{Difficulty: Normal, Speed: 1, Interval: 1, Tier: 1}
}

// ScaleSpeed applies the speed multiplier.
func (p Preset) ScaleSpeed(v float64) float64 {
	if p.Speed == 0 {
		return v
	}
	return v * p.Speed
}

// ScaleFrames applies the interval multiplier to a frame count, keeping it
// at least 1.
func (p Preset) ScaleFrames(n float64) float64 {
	if p.Interval == 0 {
		return n
	}
	return math.Max(1, math.Round(n*p.Interval))
}

// ScaleLives applies the lives offset.
func (p Preset) ScaleLives(n int) int {
	return max(1, n+p.Lives)
}
