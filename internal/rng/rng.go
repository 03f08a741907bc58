// Package rng provides the deterministic random source used by every game.
// Two games built with the same seed and fed the same inputs make the same
// choices, which keeps the determinism tests meaningful.
package rng

// RNG is a small seeded generator: an LCG state stepped with the MMIX
// constants and passed through a splitmix finalizer so the low bits are
// usable for Intn.
type RNG struct {
	state uint64
}

// New creates a generator for the given seed. A zero seed is replaced by 1.
func New(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	z := r.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// Intn returns a random int in [0, n). It returns 0 for n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// IntRange returns a random int in [lo, hi].
func (r *RNG) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// Above reports whether a fresh roll in [0, 1) exceeds threshold.
// It mirrors the "Math.random() > t" probability gates used by the rulesets.
func (r *RNG) Above(threshold float64) bool {
	return r.Float64() > threshold
}

// Jitter returns a value in [-spread/2, spread/2).
func (r *RNG) Jitter(spread float64) float64 {
	return (r.Float64() - 0.5) * spread
}

// Sign returns -1 or +1 with equal odds.
func (r *RNG) Sign() float64 {
	if r.Intn(2) == 0 {
		return -1
	}
	return 1
}

// Shuffle permutes n elements in place with Fisher-Yates.
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		swap(i, j)
	}
}
