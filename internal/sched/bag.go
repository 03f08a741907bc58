package sched

import "github.com/vovakirdan/arcadeloop/internal/rng"

// Bag draws tags from a shuffled multiset. The multiset comes from fill,
// which is consulted only when the bag is empty, so each refill reflects the
// difficulty tier current at that moment. Every window of one full bag
// yields exactly the configured counts.
type Bag[T any] struct {
	rng   *rng.RNG
	fill  func() []T
	items []T
}

// NewBag creates an empty bag; the first Draw fills it.
func NewBag[T any](r *rng.RNG, fill func() []T) *Bag[T] {
	return &Bag[T]{rng: r, fill: fill}
}

// Draw removes and returns the next tag. If fill yields nothing, the zero
// value is returned.
func (b *Bag[T]) Draw() T {
	if len(b.items) == 0 {
		b.refill()
	}
	var zero T
	if len(b.items) == 0 {
		return zero
	}
	last := len(b.items) - 1
	v := b.items[last]
	b.items[last] = zero
	b.items = b.items[:last]
	return v
}

// Remaining returns how many tags are left before the next refill.
func (b *Bag[T]) Remaining() int {
	return len(b.items)
}

// Empty discards the current contents so the next Draw refills.
func (b *Bag[T]) Empty() {
	b.items = b.items[:0]
}

func (b *Bag[T]) refill() {
	b.items = append(b.items[:0], b.fill()...)
	b.rng.Shuffle(len(b.items), func(i, j int) {
		b.items[i], b.items[j] = b.items[j], b.items[i]
	})
}

// Weighted expands a count table into a multiset in the order of keys.
func Weighted[T comparable](keys []T, counts map[T]int) []T {
	var out []T
	for _, k := range keys {
		for i := 0; i < counts[k]; i++ {
			out = append(out, k)
		}
	}
	return out
}
