// Package pool holds the recyclable entity collections used by the games.
//
// A pool is an ordered slice. Entities are flagged inactive when they die
// and are dropped by the next Recycle, which compacts the slice in place.
// There is no spatial index; the per-frame counts are small.
package pool

import "github.com/vovakirdan/arcadeloop/internal/physics"

// Item is anything a Pool can hold.
type Item interface {
	IsActive() bool
}

// Entity is the base shape shared by game objects: a body and a liveness flag.
// Embed it in game-specific structs and store pointers in a Pool.
type Entity struct {
	physics.Body
	Active bool
}

// IsActive reports whether the entity is still in play.
func (e *Entity) IsActive() bool {
	return e.Active
}

// Kill flags the entity inactive. It is never resurrected.
func (e *Entity) Kill() {
	e.Active = false
}

// Pool is an ordered, optionally capped collection of entities.
type Pool[T Item] struct {
	items   []T
	limit   int
	dropped int
}

// New creates a pool that holds at most limit entries.
// A limit of zero or less means the pool is unbounded.
func New[T Item](limit int) *Pool[T] {
	return &Pool[T]{limit: limit}
}

// SetLimit changes the cap. Existing entries above the cap are kept.
func (p *Pool[T]) SetLimit(limit int) {
	p.limit = limit
}

// Spawn appends item. When the pool is at its cap the item is dropped and
// Spawn returns false; nothing is queued.
func (p *Pool[T]) Spawn(item T) bool {
	if p.limit > 0 && p.Active() >= p.limit {
		p.dropped++
		return false
	}
	p.items = append(p.items, item)
	return true
}

// Each calls fn for every active item, in spawn order. Items spawned while
// walking are not visited; items killed while walking are skipped if they
// have not been reached yet.
func (p *Pool[T]) Each(fn func(T)) {
	n := len(p.items)
	for i := 0; i < n; i++ {
		if it := p.items[i]; it.IsActive() {
			fn(it)
		}
	}
}

// EachUntil is Each with early exit: the walk stops when fn returns false.
func (p *Pool[T]) EachUntil(fn func(T) bool) {
	n := len(p.items)
	for i := 0; i < n; i++ {
		if it := p.items[i]; it.IsActive() && !fn(it) {
			return
		}
	}
}

// Find returns the first active item matching ok.
func (p *Pool[T]) Find(ok func(T) bool) (T, bool) {
	for _, it := range p.items {
		if it.IsActive() && ok(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// Recycle removes every inactive item and returns how many were removed.
func (p *Pool[T]) Recycle() int {
	active := p.items[:0]
	for _, it := range p.items {
		if it.IsActive() {
			active = append(active, it)
		}
	}
	removed := len(p.items) - len(active)
	// Release references held past the new length.
	var zero T
	for i := len(active); i < len(p.items); i++ {
		p.items[i] = zero
	}
	p.items = active
	return removed
}

// Active returns the number of active items.
func (p *Pool[T]) Active() int {
	n := 0
	for _, it := range p.items {
		if it.IsActive() {
			n++
		}
	}
	return n
}

// Len returns the number of entries, including those awaiting Recycle.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// Dropped returns how many spawns were refused because of the cap.
func (p *Pool[T]) Dropped() int {
	return p.dropped
}

// Clear removes all entries.
func (p *Pool[T]) Clear() {
	clear(p.items)
	p.items = p.items[:0]
	p.dropped = 0
}
