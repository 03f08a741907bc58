package collide

// Cascade resolves chain reactions within a single frame.
//
// Trigger destroys an item through the destroy callback, and when that item
// propagates, every neighbour it reports is triggered before Trigger returns.
// Each index resolves at most once per cascade, so cycles terminate.
type Cascade struct {
	// Destroy handles item i and reports whether it propagates further.
	Destroy func(i int, forced bool) (propagate bool)
	// Neighbours lists the items reached by item i's blast.
	Neighbours func(i int) []int

	seen map[int]bool
}

// Trigger resolves item i and everything it chains into.
// The first call is unforced; chained calls are forced.
func (c *Cascade) Trigger(i int, forced bool) {
	if c.seen == nil {
		c.seen = make(map[int]bool)
	}
	c.trigger(i, forced)
	clear(c.seen)
}

func (c *Cascade) trigger(i int, forced bool) {
	if c.seen[i] {
		return
	}
	c.seen[i] = true
	if !c.Destroy(i, forced) {
		return
	}
	for _, n := range c.Neighbours(i) {
		c.trigger(n, true)
	}
}
