package pool

// Place re-rolls a spawn position until ok accepts it. gen produces a fresh
// candidate on every call. After tries attempts the last candidate is
// returned with false, and callers decide whether to spawn it anyway.
func Place[T any](tries int, gen func() T, ok func(T) bool) (T, bool) {
	var c T
	for i := 0; i < max(tries, 1); i++ {
		c = gen()
		if ok(c) {
			return c, true
		}
	}
	return c, false
}
