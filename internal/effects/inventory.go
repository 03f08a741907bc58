package effects

// Inventory counts consumable items such as artillery power-ups.
type Inventory struct {
	counts map[Kind]int
}

// NewInventory creates an inventory with the given starting counts.
func NewInventory(start map[Kind]int) *Inventory {
	inv := &Inventory{counts: make(map[Kind]int, len(start))}
	for k, n := range start {
		inv.counts[k] = n
	}
	return inv
}

// Add gives n more of kind.
func (inv *Inventory) Add(kind Kind, n int) {
	if n <= 0 {
		return
	}
	inv.counts[kind] += n
}

// Count returns how many of kind are held.
func (inv *Inventory) Count(kind Kind) int {
	return inv.counts[kind]
}

// Consume uses one kind. It either decrements and returns true, or leaves
// the inventory untouched and returns false.
func (inv *Inventory) Consume(kind Kind) bool {
	if inv.counts[kind] <= 0 {
		return false
	}
	inv.counts[kind]--
	return true
}
