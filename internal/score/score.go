// Package score is the persistence boundary between the loop and the host's
// score storage, plus the per-game ordering that decides what "better" means.
package score

import (
	"context"
	"sync"
)

// Service is implemented by the host: storage.Store, Memory, or anything
// remote.
type Service interface {
	// HighScore returns the user's best score for the game, 0 if none.
	HighScore(ctx context.Context, userID, gameKey string) (int, error)
	// SaveScore records a finished run. Implementations only replace the
	// stored best when score strictly improves on it.
	SaveScore(ctx context.Context, userID, gameKey string, score int) error
}

// Order tells which direction of score is better for a game.
type Order int

const (
	HigherIsBetter Order = iota
	LowerIsBetter        // time trials: fewer milliseconds wins, 0 means no record
)

var (
	ordersMu sync.RWMutex
	orders   = map[string]Order{}
)

// RegisterOrder sets the order for a game key. Games call it from init.
func RegisterOrder(gameKey string, o Order) {
	ordersMu.Lock()
	orders[gameKey] = o
	ordersMu.Unlock()
}

// OrderFor returns the order of a game key, HigherIsBetter by default.
func OrderFor(gameKey string) Order {
	ordersMu.RLock()
	defer ordersMu.RUnlock()
	return orders[gameKey]
}

// Better reports whether candidate strictly improves on best.
func Better(o Order, candidate, best int) bool {
	if o == LowerIsBetter {
		if candidate <= 0 {
			return false
		}
		return best <= 0 || candidate < best
	}
	return candidate > best
}

// Memory is an in-process Service.
type Memory struct {
	mu    sync.Mutex
	best  map[string]int
	saves int
}

// NewMemory creates an empty in-memory score service.
func NewMemory() *Memory {
	return &Memory{best: make(map[string]int)}
}

func memKey(userID, gameKey string) string {
	return userID + "\x00" + gameKey
}

// HighScore implements Service.
func (m *Memory) HighScore(_ context.Context, userID, gameKey string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best[memKey(userID, gameKey)], nil
}

// SaveScore implements Service.
func (m *Memory) SaveScore(_ context.Context, userID, gameKey string, score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	k := memKey(userID, gameKey)
	if Better(OrderFor(gameKey), score, m.best[k]) {
		m.best[k] = score
	}
	return nil
}

// Saves returns how many SaveScore calls were made.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
