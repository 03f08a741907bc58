// Package registry maps game keys to factories. Game packages register in
// init, so the host discovers them through blank imports alone.
package registry

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vovakirdan/arcadeloop/internal/core"
)

// Game is what the host drives: fixed-tick Step, Render into a cell screen,
// and a State snapshot. It has no terminal dependencies.
type Game interface {
	// ID is the game key (e.g. "flappy_turd"), also used for score storage.
	ID() string
	Title() string

	// Reset starts a fresh session sized for the screen.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst; the screen is cleared beforehand.
	Render(dst *core.Screen)

	State() core.GameState
}

// Describer is implemented by games with a one-line menu blurb.
type Describer interface {
	Blurb() string
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
	Blurb string
}

// Factory builds a fresh, unstarted game.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a game under id. The factory is called once here to read
// the title and blurb. Empty ids, nil factories and reused ids panic.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register needs an id and a factory")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, taken := entries[id]; taken {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	info := GameInfo{ID: id, Title: id}
	if g := f(); g != nil {
		info.Title = g.Title()
		if d, ok := g.(Describer); ok {
			info.Blurb = d.Blurb()
		}
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered game sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	ids := slices.Sorted(maps.Keys(entries))
	out := make([]GameInfo, len(ids))
	for i, id := range ids {
		out[i] = entries[id].info
	}
	return out
}

// Info returns the metadata of one game.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Create builds a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
