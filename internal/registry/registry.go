// Package registry maps game ids to factories. Games register themselves
// in init(), so the platform and CLI can create them by id without
// importing game internals.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is the contract between a pure game and the platform.
// Games hold no terminal, timer or storage dependencies; the platform maps
// keys to actions, drives Step at the tick rate and paints the screen.
type Game interface {
	// ID returns the identifier used for CLI arguments and score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset (re)initializes the game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick with the actions
	// collected since the previous tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns score and lifecycle flags.
	State() core.GameState
}

// Resizable is implemented by games that can adapt to a new screen size
// without losing progress. Other games are Reset on resize.
type Resizable interface {
	Resize(width, height int)
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory under id.
// Panics if id is empty or already registered.
func Register(id string, f Factory) {
	if id == "" || f == nil {
		panic("registry: Register requires an id and a factory")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered games sorted by id.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates the game registered under id.
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
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// unregister removes id. Tests only.
func unregister(id string) {
	mu.Lock()
	defer mu.Unlock()
	delete(entries, id)
}
