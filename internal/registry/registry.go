// Package registry maps game IDs to factories. Game packages register in
// init so the platform can list and create them by ID.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/replay"
)

// Game is a playable game. Implementations hold pure logic; the platform
// owns input mapping, timing and terminal output.
type Game interface {
	ID() string    // stable key for the CLI and the score tables
	Title() string // display name

	// Reset starts a new run; it is called again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions pressed since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// Replayable is implemented by games whose sessions can be stored and
// re-run. The platform saves the replay when the game ends. Fingerprint
// identifies the board the record must end on.
type Replayable interface {
	Replay() (rec replay.Record, fingerprint uint64, ok bool)
}

// ErrUnknownGame is returned by Create for IDs nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	title   string
	factory Factory
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register makes a game available under id. Game packages call it from
// init. Registering an id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{title: f().Title(), factory: f}
}

// List returns the registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	ids := lo.Keys(entries)
	slices.Sort(ids)
	return lo.Map(ids, func(id string, _ int) GameInfo {
		return GameInfo{ID: id, Title: entries[id].title}
	})
}

// Title returns the display name of a game, or the id itself when it is
// not registered.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if e, ok := entries[id]; ok {
		return e.title
	}
	return id
}

// Create returns a new instance of the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
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
