// Package registry is the arcade's game catalogue. Each game package adds
// an Entry from init(); the CLI, menu and scoreboard read the catalogue
// without importing any game directly.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/mat-arcade/internal/core"
	"github.com/vovakirdan/mat-arcade/internal/session"
)

// Game is what the platform drives. Implementations keep all terminal
// concerns out: they see input frames and draw into a core.Screen.
type Game interface {
	ID() string
	Title() string

	// Reset builds a fresh idle session from the runtime config.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances the session one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a pre-cleared screen.
	Render(dst *core.Screen)

	State() core.GameState

	// Session exposes the controller for its event bus and summary.
	Session() *session.Controller

	// Close ends the session and drops its mat subscription.
	Close()
}

// Factory creates a new, not yet reset, game.
type Factory func() Game

// Entry describes one game in the catalogue.
type Entry struct {
	ID    string
	Title string
	Blurb string // one line shown by the menu and `arcade list`
	Pads  int    // mat pads the game reads, 1..Pads
	New   Factory
}

// Info is the catalogue view of an Entry.
type Info struct {
	ID    string
	Title string
	Blurb string
	Pads  int
}

// ErrUnknownGame is returned by Create for an ID nobody registered.
var ErrUnknownGame = errors.New("registry: unknown game")

var (
	mu      sync.RWMutex
	entries = make(map[string]Entry)
)

// Register adds e to the catalogue. It panics on an empty ID, a missing
// factory or a duplicate ID, all of which are programming errors.
func Register(e Entry) {
	if e.ID == "" || e.New == nil {
		panic(fmt.Sprintf("registry: incomplete entry %q", e.ID))
	}
	if e.Title == "" {
		e.Title = e.ID
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[e.ID]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", e.ID))
	}
	entries[e.ID] = e
}

// List returns the catalogue sorted by ID.
func List() []Info {
	mu.RLock()
	out := make([]Info, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info())
	}
	mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Lookup returns the catalogue entry for id.
func Lookup(id string) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info(), ok
}

// Create builds a new game instance.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.New(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Lookup(id)
	return ok
}

func (e Entry) info() Info {
	return Info{ID: e.ID, Title: e.Title, Blurb: e.Blurb, Pads: e.Pads}
}
