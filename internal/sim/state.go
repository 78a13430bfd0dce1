package sim

import (
	"math"
	"time"
)

// State is the mutable state of one session.
//
// Score and Combo never go below zero. Lives and TimeLeft never go below
// zero. Entities keeps spawn order; rules that iterate and remove walk it
// in reverse.
type State struct {
	Score     int
	Combo     int
	ComboBase int // value Combo resets to: 1 for the monk, 0 for the roach game
	MaxCombo  int

	Lives    int
	MaxLives int

	TimeLeft time.Duration // countdown games only
	Elapsed  time.Duration

	Kills    int
	Attempts int

	HasShield bool
	Playing   bool
	Paused    bool

	Entities   []*Entity
	PlayerCell int

	nextID int
}

// NewState creates an idle state with the given combo baseline and life cap.
func NewState(comboBase, maxLives int) *State {
	s := &State{ComboBase: comboBase, MaxLives: maxLives}
	s.Reset()
	return s
}

// Reset returns every counter to its starting value and clears entities.
// ComboBase and MaxLives are kept.
func (s *State) Reset() {
	*s = State{
		ComboBase: s.ComboBase,
		MaxLives:  s.MaxLives,
		Combo:     s.ComboBase,
		MaxCombo:  s.ComboBase,
		Lives:     s.MaxLives,
	}
}

// Spawn assigns an ID to e and appends it to the entity list.
func (s *State) Spawn(e *Entity) *Entity {
	s.nextID++
	e.ID = s.nextID
	s.Entities = append(s.Entities, e)
	return e
}

// Find returns the entity with the given ID.
func (s *State) Find(id int) (*Entity, bool) {
	for _, e := range s.Entities {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

// Remove takes the entity out of play. Removing an entity that is already
// gone is a no-op and reports false.
func (s *State) Remove(id int) (*Entity, bool) {
	for i, e := range s.Entities {
		if e.ID == id {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return e, true
		}
	}
	return nil, false
}

// Clear removes every entity and returns them in spawn order.
func (s *State) Clear() []*Entity {
	out := s.Entities
	s.Entities = nil
	return out
}

// EntityAt returns the oldest entity occupying cell.
func (s *State) EntityAt(cell int) (*Entity, bool) {
	for _, e := range s.Entities {
		if e.Cell == cell {
			return e, true
		}
	}
	return nil, false
}

// FreeCells lists the cells in [0, n) that hold no entity.
func (s *State) FreeCells(n int) []int {
	taken := make([]bool, n)
	for _, e := range s.Entities {
		if e.Cell >= 0 && e.Cell < n {
			taken[e.Cell] = true
		}
	}
	free := make([]int, 0, n)
	for i, t := range taken {
		if !t {
			free = append(free, i)
		}
	}
	return free
}

// Accuracy is kills over attempts as a rounded percentage, 0 before the
// first attempt.
func (s *State) Accuracy() int {
	if s.Attempts == 0 {
		return 0
	}
	return int(math.Round(float64(s.Kills) / float64(s.Attempts) * 100))
}

// AddScore adds a gain. Zero and negative gains are ignored.
func (s *State) AddScore(n int) {
	if n > 0 {
		s.Score += n
	}
}

// BumpCombo increases the combo by one and tracks the best combo.
func (s *State) BumpCombo() {
	s.Combo++
	if s.Combo > s.MaxCombo {
		s.MaxCombo = s.Combo
	}
}

// ResetCombo drops the combo back to its baseline.
func (s *State) ResetCombo() {
	s.Combo = s.ComboBase
}

// LoseLife takes one life and returns the lives left.
func (s *State) LoseLife() int {
	if s.Lives > 0 {
		s.Lives--
	}
	return s.Lives
}

// GainLife adds a life unless the cap is reached.
func (s *State) GainLife() bool {
	if s.Lives >= s.MaxLives {
		return false
	}
	s.Lives++
	return true
}

// Tick moves the session timers forward by dt. TimeLeft stops at zero.
func (s *State) Tick(dt time.Duration) {
	s.Elapsed += dt
	if s.TimeLeft > 0 {
		s.TimeLeft -= dt
		if s.TimeLeft < 0 {
			s.TimeLeft = 0
		}
	}
}
