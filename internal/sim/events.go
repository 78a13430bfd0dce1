package sim

import (
	"time"

	"github.com/vovakirdan/mat-arcade/internal/matinput"
)

// Event is something a session reports to its observers.
type Event interface {
	simEvent()
}

// Phase is the lifecycle stage of a session.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseEnded
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// StatsChanged carries the HUD counters after a mutation.
type StatsChanged struct {
	Score    int
	Combo    int
	Lives    int
	TimeLeft time.Duration
	Elapsed  time.Duration
	Shield   bool
}

func (StatsChanged) simEvent() {}

// EntitySpawned is sent when an entity enters play.
type EntitySpawned struct {
	ID      int
	Kind    Kind
	Powerup Powerup
	Cell    int
}

func (EntitySpawned) simEvent() {}

// EntityRemoved is sent when an entity leaves play.
type EntityRemoved struct {
	ID     int
	Kind   Kind
	Cell   int
	Reason RemoveReason
}

func (EntityRemoved) simEvent() {}

// CueEvent asks the platform to play a sound.
type CueEvent struct {
	Cue Cue
}

func (CueEvent) simEvent() {}

// PhaseChanged is sent on every lifecycle transition.
type PhaseChanged struct {
	From Phase
	To   Phase
}

func (PhaseChanged) simEvent() {}

// MatStatus reports the state of the mat input channel.
type MatStatus struct {
	Status  matinput.Status
	Message string // detail for the log line, e.g. the error text
}

func (MatStatus) simEvent() {}

// Summary is the result of a finished session.
type Summary struct {
	Game     string
	Score    int
	Accuracy int
	MaxCombo int
	Combo    int
	Kills    int
	Attempts int
	Elapsed  time.Duration
}

// SessionEnded is sent once when a session reaches its end condition.
type SessionEnded struct {
	Summary Summary
}

func (SessionEnded) simEvent() {}

// StatsOf snapshots the HUD counters of s.
func StatsOf(s *State) StatsChanged {
	return StatsChanged{
		Score:    s.Score,
		Combo:    s.Combo,
		Lives:    s.Lives,
		TimeLeft: s.TimeLeft,
		Elapsed:  s.Elapsed,
		Shield:   s.HasShield,
	}
}
